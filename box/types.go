package box

// Type is canonical box kind. Unknown Jahia types are kept as is.
type Type string

const (
	TypeText              Type = "text"
	TypeOneColContainer   Type = "oneColContainer"
	TypeColoredText       Type = "coloredText"
	TypePeopleList        Type = "peopleList"
	TypeInfoscience       Type = "infoscience"
	TypeInfoscienceFilter Type = "infoscienceFilter"
	TypeActu              Type = "actu"
	TypeMemento           Type = "memento"
	TypeFAQ               Type = "faq"
	TypeToggle            Type = "toggle"
	TypeInclude           Type = "include"
	TypeContact           Type = "contact"
	TypeXML               Type = "xml"
	TypeLinks             Type = "links"
	TypeRSS               Type = "rss"
	TypeFiles             Type = "files"
	TypeButtons           Type = "buttons_box"
	TypeSnippets          Type = "snippets"
	TypeSyntaxHighlight   Type = "syntaxHighlight"
	TypeKeyVisual         Type = "keyVisual"
	TypeMap               Type = "map"
	TypeGrid              Type = "grid"
)

// jahiaTypes maps Jahia "jcr:primaryType" of box elements to canonical types.
var jahiaTypes = map[string]Type{
	"epfl:textBox":                TypeText,
	"epfl:coloredTextBox":         TypeColoredText,
	"epfl:peopleListBox":          TypePeopleList,
	"epfl:infoscienceBox":         TypeInfoscience,
	"epfl:infoscienceFilteredBox": TypeInfoscienceFilter,
	"epfl:actuBox":                TypeActu,
	"epfl:mementoBox":             TypeMemento,
	"epfl:faqBox":                 TypeFAQ,
	"epfl:toggleBox":              TypeToggle,
	"epfl:htmlBox":                TypeInclude,
	"epfl:contactBox":             TypeContact,
	"epfl:xmlBox":                 TypeXML,
	"epfl:linksBox":               TypeLinks,
	"epfl:rssBox":                 TypeRSS,
	"epfl:filesBox":               TypeFiles,
	"epfl:bigButtonsBox":          TypeButtons,
	"epfl:smallButtonsBox":        TypeButtons,
	"epfl:snippetsBox":            TypeSnippets,
	"epfl:syntaxHighlightBox":     TypeSyntaxHighlight,
	"epfl:keyVisualBox":           TypeKeyVisual,
	"epfl:mapBox":                 TypeMap,
	"epfl:gridBox":                TypeGrid,
	"epfl:oneColContainer":        TypeOneColContainer,
}

// ResolveType returns canonical type for Jahia type name. Unrecognized names
// are passed through unchanged, empty name gives empty type.
func ResolveType(raw string) Type {
	if t, ok := jahiaTypes[raw]; ok {
		return t
	}
	return Type(raw)
}

// Known reports whether type is one of the canonical types.
func (t Type) Known() bool {
	_, ok := transformers[t]
	return ok
}

func (t Type) String() string {
	return string(t)
}
