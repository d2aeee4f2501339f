package box

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"jahia2wp/jahia"
)

// transformer carries everything type specific conversion needs for a single
// box.
type transformer struct {
	box      *Box
	el       *etree.Element
	multibox bool
	scope    *Scope
	log      *zap.Logger
}

type transformFunc func(t *transformer) error

var transformers = map[Type]transformFunc{
	TypeText:              (*transformer).text,
	TypeColoredText:       (*transformer).text,
	TypeOneColContainer:   (*transformer).text,
	TypePeopleList:        (*transformer).peopleList,
	TypeInfoscience:       (*transformer).infoscience,
	TypeInfoscienceFilter: (*transformer).infoscience,
	TypeActu:              (*transformer).actu,
	TypeMemento:           (*transformer).memento,
	TypeFAQ:               (*transformer).faq,
	TypeToggle:            (*transformer).toggle,
	TypeInclude:           (*transformer).include,
	TypeContact:           (*transformer).contact,
	TypeXML:               (*transformer).xml,
	TypeLinks:             (*transformer).links,
	TypeRSS:               (*transformer).rss,
	TypeFiles:             (*transformer).files,
	TypeButtons:           (*transformer).buttons,
	TypeSnippets:          (*transformer).snippets,
	TypeSyntaxHighlight:   (*transformer).syntaxHighlight,
	TypeKeyVisual:         (*transformer).keyVisual,
	TypeMap:               (*transformer).mapBox,
	TypeGrid:              (*transformer).grid,
}

// register tells registry about shortcode attributes to be fixed later and
// remembers them on the box.
func (t *transformer) register(name string, attributes ...string) {
	if t.scope.Shortcodes != nil {
		t.scope.Shortcodes.Register(name, attributes, t.box)
	}
	t.box.ShortcodeAttributesToFix = appendMissing(t.box.ShortcodeAttributesToFix, attributes...)
}

// titleHeading returns box title as <h3> or nothing for untitled box.
func (t *transformer) titleHeading() string {
	if t.box.Title == "" {
		return ""
	}
	return "<h3>" + t.box.Title + "</h3>"
}

// value is a shortcut for the most common lookup: "jahia:value" of a
// descendant.
func value(el *etree.Element, tag string) string {
	return jahia.TagAttribute(el, tag, "jahia:value")
}

// childElements returns direct children with given full tag name.
func childElements(el *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	for _, c := range el.ChildElements() {
		if c.FullTag() == tag {
			found = append(found, c)
		}
	}
	return found
}

// siteFilePath turns repository path "/content/sites/<site>/files/a/b.pdf"
// into site path "/files/a/b.pdf".
func siteFilePath(repoPath string) string {
	parts := strings.Split(repoPath, "/")
	if len(parts) <= 4 {
		return "/"
	}
	return "/" + strings.Join(parts[4:], "/")
}

func (t *transformer) unknown() error {
	t.box.Content = "[" + t.box.RawType + "]"
	return nil
}
