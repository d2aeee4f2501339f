package box

import (
	"fmt"
	"strings"

	"jahia2wp/jahia"
)

// publication containers by box type, infoscience boxes may carry
// importHtmlList as well which Jahia never displayed.
var publicationLists = map[Type]string{
	TypeInfoscience:       "infoscienceListList",
	TypeInfoscienceFilter: "infoscienceFilteredListList",
	TypeInclude:           "importHtmlList",
}

func (t *transformer) infoscience() error {
	t.box.ShortcodeName = "epfl_infoscience"

	tag := publicationLists[t.box.Type]
	list := jahia.FirstByTag(t.el, tag)
	if list == nil {
		return fmt.Errorf("%w: %s", ErrMissingContainer, tag)
	}

	var b strings.Builder
	b.WriteString(t.titleHeading())
	for _, u := range jahia.TagAttributes(list, "url", "jahia:value") {
		b.WriteString(newShortcode(t.box.ShortcodeName).attr("url", u).open())
	}
	t.box.Content = b.String()
	return nil
}
