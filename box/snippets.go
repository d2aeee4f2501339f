package box

import (
	"strings"

	"go.uber.org/zap"

	"jahia2wp/jahia"
)

const snippetsShortcode = "epfl_snippets"

// snippets converts snippets box. Unlike buttons, missing sort values only
// disable sorting.
func (t *transformer) snippets() error {
	t.box.ShortcodeName = snippetsShortcode
	t.register(snippetsShortcode, "url", "image", "big_image")

	list := jahia.FirstByTag(t.el, "snippetListList")
	if list == nil {
		return nil
	}
	items := jahia.ElementsByTag(list, "snippetList")

	spec := ParseSortSpec(jahia.Attr(list, "jahia:sortHandler"))
	sortTag := spec.TagName()
	if !spec.IsZero() {
		for _, item := range items {
			if value(item, sortTag) == "" {
				t.log.Error("No sort tag found (or empty sort value found) for snippets, disabling sorting", zap.String("tag", sortTag))
				spec = ParseSortSpec("")
				break
			}
		}
	}

	// Jahia only shows link when box has any url field at all
	withLinks := jahia.FirstByTag(t.el, "url") != nil

	group := NewSortGroup[string]("", spec)
	for _, item := range items {
		key := IndexKey(group.Len())
		if !spec.IsZero() {
			key = ValueKey(value(item, sortTag))
		}

		title := jahia.EscapeAttr(value(item, "title"))
		subtitle := jahia.EscapeAttr(value(item, "subtitle"))
		description := value(item, "description")

		var link string
		if withLinks {
			if link = jahia.TagAttribute(item, "jahia:url", "jahia:value"); link != "" {
				if subtitle == "" {
					subtitle = jahia.EscapeAttr(jahia.TagAttribute(item, "jahia:url", "jahia:title"))
				}
			} else if ref := jahia.TagAttribute(item, "jahia:link", "jahia:reference"); ref != "" {
				page, ok := t.scope.page(ref)
				if !ok {
					t.log.Warn("Snippet references unknown page, skipping", zap.String("uuid", ref), zap.String("title", title))
					continue
				}
				link = page.URL()
				if linkTitle := jahia.TagAttribute(item, "jahia:link", "jahia:title"); linkTitle != "" {
					description += `<a href="` + link + `">` + jahia.EscapeAttr(linkTitle) + `</a>`
				}
			}
		}

		group.Add(newShortcode(snippetsShortcode).
			attr("url", link).
			attr("title", title).
			attr("subtitle", subtitle).
			attr("image", sitePathFrom(value(item, "image"))).
			attr("big_image", sitePathFrom(value(item, "bigImage"))).
			attr("enable_zoom", value(item, "enableImageZoom")).
			wrap(description), key)
	}

	t.box.Content = t.titleHeading() + strings.Join(group.Sorted(), "")
	return nil
}

// sitePathFrom cuts everything before the last "/files" path element.
func sitePathFrom(p string) string {
	if i := strings.LastIndex(p, "/files"); i >= 0 {
		return p[i:]
	}
	return p
}
