package box

import (
	"fmt"
	"strings"

	"jahia2wp/jahia"
)

func (t *transformer) links() error {
	// sort handler is kept on the list element, box element itself is used
	// by older exports
	el := t.el
	if list := jahia.FirstByTag(t.el, "linksList"); list != nil && jahia.HasAttr(list, "jahia:sortHandler") {
		el = list
	}
	content, err := t.linkList(el)
	if err != nil {
		return err
	}
	t.box.Content = content
	return nil
}

func (t *transformer) files() error {
	t.box.Content = fileList(t.el)
	return nil
}

func (t *transformer) contact() error {
	var b strings.Builder
	for _, c := range jahia.ElementsByTag(t.el, "contactList") {
		b.WriteString(value(c, "text"))
	}
	t.box.Content = b.String()
	return nil
}

func (t *transformer) faq() error {
	const outer, inner = "epfl_faq", "epfl_faqItem"

	t.box.ShortcodeName = outer
	t.register(inner, "link", "image")

	var b strings.Builder
	b.WriteString(newShortcode(outer).open() + "\n")
	for _, entry := range jahia.ElementsByTag(t.el, "faqList") {
		b.WriteString(newShortcode(inner).
			attr("question", jahia.EscapeAttr(value(entry, "question"))).
			wrap(value(entry, "answer")))
		b.WriteByte('\n')
	}
	b.WriteString(closeShortcode(outer))
	t.box.Content = b.String()
	return nil
}

func (t *transformer) grid() error {
	const outer, inner = "epfl_grid", "epfl_gridElem"

	t.box.ShortcodeName = outer
	t.register(inner, "link", "image")

	var b strings.Builder
	b.WriteString(newShortcode(outer).open() + "\n")
	for _, item := range jahia.ElementsByTag(t.el, "gridList") {
		b.WriteString(newShortcode(inner).
			attr("layout", jahia.ResourceAttr(value(item, "layout"), "default-value")).
			attr("link", jahia.TagAttribute(item, "jahia:url", "jahia:value")).
			attr("title", jahia.EscapeAttr(jahia.TagAttribute(item, "jahia:url", "jahia:title"))).
			attr("image", value(item, "image")).
			wrap(""))
		b.WriteByte('\n')
	}
	b.WriteString(closeShortcode(outer))
	t.box.Content = b.String()
	return nil
}

func (t *transformer) toggle() error {
	t.box.ShortcodeName = "epfl_toggle"

	state := "close"
	if value(t.el, "opened") == "true" {
		state = "open"
	}
	t.box.Content = newShortcode(t.box.ShortcodeName).
		attr("title", jahia.EscapeAttr(t.box.Title)).
		attr("state", state).
		wrap(value(t.el, "content"))
	return nil
}

func (t *transformer) xml() error {
	t.box.ShortcodeName = "epfl_xml"
	t.box.Content = newShortcode(t.box.ShortcodeName).
		attr("xml", value(t.el, "xml")).
		attr("xslt", value(t.el, "xslt")).
		open()
	return nil
}

func (t *transformer) syntaxHighlight() error {
	t.box.Content = newShortcode("enlighter").wrap(value(t.el, "code"))
	return nil
}

// rss converts box to feedzy plugin shortcode. Box without feed URL stays
// empty.
func (t *transformer) rss() error {
	feed := value(t.el, "url")
	if feed == "" {
		return nil
	}

	// value may be a JSP expression
	items := value(t.el, "nbItems")
	if !isDigits(items) {
		items = fmt.Sprint(t.scope.Options.RSSDefaultItems)
	}

	feedTitle, summary, meta := "yes", "yes", "yes"
	if value(t.el, "hideTitle") == "true" {
		feedTitle = "no"
	}
	if value(t.el, "detailItems") != "true" {
		summary, meta = "no", "no"
	}

	t.box.Content = newShortcode("feedzy-rss").
		attr("feeds", feed).
		attr("max", items).
		attr("feed_title", feedTitle).
		attr("summary", summary).
		attr("refresh", t.scope.Options.RSSRefresh).
		attr("meta", meta).
		open()
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
