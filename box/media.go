package box

import (
	"strings"

	"jahia2wp/common"
	"jahia2wp/jahia"
)

// keyVisual renders carousel images as plain list. Carousel shortcode needs
// media IDs which only exist after media import, exporter replaces the list.
func (t *transformer) keyVisual() error {
	var (
		b     strings.Builder
		media []string
	)
	b.WriteString("<ul>")
	for _, img := range jahia.ElementsByTag(t.el, "image") {
		src := siteFilePath(jahia.Attr(img, "jahia:value"))
		media = append(media, src)
		b.WriteString(`<li><img src="` + src + `" /></li>`)
	}
	b.WriteString("</ul>")

	t.box.Content = b.String()
	t.box.Deferred = append(t.box.Deferred, common.Deferred{Kind: common.DeferredMediaIDs, Media: media})
	return nil
}

func (t *transformer) mapBox() error {
	t.box.ShortcodeName = "epfl_map"
	t.box.Content = newShortcode(t.box.ShortcodeName).
		attr("query", value(t.el, "query")).
		attr("lang", common.LanguagePlaceholder.String()).
		open()
	t.box.Deferred = append(t.box.Deferred, common.LanguageDeferred(t.box.ShortcodeName))
	return nil
}
