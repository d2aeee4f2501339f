package box

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"jahia2wp/jahia"
)

const buttonsShortcode = "epfl_buttons"

type buttonKind string

const (
	smallButton buttonKind = "small"
	bigButton   buttonKind = "big"
)

// button is a single [epfl_buttons] item. Big buttons have image, small ones
// have icon key.
type button struct {
	kind    buttonKind
	url     string
	altText string
	text    string
	image   string
	key     string
}

func (b button) shortcode() string {
	return newShortcode(buttonsShortcode).
		attr("type", string(b.kind)).
		attr("url", b.url).
		optAttr("image", b.image).
		attr("alt_text", jahia.EscapeAttr(b.altText)).
		attr("text", jahia.EscapeAttr(b.text)).
		optAttr("key", b.key).
		open()
}

// buttons converts small and big buttons boxes.
func (t *transformer) buttons() error {
	t.box.ShortcodeName = buttonsShortcode
	t.register(buttonsShortcode, "image", "url")

	kind, listTag, itemTag := bigButton, "bigButtonListList", "bigButtonList"
	if strings.Contains(t.box.RawType, "small") {
		kind, listTag, itemTag = smallButton, "smallButtonListList", "smallButtonList"
	}

	list := jahia.FirstByTag(t.el, listTag)
	if list == nil {
		return fmt.Errorf("%w: %s", ErrMissingContainer, listTag)
	}

	spec := ParseSortSpec(jahia.Attr(list, "jahia:sortHandler"))
	var sortTag string
	if !spec.IsZero() {
		sortTag = "jahia:" + spec.TagName()
	}

	group := NewSortGroup[string]("", spec)
	for _, item := range jahia.ElementsByTag(t.el, itemTag) {
		key := IndexKey(group.Len())
		if sortTag != "" {
			v := jahia.Attr(jahia.FirstByTag(item, sortTag), "jahia:title")
			if v == "" {
				return fmt.Errorf("%w: %s sorted by %s", ErrMissingSortValue, itemTag, sortTag)
			}
			key = ValueKey(v)
		}

		btn, ok := t.button(kind, item)
		if !ok {
			continue
		}
		group.Add(btn.shortcode(), key)
	}

	t.box.Content = t.titleHeading() + newShortcode(buttonsContainer).wrap(strings.Join(group.Sorted(), ""))
	return nil
}

// button reads single button definition, false is returned for buttons
// linking to pages which do not exist anymore.
func (t *transformer) button(kind buttonKind, item *etree.Element) (button, bool) {
	btn := button{kind: kind}
	for _, c := range item.ChildElements() {
		switch c.FullTag() {
		case "label":
			btn.altText = jahia.Attr(c, "jahia:value")
		case "url":
			if kind == smallButton {
				btn.url = jahia.Attr(c, "jahia:value")
				continue
			}
			for _, target := range c.ChildElements() {
				btn.text = jahia.Attr(target, "jahia:title")
				switch target.FullTag() {
				case "jahia:link":
					ref := jahia.Attr(target, "jahia:reference")
					page, ok := t.scope.page(ref)
					if !ok {
						t.log.Warn("Button references unknown page, skipping", zap.String("uuid", ref), zap.String("text", btn.text))
						return btn, false
					}
					btn.url = page.URL()
				case "jahia:url":
					btn.url = jahia.Attr(target, "jahia:value")
				}
			}
		case "image":
			if v := jahia.Attr(c, "jahia:value"); v != "" {
				btn.image = siteFilePath(v)
			}
		case "type":
			btn.key = jahia.ResourceAttr(jahia.Attr(c, "jahia:value"), "default-value")
		}
	}
	if kind == smallButton && btn.text == "" {
		btn.text = btn.altText
	}
	return btn, true
}
