package jahia

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// Helpers to access Jahia export DOM. Jahia stores almost everything in
// attributes ("jahia:value", "jahia:title", "jahia:reference") of elements
// with well known names, so lookup is always "find element by tag, read
// attribute". Tags are matched by their full prefixed name (i.e. "url" does not
// match "jahia:url"), search includes all descendants in document order but
// never the element itself.

// ElementsByTag returns all descendants of el with given full tag name in
// document order.
func ElementsByTag(el *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	walkElements(el, func(e *etree.Element) bool {
		if e.FullTag() == tag {
			found = append(found, e)
		}
		return true
	})
	return found
}

// FirstByTag returns first descendant of el with given full tag name or nil.
func FirstByTag(el *etree.Element, tag string) *etree.Element {
	var found *etree.Element
	walkElements(el, func(e *etree.Element) bool {
		if e.FullTag() == tag {
			found = e
			return false
		}
		return true
	})
	return found
}

// walkElements visits descendants depth first, stops when visit returns false.
func walkElements(el *etree.Element, visit func(*etree.Element) bool) bool {
	if el == nil {
		return true
	}
	for _, c := range el.ChildElements() {
		if !visit(c) {
			return false
		}
		if !walkElements(c, visit) {
			return false
		}
	}
	return true
}

// Attr returns value of attribute (may be prefixed: "jahia:value") or empty
// string when attribute is absent.
func Attr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	return el.SelectAttrValue(key, "")
}

// HasAttr reports whether attribute is present on element.
func HasAttr(el *etree.Element, key string) bool {
	return el != nil && el.SelectAttr(key) != nil
}

// TagAttribute returns attribute of the first descendant with given tag, empty
// string if there is no such descendant or attribute.
func TagAttribute(el *etree.Element, tag, attr string) string {
	return Attr(FirstByTag(el, tag), attr)
}

// TagAttributes returns attribute values of all descendants with given tag
// which have this attribute.
func TagAttributes(el *etree.Element, tag, attr string) []string {
	var values []string
	for _, e := range ElementsByTag(el, tag) {
		if a := e.SelectAttr(attr); a != nil {
			values = append(values, a.Value)
		}
	}
	return values
}

var attrReplacer = strings.NewReplacer(`"`, "&quot;", "[", "&#91;", "]", "&#93;")

// EscapeAttr makes text safe to be used as shortcode attribute value: quotes
// would terminate the value and square brackets would terminate the
// shortcode.
func EscapeAttr(text string) string {
	return attrReplacer.Replace(text)
}

// ResourceAttr extracts attribute from serialized <jahia-resource .../>
// reference Jahia keeps in some "jahia:value" attributes, for example
//
//	<jahia-resource bundle="..." key="epfl.layout.large" default-value="large"/>
//
// Empty string is returned when there is no resource or attribute.
func ResourceAttr(raw, attr string) string {
	if !strings.Contains(raw, "jahia-resource") {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or broken markup, either way nothing found
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "jahia-resource" {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == attr {
					return a.Val
				}
			}
			return ""
		}
	}
}
