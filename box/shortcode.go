package box

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"jahia2wp/utils/debug"
)

// shortcode builds WordPress shortcode text. Values are written as given,
// callers escape user provided text with jahia.EscapeAttr.
type shortcode struct {
	name  string
	attrs strings.Builder
}

func newShortcode(name string) *shortcode {
	return &shortcode{name: name}
}

// attr adds attribute, possibly with empty value.
func (s *shortcode) attr(key, value string) *shortcode {
	fmt.Fprintf(&s.attrs, ` %s="%s"`, key, value)
	return s
}

// optAttr adds attribute only when value is not empty.
func (s *shortcode) optAttr(key, value string) *shortcode {
	if value == "" {
		return s
	}
	return s.attr(key, value)
}

// open renders opening tag: [name a="b"].
func (s *shortcode) open() string {
	return "[" + s.name + s.attrs.String() + "]"
}

// selfClosing renders [name a="b" /].
func (s *shortcode) selfClosing() string {
	return "[" + s.name + s.attrs.String() + " /]"
}

// wrap renders [name a="b"]content[/name].
func (s *shortcode) wrap(content string) string {
	return s.open() + content + closeShortcode(s.name)
}

func closeShortcode(name string) string {
	return "[/" + name + "]"
}

// ShortcodeRegistrar is told about shortcodes whose attributes hold URLs later
// conversion stages have to rewrite (after media import, page creation).
type ShortcodeRegistrar interface {
	Register(name string, attributes []string, owner *Box)
}

// Registration describes single registered shortcode.
type Registration struct {
	Name       string
	Attributes []string
	Boxes      []*Box
}

// ShortcodeRegistry collects registrations for the whole site.
type ShortcodeRegistry struct {
	byName map[string]*Registration
	order  []string
}

func NewShortcodeRegistry() *ShortcodeRegistry {
	return &ShortcodeRegistry{byName: make(map[string]*Registration)}
}

// Register records shortcode. Attribute lists of repeated registrations are
// merged keeping first seen order.
func (r *ShortcodeRegistry) Register(name string, attributes []string, owner *Box) {
	reg, ok := r.byName[name]
	if !ok {
		reg = &Registration{Name: name}
		r.byName[name] = reg
		r.order = append(r.order, name)
	}
	reg.Attributes = appendMissing(reg.Attributes, attributes...)
	if owner != nil && !slices.Contains(reg.Boxes, owner) {
		reg.Boxes = append(reg.Boxes, owner)
	}
}

// Registrations returns registered shortcodes in order of first registration.
func (r *ShortcodeRegistry) Registrations() []*Registration {
	regs := make([]*Registration, 0, len(r.order))
	for _, name := range r.order {
		regs = append(regs, r.byName[name])
	}
	return regs
}

// Lookup returns registration by shortcode name.
func (r *ShortcodeRegistry) Lookup(name string) (*Registration, bool) {
	reg, ok := r.byName[name]
	return reg, ok
}

func (r *ShortcodeRegistry) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Shortcodes[%d]", len(r.order))
	names := slices.Clone(r.order)
	sort.Sort(natural.StringSlice(names))
	for _, name := range names {
		reg := r.byName[name]
		tw.Line(1, "%s boxes[%d]", name, len(reg.Boxes))
		tw.List(2, "attributes", reg.Attributes)
	}
	return tw.String()
}

// appendMissing appends values not yet present in list.
func appendMissing(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}
