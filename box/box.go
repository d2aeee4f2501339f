// Package box converts Jahia boxes into WordPress content: HTML fragments and
// shortcodes.
package box

import (
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"jahia2wp/common"
	"jahia2wp/jahia"
	"jahia2wp/markup"
	"jahia2wp/utils/debug"
)

// Box is a single converted Jahia box.
type Box struct {
	Type    Type
	RawType string
	Title   string
	Content string
	// ShortcodeName is empty when content is plain HTML.
	ShortcodeName string
	// ShortcodeAttributesToFix names attributes holding URLs to be rewritten
	// by exporter.
	ShortcodeAttributesToFix []string
	// SortGroup is set when box is part of sortable page list.
	SortGroup *SortGroup[*Box]
	InSidebar bool
	// Deferred lists placeholders exporter has to resolve.
	Deferred []common.Deferred
}

// New converts box element. Boxes of a page must be created in document order
// using the same scope. Error means box could not be converted, it does not
// affect other boxes.
func New(s *Scope, el *etree.Element, multibox, inSidebar bool, log *zap.Logger) (*Box, error) {
	b := &Box{
		RawType:   jahia.Attr(el, "jcr:primaryType"),
		Title:     jahia.TagAttribute(el, "boxTitle", "jahia:value"),
		InSidebar: inSidebar,
	}
	b.Type = ResolveType(b.RawType)

	if b.Type == "" {
		log.Warn("Box has no type", zap.String("title", b.Title))
		return b, nil
	}

	log = log.With(zap.Stringer("type", b.Type))

	transform, ok := transformers[b.Type]
	if !ok {
		log.Warn("Unknown box type, using placeholder", zap.String("raw", b.RawType))
		transform = (*transformer).unknown
	}

	t := &transformer{box: b, el: el, multibox: multibox, scope: s, log: log}
	if err := transform(t); err != nil {
		return nil, fmt.Errorf("unable to convert %s box %q: %w", b.RawType, b.Title, err)
	}
	b.Content = markup.Process(b.Content, s.Options.VideoHosts)

	s.joinPageSortGroup(b, el, log)
	return b, nil
}

// joinPageSortGroup adds box to the sort group of its page list when list
// is sortable.
func (s *Scope) joinPageSortGroup(b *Box, el *etree.Element, log *zap.Logger) {
	parent := el.Parent()
	if parent == nil || parent.FullTag() != "mainList" {
		return
	}
	descriptor := jahia.Attr(parent, "jahia:sortHandler")
	if descriptor == "" {
		return
	}
	g := s.SortGroups.GetOrCreate(jahia.Attr(parent, "jcr:uuid"), descriptor)
	value := jahia.Attr(el, "jcr:"+g.Spec.Field)
	if value == "" {
		log.Warn("Sortable box has no sort value", zap.String("field", g.Spec.Field))
	}
	g.Add(b, ValueKey(value))
	b.SortGroup = g
}

// IsShortcode reports whether box renders as shortcode.
func (b *Box) IsShortcode() bool {
	return b.ShortcodeName != ""
}

// IsEmpty reports whether box has neither title nor content.
func (b *Box) IsEmpty() bool {
	return b.Title == "" && b.Content == ""
}

func (b *Box) String() string {
	return fmt.Sprintf("%s %s", b.Type, b.Title)
}

// Dump returns detailed description of the box for debug reports.
func (b *Box) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Box[%s] raw[%s] sidebar[%t]", b.Type, b.RawType, b.InSidebar)
	tw.TextBlock(1, "title", b.Title)
	tw.TextBlock(1, "shortcode", b.ShortcodeName)
	tw.List(1, "attributes to fix", b.ShortcodeAttributesToFix)
	if b.SortGroup != nil {
		tw.Line(1, "sort group %q by %q %s", b.SortGroup.Key, b.SortGroup.Spec.Field, b.SortGroup.Spec.Direction)
	}
	for _, d := range b.Deferred {
		tw.Line(1, "deferred %s %s", d.Kind, d.Shortcode)
	}
	tw.TextBlock(1, "content", b.Content)
	return tw.String()
}
