package convert

import (
	"fmt"

	"jahia2wp/box"
	"jahia2wp/common"
)

// Document is conversion result of a single language export, it is what
// downstream exporter reads to create WordPress pages.
type Document struct {
	RunID      string            `yaml:"run_id"`
	Source     string            `yaml:"source"`
	Site       string            `yaml:"site"`
	Language   string            `yaml:"language"`
	Converted  string            `yaml:"converted"`
	Pages      []PageResult      `yaml:"pages"`
	Shortcodes []ShortcodeResult `yaml:"shortcodes,omitempty"`
	Failures   []string          `yaml:"failures,omitempty"`

	boxIDs map[*box.Box]string
	boxes  []*box.Box
}

type PageResult struct {
	UUID       string            `yaml:"uuid"`
	PID        string            `yaml:"pid"`
	Title      string            `yaml:"title"`
	Boxes      []BoxResult       `yaml:"boxes,omitempty"`
	SortGroups []SortGroupResult `yaml:"sort_groups,omitempty"`
}

type BoxResult struct {
	ID                       string            `yaml:"id"`
	Type                     string            `yaml:"type"`
	RawType                  string            `yaml:"raw_type,omitempty"`
	Title                    string            `yaml:"title,omitempty"`
	Sidebar                  bool              `yaml:"sidebar,omitempty"`
	Shortcode                string            `yaml:"shortcode,omitempty"`
	ShortcodeAttributesToFix []string          `yaml:"shortcode_attributes_to_fix,omitempty"`
	SortGroup                string            `yaml:"sort_group,omitempty"`
	Deferred                 []common.Deferred `yaml:"deferred,omitempty"`
	Content                  string            `yaml:"content"`
}

// SortGroupResult lists boxes of sortable page list in display order.
type SortGroupResult struct {
	Key       string   `yaml:"key"`
	Field     string   `yaml:"field"`
	Direction string   `yaml:"direction"`
	Boxes     []string `yaml:"boxes"`
}

type ShortcodeResult struct {
	Name       string   `yaml:"name"`
	Attributes []string `yaml:"attributes,omitempty"`
	Boxes      []string `yaml:"boxes,omitempty"`
}

func newDocument() *Document {
	return &Document{boxIDs: make(map[*box.Box]string)}
}

// addBox appends converted box to the page, box IDs are unique within
// document.
func (d *Document) addBox(page *PageResult, b *box.Box) {
	id := fmt.Sprintf("%s-%d", page.PID, len(page.Boxes)+1)
	d.boxIDs[b] = id
	d.boxes = append(d.boxes, b)

	r := BoxResult{
		ID:                       id,
		Type:                     b.Type.String(),
		RawType:                  b.RawType,
		Title:                    b.Title,
		Sidebar:                  b.InSidebar,
		Shortcode:                b.ShortcodeName,
		ShortcodeAttributesToFix: b.ShortcodeAttributesToFix,
		Deferred:                 b.Deferred,
		Content:                  b.Content,
	}
	if b.SortGroup != nil {
		r.SortGroup = b.SortGroup.Key
	}
	page.Boxes = append(page.Boxes, r)
}

func (d *Document) addSortGroups(page *PageResult, groups []*box.SortGroup[*box.Box]) {
	for _, g := range groups {
		r := SortGroupResult{
			Key:       g.Key,
			Field:     g.Spec.Field,
			Direction: string(g.Spec.Direction),
		}
		for _, b := range g.Sorted() {
			if id, ok := d.boxIDs[b]; ok {
				r.Boxes = append(r.Boxes, id)
			}
		}
		page.SortGroups = append(page.SortGroups, r)
	}
}

func (d *Document) addShortcodes(registrations []*box.Registration) {
	for _, reg := range registrations {
		r := ShortcodeResult{Name: reg.Name, Attributes: reg.Attributes}
		for _, b := range reg.Boxes {
			// boxes which failed to convert are not part of the document
			if id, ok := d.boxIDs[b]; ok {
				r.Boxes = append(r.Boxes, id)
			}
		}
		d.Shortcodes = append(d.Shortcodes, r)
	}
}
