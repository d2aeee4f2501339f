package box

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Direction of sorting.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec is decoded Jahia sort handler: "<field>;<direction>;<bool>;<bool>".
// Only field and direction are meaningful for conversion.
type SortSpec struct {
	Field     string
	Direction Direction
	Raw       string
}

// ParseSortSpec decodes sort handler descriptor. Empty descriptor gives zero
// spec, any direction other than "desc" is ascending.
func ParseSortSpec(raw string) SortSpec {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SortSpec{Direction: Asc}
	}
	parts := strings.Split(raw, ";")
	spec := SortSpec{Field: strings.TrimSpace(parts[0]), Direction: Asc, Raw: raw}
	if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), string(Desc)) {
		spec.Direction = Desc
	}
	return spec
}

// IsZero reports that no sorting was requested.
func (s SortSpec) IsZero() bool {
	return s.Field == ""
}

// TagName returns name of the tag holding sort value. Jahia encodes it as the
// last "_" separated part of the field: "epfl_simple_main_bigButtonList_url"
// -> "url".
func (s SortSpec) TagName() string {
	if i := strings.LastIndexByte(s.Field, '_'); i >= 0 {
		return s.Field[i+1:]
	}
	return s.Field
}

// SortKey is a value items of SortGroup are ordered by. It is either a value
// taken from export (compared as text) or synthetic insertion index (compared
// as number).
type SortKey struct {
	value     string
	index     int
	synthetic bool
}

// ValueKey makes key from export value.
func ValueKey(v string) SortKey {
	return SortKey{value: v}
}

// IndexKey makes synthetic key from item index.
func IndexKey(i int) SortKey {
	return SortKey{index: i, synthetic: true}
}

// Synthetic reports whether key is an index.
func (k SortKey) Synthetic() bool {
	return k.synthetic
}

func (k SortKey) String() string {
	if k.synthetic {
		return strconv.Itoa(k.index)
	}
	return k.value
}

// Compare orders keys, synthetic keys go before value keys.
func (k SortKey) Compare(o SortKey) int {
	switch {
	case k.synthetic && o.synthetic:
		return cmp.Compare(k.index, o.index)
	case k.synthetic:
		return -1
	case o.synthetic:
		return 1
	}
	return strings.Compare(k.value, o.value)
}

type sortEntry[T any] struct {
	key  SortKey
	item T
}

// SortGroup collects items and returns them in order defined by their keys and
// group direction. Items added with the same key replace each other keeping
// position of the first one, items with equal keys are never reordered.
type SortGroup[T any] struct {
	Key  string
	Spec SortSpec

	entries []sortEntry[T]
	byKey   map[SortKey]int
}

// NewSortGroup creates empty group.
func NewSortGroup[T any](key string, spec SortSpec) *SortGroup[T] {
	if spec.Direction == "" {
		spec.Direction = Asc
	}
	return &SortGroup[T]{
		Key:   key,
		Spec:  spec,
		byKey: make(map[SortKey]int),
	}
}

// Add stores item under key.
func (g *SortGroup[T]) Add(item T, key SortKey) {
	if i, ok := g.byKey[key]; ok {
		g.entries[i].item = item
		return
	}
	g.byKey[key] = len(g.entries)
	g.entries = append(g.entries, sortEntry[T]{key: key, item: item})
}

// Len returns number of distinct keys in the group.
func (g *SortGroup[T]) Len() int {
	return len(g.entries)
}

// Sorted returns items in group order.
func (g *SortGroup[T]) Sorted() []T {
	entries := slices.Clone(g.entries)
	slices.SortStableFunc(entries, func(a, b sortEntry[T]) int {
		if g.Spec.Direction == Desc {
			return b.key.Compare(a.key)
		}
		return a.key.Compare(b.key)
	})
	items := make([]T, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.item)
	}
	return items
}

// Keys returns keys in group order.
func (g *SortGroup[T]) Keys() []SortKey {
	keys := make([]SortKey, 0, len(g.entries))
	for _, e := range g.entries {
		keys = append(keys, e.key)
	}
	slices.SortStableFunc(keys, func(a, b SortKey) int {
		if g.Spec.Direction == Desc {
			return b.Compare(a)
		}
		return a.Compare(b)
	})
	return keys
}

type groupID struct {
	key, spec string
}

// SortGroupCache keeps page level sort groups boxes share. Groups are
// identified by (group key, sort descriptor) pair.
type SortGroupCache struct {
	groups map[groupID]*SortGroup[*Box]
	order  []*SortGroup[*Box]
}

func NewSortGroupCache() *SortGroupCache {
	return &SortGroupCache{groups: make(map[groupID]*SortGroup[*Box])}
}

// GetOrCreate returns existing group or creates new one.
func (c *SortGroupCache) GetOrCreate(key, descriptor string) *SortGroup[*Box] {
	id := groupID{key: key, spec: descriptor}
	if g, ok := c.groups[id]; ok {
		return g
	}
	g := NewSortGroup[*Box](key, ParseSortSpec(descriptor))
	c.groups[id] = g
	c.order = append(c.order, g)
	return g
}

// Groups returns all groups in order of creation.
func (c *SortGroupCache) Groups() []*SortGroup[*Box] {
	return slices.Clone(c.order)
}
