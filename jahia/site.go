package jahia

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"jahia2wp/utils/debug"
)

const (
	tagPage  = "jahia:page"
	tagMain  = "main"
	tagExtra = "extra"
)

// PageRef is what boxes need to know about a linked page to synthesize Jahia
// like URL "/page-<ID>-<Language>.html" exporter later maps to WordPress.
type PageRef struct {
	ID       string
	Language string
}

// URL returns Jahia like page URL.
func (r PageRef) URL() string {
	return fmt.Sprintf("/page-%s-%s.html", r.ID, r.Language)
}

// BoxElement is a DOM element of a single box on a page.
type BoxElement struct {
	Element *etree.Element
	// Sidebar boxes come from <extra> elements.
	Sidebar bool
	// Multibox boxes are composed of several <comboList> entries.
	Multibox bool
}

// Page is a single Jahia page from export.
type Page struct {
	UUID    string
	PID     string
	Title   string
	Element *etree.Element
}

// Boxes returns box elements of the page in document order. Boxes of sub
// pages (nested jahia:page elements) and boxes nested into other boxes are
// not included.
func (p *Page) Boxes() []BoxElement {
	var boxes []BoxElement
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, c := range el.ChildElements() {
			switch c.FullTag() {
			case tagPage:
				continue
			case tagMain, tagExtra:
				boxes = append(boxes, BoxElement{
					Element:  c,
					Sidebar:  c.FullTag() == tagExtra,
					Multibox: FirstByTag(c, "comboListList") != nil,
				})
				continue
			}
			walk(c)
		}
	}
	walk(p.Element)
	return boxes
}

// Site is a registry of all pages found in a single language export.
type Site struct {
	Name     string
	Language string
	Pages    []*Page

	byUUID map[string]*Page
}

// LoadSite registers all pages of the export in document order.
func LoadSite(doc *etree.Document, name, lang string, log *zap.Logger) (*Site, error) {
	if doc == nil || doc.Root() == nil {
		return nil, fmt.Errorf("empty export document")
	}

	site := &Site{
		Name:     name,
		Language: NormalizeLanguage(lang),
		byUUID:   make(map[string]*Page),
	}

	var pages []*etree.Element
	if doc.Root().FullTag() == tagPage {
		pages = append(pages, doc.Root())
	}
	pages = append(pages, ElementsByTag(doc.Root(), tagPage)...)

	for _, el := range pages {
		page := &Page{
			UUID:    Attr(el, "jcr:uuid"),
			PID:     Attr(el, "jahia:pid"),
			Title:   Attr(el, "jahia:title"),
			Element: el,
		}
		if page.UUID == "" {
			log.Warn("Page has no uuid, it could not be referenced", zap.String("pid", page.PID), zap.String("title", page.Title))
		} else if old, exists := site.byUUID[canonicalUUID(page.UUID)]; exists {
			log.Warn("Duplicate page uuid, keeping first", zap.String("uuid", page.UUID), zap.String("kept", old.PID), zap.String("ignored", page.PID))
		} else {
			site.byUUID[canonicalUUID(page.UUID)] = page
		}
		site.Pages = append(site.Pages, page)
	}

	log.Debug("Site pages registered", zap.String("site", name), zap.String("lang", site.Language), zap.Int("pages", len(site.Pages)))
	return site, nil
}

// PageByUUID resolves page reference, unknown pages (deleted in Jahia but still
// linked) are reported as not found.
func (s *Site) PageByUUID(id string) (PageRef, bool) {
	if s == nil {
		return PageRef{}, false
	}
	page, ok := s.byUUID[canonicalUUID(id)]
	if !ok {
		return PageRef{}, false
	}
	return PageRef{ID: page.PID, Language: s.Language}, true
}

// canonicalUUID makes registry keys insensitive to uuid spelling (case,
// braces, urn prefix).
func canonicalUUID(id string) string {
	id = strings.TrimSpace(id)
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// String returns readable dump of the registry for debug reports.
func (s *Site) String() string {
	if s == nil {
		return "<nil Site>"
	}
	tw := debug.NewTreeWriter()
	tw.Line(0, "Site %q lang[%s] pages[%d]", s.Name, s.Language, len(s.Pages))

	byPID := make(map[string]*Page, len(s.Pages))
	for _, p := range s.Pages {
		byPID[p.PID] = p
	}
	pids := slices.Collect(maps.Keys(byPID))
	sort.Sort(natural.StringSlice(pids))
	for _, pid := range pids {
		p := byPID[pid]
		tw.Line(1, "Page[%s] uuid[%s] boxes[%d]", pid, p.UUID, len(p.Boxes()))
		tw.TextBlock(2, "title", p.Title)
	}
	return tw.String()
}
