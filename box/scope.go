package box

import (
	"time"

	"jahia2wp/jahia"
	"jahia2wp/markup"
)

// PageResolver finds pages referenced by uuid.
type PageResolver interface {
	PageByUUID(id string) (jahia.PageRef, bool)
}

// RedirectResolver returns final location of remote URL.
type RedirectResolver interface {
	Resolve(url string) string
}

// Options are conversion settings transformers depend on.
type Options struct {
	PeopleBaseURL   string
	RSSDefaultItems int
	RSSRefresh      string
	VideoHosts      []string
}

// DefaultOptions returns settings matching what Jahia did.
func DefaultOptions() Options {
	return Options{
		PeopleBaseURL:   "https://people.epfl.ch/cgi-bin/getProfiles?",
		RSSDefaultItems: 5,
		RSSRefresh:      "12_hours",
		VideoHosts:      markup.DefaultVideoHosts,
	}
}

// Scope is state shared by all boxes converted during a single page pass.
// Boxes must be created in document order, sort groups depend on it.
// NOTE: not safe for concurrent use.
type Scope struct {
	Pages      PageResolver
	Shortcodes ShortcodeRegistrar
	Redirects  RedirectResolver
	SortGroups *SortGroupCache
	Options    Options
	// Now returns processing time, scheduler uses it as default start date.
	Now func() time.Time
}

// NewScope creates scope for a page pass. Redirects may be nil, URLs are used
// as is then.
func NewScope(pages PageResolver, shortcodes ShortcodeRegistrar, redirects RedirectResolver, opts Options) *Scope {
	if redirects == nil {
		redirects = jahia.NoRedirects{}
	}
	return &Scope{
		Pages:      pages,
		Shortcodes: shortcodes,
		Redirects:  redirects,
		SortGroups: NewSortGroupCache(),
		Options:    opts,
		Now:        time.Now,
	}
}

func (s *Scope) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().Format(time.DateOnly)
}

func (s *Scope) page(id string) (jahia.PageRef, bool) {
	if s.Pages == nil || id == "" {
		return jahia.PageRef{}, false
	}
	return s.Pages.PageByUUID(id)
}
