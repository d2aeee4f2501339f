package state

import (
	"time"

	"github.com/google/uuid"

	"jahia2wp/box"
	"jahia2wp/jahia"
)

// newLocalEnv creates a new LocalEnv instance with default values.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:     time.Now(),
		RunID:     uuid.NewString(),
		Now:       time.Now,
		Redirects: jahia.NoRedirects{},
	}
}

// PrepareRedirects selects redirect resolver according to configuration.
// Must be called after configuration and logger are set.
func (e *LocalEnv) PrepareRedirects() {
	if e.Cfg == nil || !e.Cfg.Conversion.Redirects.Resolve {
		e.Redirects = jahia.NoRedirects{}
		return
	}
	e.Redirects = jahia.NewHTTPRedirects(e.Cfg.Conversion.Redirects.Timeout, e.Log.Named("redirects"))
}

// BoxOptions returns conversion settings for box transformers, defaults are
// used for anything not configured.
func (e *LocalEnv) BoxOptions() box.Options {
	opts := box.DefaultOptions()
	if e.Cfg == nil {
		return opts
	}
	conv := e.Cfg.Conversion
	if conv.PeopleBaseURL != "" {
		opts.PeopleBaseURL = conv.PeopleBaseURL
	}
	if conv.RSSDefaultItems > 0 {
		opts.RSSDefaultItems = conv.RSSDefaultItems
	}
	if conv.RSSRefresh != "" {
		opts.RSSRefresh = conv.RSSRefresh
	}
	if conv.VideoHosts != nil {
		opts.VideoHosts = conv.VideoHosts
	}
	return opts
}
