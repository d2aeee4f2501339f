package jahia

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NoRedirects leaves URLs as they are, used when conversion must stay offline.
type NoRedirects struct{}

// Resolve returns url unchanged.
func (NoRedirects) Resolve(url string) string {
	return url
}

// HTTPRedirects follows HTTP redirects to find final location of remote
// content included in pages. Results are remembered for the lifetime of the
// resolver, failures resolve to the original URL.
// NOTE: not to be used concurrently.
type HTTPRedirects struct {
	client *http.Client
	known  map[string]string
	log    *zap.Logger
}

// NewHTTPRedirects creates resolver with given per request timeout.
func NewHTTPRedirects(timeout time.Duration, log *zap.Logger) *HTTPRedirects {
	return &HTTPRedirects{
		client: &http.Client{Timeout: timeout},
		known:  make(map[string]string),
		log:    log,
	}
}

// Resolve returns URL the original one eventually redirects to.
func (r *HTTPRedirects) Resolve(url string) string {
	if url == "" {
		return url
	}
	if final, ok := r.known[url]; ok {
		return final
	}

	final := url
	resp, err := r.client.Get(url)
	if err != nil {
		r.log.Warn("Unable to resolve redirects, using original URL", zap.String("url", url), zap.Error(err))
	} else {
		resp.Body.Close()
		if resp.Request != nil && resp.Request.URL != nil {
			final = resp.Request.URL.String()
		}
		if final != url {
			r.log.Debug("URL redirected", zap.String("from", url), zap.String("to", final))
		}
	}
	r.known[url] = final
	return final
}
