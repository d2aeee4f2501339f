package box

import (
	"net/url"
	"strings"

	"jahia2wp/common"
	"jahia2wp/jahia"
)

const peopleShortcode = "epfl_people"

// Jahia template keys which do not map to WordPress templates directly.
var peopleTemplates = map[string]struct {
	template   string
	structured bool
}{
	"epfl_peopleListContainer.template.default_bloc":        {"default_struct_bloc", true},
	"epfl_peopleListContainer.template.default_bloc_simple": {"default_bloc", false},
	"epfl_peopleListContainer.template.default_list":        {"default_list", false},
}

// queryParam is single ordered query parameter, people service expects
// parameters in the same order Jahia used.
type queryParam struct {
	key, value string
}

func encodeQuery(params []queryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.key)+"="+url.QueryEscape(p.value))
	}
	return strings.Join(parts, "&")
}

// peopleList builds query to people service. Language of the target page is
// not known here and is left for exporter to fill.
func (t *transformer) peopleList() error {
	t.box.ShortcodeName = peopleShortcode

	templateHTML := value(t.el, "template")
	if templateHTML == "" {
		t.log.Warn("People list has no HTML template")
		t.box.Content = "[epfl_people error: no HTML template set]"
		return nil
	}

	params := []queryParam{{"unit", value(t.el, "query")}}
	if function := value(t.el, "function"); function != "" {
		params = append(params, queryParam{"function", function})
	}

	key := jahia.ResourceAttr(templateHTML, "key")
	template := key
	if known, ok := peopleTemplates[key]; ok {
		template = known.template
		if known.structured {
			params = append(params, queryParam{"struct", "1"})
		}
	}
	params = append(params,
		queryParam{"tmpl", "WP_" + template},
		queryParam{"lang", common.LanguagePlaceholder.String()},
	)

	t.box.Content = newShortcode(peopleShortcode).
		attr("url", t.scope.Options.PeopleBaseURL+encodeQuery(params)).
		selfClosing()
	t.box.Deferred = append(t.box.Deferred, common.LanguageDeferred(peopleShortcode))
	return nil
}

// include converts box showing remote content. Well known EPFL services have
// their own shortcodes.
func (t *transformer) include() error {
	src := value(t.el, "url")

	switch {
	case t.isPeopleURL(src):
		t.box.ShortcodeName = peopleShortcode
		if !strings.Contains(src, "tmpl=WP_") {
			src = strings.Replace(src, "tmpl=", "tmpl=WP_", 1)
		}
		t.box.Content = newShortcode(peopleShortcode).attr("url", src).selfClosing()
		return nil

	case strings.Contains(src, "://infoscience.epfl.ch/"):
		return t.infoscience()

	case strings.Contains(src, "://actu.epfl.ch/"):
		t.box.ShortcodeName = newsShortcode
		t.box.Content = parseNewsURL(src, t.log).shortcode().selfClosing()
		return nil
	}

	t.box.Content = newShortcode("remote_content").attr("url", t.scope.Redirects.Resolve(src)).open()
	return nil
}

// isPeopleURL compares scheme-less prefix, people service is reachable over
// both http and https.
func (t *transformer) isPeopleURL(src string) bool {
	base := t.scope.Options.PeopleBaseURL
	if _, rest, ok := strings.Cut(base, "://"); ok {
		base = "://" + rest
	}
	return base != "" && strings.Contains(src, base)
}
