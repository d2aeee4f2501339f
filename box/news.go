package box

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"jahia2wp/jahia"
)

const (
	newsShortcode    = "epfl_news"
	mementoShortcode = "epfl_memento"
	buttonsContainer = "epfl_buttons_container"
)

// Jahia accepted french names of languages.
var newsLanguages = map[string]string{
	"ang": "en",
	"fra": "fr",
}

// queryValues returns non empty values of parameter, empty parameters are
// treated as absent.
func queryValues(q url.Values, key string) []string {
	var vals []string
	for _, v := range q[key] {
		if v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}

func queryValue(q url.Values, key string) (string, bool) {
	if vals := queryValues(q, key); len(vals) > 0 {
		return vals[0], true
	}
	return "", false
}

func parseQuery(raw string) url.Values {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}

// newsParams are parameters of actu.epfl.ch web service call.
type newsParams struct {
	Channel  string
	Lang     string
	Template string
	Category string
	Themes   []string
	Projects []string
	// Stickers is "yes" unless service was asked to hide them.
	Stickers string
}

func parseNewsURL(raw string, log *zap.Logger) newsParams {
	q := parseQuery(raw)

	var p newsParams
	var ok bool
	if p.Channel, ok = queryValue(q, "channel"); !ok {
		log.Error("News shortcode channel ID is missing", zap.String("url", raw))
	}
	if p.Lang, ok = queryValue(q, "lang"); !ok {
		log.Warn("News shortcode lang is missing", zap.String("url", raw))
	} else if iso, alias := newsLanguages[p.Lang]; alias {
		p.Lang = iso
	}
	if p.Template, ok = queryValue(q, "template"); !ok {
		log.Warn("News shortcode template is missing", zap.String("url", raw))
	}
	p.Category, _ = queryValue(q, "category")
	p.Themes = append(queryValues(q, "theme"), queryValues(q, "themes")...)
	p.Projects = queryValues(q, "project")

	// actu.epfl.ch hides stickers when parameter is present, whatever its value
	p.Stickers = "yes"
	if _, ok := queryValue(q, "sticker"); ok {
		p.Stickers = "no"
	}
	return p
}

func (p newsParams) shortcode() *shortcode {
	return newShortcode(newsShortcode).
		attr("channel", p.Channel).
		attr("lang", p.Lang).
		attr("template", p.Template).
		optAttr("category", p.Category).
		optAttr("themes", strings.Join(p.Themes, ",")).
		optAttr("stickers", p.Stickers).
		optAttr("projects", strings.Join(p.Projects, ","))
}

// actu converts news box. Optional "more" and "rss" links are rendered as
// buttons below the news.
func (t *transformer) actu() error {
	t.box.ShortcodeName = newsShortcode

	// snippet boxes may be nested into actu box and have their own urls
	list := jahia.FirstByTag(t.el, "actuListList")
	if list == nil {
		return fmt.Errorf("%w: actuListList", ErrMissingContainer)
	}

	var b strings.Builder
	if !t.box.InSidebar {
		b.WriteString(t.titleHeading())
	}
	b.WriteString(parseNewsURL(value(list, "url"), t.log).shortcode().selfClosing())

	var buttons []string
	for _, tag := range []string{"moreUrl", "rssUrl"} {
		link := jahia.FirstByTag(list, tag)
		href := jahia.TagAttribute(link, "jahia:url", "jahia:value")
		title := jahia.TagAttribute(link, "jahia:url", "jahia:title")
		if href != "" && title != "" {
			buttons = append(buttons, button{kind: smallButton, url: href, altText: title, text: title, key: "forward"}.shortcode())
		}
	}
	if len(buttons) > 0 {
		b.WriteString(newShortcode(buttonsContainer).wrap(strings.Join(buttons, "")))
	}

	t.box.Content = b.String()
	return nil
}

// memento period code for upcoming events, any other code means past ones.
const mementoUpcoming = "2"

// memento converts events box.
func (t *transformer) memento() error {
	t.box.ShortcodeName = mementoShortcode

	raw := value(t.el, "url")
	q := parseQuery(raw)

	name, ok := queryValue(q, "memento")
	if !ok {
		t.log.Error("Memento shortcode event ID is missing", zap.String("url", raw))
	}
	lang, ok := queryValue(q, "lang")
	if !ok {
		t.log.Error("Memento shortcode lang is missing", zap.String("url", raw))
	}
	template, ok := queryValue(q, "template")
	if !ok {
		t.log.Error("Memento shortcode template is missing", zap.String("url", raw))
	}

	var period string
	if code, ok := queryValue(q, "period"); ok {
		period = "past"
		if code == mementoUpcoming {
			period = "upcoming"
		}
	}
	color, _ := queryValue(q, "color")
	keyword, _ := queryValue(q, "filters")
	category, _ := queryValue(q, "category")
	reorder, _ := queryValue(q, "reorder")

	var b strings.Builder
	if heading := t.titleHeading(); heading != "" {
		b.WriteString(heading + " ")
	}
	b.WriteString(newShortcode(mementoShortcode).
		attr("memento", name).
		attr("lang", lang).
		attr("template", template).
		optAttr("period", period).
		optAttr("color", color).
		optAttr("keyword", keyword).
		optAttr("category", category).
		optAttr("reorder", reorder).
		selfClosing())

	t.box.Content = b.String()
	return nil
}
