// Package markup normalizes HTML fragments generated for WordPress.
//
// Fragments are rewritten on the token stream: everything not touched by a
// fixup is copied to the output byte for byte, so markup exported from Jahia
// keeps its original spelling. All fixups are idempotent.
package markup

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultVideoHosts lists hosts whose embedded players are replaced with video
// shortcode.
var DefaultVideoHosts = []string{"youtube.com", "youtu.be", "player.vimeo.com"}

// Process runs all fixups in their fixed order: video iframes, left aligned
// images, h3 anchors.
func Process(fragment string, videoHosts []string) string {
	if strings.TrimSpace(fragment) == "" {
		return fragment
	}
	fragment = FixVideoIframes(fragment, videoHosts)
	fragment = FixImageAlignLeft(fragment)
	fragment = AddHeadingIDs(fragment)
	return fragment
}

// FixVideoIframes replaces iframes pointing to known video hosts with
// [epfl_video url="..."] shortcode. Other iframes are left alone.
func FixVideoIframes(fragment string, hosts []string) string {
	if !containsFold(fragment, "<iframe") {
		return fragment
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	inPlayer := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if inPlayer {
			// iframe content is raw text up to the closing tag, drop all of it
			if tt == html.EndTagToken {
				if name, _ := z.TagName(); atom.Lookup(name) == atom.Iframe {
					inPlayer = false
				}
			}
			continue
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			raw := string(z.Raw())
			tok := z.Token()
			if tok.DataAtom == atom.Iframe {
				if src, ok := attrValue(tok, "src"); ok && IsVideoURL(src, hosts) {
					fmt.Fprintf(&b, `[epfl_video url="%s"]`, src)
					inPlayer = tt == html.StartTagToken
					continue
				}
			}
			b.WriteString(raw)
			continue
		}
		b.Write(z.Raw())
	}
	return b.String()
}

// IsVideoURL reports whether URL host is one of hosts or their sub-domain.
func IsVideoURL(src string, hosts []string) bool {
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, h := range hosts {
		h = strings.ToLower(h)
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// FixImageAlignLeft turns <img align="left"> into <img class="left">. Jahia
// did the same on client side.
func FixImageAlignLeft(fragment string) string {
	if !containsFold(fragment, "<img") {
		return fragment
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			raw := string(z.Raw())
			tok := z.Token()
			if align, _ := attrValue(tok, "align"); tok.DataAtom == atom.Img && align == "left" {
				attrs := make([]html.Attribute, 0, len(tok.Attr))
				for _, a := range tok.Attr {
					if a.Key != "align" && a.Key != "class" {
						attrs = append(attrs, a)
					}
				}
				tok.Attr = append(attrs, html.Attribute{Key: "class", Val: "left"})
				b.WriteString(renderTag(tok, tt == html.SelfClosingTagToken))
				continue
			}
			b.WriteString(raw)
			continue
		}
		b.Write(z.Raw())
	}
	return b.String()
}

// slug spells out some symbols in words and keeps underscores, heading ids
// collapse every non-alphanumeric rune into hyphen instead.
var headingSymbols = strings.NewReplacer("&", "-", "@", "-", "_", "-")

func headingID(text string) string {
	return slug.Make(headingSymbols.Replace(strings.TrimSpace(text)))
}

// AddHeadingIDs sets id of every <h3> without one to the slug of its text, so
// headings could be linked to. Equal titles produce equal ids.
func AddHeadingIDs(fragment string) string {
	if !containsFold(fragment, "<h3") {
		return fragment
	}

	var (
		b       strings.Builder
		heading *html.Token
		openRaw string
		inner   strings.Builder // raw markup inside heading being collected
		text    strings.Builder
	)
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		// Text and Token modify tokenizer buffer, raw must be taken first
		raw := string(z.Raw())

		if heading == nil {
			if tt == html.StartTagToken {
				tok := z.Token()
				if _, hasID := attrValue(tok, "id"); tok.DataAtom == atom.H3 && !hasID {
					heading, openRaw = &tok, raw
					inner.Reset()
					text.Reset()
					continue
				}
			}
			b.WriteString(raw)
			continue
		}

		switch tt {
		case html.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.H3 {
				if id := headingID(text.String()); id != "" {
					heading.Attr = append(heading.Attr, html.Attribute{Key: "id", Val: id})
					b.WriteString(renderTag(*heading, false))
				} else {
					b.WriteString(openRaw)
				}
				b.WriteString(inner.String())
				b.WriteString(raw)
				heading = nil
				continue
			}
		case html.TextToken:
			text.Write(z.Text())
		}
		inner.WriteString(raw)
	}
	if heading != nil {
		// unterminated heading, keep as is
		b.WriteString(openRaw)
		b.WriteString(inner.String())
	}
	return b.String()
}

func attrValue(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// renderTag serializes start tag with normalized attribute quoting.
func renderTag(tok html.Token, selfClosing bool) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tok.Data)
	for _, a := range tok.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteString(" /")
	}
	b.WriteByte('>')
	return b.String()
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}
