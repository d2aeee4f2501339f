package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReplaceTwitterTimelines replaces embedded Twitter timelines
// (<a class="twitter-timeline" href="...">) with [epfl_twitter url="..."]
// shortcode. Twitter widget loader script following the timeline is dropped as
// well.
func ReplaceTwitterTimelines(fragment string) string {
	if !strings.Contains(fragment, "twitter-timeline") {
		return fragment
	}

	var (
		b          strings.Builder
		replaced   bool
		inLink     bool
		wantScript bool
		script     *strings.Builder
		scriptSrc  string
		scriptText strings.Builder
	)
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())

		switch {
		case inLink:
			if tt == html.EndTagToken {
				if name, _ := z.TagName(); atom.Lookup(name) == atom.A {
					inLink = false
				}
			}
			continue

		case script != nil:
			script.WriteString(raw)
			if tt == html.TextToken {
				scriptText.Write(z.Text())
				continue
			}
			if tt == html.EndTagToken {
				if name, _ := z.TagName(); atom.Lookup(name) == atom.Script {
					if !isTwitterLoader(scriptSrc, scriptText.String()) {
						b.WriteString(script.String())
					}
					script = nil
				}
			}
			continue

		case tt == html.StartTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.A && hasClass(tok, "twitter-timeline") {
				if href, _ := attrValue(tok, "href"); href != "" {
					fmt.Fprintf(&b, "[epfl_twitter url=\"%s\"]\n", href)
					replaced, inLink, wantScript = true, true, true
					continue
				}
			}
			if tok.DataAtom == atom.Script && wantScript {
				wantScript = false
				script = &strings.Builder{}
				script.WriteString(raw)
				scriptSrc, _ = attrValue(tok, "src")
				scriptText.Reset()
				continue
			}
		}
		b.WriteString(raw)
	}
	if script != nil {
		b.WriteString(script.String())
	}

	if !replaced {
		return fragment
	}
	return strings.TrimSpace(b.String())
}

func isTwitterLoader(src, text string) bool {
	for _, s := range []string{src, text} {
		if strings.Contains(s, "twitter-wjs") || strings.Contains(s, "platform.twitter.com") {
			return true
		}
	}
	return false
}

func hasClass(tok html.Token, class string) bool {
	v, ok := attrValue(tok, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
