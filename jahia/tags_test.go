package jahia

import (
	"slices"
	"testing"

	"github.com/beevik/etree"
)

func mustElement(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	if doc.Root() == nil {
		t.Fatalf("xml has no root element")
	}
	return doc.Root()
}

const linksXML = `<main xmlns:jahia="http://www.jahia.org/" xmlns:jcr="http://www.jcp.org/jcr/1.0" jcr:primaryType="epfl:linksBox">
	<boxTitle jahia:value="Links"/>
	<linksList>
		<links>
			<linkDesc jahia:value="first"/>
			<link><jahia:url jahia:value="https://example.com" jahia:title="Example"/></link>
		</links>
		<links>
			<link><jahia:link jahia:reference="abc" jahia:title="Home"/></link>
			<url jahia:value="plain"/>
		</links>
	</linksList>
</main>`

func TestElementsByTagMatchesFullName(t *testing.T) {
	el := mustElement(t, linksXML)

	if got := len(ElementsByTag(el, "links")); got != 2 {
		t.Fatalf("links count = %d, want 2", got)
	}
	// prefixed and unprefixed tags must not be confused
	if got := len(ElementsByTag(el, "url")); got != 1 {
		t.Fatalf("url count = %d, want 1", got)
	}
	if got := len(ElementsByTag(el, "jahia:url")); got != 1 {
		t.Fatalf("jahia:url count = %d, want 1", got)
	}
	// element itself is never included
	if got := len(ElementsByTag(el, "main")); got != 0 {
		t.Fatalf("main count = %d, want 0", got)
	}
}

func TestTagAttribute(t *testing.T) {
	el := mustElement(t, linksXML)

	tests := []struct {
		tag, attr, want string
	}{
		{"boxTitle", "jahia:value", "Links"},
		{"jahia:url", "jahia:title", "Example"},
		{"jahia:link", "jahia:reference", "abc"},
		{"linkDesc", "jahia:value", "first"},
		{"missing", "jahia:value", ""},
		{"boxTitle", "jahia:missing", ""},
	}
	for _, tt := range tests {
		if got := TagAttribute(el, tt.tag, tt.attr); got != tt.want {
			t.Errorf("TagAttribute(%q, %q) = %q, want %q", tt.tag, tt.attr, got, tt.want)
		}
	}
	if got := Attr(el, "jcr:primaryType"); got != "epfl:linksBox" {
		t.Errorf("Attr(jcr:primaryType) = %q", got)
	}
	if Attr(nil, "x") != "" || HasAttr(nil, "x") {
		t.Errorf("nil element must have no attributes")
	}
}

func TestTagAttributesSkipsElementsWithoutAttribute(t *testing.T) {
	el := mustElement(t, `<importHtmlList xmlns:jahia="http://www.jahia.org/">
		<url jahia:value="https://infoscience.epfl.ch/a"/>
		<url/>
		<nested><url jahia:value="https://infoscience.epfl.ch/b"/></nested>
	</importHtmlList>`)

	got := TagAttributes(el, "url", "jahia:value")
	want := []string{"https://infoscience.epfl.ch/a", "https://infoscience.epfl.ch/b"}
	if !slices.Equal(got, want) {
		t.Fatalf("TagAttributes() = %v, want %v", got, want)
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := map[string]string{
		"plain":              "plain",
		`say "hi"`:           "say &quot;hi&quot;",
		"[shortcode]":        "&#91;shortcode&#93;",
		"l'apostrophe & co.": "l'apostrophe & co.",
	}
	for in, want := range tests {
		if got := EscapeAttr(in); got != want {
			t.Errorf("EscapeAttr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResourceAttr(t *testing.T) {
	raw := `<jahia-resource bundle="epfl" key="epfl_peopleListContainer.template.default_list" default-value="default"/>`

	if got := ResourceAttr(raw, "key"); got != "epfl_peopleListContainer.template.default_list" {
		t.Errorf("key = %q", got)
	}
	if got := ResourceAttr(raw, "default-value"); got != "default" {
		t.Errorf("default-value = %q", got)
	}
	if got := ResourceAttr(raw, "absent"); got != "" {
		t.Errorf("absent = %q", got)
	}
	if got := ResourceAttr("no resource here", "key"); got != "" {
		t.Errorf("plain text = %q", got)
	}
	if got := ResourceAttr(`<p>x</p><jahia-resource key="k">`, "key"); got != "k" {
		t.Errorf("unclosed = %q", got)
	}
}
