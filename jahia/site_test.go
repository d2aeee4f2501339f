package jahia

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const siteXML = `<?xml version="1.0" encoding="UTF-8"?>
<content xmlns:jahia="http://www.jahia.org/" xmlns:jcr="http://www.jcp.org/jcr/1.0">
	<jahia:page jcr:uuid="6F9619FF-8B86-D011-B42D-00C04FC964FF" jahia:pid="1" jahia:title="Home">
		<mainContentList>
			<main jcr:primaryType="epfl:textBox"><boxTitle jahia:value="One"/></main>
			<extra jcr:primaryType="epfl:textBox"><boxTitle jahia:value="Side"/></extra>
			<main jcr:primaryType="epfl:linksBox">
				<comboListList><comboList/></comboListList>
			</main>
		</mainContentList>
		<jahia:page jcr:uuid="11111111-2222-3333-4444-555555555555" jahia:pid="12" jahia:title="Child">
			<main jcr:primaryType="epfl:textBox"/>
		</jahia:page>
	</jahia:page>
	<jahia:page jahia:pid="99" jahia:title="Orphan"/>
	<jahia:page jcr:uuid="11111111-2222-3333-4444-555555555555" jahia:pid="13" jahia:title="Duplicate"/>
</content>`

func newTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func mustSite(t *testing.T) *Site {
	t.Helper()

	doc, err := ReadExport(strings.NewReader(siteXML))
	if err != nil {
		t.Fatalf("ReadExport() error = %v", err)
	}
	site, err := LoadSite(doc, "test", "fr_CH", newTestLogger(t))
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}
	return site
}

func TestLoadSite(t *testing.T) {
	site := mustSite(t)

	if site.Language != "fr" {
		t.Errorf("Language = %q, want fr", site.Language)
	}
	if len(site.Pages) != 4 {
		t.Fatalf("pages = %d, want 4", len(site.Pages))
	}

	tests := []struct {
		id     string
		wantOK bool
		want   string
	}{
		{"6f9619ff-8b86-d011-b42d-00c04fc964ff", true, "/page-1-fr.html"},
		{"{6F9619FF-8B86-D011-B42D-00C04FC964FF}", true, "/page-1-fr.html"},
		{"11111111-2222-3333-4444-555555555555", true, "/page-12-fr.html"},
		{"deleted-page", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		ref, ok := site.PageByUUID(tt.id)
		if ok != tt.wantOK {
			t.Errorf("PageByUUID(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			continue
		}
		if ok && ref.URL() != tt.want {
			t.Errorf("PageByUUID(%q) URL = %q, want %q", tt.id, ref.URL(), tt.want)
		}
	}

	var nilSite *Site
	if _, ok := nilSite.PageByUUID("x"); ok {
		t.Errorf("nil site must not resolve pages")
	}
}

func TestLoadSiteRejectsEmptyDocument(t *testing.T) {
	if _, err := LoadSite(nil, "x", "en", newTestLogger(t)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPageBoxes(t *testing.T) {
	site := mustSite(t)

	boxes := site.Pages[0].Boxes()
	if len(boxes) != 3 {
		t.Fatalf("boxes = %d, want 3", len(boxes))
	}
	want := []struct {
		sidebar, multibox bool
		typ               string
	}{
		{false, false, "epfl:textBox"},
		{true, false, "epfl:textBox"},
		{false, true, "epfl:linksBox"},
	}
	for i, w := range want {
		b := boxes[i]
		if b.Sidebar != w.sidebar || b.Multibox != w.multibox || Attr(b.Element, "jcr:primaryType") != w.typ {
			t.Errorf("box %d = {sidebar:%v multibox:%v type:%s}, want %+v", i, b.Sidebar, b.Multibox, Attr(b.Element, "jcr:primaryType"), w)
		}
	}

	if got := len(site.Pages[1].Boxes()); got != 1 {
		t.Errorf("child page boxes = %d, want 1", got)
	}
}

func TestSiteString(t *testing.T) {
	site := mustSite(t)

	dump := site.String()
	for _, want := range []string{`Site "test" lang[fr] pages[4]`, "Page[1]", "Page[12]", "Page[99]"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump does not contain %q:\n%s", want, dump)
		}
	}
	if strings.Index(dump, "Page[12]") > strings.Index(dump, "Page[99]") {
		t.Errorf("pages are not naturally sorted:\n%s", dump)
	}
}
