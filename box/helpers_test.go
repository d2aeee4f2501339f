package box

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"jahia2wp/jahia"
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

func newTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

// newObservedLogger records entries of level Warn and above.
func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

// testPages resolves page uuids to page ids, language is always "fr".
type testPages map[string]string

func (p testPages) PageByUUID(id string) (jahia.PageRef, bool) {
	pid, ok := p[id]
	if !ok {
		return jahia.PageRef{}, false
	}
	return jahia.PageRef{ID: pid, Language: "fr"}, true
}

type testRedirects map[string]string

func (r testRedirects) Resolve(url string) string {
	if final, ok := r[url]; ok {
		return final
	}
	return url
}

var testNow = time.Date(2020, time.June, 15, 10, 30, 0, 0, time.UTC)

func newTestScope(t *testing.T) (*Scope, *ShortcodeRegistry) {
	t.Helper()

	reg := NewShortcodeRegistry()
	s := NewScope(testPages{"p1": "42"}, reg, testRedirects{"https://old.example/x": "https://final.example/x"}, DefaultOptions())
	s.Now = func() time.Time { return testNow }
	return s, reg
}

// mustBox converts single box element expecting no error.
func mustBox(t *testing.T, s *Scope, xml string, multibox, inSidebar bool) *Box {
	t.Helper()

	b, err := New(s, mustElement(t, xml), multibox, inSidebar, newTestLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}
