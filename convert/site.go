package convert

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"jahia2wp/box"
	"jahia2wp/jahia"
)

// siteOptions are inputs of a page pass which do not come from export.
type siteOptions struct {
	Box       box.Options
	Redirects box.RedirectResolver
	Now       func() time.Time
	// FailOnBoxError stops the pass on first box which could not be
	// converted.
	FailOnBoxError bool
}

// convertSite runs page pass over all pages of the site. Boxes are converted
// in document order using one scope per page, shortcodes are registered for
// the whole site. Boxes which could not be converted are left out, their
// errors are returned combined along with the document.
func convertSite(site *jahia.Site, opts siteOptions, log *zap.Logger) (*Document, *box.ShortcodeRegistry, error) {
	doc := newDocument()
	doc.Site, doc.Language = site.Name, site.Language

	registry := box.NewShortcodeRegistry()

	var errs error
	for _, page := range site.Pages {
		plog := log.With(zap.String("pid", page.PID))

		scope := box.NewScope(site, registry, opts.Redirects, opts.Box)
		if opts.Now != nil {
			scope.Now = opts.Now
		}

		result := PageResult{UUID: page.UUID, PID: page.PID, Title: page.Title}
		for _, el := range page.Boxes() {
			b, err := box.New(scope, el.Element, el.Multibox, el.Sidebar, plog)
			if err != nil {
				err = fmt.Errorf("page %s: %w", page.PID, err)
				if opts.FailOnBoxError {
					return nil, nil, err
				}
				plog.Error("Box skipped", zap.Error(err))
				doc.Failures = append(doc.Failures, err.Error())
				errs = multierr.Append(errs, err)
				continue
			}
			if b.Type == "" {
				// already reported, nothing to render
				continue
			}
			doc.addBox(&result, b)
		}
		doc.addSortGroups(&result, scope.SortGroups.Groups())
		doc.Pages = append(doc.Pages, result)

		plog.Debug("Page converted", zap.Int("boxes", len(result.Boxes)), zap.Int("sort groups", len(result.SortGroups)))
	}
	doc.addShortcodes(registry.Registrations())
	return doc, registry, errs
}

// dumpSite prepares readable description of conversion for debug report.
func dumpSite(site *jahia.Site, registry *box.ShortcodeRegistry, doc *Document) []byte {
	var buf strings.Builder
	buf.WriteString(site.String())
	buf.WriteString("\n")
	buf.WriteString(registry.String())
	for _, b := range doc.boxes {
		buf.WriteString("\n")
		buf.WriteString(doc.boxIDs[b])
		buf.WriteString(": ")
		buf.WriteString(b.Dump())
	}
	for _, f := range doc.Failures {
		buf.WriteString("\nFailed: ")
		buf.WriteString(f)
	}
	buf.WriteString("\n")
	return []byte(buf.String())
}
