// Package jahia gives access to Jahia XML export: reading, DOM helpers, page
// registry and resolution of external references.
package jahia

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/language"
)

// ReadExport reads and parses Jahia XML export. Exports produced by old Jahia
// versions are not always well formed, so parsing is permissive.
func ReadExport(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read export: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("export has no root element")
	}
	return doc, nil
}

// ExportLanguage returns language encoded in export file name
// ("export_fr.xml" -> "fr"), empty string when name does not follow Jahia
// convention.
func ExportLanguage(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if !strings.HasPrefix(base, "export_") || !strings.EqualFold(path.Ext(base), ".xml") {
		return ""
	}
	return NormalizeLanguage(strings.TrimSuffix(strings.TrimPrefix(base, "export_"), path.Ext(base)))
}

// IsExportName reports whether file name looks like Jahia per language export.
func IsExportName(name string) bool {
	return ExportLanguage(name) != ""
}

// NormalizeLanguage reduces language tag to its ISO 639-1 base
// ("fr_CH" -> "fr"). Unparsable values are returned lowercased as is.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}
