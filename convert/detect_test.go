package convert

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "site.zip")
	writeZip(t, good, map[string][]byte{"export_fr.xml": []byte("<content/>")})
	upper := filepath.Join(dir, "OTHER.ZIP")
	writeZip(t, upper, map[string][]byte{"export_fr.xml": []byte("<content/>")})
	renamed := filepath.Join(dir, "site.bin")
	writeZip(t, renamed, map[string][]byte{"export_fr.xml": []byte("<content/>")})
	fake := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(fake, []byte("not a real zip file"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{good, true},
		{upper, true},
		{renamed, false},
		{fake, false},
	}
	for _, tt := range tests {
		got, err := isArchiveFile(tt.path)
		if err != nil {
			t.Errorf("isArchiveFile(%s) error = %v", filepath.Base(tt.path), err)
		}
		if got != tt.want {
			t.Errorf("isArchiveFile(%s) = %v, want %v", filepath.Base(tt.path), got, tt.want)
		}
	}

	if _, err := isArchiveFile(filepath.Join(dir, "absent.zip")); err == nil {
		t.Error("expected error for absent file")
	}
}

func TestIsExportFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"export_fr.xml": []byte(`<?xml version="1.0"?><content/>`),
		"spaces.xml":    []byte("\n\t  <content/>"),
		"bom.xml":       append([]byte{0xEF, 0xBB, 0xBF}, "<content/>"...),
		"utf16.xml":     {0xFF, 0xFE, '<', 0},
		"text.xml":      []byte("hello"),
		"empty.xml":     nil,
		"export_fr.txt": []byte("<content/>"),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		want bool
	}{
		{"export_fr.xml", true},
		{"spaces.xml", true},
		{"bom.xml", true},
		{"utf16.xml", true},
		{"text.xml", false},
		{"empty.xml", false},
		{"export_fr.txt", false},
	}
	for _, tt := range tests {
		got, err := isExportFile(filepath.Join(dir, tt.name))
		if err != nil {
			t.Errorf("isExportFile(%s) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("isExportFile(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
