package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer r.Close()

	files := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}

	stored := filepath.Join(dir, "result.yaml")
	if err := os.WriteFile(stored, []byte("pages: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("result.yaml", stored)
	r.Store("missing.log", filepath.Join(dir, "missing.log"))
	r.StoreData("site/export_fr.txt", []byte("first"))
	r.StoreData("site/export_fr.txt", []byte("second"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["result.yaml"] != "pages: []\n" {
		t.Errorf("result.yaml = %q", files["result.yaml"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must not be archived")
	}
	if files["site/export_fr.txt"] != "first" {
		t.Errorf("site/export_fr.txt = %q, want first", files["site/export_fr.txt"])
	}
	var versioned int
	for name, data := range files {
		if strings.HasPrefix(name, "site/export_fr.txt-") && data == "second" {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("repeated data was not versioned: %v", files)
	}
	manifest := files["MANIFEST"]
	for _, want := range []string{"result.yaml", "missing.log", "<data>"} {
		if !strings.Contains(manifest, want) {
			t.Errorf("MANIFEST does not mention %q:\n%s", want, manifest)
		}
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "/tmp/a.log")
	r.Store("final.log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic when the same name is stored for another file")
		}
	}()
	r.Store("final.log", "/tmp/b.log")
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("c", nil)
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
