package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	conv := cfg.Conversion
	if conv.Language != "fr" {
		t.Errorf("Language = %q, want fr", conv.Language)
	}
	if conv.PeopleBaseURL != "https://people.epfl.ch/cgi-bin/getProfiles?" {
		t.Errorf("PeopleBaseURL = %q", conv.PeopleBaseURL)
	}
	if conv.RSSDefaultItems != 5 {
		t.Errorf("RSSDefaultItems = %d, want 5", conv.RSSDefaultItems)
	}
	if conv.RSSRefresh != "12_hours" {
		t.Errorf("RSSRefresh = %q, want 12_hours", conv.RSSRefresh)
	}
	if got := strings.Join(conv.VideoHosts, ","); got != "youtube.com,youtu.be,player.vimeo.com" {
		t.Errorf("VideoHosts = %q", got)
	}
	if conv.Redirects.Resolve {
		t.Error("Redirect resolution must be off by default")
	}
	if conv.Redirects.Timeout != 10*time.Second {
		t.Errorf("Redirects.Timeout = %v, want 10s", conv.Redirects.Timeout)
	}
	if conv.OutputNameTemplate != "" {
		t.Errorf("OutputNameTemplate = %q, want empty", conv.OutputNameTemplate)
	}
	if conv.FailOnBoxError {
		t.Error("FailOnBoxError must be off by default")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("file level = %q, want none", cfg.Logging.FileLogger.Level)
	}
	if !strings.HasSuffix(cfg.Reporting.Destination, "jahia2wp-report.zip") {
		t.Errorf("Reporting.Destination = %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `version: 1
conversion:
  language: de
  rss_default_items: 10
  video_hosts: ["youtube.com"]
  redirects:
    resolve: true
    timeout: 3s
  output_name_template: '{{ .Site }}-{{ .Language }}'
logging:
  console:
    level: debug
  file:
    level: debug
    destination: `+filepath.Join(dir, "logs", "test.log")+`
    mode: append
reporting:
  destination: `+filepath.Join(dir, "report.zip")+`
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Conversion.Language != "de" {
		t.Errorf("Language = %q, want de", cfg.Conversion.Language)
	}
	if cfg.Conversion.RSSDefaultItems != 10 {
		t.Errorf("RSSDefaultItems = %d, want 10", cfg.Conversion.RSSDefaultItems)
	}
	if len(cfg.Conversion.VideoHosts) != 1 {
		t.Errorf("VideoHosts = %v, want single host", cfg.Conversion.VideoHosts)
	}
	if !cfg.Conversion.Redirects.Resolve || cfg.Conversion.Redirects.Timeout != 3*time.Second {
		t.Errorf("Redirects = %+v", cfg.Conversion.Redirects)
	}
	if cfg.Conversion.OutputNameTemplate != "{{ .Site }}-{{ .Language }}" {
		t.Errorf("OutputNameTemplate was changed: %q", cfg.Conversion.OutputNameTemplate)
	}
	// values absent from the file keep defaults
	if cfg.Conversion.RSSRefresh != "12_hours" {
		t.Errorf("RSSRefresh = %q, want default", cfg.Conversion.RSSRefresh)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("log directory was not created: %v", err)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\nconversion:\n  language: fr\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: value\n"},
		{"unknown nested field", "version: 1\nconversion:\n  fix_zip: true\n"},
		{"wrong version", "version: 2\n"},
		{"bad language", "version: 1\nconversion:\n  language: '???'\n"},
		{"bad people url", "version: 1\nconversion:\n  people_base_url: 'not a url'\n"},
		{"zero rss items", "version: 1\nconversion:\n  rss_default_items: 0\n"},
		{"empty video host", "version: 1\nconversion:\n  video_hosts: ['']\n"},
		{"bad log level", "version: 1\nlogging:\n  console:\n    level: verbose\n"},
		{"bad duration", "version: 1\nconversion:\n  redirects:\n    timeout: soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// options are opaque, just check they are accepted
	}
	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), `output_name_template: ""`) {
		t.Errorf("Prepared config lost output name template:\n%s", data)
	}
	if strings.Contains(string(data), "{{") {
		t.Errorf("Prepared config was not expanded:\n%s", data)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Conversion.OutputNameTemplate = "{{ .SourceFile }}"

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(data), "timeout: 10s") {
		t.Errorf("Duration is not dumped in readable form:\n%s", data)
	}

	back, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if back.Conversion.OutputNameTemplate != cfg.Conversion.OutputNameTemplate {
		t.Errorf("OutputNameTemplate = %q, want %q", back.Conversion.OutputNameTemplate, cfg.Conversion.OutputNameTemplate)
	}
	if back.Conversion.Redirects.Timeout != cfg.Conversion.Redirects.Timeout {
		t.Errorf("Timeout = %v, want %v", back.Conversion.Redirects.Timeout, cfg.Conversion.Redirects.Timeout)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		result, err := unmarshalConfig([]byte(`version: 1`), &Config{}, false)
		if err != nil {
			t.Fatalf("unmarshalConfig() error = %v", err)
		}
		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte(`invalid: [yaml`), &Config{}, false); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})

	t.Run("validation is skipped without processing", func(t *testing.T) {
		if _, err := unmarshalConfig([]byte(`version: 7`), &Config{}, false); err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}
	})
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"export_fr", "export_fr"},
		{"a/b\\c:d", "abcd"},
		{`what?"*<>|`, "what"},
		{"..hidden", "hidden"},
		{"tab\there", "tabhere"},
		{"Études", "Études"},
		{"///", "_bad_file_name_"},
		{"", "_bad_file_name_"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
