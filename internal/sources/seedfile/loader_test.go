package seedfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeed(t, `---
- name: Development
  color: "#3b82f6"
  bookmarks:
    - title: Go
      url: https://go.dev
      description: The Go programming language
    - url: https://github.com
- bookmarks:
    - url: https://news.ycombinator.com
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config) != 2 {
		t.Fatalf("Load() returned %d categories, want 2", len(config))
	}
	if config[0].Name != "Development" || len(config[0].Bookmarks) != 2 {
		t.Errorf("first category = %+v", config[0])
	}
	if config[0].Bookmarks[0].Description != "The Go programming language" {
		t.Errorf("description = %q", config[0].Bookmarks[0].Description)
	}
	if config[1].Name != "" {
		t.Errorf("second category should be unnamed, got %q", config[1].Name)
	}
}

func TestLoaderLoadWithTemplateVariables(t *testing.T) {
	path := writeSeed(t, `---
- name: Internal
  bookmarks:
    - title: Wiki
      url: {{SHELF_VAR_WIKI_URL}}
`)

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := config[0].Bookmarks[0].URL; got != "" {
		t.Errorf("template variable should be blanked, got %q", got)
	}
}

func TestLoaderLoadErrors(t *testing.T) {
	if _, err := NewLoader("/nonexistent/path/bookmarks.yaml").Load(); err == nil {
		t.Error("Load() with non-existent file should return error")
	}

	path := writeSeed(t, "name: [unterminated")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}

func TestStripTemplateVariables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single template variable", input: "url: {{SHELF_VAR_URL}}", expected: `url: ""`},
		{name: "two variables", input: "a: {{A}} b: {{B}}", expected: `a: "" b: ""`},
		{name: "no template variables", input: "plain text", expected: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := string(stripTemplateVariables([]byte(tt.input))); result != tt.expected {
				t.Errorf("stripTemplateVariables() = %q, want %q", result, tt.expected)
			}
		})
	}
}
