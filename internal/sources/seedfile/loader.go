package seedfile

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader reads and parses a seed bookmarks YAML file
type Loader struct {
	filePath string
}

// NewLoader creates a loader for filePath
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the seed file
func (l *Loader) Load() (Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = stripTemplateVariables(data)

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return config, nil
}

// stripTemplateVariables blanks out {{...}} placeholders left by templating tools.
// Example: {{SHELF_VAR_WIKI_URL}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
