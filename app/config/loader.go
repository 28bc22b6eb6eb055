package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openacademic/cfp-watch/app/sites"
)

// Loader handles loading and validation of the journal list.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given journals.yaml path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, validates and defaults the configured journal list. Order in
// the file is the processing order.
func (l *Loader) Load() ([]Journal, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journals file: %w", err)
	}

	var file JournalsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	seen := make(map[string]bool, len(file.Journals))
	for i := range file.Journals {
		l.setDefaults(&file.Journals[i])

		if err := l.validate(&file.Journals[i]); err != nil {
			return nil, fmt.Errorf("invalid journal at index %d: %w", i, err)
		}

		if seen[file.Journals[i].Name] {
			return nil, fmt.Errorf("duplicate journal name: %s", file.Journals[i].Name)
		}
		seen[file.Journals[i].Name] = true
	}

	return file.Journals, nil
}

// setDefaults applies default values to a journal entry. An unset timeout
// stays zero: the process-wide fetch timeout applies then.
func (l *Loader) setDefaults(j *Journal) {
	if j.Settings.MaxIssues == 0 {
		j.Settings.MaxIssues = 50
	}
}

// validate validates a journal entry.
func (l *Loader) validate(j *Journal) error {
	if j.Name == "" {
		return fmt.Errorf("journal name is required")
	}
	if j.URL == "" {
		return fmt.Errorf("journal URL is required")
	}
	if j.SiteType == "" {
		return fmt.Errorf("site type is required")
	}

	parsed, err := url.Parse(j.URL)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("journal URL must be absolute: %s", j.URL)
	}

	if _, err := sites.Lookup(j.SiteType); err != nil {
		return err
	}

	if j.Settings.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if j.Settings.MaxIssues < 0 {
		return fmt.Errorf("max issues must be non-negative")
	}

	return nil
}
