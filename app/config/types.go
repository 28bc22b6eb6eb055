package config

// JournalsFile is the top-level shape of journals.yaml. Journal order is
// preserved: the pipeline processes journals in the order they are listed.
type JournalsFile struct {
	Journals []Journal `yaml:"journals"`
}

// Journal is one configured journal. Adding a journal is a config change
// only, provided its site_type has a registered parsing strategy.
type Journal struct {
	Name     string   `yaml:"name"`
	URL      string   `yaml:"url"`
	SiteType string   `yaml:"site_type"`
	Settings Settings `yaml:"settings"`
}

// Settings are optional per-journal overrides.
type Settings struct {
	Enabled   *bool `yaml:"enabled"`
	Timeout   int   `yaml:"timeout"` // seconds
	MaxIssues int   `yaml:"max_issues"`
}
