package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Input/output configuration
	JournalsFile string `long:"journals-file" env:"JOURNALS_FILE" default:"./journals.yaml" description:"YAML file listing journals to track"`
	DataFile     string `long:"data-file" env:"DATA_FILE" default:"./data/issues.json" description:"Path of the persisted special-issues JSON file"`

	// Fetch configuration
	FetchTimeout int `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-request timeout in seconds"`
	FetchRetries int `long:"fetch-retries" env:"FETCH_RETRIES" default:"2" description:"Retries after a failed fetch before giving up on a journal"`
	JournalDelay int `long:"journal-delay" env:"JOURNAL_DELAY" default:"2" description:"Delay in seconds between journals"`

	// Translation configuration
	TargetLang        string `long:"target-lang" env:"TARGET_LANG" default:"zh-CN" description:"Target language for translated fields (empty disables translation)"`
	TranslateURL      string `long:"translate-url" env:"TRANSLATE_URL" default:"https://translate.googleapis.com/translate_a/single" description:"Translation service endpoint"`
	TranslateInterval int    `long:"translate-interval" env:"TRANSLATE_INTERVAL" default:"1000" description:"Minimum delay between translation calls in milliseconds"`

	// Merge policy
	DropExpired bool `long:"drop-expired" env:"DROP_EXPIRED" description:"Drop records whose submission deadline has passed"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"CFP Watch/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Shanghai)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.TargetLang != "" {
		if _, err := language.Parse(raw.TargetLang); err != nil {
			return nil, fmt.Errorf("invalid target language %q: %w", raw.TargetLang, err)
		}
	}

	cfg := &Cfg{
		JournalsFile:      raw.JournalsFile,
		DataFile:          raw.DataFile,
		FetchTimeout:      raw.FetchTimeout,
		FetchRetries:      raw.FetchRetries,
		JournalDelay:      raw.JournalDelay,
		TargetLang:        raw.TargetLang,
		TranslateURL:      raw.TranslateURL,
		TranslateInterval: raw.TranslateInterval,
		DropExpired:       raw.DropExpired,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
