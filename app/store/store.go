package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openacademic/cfp-watch/app/issue"
)

// TimestampFormat is the last_updated format the display layer expects.
const TimestampFormat = "2006-01-02 15:04:05"

// JournalSnapshot is the complete known record set for one journal. JSON
// field names are a durable contract with the display layer.
type JournalSnapshot struct {
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	SpecialIssues []issue.Record `json:"special_issues"`
}

// Data is the sole persisted artifact, read wholesale by the display layer.
type Data struct {
	LastUpdated string            `json:"last_updated"`
	Journals    []JournalSnapshot `json:"journals"`
}

// Snapshot returns the snapshot for a journal by name, or nil.
func (d *Data) Snapshot(name string) *JournalSnapshot {
	for i := range d.Journals {
		if d.Journals[i].Name == name {
			return &d.Journals[i]
		}
	}
	return nil
}

// Load reads the persisted data file. A missing file yields an empty store;
// a present but unreadable or corrupt file is an error, since overwriting it
// blindly would discard the last known state.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Data{}, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}

	return &data, nil
}

// Save atomically replaces the data file: the new contents are written to a
// temp file in the same directory and renamed over the old file, so readers
// never observe a partial write even if the process dies mid-run.
func Save(path string, data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".issues-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace data file: %w", err)
	}

	return nil
}
