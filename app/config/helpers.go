package config

import (
	"time"
)

// IsEnabled returns whether the journal should be processed. Journals are
// enabled unless the config says otherwise.
func (j *Journal) IsEnabled() bool {
	if j.Settings.Enabled == nil {
		return true
	}
	return *j.Settings.Enabled
}

// GetTimeout returns the per-journal fetch timeout as time.Duration, or zero
// when the journal doesn't set one and the process-wide timeout applies.
func (s *Settings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 0
	}
	return time.Duration(s.Timeout) * time.Second
}
