package issue

import (
	"time"

	"github.com/araddon/dateparse"
)

// MergeStats summarizes one journal's merge for run diagnostics.
type MergeStats struct {
	New     int // identity keys not seen before
	Updated int // keys present in both old and fresh sets
	Carried int // old records absent from the fresh scrape
	Expired int // records dropped by the expired-deadline policy
}

// Merger folds a freshly scraped record set into a journal's previous
// snapshot. Fresh fields win on an identity collision, but translations
// computed on an earlier run survive as long as the source text is
// unchanged. Old records missing from the fresh scrape are carried over:
// publisher listings rotate, and a vanished entry is not proof the call
// closed.
type Merger struct {
	keepExpired bool
}

func NewMerger(keepExpired bool) *Merger {
	return &Merger{keepExpired: keepExpired}
}

// Run returns the merged record set for one journal. Output order is
// deterministic: fresh-scrape order first, then surviving old records in
// their prior order, so an unchanged source page yields an unchanged
// snapshot.
func (m *Merger) Run(old, fresh []Record, now time.Time) ([]Record, MergeStats) {
	var stats MergeStats

	oldByKey := make(map[string]Record, len(old))
	for _, rec := range old {
		oldByKey[rec.Key()] = rec
	}

	merged := make([]Record, 0, len(old)+len(fresh))
	seen := make(map[string]bool, len(fresh))

	for _, rec := range fresh {
		key := rec.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		prev, collided := oldByKey[key]
		if collided {
			carryTranslations(&rec, prev)
		}

		if m.dropExpired(rec, now) {
			stats.Expired++
			continue
		}
		if collided {
			stats.Updated++
		} else {
			stats.New++
		}
		merged = append(merged, rec)
	}

	for _, rec := range old {
		if seen[rec.Key()] {
			continue
		}
		seen[rec.Key()] = true
		if m.dropExpired(rec, now) {
			stats.Expired++
			continue
		}
		stats.Carried++
		merged = append(merged, rec)
	}

	return merged, stats
}

// dropExpired applies the configured expired-deadline policy. Records with
// unparseable deadlines are always kept.
func (m *Merger) dropExpired(rec Record, now time.Time) bool {
	if m.keepExpired {
		return false
	}
	deadline, ok := parseDeadline(rec.Deadline)
	if !ok {
		return false
	}
	return deadline.Before(now.Truncate(24 * time.Hour))
}

// CarryTranslations copies translated fields from a previous snapshot onto
// fresh records whose source text is unchanged, so the translator doesn't
// re-pay for text it has already translated.
func CarryTranslations(fresh []Record, prev []Record) {
	prevByKey := make(map[string]Record, len(prev))
	for _, rec := range prev {
		prevByKey[rec.Key()] = rec
	}

	for i := range fresh {
		if old, ok := prevByKey[fresh[i].Key()]; ok {
			carryTranslations(&fresh[i], old)
		}
	}
}

func carryTranslations(rec *Record, prev Record) {
	if !sameText(*rec, prev) {
		return
	}
	if rec.TranslatedTitle == "" {
		rec.TranslatedTitle = prev.TranslatedTitle
	}
	if rec.TranslatedDescription == "" {
		rec.TranslatedDescription = prev.TranslatedDescription
	}
}

func parseDeadline(deadline string) (time.Time, bool) {
	if deadline == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
