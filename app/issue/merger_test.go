package issue

import (
	"testing"
	"time"
)

var mergeNow = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func TestMergerNoDuplicateKeys(t *testing.T) {
	merger := NewMerger(true)

	old := []Record{
		{Title: "Issue A", Deadline: "2026-06-01", URL: "https://example.org/si/a"},
		{Title: "Issue B", Deadline: "2026-07-01", URL: "https://example.org/si/b"},
	}
	fresh := []Record{
		{Title: "Issue A updated", Deadline: "2026-06-15", URL: "https://example.org/si/a"},
		{Title: "Issue A updated", Deadline: "2026-06-15", URL: "https://example.org/si/a"}, // scrape duplicate
		{Title: "Issue C", Deadline: "2026-08-01", URL: "https://example.org/si/c"},
	}

	merged, stats := merger.Run(old, fresh, mergeNow)

	seen := make(map[string]bool)
	for _, rec := range merged {
		if seen[rec.Key()] {
			t.Errorf("Duplicate identity key in merged set: %s", rec.Key())
		}
		seen[rec.Key()] = true
	}

	if len(merged) != 3 {
		t.Fatalf("Expected 3 merged records, got %d", len(merged))
	}
	if stats.New != 1 || stats.Updated != 1 || stats.Carried != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestMergerFreshFieldsWin(t *testing.T) {
	merger := NewMerger(true)

	old := []Record{{Title: "Issue A", Deadline: "2026-06-01", Description: "old text", URL: "https://example.org/si/a"}}
	fresh := []Record{{Title: "Issue A", Deadline: "2026-09-01", Description: "new text", URL: "https://example.org/si/a"}}

	merged, _ := merger.Run(old, fresh, mergeNow)

	if len(merged) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(merged))
	}
	if merged[0].Deadline != "2026-09-01" {
		t.Errorf("Expected fresh deadline to win, got %q", merged[0].Deadline)
	}
	if merged[0].Description != "new text" {
		t.Errorf("Expected fresh description to win, got %q", merged[0].Description)
	}
}

func TestMergerRetainsTranslationOnDeadlineChange(t *testing.T) {
	merger := NewMerger(true)

	old := []Record{{
		Title:                 "Issue A",
		Deadline:              "2026-06-01",
		Description:           "same text",
		URL:                   "https://example.org/si/a",
		TranslatedTitle:       "标题A",
		TranslatedDescription: "描述A",
	}}
	// Only the deadline changed; title and description are identical.
	fresh := []Record{{
		Title:       "Issue A",
		Deadline:    "2026-09-01",
		Description: "same text",
		URL:         "https://example.org/si/a",
	}}

	merged, _ := merger.Run(old, fresh, mergeNow)

	if merged[0].TranslatedTitle != "标题A" {
		t.Errorf("Expected translated title to survive, got %q", merged[0].TranslatedTitle)
	}
	if merged[0].TranslatedDescription != "描述A" {
		t.Errorf("Expected translated description to survive, got %q", merged[0].TranslatedDescription)
	}
	if merged[0].Deadline != "2026-09-01" {
		t.Errorf("Expected fresh deadline, got %q", merged[0].Deadline)
	}
}

func TestMergerDropsStaleTranslationOnTextChange(t *testing.T) {
	merger := NewMerger(true)

	old := []Record{{
		Title:           "Issue A",
		Description:     "old text",
		URL:             "https://example.org/si/a",
		TranslatedTitle: "标题A",
	}}
	fresh := []Record{{
		Title:       "Issue A revised",
		Description: "new text",
		URL:         "https://example.org/si/a",
	}}

	merged, _ := merger.Run(old, fresh, mergeNow)

	if merged[0].TranslatedTitle != "" {
		t.Errorf("Expected stale translation to be dropped, got %q", merged[0].TranslatedTitle)
	}
}

func TestMergerExpiredPolicy(t *testing.T) {
	old := []Record{{Title: "Expired Issue", Deadline: "2025-01-01", URL: "https://example.org/si/old"}}
	fresh := []Record{
		{Title: "Open Issue", Deadline: "2026-06-01", URL: "https://example.org/si/open"},
		{Title: "Opaque Issue", Deadline: "Check Link", URL: "https://example.org/si/opaque"},
	}

	// keep-expired retains everything
	merged, _ := NewMerger(true).Run(old, fresh, mergeNow)
	if len(merged) != 3 {
		t.Errorf("Expected 3 records with keep-expired, got %d", len(merged))
	}

	// drop-expired removes past deadlines but never opaque ones
	merged, stats := NewMerger(false).Run(old, fresh, mergeNow)
	if len(merged) != 2 {
		t.Fatalf("Expected 2 records with drop-expired, got %d", len(merged))
	}
	for _, rec := range merged {
		if rec.Title == "Expired Issue" {
			t.Error("Expected expired record to be dropped")
		}
	}
	if stats.Expired != 1 {
		t.Errorf("Expected 1 expired record in stats, got %d", stats.Expired)
	}
}

func TestMergerExpiredNotDoubleCounted(t *testing.T) {
	old := []Record{{Title: "Expired Issue", Deadline: "2025-01-01", URL: "https://example.org/si/old"}}
	fresh := []Record{
		{Title: "Expired Issue", Deadline: "2025-01-01", URL: "https://example.org/si/old"},
		{Title: "Expired Newcomer", Deadline: "2025-06-01", URL: "https://example.org/si/gone"},
	}

	merged, stats := NewMerger(false).Run(old, fresh, mergeNow)

	if len(merged) != 0 {
		t.Fatalf("Expected no surviving records, got %d", len(merged))
	}
	if stats.Expired != 2 {
		t.Errorf("Expected 2 expired records in stats, got %d", stats.Expired)
	}
	if stats.New != 0 || stats.Updated != 0 || stats.Carried != 0 {
		t.Errorf("Expected dropped records counted only as expired, got %+v", stats)
	}
}

func TestMergerDeterministicOrder(t *testing.T) {
	merger := NewMerger(true)

	old := []Record{
		{Title: "Issue A", URL: "https://example.org/si/a"},
		{Title: "Issue B", URL: "https://example.org/si/b"},
	}
	fresh := []Record{
		{Title: "Issue C", URL: "https://example.org/si/c"},
		{Title: "Issue A", URL: "https://example.org/si/a"},
	}

	first, _ := merger.Run(old, fresh, mergeNow)
	second, _ := merger.Run(old, fresh, mergeNow)

	if len(first) != len(second) {
		t.Fatalf("Expected stable length, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key() != second[i].Key() {
			t.Errorf("Expected deterministic order at index %d", i)
		}
	}

	// Fresh-scrape order first, then surviving old records.
	if first[0].Title != "Issue C" || first[1].Title != "Issue A" || first[2].Title != "Issue B" {
		t.Errorf("Unexpected order: %q, %q, %q", first[0].Title, first[1].Title, first[2].Title)
	}
}

func TestRecordKey(t *testing.T) {
	withURL := Record{Title: "Issue A", URL: "https://example.org/si/a"}
	if withURL.Key() != "https://example.org/si/a" {
		t.Errorf("Expected URL as key, got %q", withURL.Key())
	}

	noURL := Record{Title: "Issue A", Deadline: "2026-06-01"}
	sameContent := Record{Title: " issue a ", Deadline: "2026-06-01"}
	if noURL.Key() != sameContent.Key() {
		t.Error("Expected case/whitespace-insensitive hash key to match")
	}

	different := Record{Title: "Issue B", Deadline: "2026-06-01"}
	if noURL.Key() == different.Key() {
		t.Error("Expected different titles to produce different keys")
	}
}
