package pipeline

import (
	"github.com/openacademic/cfp-watch/app/issue"
)

// Stage is how far a journal got through the pipeline.
type Stage string

const (
	StagePending    Stage = "pending"
	StageFetched    Stage = "fetched"
	StageParsed     Stage = "parsed"
	StageNormalized Stage = "normalized"
	StageTranslated Stage = "translated"
	StageMerged     Stage = "merged"
)

// JournalResult is one journal's outcome. Err is nil when the journal
// reached StageMerged; otherwise Stage names where it failed and the prior
// snapshot was carried forward unchanged.
type JournalResult struct {
	Journal    string
	Stage      Stage
	Err        error
	Fragments  int
	Dropped    int
	Translated int
	Merge      issue.MergeStats
}

// Report is the run-level summary: one result per processed journal, in
// configured order, for operator visibility. A run with failed journals is
// still a successful run.
type Report struct {
	Results []JournalResult
}

// Failed returns the journals that did not reach StageMerged.
func (r *Report) Failed() []JournalResult {
	var failed []JournalResult
	for _, result := range r.Results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}

// DroppedFragments totals record-level drops across the run.
func (r *Report) DroppedFragments() int {
	total := 0
	for _, result := range r.Results {
		total += result.Dropped
	}
	return total
}
