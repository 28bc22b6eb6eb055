package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/openacademic/cfp-watch/app/config"
	"github.com/openacademic/cfp-watch/app/fetch"
	"github.com/openacademic/cfp-watch/app/issue"
	"github.com/openacademic/cfp-watch/app/sites"
	"github.com/openacademic/cfp-watch/app/store"
	"github.com/openacademic/cfp-watch/app/translate"
)

// Pipeline drives each configured journal through fetch, parse, normalize,
// translate and merge. Failures are isolated per journal: a broken template
// or unreachable site leaves that journal's previous snapshot in place and
// the run moves on.
type Pipeline struct {
	journals   []config.Journal
	fetcher    *fetch.Fetcher
	normalizer *issue.Normalizer
	merger     *issue.Merger
	translator *translate.Translator
	delay      time.Duration
	now        func() time.Time
}

func New(journals []config.Journal, fetcher *fetch.Fetcher, translator *translate.Translator,
	keepExpired bool, delay time.Duration) *Pipeline {
	return &Pipeline{
		journals:   journals,
		fetcher:    fetcher,
		normalizer: issue.NewNormalizer(),
		merger:     issue.NewMerger(keepExpired),
		translator: translator,
		delay:      delay,
		now:        time.Now,
	}
}

// Run processes all journals against the previous store and returns the new
// store plus a per-journal report. The returned store is always complete and
// self-consistent: failed journals carry their prior snapshot unchanged.
func (p *Pipeline) Run(ctx context.Context, prev *store.Data) (*store.Data, *Report) {
	report := &Report{}
	data := &store.Data{
		LastUpdated: p.now().Format(store.TimestampFormat),
		Journals:    make([]store.JournalSnapshot, 0, len(p.journals)),
	}

	for i, journal := range p.journals {
		if !journal.IsEnabled() {
			slog.Debug("Journal disabled, skipping", "journal", journal.Name)
			continue
		}

		if i > 0 && p.delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.delay):
			}
		}

		prevSnap := prev.Snapshot(journal.Name)

		snapshot, result := p.processJournal(ctx, journal, prevSnap)
		report.Results = append(report.Results, result)

		if result.Err != nil {
			slog.Error("Journal failed, keeping previous snapshot",
				"journal", journal.Name, "stage", string(result.Stage), "error", result.Err)
			snapshot = carriedSnapshot(journal, prevSnap)
		} else {
			slog.Info("Journal processed",
				"journal", journal.Name,
				"fragments", result.Fragments,
				"dropped", result.Dropped,
				"translated", result.Translated,
				"new", result.Merge.New,
				"updated", result.Merge.Updated,
				"carried", result.Merge.Carried,
				"expired", result.Merge.Expired)
		}

		data.Journals = append(data.Journals, snapshot)
	}

	return data, report
}

// processJournal walks one journal through the stage sequence. Any stage
// error short-circuits with the stage it failed at.
func (p *Pipeline) processJournal(ctx context.Context, journal config.Journal,
	prevSnap *store.JournalSnapshot) (store.JournalSnapshot, JournalResult) {

	result := JournalResult{Journal: journal.Name, Stage: StagePending}
	fail := func(err error) (store.JournalSnapshot, JournalResult) {
		result.Err = err
		return store.JournalSnapshot{}, result
	}

	strategy, err := sites.Lookup(journal.SiteType)
	if err != nil {
		return fail(err)
	}

	data, err := p.fetcher.RunWithTimeout(ctx, journal.URL, journal.Settings.GetTimeout())
	if err != nil {
		return fail(err)
	}
	result.Stage = StageFetched

	fragments, err := strategy.Extract(data)
	if err != nil {
		return fail(err)
	}
	result.Stage = StageParsed
	result.Fragments = len(fragments)

	base, err := url.Parse(journal.URL)
	if err != nil {
		return fail(fmt.Errorf("invalid journal URL: %w", err))
	}

	var fresh []issue.Record
	for _, frag := range fragments {
		rec, err := p.normalizer.Run(frag, base)
		if err != nil {
			result.Dropped++
			slog.Debug("Fragment dropped", "journal", journal.Name, "error", err)
			continue
		}
		fresh = append(fresh, rec)
		if len(fresh) >= journal.Settings.MaxIssues {
			break
		}
	}
	result.Stage = StageNormalized

	var prevRecords []issue.Record
	if prevSnap != nil {
		prevRecords = prevSnap.SpecialIssues
	}

	// Reuse translations for unchanged text before spending any calls.
	issue.CarryTranslations(fresh, prevRecords)

	for i := range fresh {
		if p.translator.Run(ctx, &fresh[i]) {
			result.Translated++
		}
	}
	result.Stage = StageTranslated

	merged, stats := p.merger.Run(prevRecords, fresh, p.now())
	result.Stage = StageMerged
	result.Merge = stats

	return store.JournalSnapshot{
		Name:          journal.Name,
		URL:           journal.URL,
		SpecialIssues: merged,
	}, result
}

// carriedSnapshot reuses the previous snapshot for a failed journal, or an
// empty one if the journal has never been scraped successfully.
func carriedSnapshot(journal config.Journal, prevSnap *store.JournalSnapshot) store.JournalSnapshot {
	if prevSnap != nil {
		return *prevSnap
	}
	return store.JournalSnapshot{
		Name:          journal.Name,
		URL:           journal.URL,
		SpecialIssues: []issue.Record{},
	}
}
