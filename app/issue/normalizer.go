package issue

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/openacademic/cfp-watch/app/sites"
)

const maxDescriptionLen = 500

// NormalizationError indicates a fragment is missing the minimum fields to
// become a record. The fragment is dropped; the run continues.
type NormalizationError struct {
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: %s", e.Reason)
}

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run converts a raw fragment into a canonical Record: whitespace collapsed,
// deadline normalized to YYYY-MM-DD when parseable (kept verbatim otherwise),
// detail URL resolved absolute against the journal page URL.
func (n *Normalizer) Run(frag sites.Fragment, base *url.URL) (Record, error) {
	title := collapseWhitespace(frag.Title)
	if title == "" {
		return Record{}, &NormalizationError{Reason: "missing title"}
	}

	deadline := collapseWhitespace(frag.Deadline)
	detailURL := resolveURL(base, strings.TrimSpace(frag.DetailURL))
	if deadline == "" && detailURL == "" {
		return Record{}, &NormalizationError{Reason: fmt.Sprintf("no deadline or detail URL for %q", title)}
	}

	return Record{
		Title:        title,
		Deadline:     normalizeDeadline(deadline),
		GuestEditors: cleanEditorNames(frag.GuestEditors),
		Description:  truncate(collapseWhitespace(frag.Description), maxDescriptionLen),
		URL:          detailURL,
	}, nil
}

// normalizeDeadline renders a parseable date as YYYY-MM-DD. An unparseable
// deadline is kept as opaque text, never silently replaced with a guess.
func normalizeDeadline(deadline string) string {
	if deadline == "" {
		return ""
	}
	t, err := dateparse.ParseAny(deadline)
	if err != nil {
		return deadline
	}
	return t.Format("2006-01-02")
}

// resolveURL makes a possibly relative detail URL absolute against the
// journal page URL. An unparseable href is dropped rather than persisted.
func resolveURL(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		if ref.IsAbs() {
			return ref.String()
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}

var (
	honorificRe = regexp.MustCompile(`(?i)\b(?:Dr|Prof|Professor|Associate|Assistant)\b\.?\s*`)
	emailRe     = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)

	// Affiliation and role keywords that mark the end of a name run in
	// scraped guest-editor text.
	editorStopRe = regexp.MustCompile(`(?i)\b(?:Department|University|School|Institute|Center|Centre|College|Faculty|Affiliation|Email)\b`)
)

// cleanEditorNames strips academic titles, e-mail addresses and trailing
// affiliation text from a scraped guest-editor run.
func cleanEditorNames(editors string) string {
	s := collapseWhitespace(editors)
	if s == "" {
		return ""
	}

	if loc := editorStopRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}

	s = honorificRe.ReplaceAllString(s, "")
	s = emailRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "()", "")
	s = strings.Trim(s, " ,.-:;")

	return collapseWhitespace(s)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
