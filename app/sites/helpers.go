package sites

import (
	"regexp"
	"strings"
)

// Deadline strings show up in a handful of shapes across publishers:
// "Submission deadline: 1 March 2026", "due 1 Mar 2026", ISO dates, or a
// bare "1 March 2026" somewhere near the block.
var (
	keywordDeadlineRe = regexp.MustCompile(`(?i)(?:submission deadline|manuscript submission deadline|deadline for manuscript submissions|deadline|due|submissions? by)[:\s]*(\d{1,2}\s+[A-Za-z]+\s+\d{4})`)
	keywordISORe      = regexp.MustCompile(`(?i)(?:submission deadline|manuscript submission deadline|deadline for manuscript submissions|deadline|due|submissions? by)[:\s]*(\d{4}-\d{2}-\d{2})`)
	bareDateRe        = regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})\b`)
	editorsRe         = regexp.MustCompile(`(?i)guest\s+editors?[:\s]+([^.]+)`)
)

// extractDeadline pulls the most plausible deadline string out of a text
// blob. Keyword-anchored matches win over a bare date found anywhere.
func extractDeadline(text string) string {
	if m := keywordDeadlineRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := keywordISORe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := bareDateRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractEditors pulls a "Guest editors: ..." run out of a text blob.
// Length-capped so a match inside running prose doesn't swallow a paragraph.
func extractEditors(text string) string {
	m := editorsRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	editors := strings.TrimSpace(m[1])
	if len(editors) > 200 {
		return ""
	}
	return editors
}

// isNoiseTitle reports whether a candidate title is too short or generic to
// be a real special-issue title (section headings, nav links).
func isNoiseTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 10 {
		return true
	}
	switch strings.ToLower(trimmed) {
	case "special issues", "special issue", "call for papers", "calls for papers", "about":
		return true
	}
	return false
}

// looksLikeCallForPapers reports whether a title or excerpt announces a
// special-issue call. Used by post/feed based strategies where the source
// mixes calls with ordinary announcements.
func looksLikeCallForPapers(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "call for papers") || strings.Contains(lower, "special issue")
}
