package sites

import (
	"bytes"
	"strings"

	"github.com/mmcdole/gofeed"
)

func init() {
	Register("rss", &rssStrategy{parser: gofeed.NewParser()})
}

// rssStrategy handles journals that publish their calls as an RSS or Atom
// feed. gofeed detects either format; items that aren't calls are skipped.
type rssStrategy struct {
	parser *gofeed.Parser
}

func (s *rssStrategy) Extract(data []byte) ([]Fragment, error) {
	feed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{SiteType: "rss", Reason: "feed did not parse: " + err.Error()}
	}

	var frags []Fragment
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.Link == "" {
			continue
		}
		if !looksLikeCallForPapers(title + " " + item.Description) {
			continue
		}

		description := stripTags(item.Description)

		frags = append(frags, Fragment{
			Title:        title,
			Deadline:     extractDeadline(description),
			GuestEditors: extractEditors(description),
			Description:  description,
			DetailURL:    item.Link,
		})
	}

	return frags, nil
}
