package sites

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	Register("springer", &springerStrategy{})
}

// springerStrategy handles Springer/Nature "Calls for Papers" collection
// pages, which render each open call as an app-card with a heading link and
// a short description paragraph.
type springerStrategy struct{}

func (s *springerStrategy) Extract(data []byte) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{SiteType: "springer", Reason: err.Error()}
	}

	cards := doc.Find("li.app-card-open, div.app-card-open")
	if cards.Length() == 0 {
		return nil, &ParseError{SiteType: "springer", Reason: "no app-card-open blocks found"}
	}

	var frags []Fragment
	cards.Each(func(_ int, card *goquery.Selection) {
		heading := card.Find(".app-card-open__heading a").First()
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			// Some cards carry the title on the heading itself.
			title = strings.TrimSpace(card.Find(".app-card-open__heading").First().Text())
		}
		if isNoiseTitle(title) {
			return
		}
		href, _ := heading.Attr("href")

		deadline := strings.TrimSpace(card.Find(`span[data-test="deadline"]`).First().Text())
		if deadline == "" {
			deadline = extractDeadline(card.Text())
		}

		frags = append(frags, Fragment{
			Title:        title,
			Deadline:     deadline,
			GuestEditors: extractEditors(card.Text()),
			Description:  card.Find(".app-card-open__description, p").First().Text(),
			DetailURL:    href,
		})
	})

	return frags, nil
}
