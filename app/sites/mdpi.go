package sites

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	Register("mdpi", &mdpiStrategy{})
}

// mdpiStrategy handles MDPI journal special_issues listing pages. Each open
// call is a generic-item row with a title link and a "Deadline for
// manuscript submissions" line; guest editors are listed inline.
type mdpiStrategy struct{}

func (s *mdpiStrategy) Extract(data []byte) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{SiteType: "mdpi", Reason: err.Error()}
	}

	items := doc.Find("div.generic-item")
	if items.Length() == 0 {
		return nil, &ParseError{SiteType: "mdpi", Reason: "no generic-item blocks found"}
	}

	var frags []Fragment
	items.Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a.title-link").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return
		}
		href, _ := link.Attr("href")

		text := item.Text()
		editors := extractEditors(text)
		if editors == "" {
			// MDPI labels editors "Collection Editor(s)" on topical collections.
			editors = strings.TrimSpace(item.Find("div.editors").First().Text())
		}

		frags = append(frags, Fragment{
			Title:        title,
			Deadline:     extractDeadline(text),
			GuestEditors: editors,
			Description:  item.Find("div.description, p").First().Text(),
			DetailURL:    href,
		})
	})

	return frags, nil
}
