package sites

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	Register("elsevier", &elsevierStrategy{})
}

// elsevierStrategy handles ScienceDirect journal call-for-papers pages.
// Current pages link every open call to a /special-issue/ detail page, with
// deadline and guest editors in the surrounding block text. Older pages list
// calls under plain headings, which we scan as a fallback.
type elsevierStrategy struct{}

func (s *elsevierStrategy) Extract(data []byte) ([]Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{SiteType: "elsevier", Reason: err.Error()}
	}

	var frags []Fragment
	seen := make(map[string]bool)

	links := doc.Find(`a[href*="/special-issue/"]`)
	links.Each(func(_ int, a *goquery.Selection) {
		title := strings.TrimSpace(a.Text())
		if isNoiseTitle(title) {
			return
		}
		href, _ := a.Attr("href")
		if href == "" || seen[href] {
			return
		}
		seen[href] = true

		var text, desc string
		if container := a.Closest("section, article, li"); container.Length() > 0 {
			text = container.Text()
			desc = container.Find("p").First().Text()
		}

		frags = append(frags, Fragment{
			Title:        title,
			Deadline:     extractDeadline(text),
			GuestEditors: extractEditors(text),
			Description:  desc,
			DetailURL:    href,
		})
	})

	if links.Length() > 0 {
		return frags, nil
	}

	headings := doc.Find("h2, h3, h4")
	if headings.Length() == 0 {
		return nil, &ParseError{SiteType: "elsevier", Reason: "no special-issue links or headings found"}
	}

	// Cap the heading scan: past the first few headings it's all page chrome.
	headings.EachWithBreak(func(i int, h *goquery.Selection) bool {
		if i >= 10 {
			return false
		}
		title := strings.TrimSpace(h.Text())
		if isNoiseTitle(title) {
			return true
		}

		parent := h.Parent()
		text := parent.Text()
		href, _ := parent.Find("a").First().Attr("href")

		frags = append(frags, Fragment{
			Title:        title,
			Deadline:     extractDeadline(text),
			GuestEditors: extractEditors(text),
			Description:  parent.Find("p").First().Text(),
			DetailURL:    href,
		})
		return true
	})

	return frags, nil
}
