package sites

import (
	"bytes"
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func init() {
	Register("wordpress", &wordpressStrategy{})
}

// wordpressStrategy handles journals that announce calls as posts on a
// WordPress site. The journal URL points at the REST posts endpoint
// (/wp-json/wp/v2/posts); posts that don't announce a call are skipped.
type wordpressStrategy struct{}

type wpPost struct {
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Link    string `json:"link"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
}

func (s *wordpressStrategy) Extract(data []byte) ([]Fragment, error) {
	var posts []wpPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, &ParseError{SiteType: "wordpress", Reason: "response is not a posts array: " + err.Error()}
	}

	var frags []Fragment
	for _, post := range posts {
		title := html.UnescapeString(strings.TrimSpace(post.Title.Rendered))
		if title == "" || post.Link == "" {
			continue
		}
		if !looksLikeCallForPapers(title) {
			continue
		}

		body := stripTags(post.Content.Rendered)
		excerpt := stripTags(post.Excerpt.Rendered)
		if excerpt == "" {
			excerpt = body
		}

		frags = append(frags, Fragment{
			Title:        title,
			Deadline:     extractDeadline(body),
			GuestEditors: extractEditors(body),
			Description:  excerpt,
			DetailURL:    post.Link,
		})
	}

	return frags, nil
}

// stripTags reduces a rendered HTML fragment to its text content.
func stripTags(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(fragment)))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
