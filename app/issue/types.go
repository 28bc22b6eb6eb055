package issue

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Record is a canonical special-issue entry. The JSON field names are a
// durable contract with the display layer and must not change.
type Record struct {
	Title                 string `json:"title"`
	Deadline              string `json:"deadline"`
	GuestEditors          string `json:"guest_editors"`
	Description           string `json:"description"`
	URL                   string `json:"url"`
	TranslatedTitle       string `json:"translated_title"`
	TranslatedDescription string `json:"translated_description"`
}

// Key returns the identity used to detect whether two records represent the
// same special issue across runs: the detail URL when present, otherwise a
// hash of normalized title and deadline.
func (r Record) Key() string {
	if r.URL != "" {
		return r.URL
	}
	content := fmt.Sprintf("%s|%s", strings.ToLower(strings.TrimSpace(r.Title)), strings.TrimSpace(r.Deadline))
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// sameText reports whether two records carry the same source text, meaning a
// previously computed translation is still valid.
func sameText(a, b Record) bool {
	return a.Title == b.Title && a.Description == b.Description
}
