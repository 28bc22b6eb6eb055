package sites

import (
	"errors"
	"fmt"
	"sort"
)

// Strategy extracts candidate special-issue blocks from a raw call-for-papers
// page. Each publisher template family implements its own Strategy and
// registers it under a site type tag; adding a publisher never touches
// existing strategies.
type Strategy interface {
	Extract(data []byte) ([]Fragment, error)
}

// ErrUnsupportedSiteType is returned by Lookup for an unregistered site type.
var ErrUnsupportedSiteType = errors.New("unsupported site type")

// ParseError indicates the expected page structure was not found, typically
// because the publisher changed its template. Retrying won't fix it.
type ParseError struct {
	SiteType string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): %s", e.SiteType, e.Reason)
}

var registry = make(map[string]Strategy)

// Register adds a strategy under the given site type tag. It panics on a
// duplicate tag, which would silently shadow an existing publisher.
func Register(siteType string, s Strategy) {
	if _, exists := registry[siteType]; exists {
		panic(fmt.Sprintf("site type already registered: %s", siteType))
	}
	registry[siteType] = s
}

// Lookup returns the strategy for a site type.
func Lookup(siteType string) (Strategy, error) {
	s, ok := registry[siteType]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnsupportedSiteType, siteType, Registered())
	}
	return s, nil
}

// Registered returns all registered site type tags, sorted.
func Registered() []string {
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
