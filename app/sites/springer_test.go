package sites

import (
	"errors"
	"testing"
)

const springerListingHTML = `
<html><body>
<ul>
<li class="app-card-open">
  <h3 class="app-card-open__heading"><a href="https://link.springer.com/collections/abcdef">Call for Papers: Machine Learning for Hydrology</a></h3>
  <div class="app-card-open__description"><p>We welcome submissions applying machine learning to hydrological modelling.</p></div>
  <span data-test="deadline">31 December 2026</span>
</li>
<li class="app-card-open">
  <h3 class="app-card-open__heading"><a href="/collections/ghijkl">Call for Papers: Urban Biodiversity</a></h3>
  <p>Submission deadline: 30 September 2026. Guest editors: Maria Lopez.</p>
</li>
</ul>
</body></html>`

func TestSpringerExtract(t *testing.T) {
	strategy := &springerStrategy{}

	frags, err := strategy.Extract([]byte(springerListingHTML))
	if err != nil {
		t.Fatal(err)
	}

	if len(frags) != 2 {
		t.Fatalf("Expected 2 fragments, got %d", len(frags))
	}

	if frags[0].Title != "Call for Papers: Machine Learning for Hydrology" {
		t.Errorf("Unexpected title: %q", frags[0].Title)
	}
	if frags[0].Deadline != "31 December 2026" {
		t.Errorf("Expected deadline from data-test span, got %q", frags[0].Deadline)
	}
	if frags[0].DetailURL != "https://link.springer.com/collections/abcdef" {
		t.Errorf("Unexpected detail URL: %q", frags[0].DetailURL)
	}
	if frags[0].Description == "" {
		t.Error("Expected description to be extracted")
	}

	if frags[1].Deadline != "30 September 2026" {
		t.Errorf("Expected deadline from card text, got %q", frags[1].Deadline)
	}
	if frags[1].GuestEditors == "" {
		t.Error("Expected guest editors to be extracted")
	}
}

func TestSpringerParseErrorWithoutCards(t *testing.T) {
	strategy := &springerStrategy{}

	_, err := strategy.Extract([]byte(`<html><body><p>redesigned page</p></body></html>`))
	if err == nil {
		t.Fatal("Expected parse error for page without cards")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected *ParseError, got: %v", err)
	}
}
