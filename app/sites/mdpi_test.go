package sites

import (
	"errors"
	"testing"
)

const mdpiListingHTML = `
<html><body>
<div class="generic-item article-item">
  <a class="title-link" href="/journal/remotesensing/special_issues/urban_sar">SAR Applications in Urban Monitoring</a>
  <div class="description">Synthetic aperture radar for monitoring urban growth and subsidence.</div>
  <div>Deadline for manuscript submissions: 20 August 2026</div>
  <div class="editors">Guest editors: Wei Chen, Anna Kowalski.</div>
</div>
<div class="generic-item">
  <a class="title-link" href="/journal/remotesensing/special_issues/wetlands">Wetland Mapping with Multispectral Data</a>
  <div>Deadline for manuscript submissions: 2026-03-01</div>
</div>
</body></html>`

func TestMDPIExtract(t *testing.T) {
	strategy := &mdpiStrategy{}

	frags, err := strategy.Extract([]byte(mdpiListingHTML))
	if err != nil {
		t.Fatal(err)
	}

	if len(frags) != 2 {
		t.Fatalf("Expected 2 fragments, got %d", len(frags))
	}

	if frags[0].Title != "SAR Applications in Urban Monitoring" {
		t.Errorf("Unexpected title: %q", frags[0].Title)
	}
	if frags[0].Deadline != "20 August 2026" {
		t.Errorf("Expected deadline '20 August 2026', got %q", frags[0].Deadline)
	}
	if frags[0].GuestEditors == "" {
		t.Error("Expected guest editors to be extracted")
	}
	if frags[0].DetailURL != "/journal/remotesensing/special_issues/urban_sar" {
		t.Errorf("Unexpected detail URL: %q", frags[0].DetailURL)
	}

	if frags[1].Deadline != "2026-03-01" {
		t.Errorf("Expected ISO deadline to pass through, got %q", frags[1].Deadline)
	}
}

func TestMDPIParseErrorWithoutItems(t *testing.T) {
	strategy := &mdpiStrategy{}

	_, err := strategy.Extract([]byte(`<html><body><table><tr><td>new layout</td></tr></table></body></html>`))
	if err == nil {
		t.Fatal("Expected parse error for page without generic-item blocks")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected *ParseError, got: %v", err)
	}
}
