package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openacademic/cfp-watch/app/issue"
)

// Translator fills a record's translated fields via an external translation
// endpoint (Google web endpoint response shape). Translation is an
// enrichment: any failure leaves the fields empty and the record included.
// A minimum interval between calls keeps us under the service's rate limit.
type Translator struct {
	client     *http.Client
	endpoint   string
	targetLang string
	userAgent  string
	interval   time.Duration
	lastCall   time.Time
}

func NewTranslator(client *http.Client, endpoint, targetLang, userAgent string, interval time.Duration) *Translator {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Translator{
		client:     client,
		endpoint:   endpoint,
		targetLang: targetLang,
		userAgent:  userAgent,
		interval:   interval,
	}
}

// Enabled reports whether translation is configured at all.
func (t *Translator) Enabled() bool {
	return t.endpoint != "" && t.targetLang != ""
}

// Run fills the translated fields of a record, skipping fields that already
// carry a translation from a previous run. It reports whether any call was
// made, for run diagnostics; errors are absorbed after logging.
func (t *Translator) Run(ctx context.Context, rec *issue.Record) bool {
	if !t.Enabled() {
		return false
	}

	translated := false

	if rec.TranslatedTitle == "" && rec.Title != "" {
		result, err := t.translate(ctx, rec.Title)
		if err != nil {
			slog.Warn("Title translation failed", "title", rec.Title, "error", err)
		} else {
			rec.TranslatedTitle = result
			translated = true
		}
	}

	if rec.TranslatedDescription == "" && rec.Description != "" {
		result, err := t.translate(ctx, rec.Description)
		if err != nil {
			slog.Warn("Description translation failed", "title", rec.Title, "error", err)
		} else {
			rec.TranslatedDescription = result
			translated = true
		}
	}

	return translated
}

func (t *Translator) translate(ctx context.Context, text string) (string, error) {
	if err := t.throttle(ctx); err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", "auto")
	query.Set("tl", t.targetLang)
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET", t.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return decodeResponse(body)
}

// throttle enforces the minimum interval between translation calls.
func (t *Translator) throttle(ctx context.Context) error {
	if t.interval <= 0 || t.lastCall.IsZero() {
		t.lastCall = time.Now()
		return nil
	}
	if wait := t.interval - time.Since(t.lastCall); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	t.lastCall = time.Now()
	return nil
}

// decodeResponse unpacks the endpoint's nested-array payload: the first
// element is a list of [translated, source, ...] segments which concatenate
// to the full translation.
func decodeResponse(body []byte) (string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty response payload")
	}

	segments, ok := payload[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected response shape")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("no translated segments in response")
	}
	return result, nil
}
