package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// FetchError is the journal-level failure surfaced after retries are
// exhausted. StatusCode is zero for transport errors.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw page content with a bounded number of retries.
// Transient failures (transport errors, 5xx, 429) are retried with
// exponential backoff; other HTTP errors fail immediately since a 404 won't
// heal on retry.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	retries   int
}

func NewFetcher(client *http.Client, userAgent string, timeout time.Duration, retries int) *Fetcher {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		}
	}
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
		retries:   retries,
	}
}

// Run fetches the given URL with the fetcher's default per-request timeout.
func (f *Fetcher) Run(ctx context.Context, url string) ([]byte, error) {
	return f.RunWithTimeout(ctx, url, 0)
}

// RunWithTimeout fetches the given URL and returns the raw response body. A
// non-positive timeout falls back to the fetcher's default. It never panics;
// every failure mode comes back as a *FetchError.
func (f *Fetcher) RunWithTimeout(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = f.timeout
	}

	var lastErr *FetchError

	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			if delay > 10*time.Second {
				delay = 10 * time.Second
			}
			slog.Debug("Retrying fetch", "url", url, "attempt", attempt, "delay", delay.String())
			select {
			case <-ctx.Done():
				return nil, &FetchError{URL: url, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		data, retryable, err := f.fetch(ctx, url, timeout)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, lastErr
}

func (f *Fetcher) fetch(ctx context.Context, url string, timeout time.Duration) (data []byte, retryable bool, fetchErr *FetchError) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, false, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return body, false, nil
}
