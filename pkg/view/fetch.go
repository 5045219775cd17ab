package view

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Fetcher pulls datasets from the platform's public API. Requests carry
// no-cache headers so an intermediary never serves a pre-update copy.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// NewFetcher builds a Fetcher against baseURL, e.g. "http://localhost:8080".
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// apiEnvelope mirrors the platform's response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Fetch issues GET baseURL+path and decodes the envelope's data field
// into out.
func (f *Fetcher) Fetch(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	if !envelope.Success {
		return fmt.Errorf("fetch %s: server reported failure: %s", path, envelope.Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// TypedFetch adapts Fetcher.Fetch into a FetchFunc for a Region.
func TypedFetch[T any](f *Fetcher, path string) FetchFunc[T] {
	return func(ctx context.Context) (T, error) {
		var out T
		if err := f.Fetch(ctx, path, &out); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}
}
