// Package clients fetches the raw data documents the cards render: weather
// conditions, GitHub developer stats, Oura health metrics, SoundCloud track
// metadata, and a daily quote. Each fetcher writes a plain JSON document for
// the pipeline to validate and render.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// FetchError reports a data source that could not be fetched or decoded.
type FetchError struct {
	Source  string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to fetch %s data: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to fetch %s data: %s", e.Source, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

const userAgent = "profile-engine/1.0"

// Client carries the shared HTTP plumbing for all fetchers.
type Client struct {
	http *http.Client
	log  *zap.Logger
}

// New builds a Client with the given request timeout in seconds. A nil
// logger disables logging.
func New(timeoutSeconds int, log *zap.Logger) *Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http: &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second},
		log:  log.Named("clients"),
	}
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, source, url string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Source: source, Message: "cannot build request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Source: source, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &FetchError{Source: source,
			Message: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Source: source, Message: "cannot decode response", Cause: err}
	}
	return nil
}

// SaveJSON writes a data document as indented JSON, creating parent
// directories as needed.
func SaveJSON(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode data document: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("cannot write data document: %w", err)
	}
	return nil
}

func nowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}
