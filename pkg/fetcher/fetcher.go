// Package fetcher wraps single-attempt HTTP GET requests. The origin gets
// best-effort requests only: no retries, no backoff.
package fetcher

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func New() *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: "rumbledir/1.0",
	}
}

// Fetch performs a GET and returns the response body decoded to UTF-8 using
// the response's declared charset.
func (f *Fetcher) Fetch(url string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s, status code: %d", url, resp.StatusCode)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode response charset: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), nil
}

// FetchOrEmpty is the recovery path for transient fetch failures: it logs the
// error and returns an empty body, which downstream extraction treats as
// "no match found".
func (f *Fetcher) FetchOrEmpty(url string, logger *slog.Logger) string {
	body, err := f.Fetch(url)
	if err != nil {
		logger.Debug("Requesting url failed", "url", url, "error", err)
		return ""
	}
	return body
}
