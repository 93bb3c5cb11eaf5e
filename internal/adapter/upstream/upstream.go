// Package upstream holds the request plumbing shared by the third-party API
// adapters: one GET, a status check, and JSON decoding.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// UserAgent is sent on every outbound request.
const UserAgent = "country-explorer/1.0 (+https://github.com/couchcryptid/country-explorer)"

// maxBody caps how much of an upstream response is read.
const maxBody = 32 << 20

// NewHTTPClient returns a client with the single uniform upstream timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Source string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Source, e.Status, e.Body)
}

// Get performs a GET and returns the body of a 2xx response.
func Get(ctx context.Context, client *http.Client, source, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Source: source, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", source, err)
	}
	return body, nil
}

// GetJSON performs a GET and decodes a 2xx JSON response into v.
func GetJSON(ctx context.Context, client *http.Client, source, rawURL string, header http.Header, v any) error {
	body, err := Get(ctx, client, source, rawURL, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s decode response: %w", source, err)
	}
	return nil
}
