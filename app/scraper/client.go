package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultTimeout = 20 * time.Second

// newPacer returns the default one-request-per-second limiter used between
// calls to the same external API.
func newPacer() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 1)
}

// httpJSON wraps the shared HTTP plumbing of the REST adapters: request
// construction, user agent, status checking and JSON decoding.
type httpJSON struct {
	client    *http.Client
	userAgent string
}

func newHTTPJSON(client *http.Client, userAgent string) *httpJSON {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &httpJSON{client: client, userAgent: userAgent}
}

func (h *httpJSON) get(ctx context.Context, rawURL string, params url.Values, headers map[string]string, out any) error {
	if params != nil {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return h.do(req, headers, out)
}

func (h *httpJSON) post(ctx context.Context, rawURL string, body any, headers map[string]string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return h.do(req, headers, out)
}

func (h *httpJSON) do(req *http.Request, headers map[string]string, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP error: %d %s: %s", resp.StatusCode, resp.Status, body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
