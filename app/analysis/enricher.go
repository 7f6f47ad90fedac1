package analysis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/vibetools/trendscout/app/scraper"
)

const (
	enrichTimeout   = 15 * time.Second
	maxPageSize     = 1 << 20
	excerptMaxRunes = 500
)

// Enricher fetches trending tool landing pages and attaches a readable
// excerpt, giving the tools prompt real page content to validate against
// instead of just a name and URL.
type Enricher struct {
	client    *http.Client
	userAgent string
}

func NewEnricher(userAgent string) *Enricher {
	return &Enricher{
		client:    &http.Client{Timeout: enrichTimeout},
		userAgent: userAgent,
	}
}

// EnrichTools annotates each item that has a URL with a page_excerpt metadata
// field. Fetch or extraction failures leave the item untouched.
func (e *Enricher) EnrichTools(ctx context.Context, items []scraper.Item) []scraper.Item {
	for i := range items {
		if items[i].URL == "" {
			continue
		}

		excerpt, err := e.fetchExcerpt(ctx, items[i].URL)
		if err != nil {
			slog.Debug("Failed to enrich tool", "name", items[i].Name, "url", items[i].URL, "error", err)
			continue
		}

		if items[i].Metadata == nil {
			items[i].Metadata = map[string]any{}
		}
		items[i].Metadata["page_excerpt"] = excerpt
	}

	return items
}

func (e *Enricher) fetchExcerpt(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	excerpt := strings.TrimSpace(article.TextContent)
	if excerpt == "" {
		return "", fmt.Errorf("no content extracted from page")
	}

	return scraper.Truncate(excerpt, excerptMaxRunes), nil
}
