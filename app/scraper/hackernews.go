package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibetools/trendscout/app/config"
)

const algoliaAPIURL = "https://hn.algolia.com/api/v1"

// HackerNews fetches Show HN and startup-related stories through the free
// Algolia search API.
type HackerNews struct {
	http      *httpJSON
	queries   []string
	maxItems  int
	minScore  int
	weekStart time.Time
	limiter   *rate.Limiter
	baseURL   string
}

func NewHackerNews(client *http.Client, userAgent string, cfg config.HackerNewsConfig, search config.SearchConfig, weekStart time.Time) *HackerNews {
	return &HackerNews{
		http:      newHTTPJSON(client, userAgent),
		queries:   cfg.Queries,
		maxItems:  search.MaxItemsPerSource,
		minScore:  search.MinScore,
		weekStart: weekStart,
		limiter:   rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		baseURL:   algoliaAPIURL,
	}
}

func (s *HackerNews) Name() string {
	return "hackernews"
}

type algoliaResponse struct {
	Hits []algoliaHit `json:"hits"`
}

type algoliaHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Points      int    `json:"points"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	CreatedAt   string `json:"created_at"`
}

func (s *HackerNews) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item
	seen := make(map[string]bool)

	perQuery := 50
	if n := len(s.queries); n > 0 && s.maxItems/n < perQuery {
		perQuery = s.maxItems / n
	}

	for _, query := range s.queries {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("query", query)
		params.Set("tags", "story")
		params.Set("numericFilters", fmt.Sprintf("created_at_i>%d", s.weekStart.Unix()))
		params.Set("hitsPerPage", fmt.Sprintf("%d", perQuery))

		var resp algoliaResponse
		if err := s.http.get(ctx, s.baseURL+"/search", params, nil, &resp); err != nil {
			slog.Warn("Hacker News query failed", "query", query, "error", err)
			continue
		}

		slog.Debug("Hacker News query completed", "query", query, "hits", len(resp.Hits))

		for _, hit := range resp.Hits {
			if hit.Points < s.minScore {
				continue
			}
			if hit.ObjectID == "" || seen[hit.ObjectID] {
				continue
			}
			seen[hit.ObjectID] = true

			hnURL := fmt.Sprintf("https://news.ycombinator.com/item?id=%s", hit.ObjectID)
			itemURL := hit.URL
			if itemURL == "" {
				itemURL = hnURL
			}

			category := "hackernews"
			if strings.Contains(strings.ToLower(hit.Title), "show hn") {
				category = "show-hn"
			}

			items = append(items, Item{
				Source:      s.Name(),
				Name:        hit.Title,
				Description: "", // HN stories carry no description
				URL:         itemURL,
				Category:    category,
				Score:       hit.Points,
				ScrapedAt:   time.Now(),
				Metadata: map[string]any{
					"hn_url":       hnURL,
					"author":       hit.Author,
					"num_comments": hit.NumComments,
					"created_at":   hit.CreatedAt,
					"story_id":     hit.ObjectID,
				},
			})
		}
	}

	SortByScore(items)
	if len(items) > s.maxItems {
		items = items[:s.maxItems]
	}

	return items, nil
}
