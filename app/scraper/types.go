package scraper

import (
	"sort"
	"time"
)

// Item is the normalized unit of interest produced by every source adapter.
// Items are immutable after creation: the collector filters and persists them,
// the analyzer only reads them.
type Item struct {
	Source      string         `json:"source"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Category    string         `json:"category,omitempty"`
	Score       int            `json:"score"`
	ScrapedAt   time.Time      `json:"scraped_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Truncate bounds a string to n runes without splitting multi-byte characters.
// A non-positive limit yields the empty string.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SortByScore orders items by score descending, in place. Score semantics vary
// by source (votes, revenue, likes) but descending relevance holds everywhere.
func SortByScore(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
