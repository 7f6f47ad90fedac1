package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vibetools/trendscout/app/config"
)

func rssFixture(recent, stale time.Time) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Startup News</title>
  <item>
    <title>New AI funding round</title>
    <link>https://news.example/ai-funding</link>
    <description>A big raise for an AI infra startup.</description>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title>Old news from last month</title>
    <link>https://news.example/old</link>
    <pubDate>%s</pubDate>
  </item>
  <item>
    <title></title>
    <link>https://news.example/untitled</link>
    <pubDate>%s</pubDate>
  </item>
</channel>
</rss>`, recent.Format(time.RFC1123Z), stale.Format(time.RFC1123Z), recent.Format(time.RFC1123Z))
}

func TestRSSFetch(t *testing.T) {
	now := time.Now()
	weekStart := now.AddDate(0, 0, -7)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFixture(now.AddDate(0, 0, -1), now.AddDate(0, 0, -30)))
	}))
	defer server.Close()

	s := NewRSS("test-agent",
		config.RSSConfig{Feeds: []config.RSSFeed{{Name: "Startup News", URL: server.URL}}},
		config.SearchConfig{MaxItemsPerSource: 100},
		weekStart)

	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected only the recent titled entry, got %d items", len(items))
	}

	item := items[0]
	if item.Name != "New AI funding round" {
		t.Errorf("Expected recent entry, got %q", item.Name)
	}
	if item.Category != "Startup News" {
		t.Errorf("Expected feed name as category, got %q", item.Category)
	}
	if item.Score != 0 {
		t.Errorf("Expected zero score for feed entries, got %d", item.Score)
	}
}

func TestRSSFetchContinuesPastBrokenFeed(t *testing.T) {
	now := time.Now()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFixture(now.AddDate(0, 0, -1), now.AddDate(0, 0, -30)))
	}))
	defer working.Close()

	s := NewRSS("test-agent",
		config.RSSConfig{Feeds: []config.RSSFeed{
			{Name: "Broken", URL: broken.URL},
			{Name: "Working", URL: working.URL},
		}},
		config.SearchConfig{MaxItemsPerSource: 100},
		now.AddDate(0, 0, -7))

	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].Category != "Working" {
		t.Errorf("Expected item from the working feed, got %+v", items)
	}
}
