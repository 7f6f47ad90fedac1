package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibetools/trendscout/app/config"
)

func TestBlueskyFetchWithoutCredentials(t *testing.T) {
	s := NewBluesky(nil, "test-agent", "", "", config.BlueskyConfig{Queries: []string{"#buildinpublic"}})

	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected missing credentials to be non-fatal, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected no items without credentials, got %d", len(items))
	}
}

func TestBlueskyFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/com.atproto.server.createSession":
			w.Write([]byte(`{"accessJwt": "jwt-token", "did": "did:plc:test"}`))
		case "/app.bsky.feed.searchPosts":
			if auth := r.Header.Get("Authorization"); auth != "Bearer jwt-token" {
				t.Errorf("Expected bearer token, got %q", auth)
			}
			w.Write([]byte(`{
				"posts": [
					{"uri": "at://did:plc:abc/app.bsky.feed.post/xyz123", "record": {"text": "Shipped my MVP today! #buildinpublic"}, "author": {"handle": "maker.bsky.social", "displayName": "Maker"}, "likeCount": 10, "repostCount": 5, "replyCount": 3},
					{"uri": "at://did:plc:def/app.bsky.feed.post/empty", "record": {"text": ""}, "author": {"handle": "quiet.bsky.social"}}
				]
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	s := NewBluesky(nil, "test-agent", "maker.bsky.social", "app-password", config.BlueskyConfig{Queries: []string{"#buildinpublic"}})
	s.baseURL = server.URL

	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected empty post skipped, got %d items", len(items))
	}

	item := items[0]
	if item.Score != 10+2*5+3 {
		t.Errorf("Expected engagement score 23, got %d", item.Score)
	}
	if item.URL != "https://bsky.app/profile/maker.bsky.social/post/xyz123" {
		t.Errorf("Expected web URL, got %q", item.URL)
	}
	if item.Category != "#buildinpublic" {
		t.Errorf("Expected query as category, got %q", item.Category)
	}
}

func TestBlueskyFetchAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s := NewBluesky(nil, "test-agent", "handle", "bad-password", config.BlueskyConfig{Queries: []string{"q"}})
	s.baseURL = server.URL

	if _, err := s.Fetch(context.Background()); err == nil {
		t.Error("Expected error on failed authentication")
	}
}

func TestATURIToWebURL(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		handle   string
		expected string
	}{
		{"valid uri", "at://did:plc:abc/app.bsky.feed.post/3k44", "maker.bsky.social", "https://bsky.app/profile/maker.bsky.social/post/3k44"},
		{"trailing slash", "at://did:plc:abc/", "maker.bsky.social", ""},
		{"no slash", "garbage", "maker.bsky.social", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := atURIToWebURL(tt.uri, tt.handle); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
