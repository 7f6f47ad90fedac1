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

const blueskyAPIURL = "https://bsky.social/xrpc"

// Bluesky searches the AT Protocol firehose for build-in-public and startup
// posts. Without credentials the adapter reports zero items rather than
// failing, matching the optional nature of this source.
type Bluesky struct {
	http     *httpJSON
	handle   string
	password string
	queries  []string
	limiter  *rate.Limiter
	baseURL  string
}

func NewBluesky(client *http.Client, userAgent, handle, appPassword string, cfg config.BlueskyConfig) *Bluesky {
	return &Bluesky{
		http:     newHTTPJSON(client, userAgent),
		handle:   handle,
		password: appPassword,
		queries:  cfg.Queries,
		limiter:  newPacer(),
		baseURL:  blueskyAPIURL,
	}
}

func (s *Bluesky) Name() string {
	return "bluesky"
}

type blueskySession struct {
	AccessJwt string `json:"accessJwt"`
	Did       string `json:"did"`
}

type blueskySearchResponse struct {
	Posts []struct {
		URI    string `json:"uri"`
		Record struct {
			Text      string `json:"text"`
			CreatedAt string `json:"createdAt"`
		} `json:"record"`
		Author struct {
			Handle      string `json:"handle"`
			DisplayName string `json:"displayName"`
		} `json:"author"`
		LikeCount   int `json:"likeCount"`
		RepostCount int `json:"repostCount"`
		ReplyCount  int `json:"replyCount"`
	} `json:"posts"`
}

func (s *Bluesky) Fetch(ctx context.Context) ([]Item, error) {
	if s.handle == "" || s.password == "" {
		slog.Warn("Bluesky credentials not set, skipping")
		return nil, nil
	}

	var session blueskySession
	err := s.http.post(ctx, s.baseURL+"/com.atproto.server.createSession", map[string]string{
		"identifier": s.handle,
		"password":   s.password,
	}, nil, &session)
	if err != nil {
		return nil, fmt.Errorf("Bluesky auth failed: %w", err)
	}

	headers := map[string]string{"Authorization": "Bearer " + session.AccessJwt}

	var items []Item
	for _, query := range s.queries {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("q", query)
		params.Set("limit", "25")

		var resp blueskySearchResponse
		if err := s.http.get(ctx, s.baseURL+"/app.bsky.feed.searchPosts", params, headers, &resp); err != nil {
			slog.Warn("Bluesky search failed", "query", query, "error", err)
			continue
		}

		for _, post := range resp.Posts {
			text := post.Record.Text
			if text == "" {
				continue
			}

			displayName := post.Author.DisplayName
			if displayName == "" {
				displayName = post.Author.Handle
			}

			// Engagement signal combines likes, reposts and replies
			score := post.LikeCount + 2*post.RepostCount + post.ReplyCount

			items = append(items, Item{
				Source:      s.Name(),
				Name:        Truncate(text, 100),
				Description: text,
				URL:         atURIToWebURL(post.URI, post.Author.Handle),
				Category:    query,
				Score:       score,
				ScrapedAt:   time.Now(),
				Metadata: map[string]any{
					"author":       displayName,
					"handle":       post.Author.Handle,
					"like_count":   post.LikeCount,
					"repost_count": post.RepostCount,
					"reply_count":  post.ReplyCount,
					"created_at":   post.Record.CreatedAt,
				},
			})
		}
	}

	SortByScore(items)

	return items, nil
}

// atURIToWebURL converts an at:// post URI to its public bsky.app URL.
func atURIToWebURL(uri, handle string) string {
	// at://did:plc:xyz/app.bsky.feed.post/<rkey>
	idx := strings.LastIndex(uri, "/")
	if idx < 0 || idx == len(uri)-1 {
		return ""
	}
	return fmt.Sprintf("https://bsky.app/profile/%s/post/%s", handle, uri[idx+1:])
}
