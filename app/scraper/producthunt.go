package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibetools/trendscout/app/config"
)

const (
	productHuntGraphQLURL = "https://api.producthunt.com/v2/api/graphql"
	productHuntTokenURL   = "https://api.producthunt.com/v2/oauth/token"
)

const productHuntPostsQuery = `
query GetPosts($first: Int!, $after: String, $postedAfter: DateTime) {
  posts(first: $first, after: $after, postedAfter: $postedAfter, order: VOTES) {
    edges {
      node {
        id
        name
        tagline
        description
        url
        website
        votesCount
        commentsCount
        createdAt
        topics {
          edges {
            node {
              slug
              name
            }
          }
        }
      }
      cursor
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`

// ProductHunt fetches the week's top launches through the public GraphQL API,
// filtered to the configured topic slugs.
type ProductHunt struct {
	http      *httpJSON
	apiKey    string
	apiSecret string
	topics    []string
	maxItems  int
	weekStart time.Time
	limiter   *rate.Limiter
	baseURL   string
	tokenURL  string
}

func NewProductHunt(client *http.Client, userAgent, apiKey, apiSecret string, cfg config.ProductHuntConfig, search config.SearchConfig, weekStart time.Time) *ProductHunt {
	return &ProductHunt{
		http:      newHTTPJSON(client, userAgent),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		topics:    cfg.Categories,
		maxItems:  search.MaxItemsPerSource,
		weekStart: weekStart,
		limiter:   newPacer(),
		baseURL:   productHuntGraphQLURL,
		tokenURL:  productHuntTokenURL,
	}
}

func (s *ProductHunt) Name() string {
	return "producthunt"
}

type phTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type phGraphQLResponse struct {
	Data struct {
		Posts struct {
			Edges []struct {
				Node   phPost `json:"node"`
				Cursor string `json:"cursor"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
		} `json:"posts"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type phPost struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Tagline       string `json:"tagline"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	Website       string `json:"website"`
	VotesCount    int    `json:"votesCount"`
	CommentsCount int    `json:"commentsCount"`
	CreatedAt     string `json:"createdAt"`
	Topics        struct {
		Edges []struct {
			Node struct {
				Slug string `json:"slug"`
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"topics"`
}

func (p phPost) topicSlugs() []string {
	slugs := make([]string, 0, len(p.Topics.Edges))
	for _, edge := range p.Topics.Edges {
		slugs = append(slugs, edge.Node.Slug)
	}
	return slugs
}

// authHeaders exchanges the API credentials for a bearer token. Running
// without credentials is allowed, just rate limited harder by the API.
func (s *ProductHunt) authHeaders(ctx context.Context) map[string]string {
	if s.apiKey == "" || s.apiSecret == "" {
		return nil
	}

	var token phTokenResponse
	err := s.http.post(ctx, s.tokenURL, map[string]string{
		"client_id":     s.apiKey,
		"client_secret": s.apiSecret,
		"grant_type":    "client_credentials",
	}, nil, &token)
	if err != nil || token.AccessToken == "" {
		slog.Warn("Product Hunt authentication failed", "error", err)
		return nil
	}

	return map[string]string{"Authorization": "Bearer " + token.AccessToken}
}

func (s *ProductHunt) Fetch(ctx context.Context) ([]Item, error) {
	headers := s.authHeaders(ctx)

	var items []Item
	var cursor string

	for len(items) < s.maxItems {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		first := s.maxItems - len(items)
		if first > 50 {
			first = 50
		}
		variables := map[string]any{
			"first":       first,
			"postedAfter": s.weekStart.Format(time.RFC3339),
		}
		if cursor != "" {
			variables["after"] = cursor
		}

		var resp phGraphQLResponse
		err := s.http.post(ctx, s.baseURL, map[string]any{
			"query":     productHuntPostsQuery,
			"variables": variables,
		}, headers, &resp)
		if err != nil {
			if len(items) > 0 {
				slog.Warn("Product Hunt pagination aborted", "error", err)
				break
			}
			return nil, fmt.Errorf("failed to fetch Product Hunt posts: %w", err)
		}
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("Product Hunt API error: %s", resp.Errors[0].Message)
		}

		edges := resp.Data.Posts.Edges
		if len(edges) == 0 {
			break
		}

		for _, edge := range edges {
			item, ok := s.toItem(edge.Node)
			if ok {
				items = append(items, item)
			}
		}

		if !resp.Data.Posts.PageInfo.HasNextPage {
			break
		}
		cursor = resp.Data.Posts.PageInfo.EndCursor
	}

	return items, nil
}

func (s *ProductHunt) toItem(post phPost) (Item, bool) {
	slugs := post.topicSlugs()

	var relevant []string
	for _, slug := range slugs {
		for _, target := range s.topics {
			if slug == target {
				relevant = append(relevant, slug)
				break
			}
		}
	}
	// Skip posts tagged with topics we do not track
	if len(relevant) == 0 && len(slugs) > 0 {
		return Item{}, false
	}

	category := "general"
	if len(relevant) > 0 {
		category = relevant[0]
	}

	itemURL := post.Website
	if itemURL == "" {
		itemURL = post.URL
	}

	description := strings.TrimSpace(post.Tagline + "\n\n" + post.Description)

	return Item{
		Source:      s.Name(),
		Name:        post.Name,
		Description: description,
		URL:         itemURL,
		Category:    category,
		Score:       post.VotesCount,
		ScrapedAt:   time.Now(),
		Metadata: map[string]any{
			"ph_url":     post.URL,
			"comments":   post.CommentsCount,
			"topics":     slugs,
			"created_at": post.CreatedAt,
		},
	}, true
}
