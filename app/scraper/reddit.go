package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/vibetools/trendscout/app/config"
)

const (
	redditAPIBase   = "https://oauth.reddit.com"
	redditPublicAPI = "https://www.reddit.com"
	redditAuthURL   = "https://www.reddit.com/api/v1/access_token"
)

// Reddit fetches the week's top posts from the configured startup subreddits.
// With client credentials it uses the OAuth API; without them it falls back to
// the public JSON endpoints.
type Reddit struct {
	http       *httpJSON
	anonymous  bool
	subreddits []string
	maxPerSub  int
	limiter    *rate.Limiter
	baseURL    string
}

func NewReddit(clientID, clientSecret, userAgent string, cfg config.RedditConfig) *Reddit {
	r := &Reddit{
		subreddits: cfg.Subreddits,
		maxPerSub:  cfg.MaxPerSub,
		limiter:    newPacer(),
	}

	if clientID == "" || clientSecret == "" {
		slog.Warn("Reddit API credentials not set, using public API")
		r.anonymous = true
		r.http = newHTTPJSON(nil, userAgent)
		r.baseURL = redditPublicAPI
		return r
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     redditAuthURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	r.http = newHTTPJSON(conf.Client(context.Background()), userAgent)
	r.baseURL = redditAPIBase

	return r
}

func (s *Reddit) Name() string {
	return "reddit"
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	Permalink     string  `json:"permalink"`
	Score         int     `json:"score"`
	Author        string  `json:"author"`
	NumComments   int     `json:"num_comments"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	CreatedUTC    float64 `json:"created_utc"`
	LinkFlairText string  `json:"link_flair_text"`
	Stickied      bool    `json:"stickied"`
}

func (s *Reddit) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item

	for _, subreddit := range s.subreddits {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		subItems, err := s.fetchSubreddit(ctx, subreddit)
		if err != nil {
			slog.Warn("Failed to fetch subreddit", "subreddit", subreddit, "error", err)
			continue
		}
		items = append(items, subItems...)
	}

	SortByScore(items)

	return items, nil
}

func (s *Reddit) fetchSubreddit(ctx context.Context, subreddit string) ([]Item, error) {
	params := url.Values{}
	params.Set("t", "week")
	params.Set("limit", fmt.Sprintf("%d", s.maxPerSub))

	var listing redditListing
	endpoint := fmt.Sprintf("%s/r/%s/top.json", s.baseURL, subreddit)
	if err := s.http.get(ctx, endpoint, params, nil, &listing); err != nil {
		return nil, err
	}

	var items []Item
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Stickied {
			continue
		}

		description := Truncate(post.Selftext, 500)

		items = append(items, Item{
			Source:      s.Name(),
			Name:        post.Title,
			Description: description,
			URL:         "https://reddit.com" + post.Permalink,
			Category:    "r/" + subreddit,
			Score:       post.Score,
			ScrapedAt:   time.Now(),
			Metadata: map[string]any{
				"subreddit":       subreddit,
				"author":          post.Author,
				"num_comments":    post.NumComments,
				"upvote_ratio":    post.UpvoteRatio,
				"created_utc":     post.CreatedUTC,
				"link_flair_text": post.LinkFlairText,
			},
		})
	}

	return items, nil
}
