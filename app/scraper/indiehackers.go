package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/vibetools/trendscout/app/config"
)

const indieHackersURL = "https://www.indiehackers.com"

// IndieHackers scrapes the community feed page for trending posts and product
// launches. The markup changes often, so selectors are tried broadest-first.
type IndieHackers struct {
	client    *http.Client
	userAgent string
	maxItems  int
	baseURL   string
}

func NewIndieHackers(client *http.Client, userAgent string, search config.SearchConfig) *IndieHackers {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &IndieHackers{
		client:    client,
		userAgent: userAgent,
		maxItems:  search.MaxItemsPerSource,
		baseURL:   indieHackersURL,
	}
}

func (s *IndieHackers) Name() string {
	return "indiehackers"
}

func (s *IndieHackers) Fetch(ctx context.Context) ([]Item, error) {
	doc, err := fetchDocument(ctx, s.client, s.baseURL+"/feed", s.userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Indie Hackers feed: %w", err)
	}

	posts := doc.Find("article, .feed-item, [data-test='feed-item']")
	if posts.Length() == 0 {
		posts = doc.Find(".post, .content-item")
	}

	slog.Debug("Indie Hackers feed parsed", "elements", posts.Length())

	var items []Item
	posts.EachWithBreak(func(_ int, post *goquery.Selection) bool {
		if len(items) >= s.maxItems {
			return false
		}

		title := strings.TrimSpace(post.Find("h2, h3, .title, [class*='title']").First().Text())
		if title == "" {
			return true
		}

		href, _ := post.Find("a[href*='/post/']").First().Attr("href")
		postURL := href
		if strings.HasPrefix(href, "/") {
			postURL = s.baseURL + href
		}

		description := strings.TrimSpace(post.Find("p, .description, .excerpt, [class*='body']").First().Text())

		score := parseCount(post.Find("[class*='upvote'], [class*='vote'], .score").First().Text())

		items = append(items, Item{
			Source:      s.Name(),
			Name:        title,
			Description: Truncate(description, 500),
			URL:         postURL,
			Category:    "indie-hackers",
			Score:       score,
			ScrapedAt:   time.Now(),
			Metadata: map[string]any{
				"scraped_from": "feed",
			},
		})
		return true
	})

	SortByScore(items)

	return items, nil
}

// fetchDocument retrieves a page and parses it with goquery.
func fetchDocument(ctx context.Context, client *http.Client, rawURL, userAgent string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// parseCount extracts a leading integer from text like "42 upvotes".
func parseCount(text string) int {
	fields := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r < '0' || r > '9'
	})
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}
