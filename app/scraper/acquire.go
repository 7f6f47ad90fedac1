package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/vibetools/trendscout/app/config"
)

const acquireURL = "https://acquire.com"

// Acquire scrapes startup listings from the Acquire.com marketplace, filtered
// to SaaS and software businesses. Listed revenue doubles as the score so
// higher-traction businesses rank first.
type Acquire struct {
	client    *http.Client
	userAgent string
	maxItems  int
	baseURL   string
}

func NewAcquire(client *http.Client, userAgent string, search config.SearchConfig) *Acquire {
	if client == nil {
		client = &http.Client{Timeout: 45 * time.Second}
	}
	return &Acquire{
		client:    client,
		userAgent: userAgent,
		maxItems:  search.MaxItemsPerSource,
		baseURL:   acquireURL,
	}
}

func (s *Acquire) Name() string {
	return "acquire"
}

func (s *Acquire) Fetch(ctx context.Context) ([]Item, error) {
	doc, err := fetchDocument(ctx, s.client, s.baseURL+"/explore?categories=saas,technology,software", s.userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Acquire listings: %w", err)
	}

	listings := doc.Find("[data-testid='startup-card'], .startup-card, .listing-card, article")
	if listings.Length() == 0 {
		listings = doc.Find("a[href*='/startup/'], .card, [class*='listing']")
	}

	slog.Debug("Acquire listings parsed", "elements", listings.Length())

	var items []Item
	listings.EachWithBreak(func(_ int, listing *goquery.Selection) bool {
		if len(items) >= s.maxItems {
			return false
		}

		name := strings.TrimSpace(listing.Find("h2, h3, [class*='title'], [class*='name']").First().Text())
		if len(name) < 3 {
			return true
		}

		description := strings.TrimSpace(listing.Find("p, [class*='description'], [class*='summary']").First().Text())
		revenueText := listing.Find("[class*='revenue'], [class*='price'], [class*='mrr']").First().Text()

		href, _ := listing.Find("a[href*='/startup/']").First().Attr("href")
		if href == "" {
			href, _ = listing.Attr("href")
		}
		listingURL := href
		if strings.HasPrefix(href, "/") {
			listingURL = s.baseURL + href
		}

		items = append(items, Item{
			Source:      s.Name(),
			Name:        name,
			Description: Truncate(description, 500),
			URL:         listingURL,
			Category:    "marketplace",
			Score:       parseRevenue(revenueText),
			ScrapedAt:   time.Now(),
			Metadata: map[string]any{
				"revenue_text": strings.TrimSpace(revenueText),
			},
		})
		return true
	})

	SortByScore(items)

	return items, nil
}

var revenueDigits = regexp.MustCompile(`[\d.]+`)

// parseRevenue converts listing text like "$12k MRR" or "1.5m ARR" to an
// integer dollar amount.
func parseRevenue(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0
	}

	multiplier := 1.0
	if strings.Contains(text, "k") {
		multiplier = 1000
	} else if strings.Contains(text, "m") {
		multiplier = 1000000
	}

	match := revenueDigits.FindString(strings.ReplaceAll(text, ",", ""))
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	return int(value * multiplier)
}
