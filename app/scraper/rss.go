package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/vibetools/trendscout/app/config"
)

// RSS collects startup-news coverage from the configured feeds. Feed entries
// carry no engagement signal, so the score stays zero and these items rely on
// the model finding them interesting rather than on popularity ranking.
type RSS struct {
	parser    *gofeed.Parser
	feeds     []config.RSSFeed
	maxItems  int
	weekStart time.Time
	limiter   *rate.Limiter
}

func NewRSS(userAgent string, cfg config.RSSConfig, search config.SearchConfig, weekStart time.Time) *RSS {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	return &RSS{
		parser:    parser,
		feeds:     cfg.Feeds,
		maxItems:  search.MaxItemsPerSource,
		weekStart: weekStart,
		limiter:   newPacer(),
	}
}

func (s *RSS) Name() string {
	return "rss"
}

func (s *RSS) Fetch(ctx context.Context) ([]Item, error) {
	var items []Item

	for _, feedCfg := range s.feeds {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		feed, err := s.parser.ParseURLWithContext(feedCfg.URL, ctx)
		if err != nil {
			slog.Warn("Failed to parse feed", "feed", feedCfg.Name, "error", err)
			continue
		}

		for _, entry := range feed.Items {
			if len(items) >= s.maxItems {
				break
			}
			if entry.Title == "" {
				continue
			}
			// Only entries published inside the analysis window
			if entry.PublishedParsed == nil || entry.PublishedParsed.Before(s.weekStart) {
				continue
			}

			var author string
			if len(entry.Authors) > 0 {
				author = entry.Authors[0].Name
			}

			items = append(items, Item{
				Source:      s.Name(),
				Name:        entry.Title,
				Description: Truncate(entry.Description, 500),
				URL:         entry.Link,
				Category:    feedCfg.Name,
				Score:       0,
				ScrapedAt:   time.Now(),
				Metadata: map[string]any{
					"feed":         feedCfg.Name,
					"author":       author,
					"published_at": entry.PublishedParsed.Format(time.RFC3339),
				},
			})
		}
	}

	return items, nil
}
