package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vibetools/trendscout/app/history"
	"github.com/vibetools/trendscout/app/scraper"
)

// ErrNothingToDo means every source came back empty after deduplication.
// Downstream phases have no corpus to work with and must not run.
var ErrNothingToDo = errors.New("no new items collected")

// Result is the per-source outcome of a collection run.
type Result struct {
	Source  string
	Scraped int // items the adapter produced
	New     int // items not seen in any previous run
	Err     error
}

// Collector runs all source adapters concurrently, deduplicates their output
// against the history store, and persists newly seen items to per-source
// corpus files.
//
// Adapters fan out as goroutines; their results are drained and processed one
// at a time as each completes. Deduplication is against the history store
// only, but because fan-in processing records items as it goes, a URL
// reported by two sources in the same run is counted once, for whichever
// source happens to be processed first.
type Collector struct {
	sources []scraper.Source
	history history.Repository
	dataDir string
	now     time.Time
}

func New(sources []scraper.Source, repo history.Repository, dataDir string, now time.Time) *Collector {
	return &Collector{
		sources: sources,
		history: repo,
		dataDir: dataDir,
		now:     now,
	}
}

type fetchResult struct {
	source string
	items  []scraper.Item
	err    error
}

// Run executes the collection phase and returns the aggregate count of newly
// collected items with the per-source breakdown. A zero aggregate means there
// is nothing to analyze; the caller must skip the downstream phases. Adapter
// failures are logged and reported as zero-count results, never as a run
// failure.
func (c *Collector) Run(ctx context.Context) (int, []Result, error) {
	slog.Info("Starting data collection", "sources", len(c.sources))

	results := make(chan fetchResult, len(c.sources))
	for _, source := range c.sources {
		go func(s scraper.Source) {
			start := time.Now()
			items, err := s.Fetch(ctx)
			slog.Debug("Source fetch finished", "source", s.Name(), "items", len(items), "duration", time.Since(start), "error", err)
			results <- fetchResult{source: s.Name(), items: items, err: err}
		}(source)
	}

	total := 0
	var summary []Result
	for range c.sources {
		res := <-results

		if res.err != nil {
			slog.Error("Source failed", "source", res.source, "error", res.err)
			summary = append(summary, Result{Source: res.source, Err: res.err})
			continue
		}

		newCount, err := c.process(res.source, res.items)
		if err != nil {
			// Persistence failures are local to the source too: the run
			// continues with whatever the other branches collected.
			slog.Error("Failed to persist source results", "source", res.source, "error", err)
			summary = append(summary, Result{Source: res.source, Scraped: len(res.items), Err: err})
			continue
		}

		if newCount == 0 {
			slog.Info("No new items", "source", res.source, "scraped", len(res.items))
		} else {
			slog.Info("Collected new items", "source", res.source, "new", newCount, "scraped", len(res.items))
		}

		total += newCount
		summary = append(summary, Result{Source: res.source, Scraped: len(res.items), New: newCount})
	}

	slog.Info("Data collection complete", "new_items", total)

	return total, summary, nil
}

// process partitions a source's items into unseen and seen, persists the
// unseen set to the source's corpus file and records it in history. Items
// without a URL count as unseen every run; the history store skips them on
// record.
func (c *Collector) process(source string, items []scraper.Item) (int, error) {
	var unseen []scraper.Item
	for _, item := range items {
		if item.URL == "" {
			unseen = append(unseen, item)
			continue
		}
		seen, err := c.history.HasSeen(item.URL)
		if err != nil {
			return 0, fmt.Errorf("failed to check history: %w", err)
		}
		if !seen {
			unseen = append(unseen, item)
		}
	}

	if len(unseen) == 0 {
		return 0, nil
	}

	if err := writeCorpus(corpusPath(c.dataDir, source, c.now), unseen); err != nil {
		return 0, err
	}

	for _, item := range unseen {
		if err := c.history.Record(item.URL, item.Source, item.ScrapedAt); err != nil {
			return 0, fmt.Errorf("failed to update history: %w", err)
		}
	}

	return len(unseen), nil
}
