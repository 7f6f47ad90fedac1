package analysis

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vibetools/trendscout/app/scraper"
)

const dateLayout = "20060102"

// LoadCorpus reads every corpus file written for the run date and returns the
// combined item list. Output artifacts and unreadable files are skipped.
func LoadCorpus(dir string, now time.Time) []scraper.Item {
	today := now.Format(dateLayout)

	var all []scraper.Item
	matches, _ := filepath.Glob(filepath.Join(dir, "*.json"))
	for _, path := range matches {
		name := filepath.Base(path)
		if !strings.Contains(name, today) {
			continue
		}
		if strings.HasPrefix(name, "analysis_") || strings.HasPrefix(name, "trend_report_") {
			continue
		}

		items, err := readItems(path)
		if err != nil {
			slog.Warn("Skipping unreadable corpus file", "file", name, "error", err)
			continue
		}

		slog.Debug("Loaded corpus file", "file", name, "items", len(items))
		all = append(all, items...)
	}

	return all
}

// LoadTrending reads only the trending tools corpus for the run date.
func LoadTrending(dir string, now time.Time) []scraper.Item {
	today := now.Format(dateLayout)

	var all []scraper.Item
	matches, _ := filepath.Glob(filepath.Join(dir, "trending_ai_*.json"))
	for _, path := range matches {
		if !strings.Contains(filepath.Base(path), today) {
			continue
		}

		items, err := readItems(path)
		if err != nil {
			slog.Warn("Skipping unreadable trending corpus file", "file", filepath.Base(path), "error", err)
			continue
		}
		all = append(all, items...)
	}

	return all
}

func readItems(path string) ([]scraper.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []scraper.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	return items, nil
}
