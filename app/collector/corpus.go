package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vibetools/trendscout/app/scraper"
)

const dateLayout = "20060102"

func corpusPath(dir, source string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.json", source, now.Format(dateLayout)))
}

func writeCorpus(path string, items []scraper.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}

	return nil
}

// AlreadyCollected reports whether corpus files for the run date already
// exist and how many items they hold in total. The pipeline uses it to skip
// the collection phase on a re-run within the same day unless forced.
func (c *Collector) AlreadyCollected() (int, bool) {
	pattern := filepath.Join(c.dataDir, "*_"+c.now.Format(dateLayout)+".json")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return 0, false
	}

	total := 0
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var items []scraper.Item
		if err := json.Unmarshal(data, &items); err != nil {
			continue
		}
		total += len(items)
	}

	return total, true
}
