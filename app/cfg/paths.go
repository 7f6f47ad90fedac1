package cfg

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DateStr returns the date stamp embedded in corpus and report filenames.
func DateStr(t time.Time) string {
	return t.Format("20060102")
}

// WeekRange returns the analysis window: the past seven days ending now.
// Computed once per run and passed down so every component agrees on it.
func WeekRange(now time.Time) (time.Time, time.Time) {
	return now.AddDate(0, 0, -7), now
}

// OutputDir returns (and creates) the per-day output directory.
func (c *Cfg) OutputDir(t time.Time) (string, error) {
	dir := filepath.Join(c.DataDir, DateStr(t))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return dir, nil
}

// ScrapedDataDir returns (and creates) the directory for raw corpus files.
func (c *Cfg) ScrapedDataDir(t time.Time) (string, error) {
	base, err := c.OutputDir(t)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "scraped_data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scraped data directory: %w", err)
	}
	return dir, nil
}

// ReportsDir returns (and creates) the directory for generated reports.
func (c *Cfg) ReportsDir(t time.Time) (string, error) {
	base, err := c.OutputDir(t)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	return dir, nil
}
