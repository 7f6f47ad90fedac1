package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/vibetools/trendscout/app/cfg"
	"github.com/vibetools/trendscout/app/collector"
	"github.com/vibetools/trendscout/app/config"
	"github.com/vibetools/trendscout/app/history"
	"github.com/vibetools/trendscout/app/scraper"
)

type emptySource struct{}

func (emptySource) Name() string { return "empty" }

func (emptySource) Fetch(ctx context.Context) ([]scraper.Item, error) { return nil, nil }

func TestPipelineQuietRunSurfacesSentinel(t *testing.T) {
	c := &cfg.Cfg{
		DataDir: t.TempDir(),
		DBPath:  filepath.Join(t.TempDir(), "history.db"),
	}
	appCfg := &config.Config{}

	store, err := history.Open(c.DBPath)
	if err != nil {
		t.Fatalf("Expected history store to open, got %v", err)
	}
	defer store.Close()

	err = runPipeline(context.Background(), c, appCfg, store, []scraper.Source{emptySource{}}, time.Now())
	if err == nil {
		t.Fatal("Expected a run with no collected items to surface the nothing-to-do condition")
	}
	if !errors.Is(err, collector.ErrNothingToDo) {
		t.Errorf("Expected error to match collector.ErrNothingToDo, got %v", err)
	}
}

func TestQuietRunClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"wrapped nothing-to-do sentinel", fmt.Errorf("%w; check network connectivity and API keys", collector.ErrNothingToDo), true},
		{"bare sentinel", collector.ErrNothingToDo, true},
		{"unrelated failure", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quietRun(tt.err); got != tt.expected {
				t.Errorf("Expected quietRun to return %v, got %v", tt.expected, got)
			}
		})
	}
}
