package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/vibetools/trendscout/app/analysis"
	"github.com/vibetools/trendscout/app/api"
	"github.com/vibetools/trendscout/app/cfg"
	"github.com/vibetools/trendscout/app/collector"
	"github.com/vibetools/trendscout/app/config"
	"github.com/vibetools/trendscout/app/history"
	"github.com/vibetools/trendscout/app/llm"
	"github.com/vibetools/trendscout/app/report"
	"github.com/vibetools/trendscout/app/scraper"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	initLogger(c.Debug)

	appCfg, err := config.Load(c.ConfigFile)
	if err != nil {
		slog.Error("Failed to load pipeline configuration", "file", c.ConfigFile, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, c, appCfg); err != nil {
		if quietRun(err) {
			slog.Warn("No new items collected, nothing to analyze this run")
			return
		}
		slog.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}
}

// quietRun reports whether err is the benign all-sources-empty outcome
// rather than a failure. A quiet week exits zero.
func quietRun(err error) bool {
	return errors.Is(err, collector.ErrNothingToDo)
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})

	slog.SetDefault(slog.New(handler))
}

func run(ctx context.Context, c *cfg.Cfg, appCfg *config.Config) error {
	slog.Info("Starting trendscout", "version", c.Version)

	now := time.Now()

	store, err := history.Open(c.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	switch {
	case c.Serve:
		return runServe(ctx, c, store)
	case c.Scrape:
		_, err := runScrape(ctx, c, appCfg, store, now)
		return err
	case c.Analyze:
		_, _, err := runAnalyze(ctx, c, appCfg, now)
		return err
	case c.Export:
		rep, a, err := loadArtifacts(c, now)
		if err != nil {
			return err
		}
		_, err = runExport(ctx, c, appCfg, rep, a)
		return err
	case c.Email:
		rep, a, err := loadArtifacts(c, now)
		if err != nil {
			return err
		}
		return runEmail(c, appCfg, rep, a, "")
	default:
		return runPipeline(ctx, c, appCfg, store, buildSources(c, appCfg, now), now)
	}
}

// runPipeline executes the full weekly run: collect, analyze, export, render,
// email. Collection is skipped when today's corpus already exists unless
// forced; delivery failures are logged but never abort the run.
func runPipeline(ctx context.Context, c *cfg.Cfg, appCfg *config.Config, store *history.Store, sources []scraper.Source, now time.Time) error {
	start := time.Now()

	dataDir, err := c.ScrapedDataDir(now)
	if err != nil {
		return err
	}

	col := collector.New(sources, store, dataDir, now)

	var total int
	if existing, ok := col.AlreadyCollected(); ok && !c.Force {
		slog.Warn("Scrapers already ran today, skipping collection", "items", existing)
		slog.Info("Use --force to re-scrape")
		total = existing
	} else {
		total, _, err = col.Run(ctx)
		if err != nil {
			return err
		}
	}

	if total == 0 {
		return fmt.Errorf("%w; check network connectivity and API keys", collector.ErrNothingToDo)
	}

	rep, a, err := runAnalyze(ctx, c, appCfg, now)
	if err != nil {
		return err
	}

	sheetURL, err := runExport(ctx, c, appCfg, rep, a)
	if err != nil {
		slog.Warn("Sheets export failed, continuing without it", "error", err)
	}

	reportsDir, err := c.ReportsDir(now)
	if err != nil {
		return err
	}
	htmlPath, err := report.WriteHTML(reportsDir, now, rep, a, sheetURL)
	if err != nil {
		slog.Warn("HTML report generation failed", "error", err)
	}

	if err := runEmail(c, appCfg, rep, a, sheetURL); err != nil {
		slog.Warn("Email delivery failed", "error", err)
	}

	slog.Info("Pipeline complete",
		"items", total,
		"opportunities", len(rep.TopOpportunities),
		"report", htmlPath,
		"elapsed", time.Since(start).Round(time.Second))

	return nil
}

func runScrape(ctx context.Context, c *cfg.Cfg, appCfg *config.Config, store *history.Store, now time.Time) (int, error) {
	dataDir, err := c.ScrapedDataDir(now)
	if err != nil {
		return 0, err
	}

	col := collector.New(buildSources(c, appCfg, now), store, dataDir, now)

	if existing, ok := col.AlreadyCollected(); ok && !c.Force {
		slog.Warn("Scrapers already ran today, skipping collection", "items", existing)
		return existing, nil
	}

	total, _, err := col.Run(ctx)
	return total, err
}

func runAnalyze(ctx context.Context, c *cfg.Cfg, appCfg *config.Config, now time.Time) (*analysis.TrendReport, *analysis.Analysis, error) {
	dataDir, err := c.ScrapedDataDir(now)
	if err != nil {
		return nil, nil, err
	}

	items := analysis.LoadCorpus(dataDir, now)
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("no scraped data found; run the scrapers first")
	}
	slog.Info("Loaded scraped corpus", "items", len(items))

	client, err := newLLMClient(ctx, c, appCfg)
	if err != nil {
		return nil, nil, err
	}

	synth := analysis.NewSynthesizer(client, appCfg.AI.MaxItems, appCfg.AI.MaxTrending)

	a, err := synth.Analyze(ctx, items)
	if err != nil {
		return nil, nil, err
	}

	trending := analysis.LoadTrending(dataDir, now)
	if appCfg.AI.EnrichTools && len(trending) > 0 {
		trending = analysis.NewEnricher(c.UserAgent).EnrichTools(ctx, trending)
	}
	a.TrendingToolsAnalysis = synth.AnalyzeTrendingTools(ctx, trending)

	weekStart, weekEnd := cfg.WeekRange(now)
	rep := analysis.BuildReport(a, len(items), weekStart, weekEnd)

	reportsDir, err := c.ReportsDir(now)
	if err != nil {
		return nil, nil, err
	}
	if _, _, err := analysis.SaveArtifacts(reportsDir, now, a, rep); err != nil {
		return nil, nil, err
	}

	return rep, a, nil
}

func runExport(ctx context.Context, c *cfg.Cfg, appCfg *config.Config, rep *analysis.TrendReport, a *analysis.Analysis) (string, error) {
	exporter, err := report.NewSheetsExporter(ctx, c.SheetsCredentials, appCfg.Report.SpreadsheetName)
	if err != nil {
		return "", err
	}

	return exporter.Export(ctx, rep, a)
}

func runEmail(c *cfg.Cfg, appCfg *config.Config, rep *analysis.TrendReport, a *analysis.Analysis, sheetURL string) error {
	mailer, err := report.NewMailer(c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPassword, c.EmailFrom)
	if err != nil {
		return err
	}

	return mailer.SendDigest(appCfg.Report.Recipients, rep, a, sheetURL)
}

func runServe(ctx context.Context, c *cfg.Cfg, store *history.Store) error {
	handler := api.NewHandler(c.DataDir, store, c.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Serving reports", "addr", "http://localhost:"+c.Port+"/reports")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down report server")
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

func buildSources(c *cfg.Cfg, appCfg *config.Config, now time.Time) []scraper.Source {
	weekStart, _ := cfg.WeekRange(now)
	httpClient := &http.Client{Timeout: 20 * time.Second}

	sources := []scraper.Source{
		scraper.NewHackerNews(httpClient, c.UserAgent, appCfg.HackerNews, appCfg.Search, weekStart),
		scraper.NewReddit(c.RedditClientID, c.RedditClientSecret, c.UserAgent, appCfg.Reddit),
		scraper.NewProductHunt(httpClient, c.UserAgent, c.ProductHuntKey, c.ProductHuntSecret, appCfg.ProductHunt, appCfg.Search, weekStart),
		scraper.NewBluesky(httpClient, c.UserAgent, c.BlueskyHandle, c.BlueskyAppPassword, appCfg.Bluesky),
		scraper.NewIndieHackers(httpClient, c.UserAgent, appCfg.Search),
		scraper.NewAcquire(httpClient, c.UserAgent, appCfg.Search),
		scraper.NewTrendingAI(httpClient, c.UserAgent, c.ProductHuntKey, c.ProductHuntSecret, weekStart),
	}

	if len(appCfg.RSS.Feeds) > 0 {
		sources = append(sources, scraper.NewRSS(c.UserAgent, appCfg.RSS, appCfg.Search, weekStart))
	}

	return sources
}

func loadArtifacts(c *cfg.Cfg, now time.Time) (*analysis.TrendReport, *analysis.Analysis, error) {
	reportsDir, err := c.ReportsDir(now)
	if err != nil {
		return nil, nil, err
	}

	rep, err := analysis.LoadReport(reportsDir, now)
	if err != nil {
		return nil, nil, fmt.Errorf("no report for today; run the analyzer first: %w", err)
	}

	a, err := analysis.LoadAnalysis(reportsDir, now)
	if err != nil {
		slog.Warn("Analysis artifact missing, delivery will use report data only", "error", err)
		a = nil
	}

	return rep, a, nil
}

func newLLMClient(ctx context.Context, c *cfg.Cfg, appCfg *config.Config) (*llm.Client, error) {
	var providers []llm.Provider

	if gemini, err := llm.NewGeminiProvider(ctx, c.GeminiAPIKey, appCfg.AI.GeminiModel); err != nil {
		slog.Warn("Gemini provider not available", "error", err)
	} else {
		providers = append(providers, gemini)
	}

	if groq, err := llm.NewGroqProvider(c.GroqAPIKey, appCfg.AI.GroqModel); err != nil {
		slog.Warn("Groq provider not available", "error", err)
	} else {
		providers = append(providers, groq)
	}

	client := llm.NewClient(providers...)
	if !client.Available() {
		return nil, llm.ErrNoProviders
	}

	return client, nil
}
