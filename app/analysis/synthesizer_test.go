package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vibetools/trendscout/app/llm"
	"github.com/vibetools/trendscout/app/scraper"
)

type fakeProvider struct {
	text string
	err  error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.text, p.err
}

func TestExtractJSONPlain(t *testing.T) {
	payload, err := extractJSON(`{"summary": "hello"}`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(payload) != `{"summary": "hello"}` {
		t.Errorf("Expected raw JSON back, got %q", payload)
	}
}

func TestExtractJSONFenced(t *testing.T) {
	input := "```json\n{\"summary\": \"hello\"}\n```"

	payload, err := extractJSON(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var parsed map[string]string
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if parsed["summary"] != "hello" {
		t.Errorf("Expected summary 'hello', got %q", parsed["summary"])
	}
}

func TestExtractJSONProseWrapped(t *testing.T) {
	input := `Here is the analysis you requested:

{"summary": "hello", "trending_categories": ["ai"]}

Let me know if you need anything else.`

	payload, err := extractJSON(input)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var parsed Analysis
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if parsed.Summary != "hello" {
		t.Errorf("Expected summary 'hello', got %q", parsed.Summary)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	if _, err := extractJSON("I could not produce a result."); err == nil {
		t.Error("Expected error for output without JSON")
	}
}

func TestProjectItemsKeepsTopByScore(t *testing.T) {
	items := []scraper.Item{
		{Source: "a", Name: "low", Score: 1},
		{Source: "a", Name: "high", Score: 100},
		{Source: "a", Name: "mid", Score: 50},
	}

	out := projectItems(items, 2)

	if !strings.Contains(out, "high") || !strings.Contains(out, "mid") {
		t.Errorf("Expected top two items in projection, got %s", out)
	}
	if strings.Contains(out, "low") {
		t.Errorf("Expected lowest item dropped, got %s", out)
	}

	if items[0].Name != "low" {
		t.Error("Expected input slice to be left unsorted")
	}
}

func TestProjectItemsTruncatesDescriptions(t *testing.T) {
	items := []scraper.Item{
		{Source: "a", Name: "x", Description: strings.Repeat("d", 300), Score: 1},
	}

	out := projectItems(items, 10)

	var projected []struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(out), &projected); err != nil {
		t.Fatalf("Expected valid JSON projection, got %v", err)
	}
	if len(projected[0].Description) != 200 {
		t.Errorf("Expected description capped at 200, got %d", len(projected[0].Description))
	}
}

func TestAnalyzeParsesModelOutput(t *testing.T) {
	response := `{
		"summary": "AI agents everywhere",
		"trending_categories": ["agents", "micro-saas"],
		"top_opportunities": [
			{"rank": 1, "name": "Agent Monitor", "vibe_score": 9, "url": "https://example.com"}
		]
	}`

	s := NewSynthesizer(llm.NewClient(&fakeProvider{text: response}), 200, 15)

	result, err := s.Analyze(context.Background(), []scraper.Item{{Name: "x", Score: 1}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Summary != "AI agents everywhere" {
		t.Errorf("Expected summary to be parsed, got %q", result.Summary)
	}
	if len(result.TopOpportunities) != 1 || result.TopOpportunities[0].Rank != 1 {
		t.Errorf("Expected one opportunity with rank 1, got %+v", result.TopOpportunities)
	}
}

func TestAnalyzeFailsWhenAllProvidersFail(t *testing.T) {
	s := NewSynthesizer(llm.NewClient(&fakeProvider{err: errors.New("quota")}), 200, 15)

	if _, err := s.Analyze(context.Background(), []scraper.Item{{Name: "x"}}); err == nil {
		t.Error("Expected error when generation fails")
	}
}

func TestAnalyzeTrendingToolsIsBestEffort(t *testing.T) {
	s := NewSynthesizer(llm.NewClient(&fakeProvider{err: errors.New("quota")}), 200, 15)

	tools := s.AnalyzeTrendingTools(context.Background(), []scraper.Item{{Name: "x", URL: "https://example.com"}})
	if tools != nil {
		t.Errorf("Expected nil tools on failure, got %+v", tools)
	}
}

func TestBuildReportDerivesPicks(t *testing.T) {
	a := &Analysis{
		Summary:            "summary",
		TrendingCategories: []string{"agents"},
		TopOpportunities: []Opportunity{
			{Rank: 1, Name: "strong", VibeScore: 9},
			{Rank: 2, Name: "borderline", VibeScore: 7},
			{Rank: 3, Name: "weak", VibeScore: 5},
		},
	}

	start := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	report := BuildReport(a, 42, start, end)

	if report.TotalItems != 42 {
		t.Errorf("Expected 42 total items, got %d", report.TotalItems)
	}
	if len(report.VibeCodePicks) != 2 {
		t.Fatalf("Expected 2 picks at score >= 7, got %d", len(report.VibeCodePicks))
	}
	if report.VibeCodePicks[0].Name != "strong" || report.VibeCodePicks[1].Name != "borderline" {
		t.Errorf("Expected picks ordered as in analysis, got %+v", report.VibeCodePicks)
	}
	if len(report.TopOpportunities) != 3 {
		t.Errorf("Expected all opportunities carried over, got %d", len(report.TopOpportunities))
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)

	a := &Analysis{
		Summary:            "summary",
		TrendingCategories: []string{"agents", "devtools"},
		TopOpportunities: []Opportunity{
			{
				Rank:               1,
				Name:               "strong",
				Source:             "hackernews",
				Description:        "a build idea",
				WhyVibeCodeable:    "small surface",
				VibeScore:          9,
				EstimatedBuildTime: "1 week",
				SimilarExamples:    []string{"example.com"},
				URL:                "https://example.com/strong",
			},
			{Rank: 2, Name: "weak", VibeScore: 4},
		},
		TrendingToolsAnalysis: []TrendingTool{
			{
				Name:             "tool",
				URL:              "https://tool.example.com",
				WhatItDoes:       "automates things",
				Validation:       "1k upvotes",
				Review:           "solid",
				RevenuePotential: []string{"subscriptions"},
			},
		},
	}

	report := BuildReport(a, 3, now.AddDate(0, 0, -7), now)

	if _, _, err := SaveArtifacts(dir, now, a, report); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	loaded, err := LoadReport(dir, now)
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}

	if !loaded.WeekStart.Equal(report.WeekStart) {
		t.Errorf("Expected week start %v round-tripped, got %v", report.WeekStart, loaded.WeekStart)
	}
	if !loaded.WeekEnd.Equal(report.WeekEnd) {
		t.Errorf("Expected week end %v round-tripped, got %v", report.WeekEnd, loaded.WeekEnd)
	}
	if loaded.TotalItems != report.TotalItems {
		t.Errorf("Expected %d total items, got %d", report.TotalItems, loaded.TotalItems)
	}
	if loaded.AISummary != report.AISummary {
		t.Errorf("Expected summary %q round-tripped, got %q", report.AISummary, loaded.AISummary)
	}
	if !reflect.DeepEqual(loaded.TopOpportunities, report.TopOpportunities) {
		t.Errorf("Expected opportunities round-tripped, got %+v", loaded.TopOpportunities)
	}
	if !reflect.DeepEqual(loaded.TrendingCategories, report.TrendingCategories) {
		t.Errorf("Expected categories round-tripped, got %+v", loaded.TrendingCategories)
	}
	if !reflect.DeepEqual(loaded.VibeCodePicks, report.VibeCodePicks) {
		t.Errorf("Expected picks round-tripped, got %+v", loaded.VibeCodePicks)
	}
	if !reflect.DeepEqual(loaded.TrendingToolsAnalysis, report.TrendingToolsAnalysis) {
		t.Errorf("Expected trending tools round-tripped, got %+v", loaded.TrendingToolsAnalysis)
	}
	if loaded.GeneratedAt.IsZero() {
		t.Error("Expected a generated_at timestamp on the loaded report")
	}
}
