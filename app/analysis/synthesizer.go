package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vibetools/trendscout/app/llm"
	"github.com/vibetools/trendscout/app/scraper"
)

const vibePickThreshold = 7

// Synthesizer turns a scraped corpus into a structured trend analysis via a
// single LLM round trip per prompt.
type Synthesizer struct {
	llm         *llm.Client
	maxItems    int
	maxTrending int
}

func NewSynthesizer(client *llm.Client, maxItems, maxTrending int) *Synthesizer {
	return &Synthesizer{llm: client, maxItems: maxItems, maxTrending: maxTrending}
}

// Analyze runs the main trend analysis over the corpus. A failure here is
// fatal to the analysis phase.
func (s *Synthesizer) Analyze(ctx context.Context, items []scraper.Item) (*Analysis, error) {
	slog.Info("Analyzing trends", "items", len(items))

	prompt := fmt.Sprintf(analysisPrompt, projectItems(items, s.maxItems))

	text, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("trend analysis failed: %w", err)
	}

	payload, err := extractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("trend analysis returned unparseable output: %w", err)
	}

	var result Analysis
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("trend analysis returned unparseable output: %w", err)
	}

	slog.Info("Trend analysis complete", "opportunities", len(result.TopOpportunities))

	return &result, nil
}

// AnalyzeTrendingTools runs the secondary deep-dive over the trending tools
// corpus. It is best effort: any failure yields an empty result and the run
// proceeds without tool reviews.
func (s *Synthesizer) AnalyzeTrendingTools(ctx context.Context, items []scraper.Item) []TrendingTool {
	if len(items) == 0 {
		return nil
	}
	if len(items) > s.maxTrending {
		items = items[:s.maxTrending]
	}

	slog.Info("Analyzing trending tools", "items", len(items))

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		slog.Warn("Trending tools analysis skipped", "error", err)
		return nil
	}

	text, err := s.llm.Generate(ctx, fmt.Sprintf(trendingToolsPrompt, string(data)))
	if err != nil {
		slog.Warn("Trending tools analysis failed", "error", err)
		return nil
	}

	payload, err := extractJSON(text)
	if err != nil {
		slog.Warn("Trending tools analysis returned unparseable output", "error", err)
		return nil
	}

	var result struct {
		TrendingToolsAnalysis []TrendingTool `json:"trending_tools_analysis"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		slog.Warn("Trending tools analysis returned unparseable output", "error", err)
		return nil
	}

	return result.TrendingToolsAnalysis
}

// projectItems prepares the corpus for the prompt: keep the highest scoring
// items, strip each down to the fields the model needs and cap description
// length to stay inside the token budget.
func projectItems(items []scraper.Item, max int) string {
	sorted := make([]scraper.Item, len(items))
	copy(sorted, items)
	scraper.SortByScore(sorted)

	if len(sorted) > max {
		sorted = sorted[:max]
	}

	type promptItem struct {
		Source      string `json:"source"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Category    string `json:"category,omitempty"`
		Score       int    `json:"score"`
		URL         string `json:"url,omitempty"`
	}

	projected := make([]promptItem, 0, len(sorted))
	for _, item := range sorted {
		projected = append(projected, promptItem{
			Source:      item.Source,
			Name:        item.Name,
			Description: scraper.Truncate(item.Description, 200),
			Category:    item.Category,
			Score:       item.Score,
			URL:         item.URL,
		})
	}

	data, err := json.MarshalIndent(projected, "", "  ")
	if err != nil {
		return "[]"
	}

	return string(data)
}

// extractJSON recovers a JSON object from model output that may be wrapped in
// markdown fences or surrounding prose. It tries the cleaned text as-is, then
// falls back to the span between the first '{' and the last '}'.
func extractJSON(text string) ([]byte, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if json.Valid([]byte(cleaned)) {
		return []byte(cleaned), nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		span := cleaned[start : end+1]
		if json.Valid([]byte(span)) {
			return []byte(span), nil
		}
	}

	return nil, fmt.Errorf("no JSON object found in response of %d bytes", len(text))
}

// BuildReport derives the delivery artifact from an analysis. Vibe code picks
// are the opportunities at or above the score threshold; ranks are carried
// over untouched.
func BuildReport(a *Analysis, totalItems int, weekStart, weekEnd time.Time) *TrendReport {
	var picks []Opportunity
	for _, opp := range a.TopOpportunities {
		if opp.VibeScore >= vibePickThreshold {
			picks = append(picks, opp)
		}
	}

	return &TrendReport{
		WeekStart:             weekStart,
		WeekEnd:               weekEnd,
		TotalItems:            totalItems,
		TopOpportunities:      a.TopOpportunities,
		TrendingCategories:    a.TrendingCategories,
		AISummary:             a.Summary,
		VibeCodePicks:         picks,
		TrendingToolsAnalysis: a.TrendingToolsAnalysis,
		GeneratedAt:           time.Now(),
	}
}

// SaveArtifacts writes the raw analysis and the derived report into the
// reports directory for the run date.
func SaveArtifacts(dir string, now time.Time, a *Analysis, report *TrendReport) (string, string, error) {
	date := now.Format(dateLayout)

	analysisPath := filepath.Join(dir, fmt.Sprintf("analysis_%s.json", date))
	if err := writeJSON(analysisPath, a); err != nil {
		return "", "", err
	}

	reportPath := filepath.Join(dir, fmt.Sprintf("trend_report_%s.json", date))
	if err := writeJSON(reportPath, report); err != nil {
		return "", "", err
	}

	slog.Info("Saved analysis artifacts", "analysis", analysisPath, "report", reportPath)

	return analysisPath, reportPath, nil
}

// LoadAnalysis reads a previously saved raw analysis for the run date.
func LoadAnalysis(dir string, now time.Time) (*Analysis, error) {
	path := filepath.Join(dir, fmt.Sprintf("analysis_%s.json", now.Format(dateLayout)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}

	var a Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}

	return &a, nil
}

// LoadReport reads a previously saved trend report for the run date.
func LoadReport(dir string, now time.Time) (*TrendReport, error) {
	path := filepath.Join(dir, fmt.Sprintf("trend_report_%s.json", now.Format(dateLayout)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trend report: %w", err)
	}

	var report TrendReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse trend report: %w", err)
	}

	return &report, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}
