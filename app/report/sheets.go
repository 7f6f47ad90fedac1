package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vibetools/trendscout/app/analysis"
	"github.com/vibetools/trendscout/app/scraper"
)

// SheetsExporter pushes a trend report into a new Google Sheets spreadsheet.
type SheetsExporter struct {
	service *sheets.Service
	name    string
}

func NewSheetsExporter(ctx context.Context, credentialsFile, spreadsheetName string) (*SheetsExporter, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("sheets credentials file is not configured")
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("sheets credentials file is not readable: %w", err)
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsExporter{service: service, name: spreadsheetName}, nil
}

// Export creates a spreadsheet for the report week and writes the report
// rows. It returns the spreadsheet URL.
func (e *SheetsExporter) Export(ctx context.Context, report *analysis.TrendReport, a *analysis.Analysis) (string, error) {
	week := report.WeekEnd.Format("2006-01-02")

	spreadsheet, err := e.service.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: fmt.Sprintf("%s - Week of %s", e.name, week),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	values := buildRows(report, a)
	_, err = e.service.Spreadsheets.Values.Update(spreadsheet.SpreadsheetId, "A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to write spreadsheet values: %w", err)
	}

	slog.Info("Exported report to Google Sheets", "url", spreadsheet.SpreadsheetUrl, "rows", len(values))

	return spreadsheet.SpreadsheetUrl, nil
}

func buildRows(report *analysis.TrendReport, a *analysis.Analysis) [][]any {
	if a == nil {
		a = &analysis.Analysis{}
	}

	row := func(cells ...any) []any { return cells }

	rows := [][]any{
		row("Weekly Trend Report"),
		row(fmt.Sprintf("Week: %s to %s", report.WeekStart.Format("2006-01-02"), report.WeekEnd.Format("2006-01-02"))),
		row(fmt.Sprintf("Total items analyzed: %d", report.TotalItems)),
		row(),
		row("Summary"),
		row(report.AISummary),
		row(),
		row("Trending Categories"),
		row(strings.Join(capStrings(report.TrendingCategories, 10), ", ")),
		row(),
		row("Rank", "Name", "Vibe Score", "Build Time", "Why Vibe-Codeable", "Source", "URL"),
	}

	for _, opp := range report.TopOpportunities {
		rows = append(rows, row(
			opp.Rank,
			opp.Name,
			opp.VibeScore,
			opp.EstimatedBuildTime,
			scraper.Truncate(opp.WhyVibeCodeable, 100),
			opp.Source,
			opp.URL,
		))
	}

	if len(a.ServiceAsSoftwareIdeas) > 0 {
		rows = append(rows, row(), row("Service-as-Software Opportunities"),
			row("Traditional Service", "AI Opportunity", "Complexity"))
		for _, idea := range a.ServiceAsSoftwareIdeas {
			rows = append(rows, row(idea.Service, idea.SoftwareOpportunity, idea.Complexity))
		}
	}

	if len(a.EmergingPatterns) > 0 {
		rows = append(rows, row(), row("Emerging Patterns"),
			row("Pattern", "Description", "Opportunity"))
		for _, pattern := range a.EmergingPatterns {
			rows = append(rows, row(pattern.Pattern, scraper.Truncate(pattern.Description, 100), scraper.Truncate(pattern.Opportunity, 100)))
		}
	}

	return rows
}

func capStrings(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}
