package report

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vibetools/trendscout/app/analysis"
)

const dateLayout = "20060102"

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weekly Trend Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
  h1 { font-size: 1.6rem; }
  h2 { font-size: 1.2rem; margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
  .meta { color: #666; font-size: .9rem; }
  .summary { background: #f6f8fa; border-radius: 8px; padding: 1rem; }
  table { border-collapse: collapse; width: 100%; font-size: .9rem; }
  th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #eee; vertical-align: top; }
  th { background: #f6f8fa; }
  .score { font-weight: 600; }
  .pick { background: #fffbe6; }
  .categories span { display: inline-block; background: #eef2ff; border-radius: 12px; padding: .15rem .6rem; margin: .15rem; font-size: .85rem; }
</style>
</head>
<body>
<h1>Weekly Trend Report</h1>
<p class="meta">Week {{date .Report.WeekStart}} to {{date .Report.WeekEnd}} &middot; {{.Report.TotalItems}} items analyzed</p>

<h2>Summary</h2>
<div class="summary">{{.Report.AISummary}}</div>

{{if .Report.TrendingCategories}}
<h2>Trending Categories</h2>
<div class="categories">{{range .Report.TrendingCategories}}<span>{{.}}</span>{{end}}</div>
{{end}}

<h2>Top Opportunities</h2>
<table>
<tr><th>#</th><th>Name</th><th>Score</th><th>Build Time</th><th>Why</th><th>Source</th></tr>
{{range .Report.TopOpportunities}}
<tr{{if ge .VibeScore 7}} class="pick"{{end}}>
  <td>{{.Rank}}</td>
  <td>{{if .URL}}<a href="{{.URL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
  <td class="score">{{.VibeScore}}/10</td>
  <td>{{.EstimatedBuildTime}}</td>
  <td>{{.WhyVibeCodeable}}</td>
  <td>{{.Source}}</td>
</tr>
{{end}}
</table>

{{if .Analysis.ServiceAsSoftwareIdeas}}
<h2>Service-as-Software Ideas</h2>
<table>
<tr><th>Traditional Service</th><th>Software Opportunity</th><th>Complexity</th></tr>
{{range .Analysis.ServiceAsSoftwareIdeas}}
<tr><td>{{.Service}}</td><td>{{.SoftwareOpportunity}}</td><td>{{.Complexity}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Analysis.EmergingPatterns}}
<h2>Emerging Patterns</h2>
<table>
<tr><th>Pattern</th><th>Description</th><th>Opportunity</th></tr>
{{range .Analysis.EmergingPatterns}}
<tr><td>{{.Pattern}}</td><td>{{.Description}}</td><td>{{.Opportunity}}</td></tr>
{{end}}
</table>
{{end}}

{{if .Report.TrendingToolsAnalysis}}
<h2>Trending AI Tools</h2>
<table>
<tr><th>Tool</th><th>What It Does</th><th>Validation</th><th>Review</th></tr>
{{range .Report.TrendingToolsAnalysis}}
<tr>
  <td>{{if .URL}}<a href="{{.URL}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
  <td>{{.WhatItDoes}}</td>
  <td>{{.Validation}}</td>
  <td>{{.Review}}</td>
</tr>
{{end}}
</table>
{{end}}

{{if .SheetURL}}
<p class="meta">Full data: <a href="{{.SheetURL}}">Google Sheets</a></p>
{{end}}
<p class="meta">Generated {{date .Report.GeneratedAt}}</p>
</body>
</html>
`))

type templateData struct {
	Report   *analysis.TrendReport
	Analysis *analysis.Analysis
	SheetURL string
}

// RenderHTML produces the standalone HTML report body.
func RenderHTML(report *analysis.TrendReport, a *analysis.Analysis, sheetURL string) ([]byte, error) {
	if a == nil {
		a = &analysis.Analysis{}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, templateData{Report: report, Analysis: a, SheetURL: sheetURL}); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML renders the report and writes it into the reports directory for
// the run date, returning the file path.
func WriteHTML(dir string, now time.Time, report *analysis.TrendReport, a *analysis.Analysis, sheetURL string) (string, error) {
	body, err := RenderHTML(report, a, sheetURL)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%s.html", now.Format(dateLayout)))
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("failed to write HTML report: %w", err)
	}

	slog.Info("Generated HTML report", "path", path)

	return path, nil
}
