package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/vibetools/trendscout/app/analysis"
)

func sampleReport() *analysis.TrendReport {
	return &analysis.TrendReport{
		WeekStart:          time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		WeekEnd:            time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC),
		TotalItems:         120,
		AISummary:          "AI agents dominated the week.",
		TrendingCategories: []string{"agents", "micro-saas"},
		TopOpportunities: []analysis.Opportunity{
			{Rank: 1, Name: "Agent Monitor", VibeScore: 9, EstimatedBuildTime: "1 weekend", WhyVibeCodeable: "Thin API wrapper", Source: "hackernews", URL: "https://example.com/1"},
			{Rank: 2, Name: "Invoice Bot", VibeScore: 5, Source: "reddit"},
		},
		TrendingToolsAnalysis: []analysis.TrendingTool{
			{Name: "DeepSeek R1", URL: "https://deepseek.com", WhatItDoes: "Reasoning model", Validation: "Legitimate", Review: "Strong"},
		},
		GeneratedAt: time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderHTML(t *testing.T) {
	a := &analysis.Analysis{
		ServiceAsSoftwareIdeas: []analysis.ServiceIdea{
			{Service: "Bookkeeping", SoftwareOpportunity: "Automated categorization", Complexity: "low"},
		},
	}

	body, err := RenderHTML(sampleReport(), a, "https://sheets.example/abc")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	html := string(body)
	for _, want := range []string{
		"2026-01-30", "2026-02-06",
		"AI agents dominated the week.",
		"Agent Monitor", "9/10",
		"Bookkeeping",
		"DeepSeek R1",
		"https://sheets.example/abc",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected HTML to contain %q", want)
		}
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	report := sampleReport()
	report.AISummary = `<script>alert("x")</script>`

	body, err := RenderHTML(report, nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if strings.Contains(string(body), "<script>alert") {
		t.Error("Expected model-provided content to be escaped")
	}
}

func TestRenderHTMLWithNilAnalysis(t *testing.T) {
	if _, err := RenderHTML(sampleReport(), nil, ""); err != nil {
		t.Errorf("Expected nil analysis to render, got %v", err)
	}
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 2, 6, 12, 0, 0, 0, time.UTC)

	path, err := WriteHTML(dir, now, sampleReport(), nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasSuffix(path, "report_20260206.html") {
		t.Errorf("Expected dated file name, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected report file, got %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("Expected full HTML document")
	}
}

func TestBuildRows(t *testing.T) {
	a := &analysis.Analysis{
		EmergingPatterns: []analysis.EmergingPattern{
			{Pattern: "Agents", Description: "Everyone ships agents", Opportunity: "Tooling"},
		},
	}

	rows := buildRows(sampleReport(), a)

	if len(rows) < 13 {
		t.Fatalf("Expected header plus opportunity and pattern rows, got %d", len(rows))
	}

	header := rows[10]
	if header[0] != "Rank" || header[1] != "Name" {
		t.Errorf("Expected opportunity header row, got %v", header)
	}

	first := rows[11]
	if first[0] != 1 || first[1] != "Agent Monitor" {
		t.Errorf("Expected first opportunity row, got %v", first)
	}
}

func TestNewMailerRequiresHostAndSender(t *testing.T) {
	if _, err := NewMailer("", "587", "user", "pass", "from@example.com"); err == nil {
		t.Error("Expected error for missing host")
	}
	if _, err := NewMailer("smtp.example.com", "587", "user", "pass", ""); err == nil {
		t.Error("Expected error for missing sender")
	}
}
