package analysis

import "time"

// Opportunity is a single build idea ranked by the model.
type Opportunity struct {
	Rank               int      `json:"rank"`
	Name               string   `json:"name"`
	Source             string   `json:"source"`
	Description        string   `json:"description"`
	WhyVibeCodeable    string   `json:"why_vibe_codeable"`
	VibeScore          int      `json:"vibe_score"`
	EstimatedBuildTime string   `json:"estimated_build_time"`
	SimilarExamples    []string `json:"similar_examples"`
	URL                string   `json:"url"`
}

// EmergingPattern is a recurring theme the model spotted across sources.
type EmergingPattern struct {
	Pattern     string   `json:"pattern"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Opportunity string   `json:"opportunity"`
}

// ServiceIdea pairs a traditional human service with its software replacement.
type ServiceIdea struct {
	Service             string `json:"service"`
	SoftwareOpportunity string `json:"software_opportunity"`
	Complexity          string `json:"complexity"`
}

// TrendingTool is the deep-dive review of one trending AI tool.
type TrendingTool struct {
	Name             string   `json:"name"`
	URL              string   `json:"url"`
	WhatItDoes       string   `json:"what_it_does"`
	Validation       string   `json:"validation"`
	Review           string   `json:"review"`
	RevenuePotential []string `json:"revenue_potential"`
}

// Analysis is the raw model output for a run, persisted verbatim as the
// analysis artifact.
type Analysis struct {
	Summary                string            `json:"summary"`
	TrendingCategories     []string          `json:"trending_categories"`
	TopOpportunities       []Opportunity     `json:"top_opportunities"`
	EmergingPatterns       []EmergingPattern `json:"emerging_patterns,omitempty"`
	ServiceAsSoftwareIdeas []ServiceIdea     `json:"service_as_software_ideas,omitempty"`
	TrendingToolsAnalysis  []TrendingTool    `json:"trending_tools_analysis,omitempty"`
}

// TrendReport is the delivery-facing artifact built from an Analysis.
type TrendReport struct {
	WeekStart             time.Time      `json:"week_start"`
	WeekEnd               time.Time      `json:"week_end"`
	TotalItems            int            `json:"total_items"`
	TopOpportunities      []Opportunity  `json:"top_opportunities"`
	TrendingCategories    []string       `json:"trending_categories"`
	AISummary             string         `json:"ai_summary"`
	VibeCodePicks         []Opportunity  `json:"vibe_code_picks"`
	TrendingToolsAnalysis []TrendingTool `json:"trending_tools_analysis"`
	GeneratedAt           time.Time      `json:"generated_at"`
}
