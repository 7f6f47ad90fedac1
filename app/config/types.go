package config

// Config represents the complete pipeline configuration loaded from config.yaml
type Config struct {
	Search      SearchConfig      `yaml:"search"`
	HackerNews  HackerNewsConfig  `yaml:"hackernews"`
	Reddit      RedditConfig      `yaml:"reddit"`
	ProductHunt ProductHuntConfig `yaml:"producthunt"`
	Bluesky     BlueskyConfig     `yaml:"bluesky"`
	RSS         RSSConfig         `yaml:"rss"`
	AI          AIConfig          `yaml:"ai"`
	Report      ReportConfig      `yaml:"report"`
}

// SearchConfig contains limits shared by all source adapters
type SearchConfig struct {
	MaxItemsPerSource int `yaml:"max_items_per_source"`
	MinScore          int `yaml:"min_score"`
}

// HackerNewsConfig contains Algolia search queries
type HackerNewsConfig struct {
	Queries []string `yaml:"queries"`
}

// RedditConfig lists the subreddits to collect from
type RedditConfig struct {
	Subreddits []string `yaml:"subreddits"`
	MaxPerSub  int      `yaml:"max_per_sub"`
}

// ProductHuntConfig lists the topic slugs considered relevant
type ProductHuntConfig struct {
	Categories []string `yaml:"categories"`
}

// BlueskyConfig lists the search queries for the firehose
type BlueskyConfig struct {
	Queries []string `yaml:"queries"`
}

// RSSConfig lists startup-news feeds collected with gofeed
type RSSConfig struct {
	Feeds []RSSFeed `yaml:"feeds"`
}

type RSSFeed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// AIConfig contains model names and analysis knobs
type AIConfig struct {
	GeminiModel string `yaml:"gemini_model"`
	GroqModel   string `yaml:"groq_model"`
	MaxItems    int    `yaml:"max_items"`    // prompt-size bound on analyzed items
	MaxTrending int    `yaml:"max_trending"` // items fed to the trending tools pass
	EnrichTools bool   `yaml:"enrich_tools"` // fetch landing pages for the trending pass
}

// ReportConfig controls delivery
type ReportConfig struct {
	SpreadsheetName string   `yaml:"spreadsheet_name"`
	Recipients      []string `yaml:"recipients"`
}
