package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, validates and defaults the pipeline configuration file.
// A missing file is not an error: every source has workable defaults.
func Load(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			setDefaults(&config)
			return &config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func setDefaults(config *Config) {
	if config.Search.MaxItemsPerSource == 0 {
		config.Search.MaxItemsPerSource = 100
	}
	if config.Search.MinScore == 0 {
		config.Search.MinScore = 10
	}
	if len(config.HackerNews.Queries) == 0 {
		config.HackerNews.Queries = []string{"Show HN", "SaaS"}
	}
	if len(config.Reddit.Subreddits) == 0 {
		config.Reddit.Subreddits = []string{"SaaS", "indiehackers"}
	}
	if config.Reddit.MaxPerSub == 0 {
		config.Reddit.MaxPerSub = 25
	}
	if len(config.ProductHunt.Categories) == 0 {
		config.ProductHunt.Categories = []string{"artificial-intelligence", "developer-tools"}
	}
	if len(config.Bluesky.Queries) == 0 {
		config.Bluesky.Queries = []string{"#buildinpublic", "#indiehacker"}
	}
	if config.AI.GeminiModel == "" {
		config.AI.GeminiModel = "gemini-2.5-flash"
	}
	if config.AI.GroqModel == "" {
		config.AI.GroqModel = "llama3-70b-8192"
	}
	if config.AI.MaxItems == 0 {
		config.AI.MaxItems = 200
	}
	if config.AI.MaxTrending == 0 {
		config.AI.MaxTrending = 15
	}
	if config.Report.SpreadsheetName == "" {
		config.Report.SpreadsheetName = "Weekly Trend Report"
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Search.MaxItemsPerSource < 0 {
		return fmt.Errorf("max items per source must be non-negative")
	}
	if config.AI.MaxItems < 0 {
		return fmt.Errorf("ai max items must be non-negative")
	}
	for i, feed := range config.RSS.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("rss feed at index %d is missing a url", i)
		}
		if feed.Name == "" {
			return fmt.Errorf("rss feed at index %d is missing a name", i)
		}
	}
	return nil
}
