package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/subosito/gotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Phase selection
	Scrape  bool `long:"scrape" description:"Only run the data collection phase"`
	Analyze bool `long:"analyze" description:"Only run the AI analysis phase (assumes data exists)"`
	Export  bool `long:"export" description:"Only run the spreadsheet export phase (assumes analysis exists)"`
	Email   bool `long:"email" description:"Only send the email digest (assumes analysis exists)"`
	Serve   bool `long:"serve" description:"Serve generated reports over HTTP"`
	Force   bool `long:"force" description:"Force re-scrape even if today's data already exists"`

	// Storage configuration
	DBPath  string `long:"db-path" env:"DB_PATH" default:"./scraper.db" description:"Path to the scrape history database"`
	DataDir string `long:"data-dir" env:"DATA_DIR" default:"./.tmp" description:"Directory for scraped data and reports"`

	// Application configuration
	ConfigFile string `long:"config" env:"CONFIG_FILE" default:"./config.yaml" description:"Path to the pipeline configuration file"`
	Port       string `long:"port" env:"PORT" default:"8080" description:"HTTP port for the report preview server"`

	// Provider credentials
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Google Gemini API key (primary AI provider)"`
	GroqAPIKey   string `long:"groq-api-key" env:"GROQ_API_KEY" description:"Groq API key (fallback AI provider)"`

	// Source credentials
	RedditClientID     string `long:"reddit-client-id" env:"REDDIT_CLIENT_ID" description:"Reddit API client ID"`
	RedditClientSecret string `long:"reddit-client-secret" env:"REDDIT_CLIENT_SECRET" description:"Reddit API client secret"`
	ProductHuntKey     string `long:"producthunt-key" env:"PRODUCTHUNT_API_KEY" description:"Product Hunt API key"`
	ProductHuntSecret  string `long:"producthunt-secret" env:"PRODUCTHUNT_API_SECRET" description:"Product Hunt API secret"`
	BlueskyHandle      string `long:"bluesky-handle" env:"BLUESKY_HANDLE" description:"Bluesky account handle"`
	BlueskyAppPassword string `long:"bluesky-app-password" env:"BLUESKY_APP_PASSWORD" description:"Bluesky app password"`

	// Delivery configuration
	SheetsCredentials string `long:"sheets-credentials" env:"GOOGLE_SHEETS_CREDENTIALS" default:"./credentials.json" description:"Path to Google service account credentials"`
	SMTPHost          string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP server host for email delivery"`
	SMTPPort          string `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUser          string `long:"smtp-user" env:"SMTP_USER" description:"SMTP username"`
	SMTPPassword      string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
	EmailFrom         string `long:"email-from" env:"EMAIL_FROM" description:"Sender address for the email digest"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TrendScout/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	// Credentials may live in a .env file next to the binary. gotenv never
	// overwrites variables already present in the OS environment.
	gotenv.Load()

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Scrape:             raw.Scrape,
		Analyze:            raw.Analyze,
		Export:             raw.Export,
		Email:              raw.Email,
		Serve:              raw.Serve,
		Force:              raw.Force,
		DBPath:             raw.DBPath,
		DataDir:            raw.DataDir,
		ConfigFile:         raw.ConfigFile,
		Port:               raw.Port,
		GeminiAPIKey:       raw.GeminiAPIKey,
		GroqAPIKey:         raw.GroqAPIKey,
		RedditClientID:     raw.RedditClientID,
		RedditClientSecret: raw.RedditClientSecret,
		ProductHuntKey:     raw.ProductHuntKey,
		ProductHuntSecret:  raw.ProductHuntSecret,
		BlueskyHandle:      raw.BlueskyHandle,
		BlueskyAppPassword: raw.BlueskyAppPassword,
		SheetsCredentials:  raw.SheetsCredentials,
		SMTPHost:           raw.SMTPHost,
		SMTPPort:           raw.SMTPPort,
		SMTPUser:           raw.SMTPUser,
		SMTPPassword:       raw.SMTPPassword,
		EmailFrom:          raw.EmailFrom,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
