package cfg

type Cfg struct {
	// Phase selection; all false means the full pipeline runs
	Scrape  bool
	Analyze bool
	Export  bool
	Email   bool
	Serve   bool
	Force   bool

	// Storage configuration
	DBPath  string
	DataDir string

	// Application configuration
	ConfigFile string
	Port       string

	// Provider credentials
	GeminiAPIKey string
	GroqAPIKey   string

	// Source credentials
	RedditClientID     string
	RedditClientSecret string
	ProductHuntKey     string
	ProductHuntSecret  string
	BlueskyHandle      string
	BlueskyAppPassword string

	// Delivery configuration
	SheetsCredentials string
	SMTPHost          string
	SMTPPort          string
	SMTPUser          string
	SMTPPassword      string
	EmailFrom         string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
