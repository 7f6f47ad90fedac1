package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// TrendingAI fetches the week's top AI launches from Product Hunt. This is the
// narrower, separately curated set feeding the trending-tools deep-dive
// analysis. When the API is unavailable a static list of currently trending
// tools keeps the secondary analysis alive.
type TrendingAI struct {
	ph  *ProductHunt
	top int
}

func NewTrendingAI(client *http.Client, userAgent, apiKey, apiSecret string, weekStart time.Time) *TrendingAI {
	ph := &ProductHunt{
		http:      newHTTPJSON(client, userAgent),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		topics:    []string{"artificial-intelligence"},
		maxItems:  50,
		weekStart: weekStart,
		limiter:   newPacer(),
		baseURL:   productHuntGraphQLURL,
		tokenURL:  productHuntTokenURL,
	}
	return &TrendingAI{ph: ph, top: 10}
}

func (s *TrendingAI) Name() string {
	return "trending_ai"
}

func (s *TrendingAI) Fetch(ctx context.Context) ([]Item, error) {
	items, err := s.ph.Fetch(ctx)
	if err != nil || len(items) == 0 {
		slog.Warn("Trending AI fetch failed, using fallback list", "error", err)
		return s.fallback(), nil
	}

	SortByScore(items)
	if len(items) > s.top {
		items = items[:s.top]
	}

	for i := range items {
		items[i].Source = s.Name()
		items[i].Category = "Artificial Intelligence"
	}

	return items, nil
}

// fallback is a hand-maintained list of tools with sustained traction, used
// when the Product Hunt API is unreachable or returns nothing.
func (s *TrendingAI) fallback() []Item {
	entries := []struct {
		name, url, description string
		score                  int
	}{
		{"DeepSeek R1", "https://chat.deepseek.com", "Open-source reasoning model rivaling o1. Huge buzz for performance/cost ratio.", 5000},
		{"OpenAI o3-mini", "https://openai.com", "New reasoning model optimized for coding and STEM. High speed.", 4500},
		{"Anthropic Claude 3.5 Sonnet", "https://anthropic.com", "The current gold standard for coding and reasoning tasks.", 4200},
		{"Google Gemini 2.5 Flash", "https://deepmind.google/technologies/gemini/", "Ultra-fast, low latency model powering many new agentic workflows.", 3800},
		{"Cursor", "https://cursor.sh", "The AI code editor that is replacing VS Code for many developers.", 3500},
		{"Bolt.new", "https://bolt.new", "Browser-based full-stack web development agent. Text to running app.", 3200},
		{"Perplexity Pro", "https://perplexity.ai", "AI search engine that is replacing traditional search for research.", 3000},
		{"Midjourney V7", "https://midjourney.com", "Latest evolution in AI image generation with hyper-realism.", 2800},
		{"Suno v4", "https://suno.com", "Radio-quality AI music generation.", 2500},
		{"HeyGen Avatar 3.0", "https://heygen.com", "Indistinguishable from reality AI avatars for video.", 2200},
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{
			Source:      "trending_fallback",
			Name:        e.name,
			Description: e.description,
			URL:         e.url,
			Category:    "Artificial Intelligence",
			Score:       e.score,
			ScrapedAt:   time.Now(),
		})
	}
	return items
}
