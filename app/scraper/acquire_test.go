package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibetools/trendscout/app/config"
)

const acquireFixture = `<!DOCTYPE html>
<html><body>
<article class="startup-card">
  <h3>Churn prediction SaaS</h3>
  <p>Helps subscription businesses keep customers.</p>
  <span class="revenue">$12k MRR</span>
  <a href="/startup/churn-saas">View</a>
</article>
<article class="startup-card">
  <h3>Legacy agency</h3>
  <p>A services business.</p>
  <span class="revenue">$1.5m ARR</span>
  <a href="/startup/legacy-agency">View</a>
</article>
<article class="startup-card">
  <h3>ab</h3>
</article>
</body></html>`

func TestAcquireFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/explore" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(acquireFixture))
	}))
	defer server.Close()

	s := NewAcquire(nil, "test-agent", config.SearchConfig{MaxItemsPerSource: 100})
	s.baseURL = server.URL

	items, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items (too-short name skipped), got %d", len(items))
	}

	first := items[0]
	if first.Name != "Legacy agency" {
		t.Errorf("Expected highest-revenue listing first, got %q", first.Name)
	}
	if first.Score != 1500000 {
		t.Errorf("Expected $1.5m parsed as 1500000, got %d", first.Score)
	}
	if first.URL != server.URL+"/startup/legacy-agency" {
		t.Errorf("Expected absolute listing URL, got %q", first.URL)
	}

	second := items[1]
	if second.Score != 12000 {
		t.Errorf("Expected $12k parsed as 12000, got %d", second.Score)
	}
	if second.Metadata["revenue_text"] != "$12k MRR" {
		t.Errorf("Expected raw revenue text in metadata, got %v", second.Metadata["revenue_text"])
	}
}

func TestParseRevenue(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"$12k MRR", 12000},
		{"1.5m ARR", 1500000},
		{"$2,500", 2500},
		{"800", 800},
		{"", 0},
		{"undisclosed", 0},
	}

	for _, tt := range tests {
		if got := parseRevenue(tt.input); got != tt.expected {
			t.Errorf("parseRevenue(%q): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}
