package scraper

import (
	"context"
)

// Source is one external platform adapter. Implementations differ in method
// (REST, GraphQL, HTML scraping, feed parsing) but all produce the same item
// shape for the past week. Each adapter fails independently; a failing source
// never aborts the run.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}
