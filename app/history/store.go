package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Repository is the durable cross-run deduplication ledger keyed by item URL.
type Repository interface {
	HasSeen(url string) (bool, error)
	Record(url, source string, scrapedAt time.Time) error
	Close() error
}

var _ Repository = (*Store)(nil)

// Store backs Repository with a single-table SQLite database. database/sql
// hands each call its own pooled connection and every statement commits
// immediately, so concurrent collector branches never hold a connection
// across a network wait.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database and applies
// pending migrations. Bootstrap is idempotent: opening an already
// initialized database succeeds and changes nothing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_time_format=sqlite&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite allows a single writer; one open connection avoids lock
	// contention between collector branches.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, _, err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// HasSeen reports whether the URL was recorded by any previous run.
func (s *Store) HasSeen(url string) (bool, error) {
	if url == "" {
		return false, nil
	}

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM scrap_history WHERE url = ?`, url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query history: %w", err)
	}

	return true, nil
}

// Record upserts a history entry. Recording an already-seen URL overwrites
// source and scraped_at (last write wins). An empty URL is a no-op, never an
// error: such items are allowed to recur across runs.
func (s *Store) Record(url, source string, scrapedAt time.Time) error {
	if url == "" {
		return nil
	}

	_, err := s.db.Exec(`
		INSERT INTO scrap_history (url, source, scraped_at)
		VALUES (?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			source = excluded.source,
			scraped_at = excluded.scraped_at
	`, url, source, scrapedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}

	return nil
}

// Count returns the number of recorded URLs.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM scrap_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
