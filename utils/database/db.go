package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the single persistence session for the bot. Every operation
// carries a bounded retry policy: on failure the store reconnects once
// and retries the statement exactly once, then propagates the error.
type Store struct {
	mu   sync.Mutex
	db   *sqlx.DB
	path string
}

// Open connects to the SQLite database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS players (
			discord_id TEXT,
			ingame_id TEXT UNIQUE,
			ingame_name TEXT,
			rank_level TEXT,
			solo_rank INTEGER,
			team_rank INTEGER,
			is_main BOOLEAN DEFAULT 1,
			PRIMARY KEY (discord_id, ingame_id)
		)`,
		`CREATE TABLE IF NOT EXISTS bot_state (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS aoe4_news (
			post_id TEXT PRIMARY KEY,
			title TEXT,
			url TEXT,
			date TEXT,
			category TEXT,
			content_type TEXT,
			is_patch BOOLEAN,
			message_id TEXT,
			url_hash TEXT,
			posted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_url_hash ON aoe4_news(url_hash)`,
		`CREATE INDEX IF NOT EXISTS idx_news_message_id ON aoe4_news(message_id)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.handle().Close()
}

// handle returns the current connection. Statements must go through
// here: reconnect swaps s.db under the same lock.
func (s *Store) handle() *sqlx.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// reconnect replaces the connection stale belongs to. If another
// operation already swapped the handle, that reconnect wins and this
// one is a no-op, so concurrent failures never reconnect twice.
func (s *Store) reconnect(stale *sqlx.DB) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != stale {
		return nil
	}
	s.db.Close()
	db, err := sqlx.Connect("sqlite3", s.path)
	if err != nil {
		return fmt.Errorf("failed to reconnect to database: %w", err)
	}
	s.db = db
	return nil
}

// retryable reports whether an operation failure warrants the single
// reconnect-and-retry. Row-shape outcomes are results, not faults.
func retryable(err error) bool {
	return err != nil && !errors.Is(err, sql.ErrNoRows)
}

func (s *Store) exec(query string, args ...interface{}) error {
	db := s.handle()
	_, err := db.Exec(query, args...)
	if !retryable(err) {
		return err
	}
	if rerr := s.reconnect(db); rerr != nil {
		return err
	}
	_, err = s.handle().Exec(query, args...)
	return err
}

func (s *Store) namedExec(query string, arg interface{}) error {
	db := s.handle()
	_, err := db.NamedExec(query, arg)
	if !retryable(err) {
		return err
	}
	if rerr := s.reconnect(db); rerr != nil {
		return err
	}
	_, err = s.handle().NamedExec(query, arg)
	return err
}

func (s *Store) get(dest interface{}, query string, args ...interface{}) error {
	db := s.handle()
	err := db.Get(dest, query, args...)
	if !retryable(err) {
		return err
	}
	if rerr := s.reconnect(db); rerr != nil {
		return err
	}
	return s.handle().Get(dest, query, args...)
}

func (s *Store) selectAll(dest interface{}, query string, args ...interface{}) error {
	db := s.handle()
	err := db.Select(dest, query, args...)
	if !retryable(err) {
		return err
	}
	if rerr := s.reconnect(db); rerr != nil {
		return err
	}
	return s.handle().Select(dest, query, args...)
}
