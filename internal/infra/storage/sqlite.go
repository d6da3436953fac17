// Package storage persists the activity feed to a local SQLite database
// so a session's log survives the process.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/wardenworks/prisonsim/internal/feed"
)

// InitSQLite opens the local SQLite database and creates the activity
// log schema if it does not exist yet.
func InitSQLite(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

func createSchema(db *sql.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS activity_log (
		id TEXT PRIMARY KEY,
		time DATETIME NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL,
		severity INTEGER NOT NULL DEFAULT 0,
		game_day INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// FeedRepository stores feed entries in SQLite.
type FeedRepository struct {
	db *sql.DB
}

// NewFeedRepository wraps an open database handle.
func NewFeedRepository(db *sql.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// Append satisfies feed.Persister.
func (r *FeedRepository) Append(entry feed.Entry) error {
	query := `INSERT INTO activity_log (id, time, category, message, severity, game_day)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(context.Background(), query,
		entry.ID, entry.Time, string(entry.Category), entry.Message,
		entry.Severity, entry.GameDay,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}
	return nil
}

// GetByDay returns every persisted entry for one game day, oldest first.
func (r *FeedRepository) GetByDay(ctx context.Context, day int) ([]feed.Entry, error) {
	query := `SELECT id, time, category, message, severity, game_day
		FROM activity_log WHERE game_day = ? ORDER BY time ASC`
	return r.getMany(ctx, query, day)
}

// GetAll returns the full persisted history, oldest first.
func (r *FeedRepository) GetAll(ctx context.Context) ([]feed.Entry, error) {
	query := `SELECT id, time, category, message, severity, game_day
		FROM activity_log ORDER BY time ASC`
	return r.getMany(ctx, query)
}

func (r *FeedRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]feed.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []feed.Entry
	for rows.Next() {
		var e feed.Entry
		var category string
		if err := rows.Scan(&e.ID, &e.Time, &category, &e.Message, &e.Severity, &e.GameDay); err != nil {
			return nil, err
		}
		e.Category = feed.Category(category)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
