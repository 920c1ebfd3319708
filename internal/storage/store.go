package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/watchlog/internal/history"
)

// tsLayout is fixed-width so that MIN/MAX over the text column are chronological.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	ownsDB  bool
	countEv *sql.Stmt
}

// OpenSQLite opens (creating if needed) the database at path, runs
// migrations, and returns a store that closes the database on Close.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	runner := NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.path = path
	s.ownsDB = true
	return s, nil
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	var err error
	s.countEv, err = db.Prepare(`SELECT COUNT(*) FROM watch_events`)
	if err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

// Path returns the database file location, or "" for an injected database.
func (s *SQLiteStore) Path() string { return s.path }

// Save replaces all stored events with events in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, events []history.WatchEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM watch_events"); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO watch_events (seq, title, url, channel, ts, hour, day, year, month, hour_label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		_, err := stmt.ExecContext(ctx,
			i, e.Title, e.URL, e.Channel, e.Time.UTC().Format(tsLayout),
			e.Hour, e.Day, e.Year, e.Month, e.HourLabel,
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load returns all stored events in the order they were saved.
func (s *SQLiteStore) Load(ctx context.Context) ([]history.WatchEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, url, channel, ts, hour, day, year, month, hour_label
		FROM watch_events ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []history.WatchEvent{}
	for rows.Next() {
		var e history.WatchEvent
		var tsStr string
		if err := rows.Scan(
			&e.Title, &e.URL, &e.Channel, &tsStr,
			&e.Hour, &e.Day, &e.Year, &e.Month, &e.HourLabel,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Time, err = parseTimestamp(tsStr)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// parseTimestamp reads back a stored ts column.
func parseTimestamp(s string) (time.Time, error) {
	t, ok := history.ParseTimestamp(s)
	if !ok {
		return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
	}
	return t, nil
}

// GetStats returns aggregate statistics about the database.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := s.countEv.QueryRowContext(ctx).Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.TotalEvents > 0 {
		var oldestStr, newestStr string
		err := s.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM watch_events").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("event time range: %w", err)
		}
		if stats.OldestEvent, err = parseTimestamp(oldestStr); err != nil {
			return nil, fmt.Errorf("oldest event: %w", err)
		}
		if stats.NewestEvent, err = parseTimestamp(newestStr); err != nil {
			return nil, fmt.Errorf("newest event: %w", err)
		}
	}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT channel) FROM watch_events").Scan(&stats.TotalChannels)
	if err != nil {
		return nil, fmt.Errorf("count channels: %w", err)
	}

	stats.SizeBytes = s.databaseSize()

	rows, err := s.db.QueryContext(ctx,
		"SELECT channel, COUNT(*) AS cnt FROM watch_events GROUP BY channel ORDER BY cnt DESC, channel ASC LIMIT ?",
		topChannelLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("top channels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc ChannelCount
		if err := rows.Scan(&cc.Channel, &cc.Count); err != nil {
			return nil, err
		}
		stats.TopChannels = append(stats.TopChannels, cc)
	}

	return stats, rows.Err()
}

// databaseSize returns the file size for on-disk databases and
// page_count * page_size otherwise, or while the file is still empty.
func (s *SQLiteStore) databaseSize() int64 {
	if s.path != "" {
		if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
			return info.Size()
		}
	}

	var pageCount, pageSize int64
	if err := s.db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := s.db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// PurgeAll deletes all stored events.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM watch_events"); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return nil
}

// Close releases prepared statements. The underlying *sql.DB is closed only
// when the store was created by OpenSQLite.
func (s *SQLiteStore) Close() error {
	if s.countEv != nil {
		s.countEv.Close()
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
