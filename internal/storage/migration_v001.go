package storage

import "database/sql"

// migrateV001 creates the watch_events table and its indexes. Every
// statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watch_events (
			seq        INTEGER PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			url        TEXT NOT NULL,
			channel    TEXT NOT NULL,
			ts         TEXT NOT NULL,
			hour       INTEGER NOT NULL CHECK (hour BETWEEN 0 AND 23),
			day        TEXT NOT NULL,
			year       INTEGER NOT NULL,
			month      INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
			hour_label TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_watch_events_ts      ON watch_events(ts)`,
		`CREATE INDEX IF NOT EXISTS idx_watch_events_channel ON watch_events(channel)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
