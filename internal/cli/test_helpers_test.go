package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/watchlog/internal/history"
	"github.com/runnerr0/watchlog/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func ev(channel, ts string) history.WatchEvent {
	t, ok := history.ParseTimestamp(ts)
	if !ok {
		panic("bad test timestamp " + ts)
	}
	return history.NewWatchEvent("title", "https://www.youtube.com/watch?v=x", channel, t)
}

func sampleEvents() []history.WatchEvent {
	return []history.WatchEvent{
		ev("GopherCon", "2024-01-15T08:10:00Z"),
		ev("GopherCon", "2024-01-15T08:50:00Z"),
		ev("Fireship", "2024-01-20T13:00:00Z"),
		ev("Fireship", "2024-03-03T23:59:59Z"),
		ev("Unknown", "2024-03-31T00:00:00Z"),
	}
}

// openTestStore creates a migrated SQLite store in a temp directory.
func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "watch_history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seededStore returns a store holding sampleEvents.
func seededStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store := openTestStore(t)
	require.NoError(t, store.Save(context.Background(), sampleEvents()))
	return store
}
