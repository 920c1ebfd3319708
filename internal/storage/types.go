package storage

import (
	"context"
	"time"

	"github.com/runnerr0/watchlog/internal/history"
)

// Store persists the full WatchEvent collection. Save replaces whatever was
// stored before; there are no partial updates.
type Store interface {
	Save(ctx context.Context, events []history.WatchEvent) error
	Load(ctx context.Context) ([]history.WatchEvent, error)
	GetStats(ctx context.Context) (*Stats, error)
	PurgeAll(ctx context.Context) error
	Path() string
	Close() error
}

// Stats holds aggregate statistics about the stored dataset.
type Stats struct {
	TotalEvents   int64
	TotalChannels int64
	OldestEvent   time.Time
	NewestEvent   time.Time
	SizeBytes     int64
	TopChannels   []ChannelCount
}

// ChannelCount pairs a channel with its event count.
type ChannelCount struct {
	Channel string
	Count   int64
}

// topChannelLimit caps Stats.TopChannels.
const topChannelLimit = 10

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*ParquetStore)(nil)
)
