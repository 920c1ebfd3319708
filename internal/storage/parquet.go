package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/runnerr0/watchlog/internal/history"
)

// watchRow is the on-disk column layout. There is no row-index column.
type watchRow struct {
	Title     string    `parquet:"title"`
	URL       string    `parquet:"url"`
	Channel   string    `parquet:"channel"`
	Time      time.Time `parquet:"time,timestamp(microsecond)"`
	Hour      int32     `parquet:"hour"`
	Day       string    `parquet:"day"`
	Year      int32     `parquet:"year"`
	Month     int32     `parquet:"month"`
	HourLabel string    `parquet:"hour_label"`
}

func toRow(e history.WatchEvent) watchRow {
	return watchRow{
		Title:     e.Title,
		URL:       e.URL,
		Channel:   e.Channel,
		Time:      e.Time.UTC(),
		Hour:      int32(e.Hour),
		Day:       e.Day,
		Year:      int32(e.Year),
		Month:     int32(e.Month),
		HourLabel: e.HourLabel,
	}
}

func fromRow(r watchRow) history.WatchEvent {
	return history.WatchEvent{
		Title:     r.Title,
		URL:       r.URL,
		Channel:   r.Channel,
		Time:      r.Time.UTC(),
		Hour:      int(r.Hour),
		Day:       r.Day,
		Year:      int(r.Year),
		Month:     int(r.Month),
		HourLabel: r.HourLabel,
	}
}

// ParquetStore keeps the dataset in a single Parquet file.
type ParquetStore struct {
	path string
}

// NewParquetStore returns a store for the Parquet file at path. The file is
// not touched until Save or Load.
func NewParquetStore(path string) *ParquetStore {
	return &ParquetStore{path: path}
}

// Path returns the Parquet file location.
func (s *ParquetStore) Path() string { return s.path }

// Save writes events to the Parquet file, creating parent directories. The
// file is written next to the target and renamed into place.
func (s *ParquetStore) Save(ctx context.Context, events []history.WatchEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rows := make([]watchRow, len(events))
	for i, e := range events {
		rows[i] = toRow(e)
	}

	tmp := s.path + ".tmp"
	if err := parquet.WriteFile(tmp, rows); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace parquet file: %w", err)
	}
	return nil
}

// Load reads every row back in file order.
func (s *ParquetStore) Load(ctx context.Context) ([]history.WatchEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := parquet.ReadFile[watchRow](s.path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", s.path, err)
	}

	events := make([]history.WatchEvent, len(rows))
	for i, r := range rows {
		events[i] = fromRow(r)
	}
	return events, nil
}

// GetStats loads the dataset and summarizes it in memory.
func (s *ParquetStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat parquet: %w", err)
	}
	stats.SizeBytes = info.Size()

	events, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	sum := history.Summarize(events)
	stats.TotalEvents = int64(sum.Total)
	stats.TotalChannels = int64(sum.Channels)
	stats.OldestEvent = sum.First
	stats.NewestEvent = sum.Last

	for i, c := range history.ChannelCounts(events) {
		if i == topChannelLimit {
			break
		}
		stats.TopChannels = append(stats.TopChannels, ChannelCount{Channel: c.Channel, Count: int64(c.Count)})
	}

	return stats, nil
}

// PurgeAll removes the Parquet file. A missing file is not an error.
func (s *ParquetStore) PurgeAll(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove parquet file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is opened per call.
func (s *ParquetStore) Close() error { return nil }
