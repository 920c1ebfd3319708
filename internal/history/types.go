// Package history turns a personal watch-history export into a typed dataset
// and derives hour, weekday and month view counts from it.
package history

import "time"

// UnknownChannel replaces a missing channel name during normalization.
const UnknownChannel = "Unknown"

// RawEvent is one watch entry as found in the export. Any field may be nil.
type RawEvent struct {
	Title   *string
	URL     *string
	Channel *string
	TimeRaw *string
}

// WatchEvent is a normalized watch event. Time is always set and in UTC.
type WatchEvent struct {
	Title     string
	URL       string
	Channel   string
	Time      time.Time
	Hour      int
	Day       string
	Year      int
	Month     int
	HourLabel string
}

// Bucket pairs a fixed-domain key (hour label or weekday) with a view count.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// MonthBucket pairs a month-end period with a view count.
type MonthBucket struct {
	PeriodEnd time.Time `json:"period_end"`
	Count     int       `json:"count"`
}

// ChannelCount pairs a channel with its number of views.
type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// Summary describes a WatchEvent collection.
type Summary struct {
	Total    int
	First    time.Time
	Last     time.Time
	Channels int
}
