package history

import (
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order. Layouts without a zone are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601-like timestamp and returns it in UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// HourLabel formats an hour of day as the "H:00" bucket key.
func HourLabel(hour int) string {
	return strconv.Itoa(hour) + ":00"
}

// NormalizeResult holds the normalized events and the number of raw events
// dropped because their timestamp was missing or unparseable.
type NormalizeResult struct {
	Events  []WatchEvent
	Dropped int
}

// Normalize parses timestamps, fills missing channels with UnknownChannel and
// derives calendar features. Events without a usable timestamp are dropped
// and counted, never returned.
func Normalize(raws []RawEvent) NormalizeResult {
	res := NormalizeResult{Events: make([]WatchEvent, 0, len(raws))}

	for _, raw := range raws {
		if raw.TimeRaw == nil {
			res.Dropped++
			continue
		}
		t, ok := ParseTimestamp(*raw.TimeRaw)
		if !ok {
			res.Dropped++
			continue
		}

		channel := UnknownChannel
		if raw.Channel != nil {
			channel = *raw.Channel
		}

		res.Events = append(res.Events, NewWatchEvent(deref(raw.Title), deref(raw.URL), channel, t))
	}

	return res
}

// NewWatchEvent builds a WatchEvent and derives its calendar features from t.
func NewWatchEvent(title, url, channel string, t time.Time) WatchEvent {
	t = t.UTC()
	return WatchEvent{
		Title:     title,
		URL:       url,
		Channel:   channel,
		Time:      t,
		Hour:      t.Hour(),
		Day:       t.Weekday().String(),
		Year:      t.Year(),
		Month:     int(t.Month()),
		HourLabel: HourLabel(t.Hour()),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
