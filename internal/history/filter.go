package history

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted for filter bounds.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t (UTC) at midnight UTC.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DateRange returns the first and last calendar dates present in events.
// ok is false for an empty collection.
func DateRange(events []WatchEvent) (from, to time.Time, ok bool) {
	if len(events) == 0 {
		return time.Time{}, time.Time{}, false
	}
	s := Summarize(events)
	return DateOf(s.First), DateOf(s.Last), true
}

// Filter selects events by inclusive calendar date range and channel set.
//
// A zero From or To defaults to the first or last date in the collection.
// A nil Channels selects every channel in the date-filtered subset, while a
// non-nil empty Channels selects nothing.
type Filter struct {
	From     time.Time
	To       time.Time
	Channels []string
}

// DefaultFilter returns the filter that selects the whole collection, with
// bounds and channel list resolved for display.
func DefaultFilter(events []WatchEvent) Filter {
	return Filter{}.Resolve(events)
}

// Resolve returns f with defaults filled in from events: the full date span,
// and, when Channels is nil, the channels present in that range ordered by
// descending view count.
func (f Filter) Resolve(events []WatchEvent) Filter {
	from, to, ok := DateRange(events)
	if f.From.IsZero() && ok {
		f.From = from
	}
	if f.To.IsZero() && ok {
		f.To = to
	}
	if f.Channels == nil {
		ranked := ChannelCounts(f.byDate(events))
		f.Channels = make([]string, len(ranked))
		for i, c := range ranked {
			f.Channels[i] = c.Channel
		}
	}
	return f
}

// Apply returns the events whose calendar date lies in [From, To] and whose
// channel is selected. The input is not modified.
func (f Filter) Apply(events []WatchEvent) []WatchEvent {
	f = f.Resolve(events)
	dated := f.byDate(events)

	selected := make(map[string]struct{}, len(f.Channels))
	for _, ch := range f.Channels {
		selected[ch] = struct{}{}
	}

	out := make([]WatchEvent, 0, len(dated))
	for _, e := range dated {
		if _, ok := selected[e.Channel]; ok {
			out = append(out, e)
		}
	}
	return out
}

// byDate keeps events whose date falls within the bounds that are set.
func (f Filter) byDate(events []WatchEvent) []WatchEvent {
	from, to := DateOf(f.From), DateOf(f.To)
	out := make([]WatchEvent, 0, len(events))
	for _, e := range events {
		d := DateOf(e.Time)
		if !f.From.IsZero() && d.Before(from) {
			continue
		}
		if !f.To.IsZero() && d.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
