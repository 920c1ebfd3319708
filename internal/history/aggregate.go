package history

import (
	"sort"
	"time"
)

// HourDomain is the ordered set of hour buckets, "0:00" through "23:00".
var HourDomain = func() []string {
	labels := make([]string, 24)
	for h := range labels {
		labels[h] = HourLabel(h)
	}
	return labels
}()

// DayDomain is the ordered set of weekday buckets, Monday first.
var DayDomain = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// HourlyCounts counts events per hour label over the full 24-hour domain.
func HourlyCounts(events []WatchEvent) []Bucket {
	counts := make(map[string]int, len(HourDomain))
	for _, e := range events {
		counts[e.HourLabel]++
	}
	return project(HourDomain, counts)
}

// DailyCounts counts events per weekday over the Monday..Sunday domain.
func DailyCounts(events []WatchEvent) []Bucket {
	counts := make(map[string]int, len(DayDomain))
	for _, e := range events {
		counts[e.Day]++
	}
	return project(DayDomain, counts)
}

// project emits one bucket per domain key in domain order, zero when absent.
func project(domain []string, counts map[string]int) []Bucket {
	out := make([]Bucket, len(domain))
	for i, key := range domain {
		out[i] = Bucket{Key: key, Count: counts[key]}
	}
	return out
}

type yearMonth struct {
	year  int
	month time.Month
}

func (ym yearMonth) next() yearMonth {
	if ym.month == time.December {
		return yearMonth{ym.year + 1, time.January}
	}
	return yearMonth{ym.year, ym.month + 1}
}

func (ym yearMonth) after(o yearMonth) bool {
	return ym.year > o.year || (ym.year == o.year && ym.month > o.month)
}

// MonthEnd returns the last calendar day of t's month at midnight UTC.
func MonthEnd(t time.Time) time.Time {
	t = t.UTC()
	return monthEnd(yearMonth{t.Year(), t.Month()})
}

func monthEnd(ym yearMonth) time.Time {
	return time.Date(ym.year, ym.month+1, 0, 0, 0, 0, 0, time.UTC)
}

// MonthlyCounts counts events per calendar month, keyed by month-end date.
// Every month from the earliest to the latest event is reported, zero-filled;
// an empty input yields no periods.
func MonthlyCounts(events []WatchEvent) []MonthBucket {
	if len(events) == 0 {
		return []MonthBucket{}
	}

	counts := make(map[yearMonth]int)
	first, last := events[0].Time, events[0].Time
	for _, e := range events {
		t := e.Time.UTC()
		counts[yearMonth{t.Year(), t.Month()}]++
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	first, last = first.UTC(), last.UTC()
	end := yearMonth{last.Year(), last.Month()}
	var out []MonthBucket
	for ym := (yearMonth{first.Year(), first.Month()}); !ym.after(end); ym = ym.next() {
		out = append(out, MonthBucket{PeriodEnd: monthEnd(ym), Count: counts[ym]})
	}
	return out
}

// ChannelCounts ranks channels by descending view count, ties by name.
func ChannelCounts(events []WatchEvent) []ChannelCount {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Channel]++
	}

	out := make([]ChannelCount, 0, len(counts))
	for ch, n := range counts {
		out = append(out, ChannelCount{Channel: ch, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// Summarize reports the size, time span and channel count of events.
func Summarize(events []WatchEvent) Summary {
	s := Summary{Total: len(events)}
	if len(events) == 0 {
		return s
	}

	channels := make(map[string]struct{})
	s.First, s.Last = events[0].Time, events[0].Time
	for _, e := range events {
		channels[e.Channel] = struct{}{}
		if e.Time.Before(s.First) {
			s.First = e.Time
		}
		if e.Time.After(s.Last) {
			s.Last = e.Time
		}
	}
	s.Channels = len(channels)
	return s
}
