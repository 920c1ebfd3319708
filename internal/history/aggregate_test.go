package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, ok := ParseTimestamp(s)
	if !ok {
		panic("bad test timestamp " + s)
	}
	return t
}

func ev(channel, ts string) WatchEvent {
	return NewWatchEvent("title", "https://www.youtube.com/watch?v=x", channel, at(ts))
}

func sumBuckets(bs []Bucket) int {
	n := 0
	for _, b := range bs {
		n += b.Count
	}
	return n
}

func sumMonths(ms []MonthBucket) int {
	n := 0
	for _, m := range ms {
		n += m.Count
	}
	return n
}

func sampleEvents() []WatchEvent {
	return []WatchEvent{
		ev("GopherCon", "2024-01-15T08:10:00Z"), // Monday
		ev("GopherCon", "2024-01-15T08:50:00Z"), // Monday
		ev("Fireship", "2024-01-20T13:00:00Z"),  // Saturday
		ev("Fireship", "2024-03-03T23:59:59Z"),  // Sunday
		ev("Unknown", "2024-03-31T00:00:00Z"),   // Sunday
	}
}

func TestDomains(t *testing.T) {
	require.Len(t, HourDomain, 24)
	assert.Equal(t, "0:00", HourDomain[0])
	assert.Equal(t, "9:00", HourDomain[9])
	assert.Equal(t, "10:00", HourDomain[10])
	assert.Equal(t, "23:00", HourDomain[23])

	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}, DayDomain)
}

func TestHourlyCounts(t *testing.T) {
	events := sampleEvents()
	got := HourlyCounts(events)

	require.Len(t, got, 24)
	for i, b := range got {
		assert.Equal(t, HourDomain[i], b.Key)
	}
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 2, got[8].Count)
	assert.Equal(t, 1, got[13].Count)
	assert.Equal(t, 1, got[23].Count)
	assert.Equal(t, 0, got[12].Count)
	assert.Equal(t, len(events), sumBuckets(got))
}

func TestDailyCounts(t *testing.T) {
	events := sampleEvents()
	got := DailyCounts(events)

	require.Len(t, got, 7)
	want := []Bucket{
		{"Monday", 2}, {"Tuesday", 0}, {"Wednesday", 0}, {"Thursday", 0},
		{"Friday", 0}, {"Saturday", 1}, {"Sunday", 2},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, len(events), sumBuckets(got))
}

func TestMonthlyCounts_ZeroFillsInsideSpan(t *testing.T) {
	events := sampleEvents()
	got := MonthlyCounts(events)

	want := []MonthBucket{
		{PeriodEnd: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Count: 3},
		{PeriodEnd: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), Count: 0},
		{PeriodEnd: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), Count: 2},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, len(events), sumMonths(got))
}

func TestMonthlyCounts_SpansYearBoundary(t *testing.T) {
	events := []WatchEvent{
		ev("a", "2024-02-01T00:00:00Z"),
		ev("a", "2023-11-30T23:00:00Z"),
	}
	got := MonthlyCounts(events)

	require.Len(t, got, 4)
	assert.Equal(t, time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC), got[0].PeriodEnd)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), got[1].PeriodEnd)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), got[2].PeriodEnd)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got[3].PeriodEnd)
	assert.Equal(t, []int{1, 0, 0, 1}, []int{got[0].Count, got[1].Count, got[2].Count, got[3].Count})

	assert.Equal(t, MonthEnd(events[1].Time), got[0].PeriodEnd)
	assert.Equal(t, MonthEnd(events[0].Time), got[len(got)-1].PeriodEnd)
}

func TestMonthlyCounts_SingleMonth(t *testing.T) {
	got := MonthlyCounts([]WatchEvent{ev("a", "2024-04-10T10:00:00Z")})
	assert.Equal(t, []MonthBucket{{PeriodEnd: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), Count: 1}}, got)
}

func TestAggregates_Empty(t *testing.T) {
	hourly := HourlyCounts(nil)
	require.Len(t, hourly, 24)
	assert.Equal(t, 0, sumBuckets(hourly))

	daily := DailyCounts(nil)
	require.Len(t, daily, 7)
	assert.Equal(t, 0, sumBuckets(daily))

	monthly := MonthlyCounts(nil)
	assert.NotNil(t, monthly)
	assert.Empty(t, monthly)
}

func TestAggregates_Idempotent(t *testing.T) {
	events := sampleEvents()

	assert.Equal(t, HourlyCounts(events), HourlyCounts(events))
	assert.Equal(t, DailyCounts(events), DailyCounts(events))
	assert.Equal(t, MonthlyCounts(events), MonthlyCounts(events))
	assert.Equal(t, ChannelCounts(events), ChannelCounts(events))
}

func TestMonthEnd(t *testing.T) {
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), MonthEnd(at("2023-02-01T00:00:00Z")))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), MonthEnd(at("2024-02-29T23:59:59Z")))
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), MonthEnd(at("2024-12-05T12:00:00Z")))
}

func TestChannelCounts_Ordering(t *testing.T) {
	events := []WatchEvent{
		ev("b", "2024-01-01T00:00:00Z"),
		ev("a", "2024-01-01T00:00:00Z"),
		ev("c", "2024-01-01T00:00:00Z"),
		ev("c", "2024-01-02T00:00:00Z"),
	}

	got := ChannelCounts(events)
	assert.Equal(t, []ChannelCount{{"c", 2}, {"a", 1}, {"b", 1}}, got)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleEvents())
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, at("2024-01-15T08:10:00Z"), s.First)
	assert.Equal(t, at("2024-03-31T00:00:00Z"), s.Last)
	assert.Equal(t, 3, s.Channels)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.True(t, empty.First.IsZero())
}
