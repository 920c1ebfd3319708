package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func channelsOf(events []WatchEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Channel
	}
	return out
}

func TestFilter_DefaultsSelectEverything(t *testing.T) {
	events := sampleEvents()
	got := Filter{}.Apply(events)
	assert.Equal(t, events, got)
}

func TestFilter_DateRangeIsInclusiveByCalendarDate(t *testing.T) {
	events := sampleEvents()

	// 2024-03-03T23:59:59Z is on the end date and must be kept.
	got := Filter{From: date("2024-01-20"), To: date("2024-03-03")}.Apply(events)
	assert.Equal(t, []string{"Fireship", "Fireship"}, channelsOf(got))

	got = Filter{From: date("2024-01-15"), To: date("2024-01-15")}.Apply(events)
	assert.Len(t, got, 2)
}

func TestFilter_OpenEndedBounds(t *testing.T) {
	events := sampleEvents()

	got := Filter{From: date("2024-03-01")}.Apply(events)
	assert.Len(t, got, 2)

	got = Filter{To: date("2024-01-16")}.Apply(events)
	assert.Len(t, got, 2)
}

func TestFilter_ChannelSelection(t *testing.T) {
	events := sampleEvents()

	got := Filter{Channels: []string{"GopherCon", "Unknown"}}.Apply(events)
	assert.Equal(t, []string{"GopherCon", "GopherCon", "Unknown"}, channelsOf(got))

	got = Filter{Channels: []string{"nobody"}}.Apply(events)
	assert.Empty(t, got)
}

func TestFilter_EmptyChannelSetSelectsNothing(t *testing.T) {
	events := sampleEvents()

	got := Filter{From: date("2024-01-01"), To: date("2024-12-31"), Channels: []string{}}.Apply(events)
	assert.Empty(t, got)

	hourly := HourlyCounts(got)
	daily := DailyCounts(got)
	monthly := MonthlyCounts(got)
	assert.Len(t, hourly, 24)
	assert.Equal(t, 0, sumBuckets(hourly))
	assert.Len(t, daily, 7)
	assert.Equal(t, 0, sumBuckets(daily))
	assert.Empty(t, monthly)
}

func TestFilter_InvertedRangeSelectsNothing(t *testing.T) {
	got := Filter{From: date("2024-03-01"), To: date("2024-01-01")}.Apply(sampleEvents())
	assert.Empty(t, got)
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	events := sampleEvents()
	before := append([]WatchEvent(nil), events...)

	_ = Filter{Channels: []string{"Fireship"}}.Apply(events)
	assert.Equal(t, before, events)
}

func TestFilter_ResolveDefaults(t *testing.T) {
	events := sampleEvents()

	f := Filter{}.Resolve(events)
	assert.Equal(t, date("2024-01-15"), f.From)
	assert.Equal(t, date("2024-03-31"), f.To)
	assert.Equal(t, []string{"Fireship", "GopherCon", "Unknown"}, f.Channels)
}

func TestDefaultFilter_SelectsWholeCollection(t *testing.T) {
	events := sampleEvents()

	f := DefaultFilter(events)
	assert.Equal(t, Filter{}.Resolve(events), f)
	assert.Len(t, f.Apply(events), len(events))
}

func TestFilter_ResolveChannelsReflectDateRange(t *testing.T) {
	events := sampleEvents()

	f := Filter{From: date("2024-03-01")}.Resolve(events)
	assert.Equal(t, date("2024-03-01"), f.From)
	assert.Equal(t, date("2024-03-31"), f.To)
	assert.Equal(t, []string{"Fireship", "Unknown"}, f.Channels)
}

func TestFilter_ResolveKeepsExplicitChannels(t *testing.T) {
	f := Filter{Channels: []string{}}.Resolve(sampleEvents())
	require.NotNil(t, f.Channels)
	assert.Empty(t, f.Channels)
}

func TestFilter_EmptyCollection(t *testing.T) {
	f := Filter{}.Resolve(nil)
	assert.True(t, f.From.IsZero())
	assert.True(t, f.To.IsZero())
	assert.Empty(t, f.Channels)

	assert.Empty(t, Filter{}.Apply(nil))
}

func TestDateOf(t *testing.T) {
	got := DateOf(time.Date(2024, 1, 15, 23, 59, 59, 0, time.FixedZone("X", -3600)))
	assert.Equal(t, date("2024-01-16"), got)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("01/15/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestDateRange(t *testing.T) {
	from, to, ok := DateRange(sampleEvents())
	require.True(t, ok)
	assert.Equal(t, date("2024-01-15"), from)
	assert.Equal(t, date("2024-03-31"), to)

	_, _, ok = DateRange(nil)
	assert.False(t, ok)
}
