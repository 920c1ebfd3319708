package cli

import (
	"fmt"

	"github.com/runnerr0/watchlog/internal/history"
)

const barWidth = 40

type statsJSON struct {
	From     string           `json:"from,omitempty"`
	To       string           `json:"to,omitempty"`
	Channels []string         `json:"channels"`
	Total    int              `json:"total"`
	Hourly   []history.Bucket `json:"hourly"`
	Daily    []history.Bucket `json:"daily"`
	Monthly  []monthJSON      `json:"monthly"`
}

type monthJSON struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	f, err := buildFilter(c.FilterFlags)
	if err != nil {
		return err
	}
	events, err := loadDataset(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEvents(events, f)
}

// executeWithEvents filters and aggregates events (for testing).
func (c *StatsCommand) executeWithEvents(events []history.WatchEvent, f history.Filter) error {
	f = f.Resolve(events)
	sel := f.Apply(events)

	hourly := history.HourlyCounts(sel)
	daily := history.DailyCounts(sel)
	monthly := history.MonthlyCounts(sel)

	if c.globals != nil && c.globals.JSON {
		from, to := formatDate(f)
		out := statsJSON{
			From:     from,
			To:       to,
			Channels: f.Channels,
			Total:    len(sel),
			Hourly:   hourly,
			Daily:    daily,
			Monthly:  make([]monthJSON, len(monthly)),
		}
		if out.Channels == nil {
			out.Channels = []string{}
		}
		for i, m := range monthly {
			out.Monthly[i] = monthJSON{Period: m.PeriodEnd.Format(history.DateLayout), Count: m.Count}
		}
		return printJSON(out)
	}

	from, to := formatDate(f)
	fmt.Printf("Views:         %s\n", formatNumber(int64(len(sel))))
	if from != "" {
		fmt.Printf("Range:         %s .. %s\n", from, to)
	}
	fmt.Printf("Channels:      %d selected\n", len(f.Channels))

	printBuckets("Views by Hour", hourly)
	printBuckets("Views by Day", daily)

	fmt.Println()
	fmt.Println("Views by Month:")
	peak := 0
	for _, m := range monthly {
		peak = max(peak, m.Count)
	}
	for _, m := range monthly {
		fmt.Printf("  %-10s %6d %s\n", m.PeriodEnd.Format(history.DateLayout), m.Count, bar(m.Count, peak, barWidth))
	}
	return nil
}

func printBuckets(title string, buckets []history.Bucket) {
	fmt.Println()
	fmt.Printf("%s:\n", title)
	peak := 0
	for _, b := range buckets {
		peak = max(peak, b.Count)
	}
	for _, b := range buckets {
		fmt.Printf("  %-10s %6d %s\n", b.Key, b.Count, bar(b.Count, peak, barWidth))
	}
}
