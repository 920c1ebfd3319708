package cli

import (
	"fmt"

	"github.com/runnerr0/watchlog/internal/history"
)

// Execute implements the go-flags Commander interface for ChannelsCommand.
func (c *ChannelsCommand) Execute(args []string) error {
	f, err := buildFilter(FilterFlags{From: c.From, To: c.To})
	if err != nil {
		return err
	}
	events, err := loadDataset(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithEvents(events, f)
}

// executeWithEvents ranks the channels of events inside f's date range.
func (c *ChannelsCommand) executeWithEvents(events []history.WatchEvent, f history.Filter) error {
	f.Channels = nil
	ranked := history.ChannelCounts(f.Apply(events))
	if c.Limit > 0 && len(ranked) > c.Limit {
		ranked = ranked[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(ranked)
	}

	if len(ranked) == 0 {
		fmt.Println("No channels in range.")
		return nil
	}
	for _, ch := range ranked {
		fmt.Printf("  %-32s %s\n", ch.Channel, formatNumber(int64(ch.Count)))
	}
	return nil
}
