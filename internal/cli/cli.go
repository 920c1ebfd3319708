package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Ingest   *IngestCommand
	Stats    *StatsCommand
	Channels *ChannelsCommand
	Status   *StatusCommand
	Serve    *ServeCommand
	Purge    *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "watchlog"
	parser.LongDescription = "Turn a YouTube watch-history export into a local dataset and explore when you watch."

	cmds := &commands{
		Ingest:   &IngestCommand{globals: &globals, version: version},
		Stats:    &StatsCommand{globals: &globals, version: version},
		Channels: &ChannelsCommand{globals: &globals, version: version},
		Status:   &StatusCommand{globals: &globals, version: version},
		Serve:    &ServeCommand{globals: &globals, version: version},
		Purge:    &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("ingest", "Build the dataset from an export", "Extract and normalize the watch-history export and replace the stored dataset.", cmds.Ingest)
	parser.AddCommand("stats", "Show view counts", "Show hourly, weekday and monthly view counts for an optional date and channel filter.", cmds.Stats)
	parser.AddCommand("channels", "List channels", "List channels ordered by view count for an optional date range.", cmds.Channels)
	parser.AddCommand("status", "Show dataset statistics", "Show stored dataset statistics and configuration summary.", cmds.Status)
	parser.AddCommand("serve", "Start the dashboard API", "Serve the dashboard data API over HTTP until interrupted.", cmds.Serve)
	parser.AddCommand("purge", "Delete the stored dataset", "Delete the stored dataset. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the watchlog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("watchlog %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
