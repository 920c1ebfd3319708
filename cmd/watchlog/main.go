package main

import (
	"os"

	"github.com/runnerr0/watchlog/internal/cli"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	if err := cli.Run(Version); err != nil {
		// go-flags has already printed the error.
		os.Exit(1)
	}
}
