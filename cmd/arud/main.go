package main

import (
	"os"

	"github.com/qawafi/arud/internal/cli/commands"
)

// Version information - set at build time with
// -ldflags "-X main.version=... -X main.commit=... -X main.date=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.GitCommit = commit
	commands.BuildDate = date

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
