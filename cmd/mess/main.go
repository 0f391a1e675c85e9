package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "mess",
		Usage:   "Multi-language code mess analyzer",
		Version: version,
		Description: `Mess scores codebases for complexity, state management, comments,
duplication, structure, error handling, and naming, then rolls the
results into a single mess score from 0 (pristine) to 100 (run away).

Supports: Go, Rust, Python, TypeScript, JavaScript, Java, C, C++, C#, PHP, CSS, HTML`,
		// The bare invocation takes the same flags as the analyze
		// command.
		Flags: analyzeFlags(),
		Commands: []*cli.Command{
			analyzeCmd(),
			configCmd(),
		},
		// Bare `mess [path...]` runs a full analysis.
		Action: runAnalyze,
	}
}
