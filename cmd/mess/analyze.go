package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/messdev/mess/internal/output"
	"github.com/messdev/mess/internal/progress"
	"github.com/messdev/mess/internal/report"
	"github.com/messdev/mess/internal/walker"
	"github.com/messdev/mess/pkg/analyzer"
	"github.com/messdev/mess/pkg/config"
)

func analyzeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file (TOML, YAML, or JSON)",
			EnvVars: []string{"MESS_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: text, json, markdown",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to file",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"t"},
			Value:   0,
			Usage:   "Number of worst files to rank (0 uses config)",
		},
		&cli.IntFlag{
			Name:    "issues",
			Aliases: []string{"i"},
			Value:   0,
			Usage:   "Max issues shown per ranked file (0 uses config)",
		},
		&cli.BoolFlag{
			Name:    "summary",
			Aliases: []string{"s"},
			Usage:   "Show only the overall score and conclusion",
		},
		&cli.BoolFlag{
			Name:    "markdown",
			Aliases: []string{"m"},
			Usage:   "Shorthand for --format markdown",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable verbose output",
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Aliases: []string{"e"},
			Usage:   "Additional exclude patterns (gitignore syntax)",
		},
		&cli.BoolFlag{
			Name:    "skipindex",
			Aliases: []string{"x"},
			Usage:   "Skip index.js / index.ts barrel files",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of analysis workers (0 uses 2x CPU count)",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "Disable the progress bar",
		},
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"run"},
		Usage:     "Analyze code quality and compute the mess score",
		ArgsUsage: "[path...]",
		Flags:     analyzeFlags(),
		Action:    runAnalyze,
	}
}

// loadConfig resolves the effective config: explicit path, discovered
// file, or defaults, with CLI flags layered on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault()
	}
	if err != nil {
		return nil, err
	}

	if n := c.Int("top"); n > 0 {
		cfg.Analysis.TopFiles = n
	}
	if n := c.Int("issues"); n > 0 {
		cfg.Analysis.MaxIssues = n
	}
	if n := c.Int("workers"); n > 0 {
		cfg.Analysis.Workers = n
	}
	if c.Bool("skipindex") {
		cfg.Analysis.SkipIndex = true
	}
	if patterns := c.StringSlice("exclude"); len(patterns) > 0 {
		cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, patterns...)
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	if c.Bool("markdown") {
		cfg.Output.Format = "markdown"
	} else if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}

	return cfg, nil
}

// collectFiles walks every requested path and merges the results.
// onFile is called once per discovered file to drive the spinner.
func collectFiles(cfg *config.Config, paths []string, onFile func()) ([]string, int, error) {
	w := walker.New(cfg)

	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid path %s: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid path %s: %w", path, err)
		}
		if !info.IsDir() {
			ok, err := w.CheckFile(absPath)
			if err != nil {
				return nil, 0, err
			}
			if ok {
				files = append(files, absPath)
				onFile()
			}
			continue
		}

		found, err := w.Walk(absPath)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning %s: %w", path, err)
		}
		files = append(files, found...)
		for range found {
			onFile()
		}
	}

	files, skipped := walker.FilterBySize(files, cfg.Analysis.MaxFileSize)
	return files, skipped, nil
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := zerolog.Nop()
	if cfg.Output.Verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	format := output.ParseFormat(cfg.Output.Format)
	interactive := format == output.FormatText && c.String("output") == "" && !c.Bool("no-progress")

	var spinner *progress.Tracker
	if interactive {
		spinner = progress.NewSpinner("Scanning files...")
	}
	files, skipped, err := collectFiles(cfg, getPaths(c), spinner.Tick)
	if err != nil {
		spinner.FinishError(err)
		return err
	}
	spinner.FinishSuccess()
	if skipped > 0 {
		log.Info().Int("skipped", skipped).Msg("files over size limit skipped")
	}

	var tracker *progress.Tracker
	if interactive && len(files) > 0 {
		tracker = progress.NewTracker("Analyzing...", len(files))
	}

	a := analyzer.New(
		analyzer.WithWorkers(cfg.Analysis.Workers),
		analyzer.WithTopFiles(cfg.Analysis.TopFiles),
		analyzer.WithMaxIssues(cfg.Analysis.MaxIssues),
		analyzer.WithWeights(cfg.Weights),
		analyzer.WithProgress(tracker.Tick),
		analyzer.WithLogger(log),
	)

	analysis, err := a.Analyze(context.Background(), files)
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := output.NewFormatter(format, c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(report.New(analysis, report.Options{
		Summary: c.Bool("summary"),
		Verbose: cfg.Output.Verbose,
	}))
}
