package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/messdev/mess/pkg/config"
)

// defaultConfigTOML is the commented starter config written by
// `mess config init`. Values mirror config.DefaultConfig.
const defaultConfigTOML = `# mess configuration

[weights]
# Relative metric weights. Scoring renormalizes, so only the ratios
# matter.
complexity = 30.0
state = 20.0
comments = 15.0
duplication = 15.0
structure = 15.0
error_handling = 10.0
naming = 8.0

[analysis]
# Worst files to rank in the report.
top_files = 5
# Findings shown per ranked file.
max_issues = 5
# Analysis workers; 0 means 2x CPU count.
workers = 0
# Skip files larger than this many bytes; 0 disables.
max_file_size = 1048576
# Skip index.js / index.ts barrel files.
skip_index = false

[exclude]
patterns = ["*.min.js", "*.min.css", "*.bundle.js"]
extensions = [".lock", ".sum"]
dirs = ["vendor", "node_modules", ".git", ".mess", "dist", "build", "target", "__pycache__"]
gitignore = true

[output]
format = "text"
color = true
verbose = false
`

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a starter mess.toml to the current directory",
				Action: runConfigInit,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration as JSON",
				Action: runConfigShow,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to config file",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Validate a configuration file",
				Action: runConfigValidate,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to config file to validate",
					},
				},
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	const path = "mess.toml"

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfigTOML), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	color.Green("Wrote %s", path)
	return nil
}

// resolveConfig loads from the -c flag, discovered locations, or
// defaults.
func resolveConfig(c *cli.Context) (*config.Config, string, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}

	path := config.FindConfig()
	if path == "" {
		return config.DefaultConfig(), "", nil
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

func runConfigShow(c *cli.Context) error {
	cfg, source, err := resolveConfig(c)
	if err != nil {
		return err
	}

	if source != "" {
		fmt.Printf("// Configuration from: %s\n", source)
	} else {
		fmt.Println("// Default configuration (no config file found)")
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

func runConfigValidate(c *cli.Context) error {
	_, source, err := resolveConfig(c)
	if err != nil {
		color.Red("Configuration validation failed:")
		fmt.Printf("  - %s\n", err)
		return err
	}

	if source != "" {
		color.Green("Configuration valid: %s", source)
	} else {
		color.Yellow("No config file found. Default configuration is valid.")
	}
	return nil
}
