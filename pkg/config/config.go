package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/messdev/mess/pkg/score"
)

// Config holds all configuration options for mess.
type Config struct {
	// Metric weights used for composite scoring
	Weights score.Weights `koanf:"weights" json:"weights"`

	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis" json:"analysis"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" json:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output" json:"output"`
}

// AnalysisConfig controls analysis behavior.
type AnalysisConfig struct {
	// TopFiles is how many worst offenders the report ranks.
	TopFiles int `koanf:"top_files" json:"top_files"`

	// MaxIssues is how many findings print per ranked file.
	MaxIssues int `koanf:"max_issues" json:"max_issues"`

	// Workers caps the analysis pool; 0 means 2x NumCPU.
	Workers int `koanf:"workers" json:"workers"`

	// MaxFileSize skips files larger than this many bytes; 0 disables.
	MaxFileSize int64 `koanf:"max_file_size" json:"max_file_size"`

	// SkipIndex excludes index.js / index.ts barrel files.
	SkipIndex bool `koanf:"skip_index" json:"skip_index"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" json:"patterns"`
	Extensions []string `koanf:"extensions" json:"extensions"`
	Dirs       []string `koanf:"dirs" json:"dirs"`
	Gitignore  bool     `koanf:"gitignore" json:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" json:"format"` // text, json, markdown
	Color   bool   `koanf:"color" json:"color"`
	Verbose bool   `koanf:"verbose" json:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: score.DefaultWeights(),
		Analysis: AnalysisConfig{
			TopFiles:    5,
			MaxIssues:   5,
			Workers:     0,
			MaxFileSize: 1 << 20,
			SkipIndex:   false,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
				"*.bundle.js",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".mess",
				"dist",
				"build",
				"target",
				"__pycache__",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file. The raw document is validated
// against the config schema before unmarshaling; an invalid config is
// an error, not a silent fallback.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := validateRaw(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// searchNames are the config file names probed by LoadOrDefault.
var searchNames = []string{
	"mess.toml",
	"mess.yaml",
	"mess.yml",
	"mess.json",
	".mess.toml",
	".mess.yaml",
	".mess.yml",
	".mess.json",
}

// FindConfig returns the first config file found in the standard
// locations, or empty string.
func FindConfig() string {
	for _, dir := range []string{".", ".mess"} {
		for _, name := range searchNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault loads config from the standard locations or returns
// defaults when none exists. A config file that exists but fails to
// load or validate is a hard error.
func LoadOrDefault() (*Config, error) {
	path := FindConfig()
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	if c.Analysis.SkipIndex {
		switch base {
		case "index.js", "index.ts", "index.jsx", "index.tsx":
			return true
		}
	}

	return false
}
