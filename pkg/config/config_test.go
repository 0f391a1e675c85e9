package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.Analysis.TopFiles)
	assert.Equal(t, 5, cfg.Analysis.MaxIssues)
	assert.Equal(t, 30.0, cfg.Weights.Complexity)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.Equal(t, "text", cfg.Output.Format)
	require.NoError(t, cfg.Weights.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "mess.toml", `
[weights]
complexity = 50
naming = 0

[analysis]
top_files = 10
skip_index = true

[exclude]
dirs = ["generated"]

[output]
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50.0, cfg.Weights.Complexity)
	assert.Equal(t, 0.0, cfg.Weights.Naming)
	// Untouched weights keep their defaults.
	assert.Equal(t, 20.0, cfg.Weights.State)
	assert.Equal(t, 10, cfg.Analysis.TopFiles)
	assert.True(t, cfg.Analysis.SkipIndex)
	assert.Equal(t, []string{"generated"}, cfg.Exclude.Dirs)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "mess.yaml", `
analysis:
  max_issues: 3
output:
  verbose: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Analysis.MaxIssues)
	assert.True(t, cfg.Output.Verbose)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "mess.json", `{"analysis": {"workers": 4}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Analysis.Workers)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "mess.toml", `
[analysis]
top_fils = 10
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadRejectsBadFormat(t *testing.T) {
	path := writeConfig(t, "mess.toml", `
[output]
format = "xml"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeWeight(t *testing.T) {
	path := writeConfig(t, "mess.toml", `
[weights]
complexity = -5
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsZeroWeightSum(t *testing.T) {
	path := writeConfig(t, "mess.toml", `
[weights]
complexity = 0
state = 0
comments = 0
duplication = 0
structure = 0
error_handling = 0
naming = 0
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.ShouldExclude(filepath.Join("a", "node_modules", "x.js")))
	assert.True(t, cfg.ShouldExclude(filepath.Join("vendor", "lib.go")))
	assert.True(t, cfg.ShouldExclude("app.min.js"))
	assert.True(t, cfg.ShouldExclude("Cargo.lock"))
	assert.False(t, cfg.ShouldExclude(filepath.Join("src", "main.go")))
}

func TestShouldExcludeSkipIndex(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.ShouldExclude(filepath.Join("src", "index.ts")))

	cfg.Analysis.SkipIndex = true
	assert.True(t, cfg.ShouldExclude(filepath.Join("src", "index.ts")))
	assert.False(t, cfg.ShouldExclude(filepath.Join("src", "main.ts")))
}
