package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	testChdir(t, t.TempDir())

	cfg, err := Load(viper.New(), "config.yaml", false)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "charts", cfg.Analysis.OutputDir)
	assert.Equal(t, "svg", cfg.Analysis.Format)
	assert.Equal(t, 40, cfg.Experiment.Runs)
	assert.Equal(t, 1, cfg.Experiment.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Experiment.Timeout)
	assert.Equal(t, 2, cfg.Solver.WalkLength)
	assert.Equal(t, 9, cfg.Solver.Threshold)
}

func TestLoad_FileEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)

	yaml := `
debug: true
analysis:
  walk_data: dataA.csv
  format: png
experiment:
  runs: 5
  timeout: 30s
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SUDOKUBENCH_EXPERIMENT_WORKERS=3\n"), 0o644))
	t.Setenv("SUDOKUBENCH_ANALYSIS_FORMAT", "pdf")
	t.Cleanup(func() { os.Unsetenv("SUDOKUBENCH_EXPERIMENT_WORKERS") })

	cfg, err := Load(viper.New(), path, true)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "dataA.csv", cfg.Analysis.WalkData)
	assert.Equal(t, "pdf", cfg.Analysis.Format, "environment overrides the file")
	assert.Equal(t, 5, cfg.Experiment.Runs)
	assert.Equal(t, 3, cfg.Experiment.Workers)
	assert.Equal(t, 30*time.Second, cfg.Experiment.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)

	_, err := Load(viper.New(), filepath.Join(dir, "missing.yaml"), true)
	assert.Error(t, err, "explicit config file must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("experiment:\n  runs: 0\n"), 0o644))
	_, err = Load(viper.New(), bad, false)
	assert.ErrorContains(t, err, "experiment.runs")
}

func TestOverridden(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("experiment:\n  workers: 2\n"), 0o644))
	t.Setenv("SUDOKUBENCH_EXPERIMENT_RUNS", "7")

	v := viper.New()
	cfg, err := Load(v, "config.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Experiment.Runs)

	assert.True(t, Overridden(v, "experiment.runs"), "env variable")
	assert.True(t, Overridden(v, "experiment.workers"), "config file")
	assert.False(t, Overridden(v, "experiment.seed"), "default only")
}
