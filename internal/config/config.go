// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// SUDOKUBENCH_ANALYSIS_OUTPUT_DIR.
const EnvPrefix = "SUDOKUBENCH"

// Config contains application settings for every command.
type Config struct {
	// Debug dumps the resolved configuration and lowers the log level.
	Debug bool `mapstructure:"debug"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Experiment ExperimentConfig `mapstructure:"experiment"`
	Solver     SolverConfig     `mapstructure:"solver"`
}

// AnalysisConfig locates the three datasets and the chart output.
type AnalysisConfig struct {
	// WalkData is the dataset varying S (experiment A).
	WalkData string `mapstructure:"walk_data"`
	// ThresholdData is the dataset varying P (experiment B).
	ThresholdData string `mapstructure:"threshold_data"`
	// CombinedData is the dataset varying S and P (experiment C).
	CombinedData string `mapstructure:"combined_data"`
	// OutputDir receives the rendered charts.
	OutputDir string `mapstructure:"output_dir"`
	// Format is the chart file format: svg, png or pdf.
	Format string `mapstructure:"format"`
}

// ExperimentConfig drives the experiment harness.
type ExperimentConfig struct {
	// Input is a file with one puzzle per line.
	Input string `mapstructure:"input"`
	// PlanFile optionally replaces the built-in plan with a YAML plan.
	PlanFile string `mapstructure:"plan_file"`
	// Runs is the number of repetitions per puzzle and combination.
	Runs int `mapstructure:"runs"`
	// Workers is the number of trials run concurrently.
	Workers int `mapstructure:"workers"`
	// Seed makes the ILS random choices reproducible; 0 seeds from the clock.
	Seed int64 `mapstructure:"seed"`
	// Timeout bounds a single trial.
	Timeout time.Duration `mapstructure:"timeout"`
	// OutputDir receives the data CSV and JSON summary.
	OutputDir string `mapstructure:"output_dir"`
	// JSON also writes the suite summary as JSON.
	JSON bool `mapstructure:"json"`
}

// SolverConfig holds the ILS parameters used by the solve command.
type SolverConfig struct {
	Method     string `mapstructure:"method"`
	WalkLength int    `mapstructure:"walk_length"`
	Threshold  int    `mapstructure:"threshold"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")

	v.SetDefault("analysis.walk_data", "")
	v.SetDefault("analysis.threshold_data", "")
	v.SetDefault("analysis.combined_data", "")
	v.SetDefault("analysis.output_dir", "charts")
	v.SetDefault("analysis.format", "svg")

	v.SetDefault("experiment.input", "")
	v.SetDefault("experiment.plan_file", "")
	v.SetDefault("experiment.runs", 40)
	v.SetDefault("experiment.workers", 1)
	v.SetDefault("experiment.seed", 0)
	v.SetDefault("experiment.timeout", 2*time.Minute)
	v.SetDefault("experiment.output_dir", ".")
	v.SetDefault("experiment.json", false)

	v.SetDefault("solver.method", "")
	v.SetDefault("solver.walk_length", 2)
	v.SetDefault("solver.threshold", 9)
}

// Load resolves the configuration in v from, lowest precedence first:
// defaults, a .env file in the working directory, the config file at path
// (optional; a missing file is not an error unless explicit is true),
// SUDOKUBENCH_* environment variables, and any flags already bound to v.
func Load(v *viper.Viper, path string, explicit bool) (*Config, error) {
	SetDefaults(v)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if !missing || explicit {
				return nil, fmt.Errorf("could not read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Debug && cfg.LogLevel == "info" {
		cfg.LogLevel = "debug"
	}
	return &cfg, nil
}

// Overridden reports whether key was set by the config file or by its
// SUDOKUBENCH_* environment variable (including one loaded from .env),
// rather than coming from a default.
func Overridden(v *viper.Viper, key string) bool {
	if v.InConfig(key) {
		return true
	}
	env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	_, ok := os.LookupEnv(env)
	return ok
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Experiment.Runs < 1 {
		return fmt.Errorf("experiment.runs must be >= 1, got %d", c.Experiment.Runs)
	}
	if c.Experiment.Workers < 1 {
		return fmt.Errorf("experiment.workers must be >= 1, got %d", c.Experiment.Workers)
	}
	if c.Solver.WalkLength < 0 {
		return fmt.Errorf("solver.walk_length must be >= 0, got %d", c.Solver.WalkLength)
	}
	if c.Solver.Threshold < 1 {
		return fmt.Errorf("solver.threshold must be >= 1, got %d", c.Solver.Threshold)
	}
	return nil
}
