// cmd/sudokubench/root.go
package sudokubench

import (
	"context"
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/sudokubench/internal/config"
	"github.com/mwiater/sudokubench/internal/logger"
)

var (
	// cfg and lggr are resolved before any subcommand runs.
	cfg  *config.Config
	lggr logger.Logger
)

// rootCmd is the base Cobra command for the sudokubench application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "sudokubench",
	Short: "Solve sudokus and benchmark iterated local search",
	Long: `sudokubench solves sudoku puzzles with chronological backtracking or iterated
local search, runs the ILS parameter experiments (A, B and C) and turns their
CSV output into summary tables and charts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("config")
		loaded, err := config.Load(viper.GetViper(), path, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		l, err := logger.New(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg, lggr = loaded, l
		if cfg.Debug {
			pp.Fprintln(cmd.ErrOrStderr(), cfg)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if lggr != nil {
			_ = lggr.Sync()
		}
	},
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.yaml", "config file (YAML or JSON); optional unless set explicitly")
	rootCmd.PersistentFlags().Bool("debug", false, "dump the resolved config and log at debug level")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// commandContext returns the command's context, falling back to Background
// when the command is invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
