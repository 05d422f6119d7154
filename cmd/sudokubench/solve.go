// cmd/sudokubench/solve.go
package sudokubench

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/sudokubench/internal/cli"
)

// Seams swapped in tests.
var (
	startGUI  = cli.StartGUI
	solveOnce = cli.SolveOnce
)

// solveCmd represents the 'solve' command.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a single sudoku",
	Long: `The 'solve' command solves one sudoku with chronological backtracking (CBT) or
iterated local search (ILS). With both --method and --puzzle set it prints the
board before and after solving; otherwise it starts an interactive session.
A puzzle is 81 characters with '.' or '0' for empty squares, or 81
semicolon-separated values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cli.SolveConfig{
			WalkLength: cfg.Solver.WalkLength,
			Threshold:  cfg.Solver.Threshold,
			Timeout:    viper.GetDuration("solve_timeout"),
			Debug:      cfg.Debug,
		}
		puzzle, _ := cmd.Flags().GetString("puzzle")
		if cfg.Solver.Method != "" && puzzle != "" {
			lggr.Debugw("solving", "method", cfg.Solver.Method, "s", sc.WalkLength, "p", sc.Threshold)
			_, err := solveOnce(commandContext(cmd), cmd.OutOrStdout(), cfg.Solver.Method, puzzle, sc)
			return err
		}
		return startGUI(sc)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().String("method", "", "solving method: CBT or ILS")
	solveCmd.Flags().String("puzzle", "", "puzzle string")
	solveCmd.Flags().IntP("walk-length", "s", 2, "ILS random walk length (S)")
	solveCmd.Flags().IntP("threshold", "p", 9, "ILS stagnating iterations before a random walk (P)")
	solveCmd.Flags().Duration("timeout", 0, "give up after this long (0 waits indefinitely)")
	_ = viper.BindPFlag("solver.method", solveCmd.Flags().Lookup("method"))
	_ = viper.BindPFlag("solver.walk_length", solveCmd.Flags().Lookup("walk-length"))
	_ = viper.BindPFlag("solver.threshold", solveCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("solve_timeout", solveCmd.Flags().Lookup("timeout"))
}
