// cmd/sudokubench/experiment.go
package sudokubench

import (
	"github.com/spf13/cobra"
)

// experimentCmd groups the experiment subcommands.
var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Group commands for ILS parameter experiments",
	Long:  `The 'experiment' command groups subcommands that benchmark iterated local search over combinations of the random walk length (S) and threshold (P). It performs no action on its own.`,
}

func init() {
	rootCmd.AddCommand(experimentCmd)
}
