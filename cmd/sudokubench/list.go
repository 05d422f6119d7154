// cmd/sudokubench/list.go
package sudokubench

import (
	"github.com/spf13/cobra"
)

// listCmd only groups the list subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List what sudokubench can do",
	Long: `The 'list' command groups subcommands that describe sudokubench itself,
such as the full tree of solve, experiment and analyze commands. It does
nothing on its own.`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
