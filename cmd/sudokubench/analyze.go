// cmd/sudokubench/analyze.go
package sudokubench

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/sudokubench/internal/report"
)

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize experiment CSV files and render charts",
	Long: `The 'analyze' command reads the experiment datasets and, for each one given,
prints the mean runtime per parameter value with a summary table and writes a
chart: a boxplot of runtime per S for the walk dataset (experiment A), a
boxplot of runtime per P for the threshold dataset (experiment B) and a 3-D
bar chart of the mean runtime per (S, P) for the combined dataset
(experiment C). At least one dataset is required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := report.Run(report.Options{
			WalkData:      cfg.Analysis.WalkData,
			ThresholdData: cfg.Analysis.ThresholdData,
			CombinedData:  cfg.Analysis.CombinedData,
			OutputDir:     cfg.Analysis.OutputDir,
			Format:        cfg.Analysis.Format,
		}, cmd.OutOrStdout(), lggr)
		for _, p := range rep.Charts {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()
	f.String("walk", "", "dataset varying the random walk length S (experiment A)")
	f.String("threshold", "", "dataset varying the threshold P (experiment B)")
	f.String("combined", "", "dataset varying S and P (experiment C)")
	f.String("out", "charts", "output directory for the charts")
	f.String("format", "svg", "chart format: svg, png or pdf")
	_ = viper.BindPFlag("analysis.walk_data", f.Lookup("walk"))
	_ = viper.BindPFlag("analysis.threshold_data", f.Lookup("threshold"))
	_ = viper.BindPFlag("analysis.combined_data", f.Lookup("combined"))
	_ = viper.BindPFlag("analysis.output_dir", f.Lookup("out"))
	_ = viper.BindPFlag("analysis.format", f.Lookup("format"))
}
