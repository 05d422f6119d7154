// cmd/sudokubench/experiment_run.go
package sudokubench

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/sudokubench/internal/cli"
	"github.com/mwiater/sudokubench/internal/config"
	"github.com/mwiater/sudokubench/internal/harness"
	"github.com/mwiater/sudokubench/internal/sudoku"
)

// runSuite is swapped in tests.
var runSuite = harness.RunSuite

// experimentRunCmd implements 'experiment run'.
var experimentRunCmd = &cobra.Command{
	Use:   "run [A|B|C]",
	Short: "Run an experiment plan over a puzzle file",
	Long: `The 'run' subcommand solves every puzzle of the input file (one per line) with
iterated local search for each (S, P) combination of the plan, 40 times by
default, and writes data<PLAN><HH-mm-ss>.csv with the columns
"length random walk;threshold random walk;iterations;sudoku id;runtime".
Plan A varies S = 1..10 with P = 9, plan B varies P = 7..15 with S = 1 and
plan C crosses P in 7,9,..,15 with S in 1,3,..,9. --plan loads a custom YAML
plan instead; a positional id then renames it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := resolvePlan(cfg.Experiment.PlanFile, args)
		if err != nil {
			return err
		}
		if cfg.Experiment.Input == "" {
			return errors.New("an input file is required (--input or experiment.input)")
		}
		puzzles, err := harness.ReadPuzzles(cfg.Experiment.Input)
		if err != nil {
			return err
		}

		runs := cfg.Experiment.Runs
		if plan.Runs > 0 && !cmd.Flags().Changed("runs") && !config.Overridden(viper.GetViper(), "experiment.runs") {
			runs = plan.Runs
		}
		suite := harness.SuiteConfig{
			Puzzles: puzzles,
			Plan:    plan,
			Runs:    runs,
			Workers: cfg.Experiment.Workers,
			Seed:    cfg.Experiment.Seed,
			Timeout: cfg.Experiment.Timeout,
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
		defer stop()

		res, runErr := runSuite(ctx, suite, lggr)
		if len(res.Trials) == 0 {
			return runErr
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Experiment %s (%s), run %s\n", plan.ID, plan.Description, res.RunID)
		fmt.Fprintln(out, harness.SummaryTable(res))

		paths, err := harness.Save(cfg.Experiment.OutputDir, res, cfg.Experiment.JSON)
		for _, p := range paths {
			fmt.Fprintf(out, "wrote %s\n", p)
		}
		if err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}

		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			for i, p := range puzzles {
				fmt.Fprintf(out, "sudoku number: %d\n", i+1)
				if _, err := solveOnce(ctx, out, sudoku.MethodCBT, p, cli.SolveConfig{Timeout: cfg.Experiment.Timeout}); err != nil {
					return fmt.Errorf("puzzle %d: %w", i+1, err)
				}
			}
		}
		return nil
	},
}

// resolvePlan picks the custom plan file when set, else the built-in plan
// named by the single positional argument.
func resolvePlan(planFile string, args []string) (harness.Plan, error) {
	if planFile != "" {
		plan, err := harness.LoadPlan(planFile)
		if err != nil {
			return harness.Plan{}, err
		}
		if len(args) == 1 {
			plan.ID = strings.TrimSpace(args[0])
		}
		return plan, nil
	}
	if len(args) == 0 {
		return harness.Plan{}, errors.New("choose a valid experiment: 'A', 'B' or 'C' (or pass --plan)")
	}
	return harness.PlanByID(args[0])
}

func init() {
	experimentCmd.AddCommand(experimentRunCmd)

	f := experimentRunCmd.Flags()
	f.String("input", "", "file with one puzzle per line")
	f.String("plan", "", "custom YAML plan file")
	f.Int("runs", harness.DefaultRuns, "runs per puzzle and combination")
	f.Int("workers", 1, "trials run concurrently")
	f.Int64("seed", 0, "seed for reproducible runs (0 seeds from the clock)")
	f.Duration("timeout", harness.DefaultTimeout, "per-trial timeout")
	f.String("out", ".", "output directory for the data files")
	f.Bool("json", false, "also write the suite summary as JSON")
	f.Bool("verify", false, "afterwards solve every puzzle with CBT and print it")

	for key, flag := range map[string]string{
		"experiment.input":      "input",
		"experiment.plan_file":  "plan",
		"experiment.runs":       "runs",
		"experiment.workers":    "workers",
		"experiment.seed":       "seed",
		"experiment.timeout":    "timeout",
		"experiment.output_dir": "out",
		"experiment.json":       "json",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}
