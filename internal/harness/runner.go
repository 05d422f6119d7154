// internal/harness/runner.go
// Package: harness
package harness

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mwiater/sudokubench/internal/logger"
	"github.com/mwiater/sudokubench/internal/sudoku"
)

// DefaultTimeout bounds a single trial when SuiteConfig.Timeout is unset.
const DefaultTimeout = 2 * time.Minute

// trial identifies one unit of work; its index fixes its place in the output.
type trial struct {
	index  int
	puzzle int // 0-based
	combo  Combination
	run    int // 1-based
}

// RunSuite is the single exported entrypoint.
// Provide a populated SuiteConfig, and it returns every trial plus
// per-combination summaries. Failed trials are recorded, not fatal; the
// returned error is non-nil only for an invalid config or a cancelled ctx.
func RunSuite(ctx context.Context, cfg SuiteConfig, lggr logger.Logger) (SuiteResult, error) {
	if len(cfg.Puzzles) == 0 {
		return SuiteResult{}, errors.New("at least one puzzle is required")
	}
	if err := cfg.Plan.Validate(); err != nil {
		return SuiteResult{}, err
	}
	if cfg.Runs <= 0 {
		cfg.Runs = cfg.Plan.Runs
	}
	if cfg.Runs <= 0 {
		cfg.Runs = DefaultRuns
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	boards := make([]*sudoku.Board, len(cfg.Puzzles))
	for i, p := range cfg.Puzzles {
		b, err := sudoku.Parse(p)
		if err != nil {
			return SuiteResult{}, fmt.Errorf("puzzle %d: %w", i+1, err)
		}
		boards[i] = b
	}

	lggr = lggr.Named("harness")
	runID := uuid.New()
	total := len(boards) * len(cfg.Plan.Combinations) * cfg.Runs
	lggr.Infow("starting suite", "run_id", runID, "plan", cfg.Plan.ID,
		"puzzles", len(boards), "combinations", len(cfg.Plan.Combinations),
		"runs", cfg.Runs, "trials", total, "workers", cfg.Workers)

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	results := make([]TrialResult, total)
	jobs := make(chan trial)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				rng := rand.New(rand.NewSource(baseSeed + int64(t.index)))
				results[t.index] = runTrial(ctx, boards[t.puzzle], t, cfg.Timeout, rng, lggr)
			}
		}()
	}

	i := 0
feed:
	for p := range boards {
		for _, c := range cfg.Plan.Combinations {
			for r := 1; r <= cfg.Runs; r++ {
				t := trial{index: i, puzzle: p, combo: c, run: r}
				select {
				case jobs <- t:
					i++
				case <-ctx.Done():
					break feed
				}
			}
		}
	}
	close(jobs)
	wg.Wait()

	// Trials never handed to a worker are recorded as cancelled.
	if i < total {
		j := 0
		for p := range boards {
			for _, c := range cfg.Plan.Combinations {
				for r := 1; r <= cfg.Runs; r++ {
					if j >= i {
						results[j] = failedTrial(trial{index: j, puzzle: p, combo: c, run: r}, ctx.Err())
					}
					j++
				}
			}
		}
	}

	res := buildSuiteResult(runID, cfg, results)
	lggr.Infow("suite finished", "run_id", runID, "trials", len(results), "failed", res.Failed())
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("suite interrupted: %w", err)
	}
	return res, nil
}

func runTrial(ctx context.Context, puzzle *sudoku.Board, t trial, timeout time.Duration, rng *rand.Rand, lggr logger.Logger) TrialResult {
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	solver, err := sudoku.NewILS(t.combo.WalkLength, t.combo.Threshold, rng)
	if err != nil {
		return failedTrial(t, err)
	}
	res, err := solver.Solve(ctx2, puzzle.Clone())
	if err != nil {
		// Record a failed row to make issues visible without aborting.
		lggr.Warnw("trial failed", "sudoku", t.puzzle+1, "s", t.combo.WalkLength,
			"p", t.combo.Threshold, "run", t.run, "error", err)
		return failedTrial(t, err)
	}

	tr := TrialResult{
		PuzzleID:      t.puzzle + 1,
		WalkLength:    t.combo.WalkLength,
		Threshold:     t.combo.Threshold,
		Run:           t.run,
		Iterations:    res.Iterations,
		RuntimeMillis: res.Millis(),
	}
	lggr.Infow("trial finished", "sudoku", tr.PuzzleID, "s", tr.WalkLength, "p", tr.Threshold,
		"run", tr.Run, "iterations", tr.Iterations, "runtime_ms", tr.RuntimeMillis)
	return tr
}

func failedTrial(t trial, err error) TrialResult {
	msg := "cancelled"
	if err != nil {
		msg = fmt.Sprintf("error: %v", err)
	}
	return TrialResult{
		PuzzleID:   t.puzzle + 1,
		WalkLength: t.combo.WalkLength,
		Threshold:  t.combo.Threshold,
		Run:        t.run,
		Error:      msg,
	}
}
