// internal/cli/solve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mwiater/sudokubench/internal/sudoku"
)

// SolveConfig carries the solver settings shared by the interactive and the
// one-shot solve modes.
type SolveConfig struct {
	// WalkLength is the ILS random walk length (S).
	WalkLength int
	// Threshold is the number of stagnating ILS iterations before a walk (P).
	Threshold int
	// Timeout bounds a single solve; zero means no limit.
	Timeout time.Duration
	// Debug writes Bubble Tea diagnostics to debug.log.
	Debug bool
}

func (c SolveConfig) options() sudoku.Options {
	return sudoku.Options{WalkLength: c.WalkLength, Threshold: c.Threshold}
}

// solve runs the solver for method on a copy of puzzle and returns the
// solved board.
func solve(ctx context.Context, method string, puzzle *sudoku.Board, cfg SolveConfig) (*sudoku.Board, sudoku.Result, error) {
	solver, err := sudoku.NewSolver(method, cfg.options())
	if err != nil {
		return nil, sudoku.Result{}, err
	}
	return run(ctx, solver, puzzle, cfg.Timeout)
}

func run(ctx context.Context, solver sudoku.Solver, puzzle *sudoku.Board, timeout time.Duration) (*sudoku.Board, sudoku.Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	work := puzzle.Clone()
	res, err := solver.Solve(ctx, work)
	if err != nil {
		return nil, res, err
	}
	return work, res, nil
}

// SolveOnce solves a single puzzle without the TUI. It prints the puzzle,
// the solved board and the runtime to w. Nothing is printed when the method
// or the puzzle is invalid.
func SolveOnce(ctx context.Context, w io.Writer, method, puzzle string, cfg SolveConfig) (sudoku.Result, error) {
	solver, err := sudoku.NewSolver(method, cfg.options())
	if err != nil {
		return sudoku.Result{}, err
	}
	b, err := sudoku.Parse(puzzle)
	if err != nil {
		return sudoku.Result{}, err
	}
	fmt.Fprint(w, b.String())
	fmt.Fprintln(w, "Solving sudoku...")

	solved, res, err := run(ctx, solver, b, cfg.Timeout)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return res, fmt.Errorf("%s gave up after %s: %w", strings.ToUpper(method), cfg.Timeout, err)
		}
		return res, err
	}
	fmt.Fprint(w, solved.String())
	fmt.Fprintf(w, "sudoku solved in %dms\n", res.Millis())
	return res, nil
}
