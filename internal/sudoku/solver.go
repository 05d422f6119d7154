// internal/sudoku/solver.go
package sudoku

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Solving methods understood by NewSolver.
const (
	MethodCBT = "CBT"
	MethodILS = "ILS"
)

// Methods lists the valid solving methods in display order.
var Methods = []string{MethodCBT, MethodILS}

// Result describes a finished solve.
type Result struct {
	// Method is the solver that produced the result.
	Method string `json:"method"`
	// Iterations counts search steps: local search iterations (including
	// random walk swaps) for ILS, value assignments for CBT.
	Iterations int `json:"iterations"`
	// Walks counts ILS random walks; always zero for CBT.
	Walks int `json:"walks,omitempty"`
	// Elapsed is the wall time spent searching.
	Elapsed time.Duration `json:"elapsed"`
}

// Millis returns the elapsed search time in whole milliseconds.
func (r Result) Millis() int64 { return r.Elapsed.Milliseconds() }

// Solver solves a board in place.
type Solver interface {
	Name() string
	Solve(ctx context.Context, b *Board) (Result, error)
}

// Options configures NewSolver. Zero values fall back to defaults.
type Options struct {
	// WalkLength is the ILS random walk length (S).
	WalkLength int
	// Threshold is the number of stagnating ILS iterations before a random walk (P).
	Threshold int
	// Rand is the random source used by ILS. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// Default ILS parameters used by the interactive solve mode.
const (
	DefaultWalkLength = 2
	DefaultThreshold  = 9
)

// NewSolver returns the solver registered for method (case-insensitive).
func NewSolver(method string, opts Options) (Solver, error) {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case MethodCBT:
		return NewCBT(), nil
	case MethodILS:
		s, p := opts.WalkLength, opts.Threshold
		if s == 0 && p == 0 {
			s, p = DefaultWalkLength, DefaultThreshold
		}
		return NewILS(s, p, opts.Rand)
	default:
		return nil, fmt.Errorf("unknown solving method %q (valid: %s)", method, strings.Join(Methods, ", "))
	}
}

// checkCtx is called from solver hot loops; it only consults the context
// every 256 steps.
func checkCtx(ctx context.Context, step int) error {
	if step&0xff != 0 {
		return nil
	}
	return ctx.Err()
}
