// internal/harness/types.go
// Package: harness
package harness

import (
	"time"

	"github.com/google/uuid"
)

// Combination is one (S, P) parameter pair of the ILS solver.
type Combination struct {
	WalkLength int `json:"s" yaml:"s"` // length of the random walk (S)
	Threshold  int `json:"p" yaml:"p"` // stagnating iterations before a walk (P)
}

// Plan names a set of combinations to benchmark.
type Plan struct {
	ID           string        `json:"id" yaml:"id"`                   // e.g. "A", used in the output file name
	Description  string        `json:"description" yaml:"description"` // human-friendly
	Runs         int           `json:"runs,omitempty" yaml:"runs"`     // optional per-plan default for SuiteConfig.Runs
	Combinations []Combination `json:"combinations" yaml:"combinations"`
}

// SuiteConfig configures the entire run.
type SuiteConfig struct {
	// Puzzles to benchmark, one puzzle string each. A puzzle's id is its
	// 1-based position.
	Puzzles []string `json:"puzzles"`

	// Plan of (S, P) combinations.
	Plan Plan `json:"plan"`

	// Runs per puzzle and combination.
	Runs int `json:"runs"`

	// Workers run trials concurrently; 1 runs them in order.
	Workers int `json:"workers"`

	// Seed for the per-trial random sources. 0 seeds from the clock.
	Seed int64 `json:"seed"`

	// Timeout per trial (safety guard against a stuck search).
	Timeout time.Duration `json:"timeout"`
}

// TrialResult captures a single ILS solve.
type TrialResult struct {
	PuzzleID   int `json:"puzzle_id"`
	WalkLength int `json:"s"`
	Threshold  int `json:"p"`
	Run        int `json:"run"` // 1-based

	Iterations    int   `json:"iterations"`
	RuntimeMillis int64 `json:"runtime_ms"`

	// Error is set when the trial failed or timed out; such rows are kept
	// in the result but never written to the CSV.
	Error string `json:"error,omitempty"`
}

// OK reports whether the trial finished with a solved board.
func (t TrialResult) OK() bool { return t.Error == "" }

// CombinationSummary aggregates the successful trials of one combination.
type CombinationSummary struct {
	Combination

	Trials int `json:"trials"`
	Failed int `json:"failed"`

	RuntimeMean float64 `json:"runtime_mean_ms"`
	RuntimeP50  float64 `json:"runtime_p50_ms"`
	RuntimeP95  float64 `json:"runtime_p95_ms"`
	RuntimeStd  float64 `json:"runtime_std_ms"`

	IterationsMean float64 `json:"iterations_mean"`
}

// SuiteResult is the top-level artifact returned by RunSuite.
type SuiteResult struct {
	RunID       uuid.UUID            `json:"run_id"`
	Config      SuiteConfig          `json:"config"`
	Trials      []TrialResult        `json:"trials"`
	Summaries   []CombinationSummary `json:"summaries"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// Failed counts the trials that did not produce a solved board.
func (r SuiteResult) Failed() int {
	n := 0
	for _, t := range r.Trials {
		if !t.OK() {
			n++
		}
	}
	return n
}
