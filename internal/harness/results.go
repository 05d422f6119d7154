// internal/harness/results.go
// Package: harness
package harness

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// summarize builds per-combination summaries from the successful trials, in
// plan order. Combinations whose trials all failed keep zero statistics.
func summarize(plan Plan, trials []TrialResult) []CombinationSummary {
	out := make([]CombinationSummary, 0, len(plan.Combinations))
	index := make(map[Combination]int, len(plan.Combinations))
	runtimes := make([][]float64, 0, len(plan.Combinations))
	iterations := make([][]float64, 0, len(plan.Combinations))
	for _, c := range plan.Combinations {
		if _, dup := index[c]; dup {
			continue
		}
		index[c] = len(out)
		out = append(out, CombinationSummary{Combination: c})
		runtimes = append(runtimes, nil)
		iterations = append(iterations, nil)
	}

	for _, t := range trials {
		i, ok := index[Combination{WalkLength: t.WalkLength, Threshold: t.Threshold}]
		if !ok {
			continue
		}
		if !t.OK() {
			out[i].Failed++
			continue
		}
		out[i].Trials++
		runtimes[i] = append(runtimes[i], float64(t.RuntimeMillis))
		iterations[i] = append(iterations[i], float64(t.Iterations))
	}

	for i := range out {
		rt := runtimes[i]
		if len(rt) == 0 {
			continue
		}
		// stat.Quantile needs sorted input.
		slices.Sort(rt)
		out[i].RuntimeMean, out[i].RuntimeStd = stat.PopMeanStdDev(rt, nil)
		out[i].RuntimeP50 = stat.Quantile(0.50, stat.Empirical, rt, nil)
		out[i].RuntimeP95 = stat.Quantile(0.95, stat.Empirical, rt, nil)
		out[i].IterationsMean = stat.Mean(iterations[i], nil)
	}
	return out
}

// buildSuiteResult packs everything with a timestamp.
func buildSuiteResult(runID uuid.UUID, cfg SuiteConfig, trials []TrialResult) SuiteResult {
	return SuiteResult{
		RunID:       runID,
		Config:      cfg,
		Trials:      trials,
		Summaries:   summarize(cfg.Plan, trials),
		GeneratedAt: time.Now(),
	}
}
