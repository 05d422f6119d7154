// internal/analysis/summary.go
// Package: analysis
package analysis

import (
	"errors"
	"math"
	"slices"

	"github.com/montanaflynn/stats"
)

// ErrEmptyGroup is returned when summarizing no values.
var ErrEmptyGroup = errors.New("empty group")

// Summary holds descriptive statistics of one group.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes a Summary. StdDev is the population standard deviation.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyGroup
	}
	data := stats.Float64Data(values)
	s := Summary{Count: len(values)}

	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Summary{}, err
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	s.Q1 = quantile(sorted, 0.25)
	s.Q3 = quantile(sorted, 0.75)
	return s, nil
}

// quantile interpolates linearly between the closest ranks of sorted, so
// q lies at position (n-1)*q. This is the quartile rule the charts draw.
func quantile(sorted []float64, q float64) float64 {
	pos := float64(len(sorted)-1) * q
	lo := int(math.Floor(pos))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Percentile returns the p-th percentile (0 < p <= 100) of values, or 0 when
// values is empty.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	v, err := stats.Percentile(values, p)
	if err != nil {
		return 0
	}
	return v
}
