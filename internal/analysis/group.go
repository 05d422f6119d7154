// internal/analysis/group.go
// Package: analysis
package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// Group holds the values of one column for rows sharing a key.
type Group struct {
	Key    float64
	Values []float64
}

// GroupMean is the mean of a group; Mean is NaN when Count is 0.
type GroupMean struct {
	Key   float64 `json:"key"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// Cell is one (S, P) parameter combination.
type Cell struct {
	WalkLength float64 `json:"s" yaml:"s"`
	Threshold  float64 `json:"p" yaml:"p"`
}

// CellMean is the mean runtime of one parameter combination.
type CellMean struct {
	Cell
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// Default key sets used by the three standard datasets.
var (
	// DefaultWalkLengths are the S values of experiment A.
	DefaultWalkLengths = seq(1, 10, 1)
	// DefaultThresholds are the P values of experiment B.
	DefaultThresholds = seq(7, 15, 1)
	// DefaultGrid is the experiment C grid, ordered by descending P then
	// ascending S.
	DefaultGrid = func() []Cell {
		var cells []Cell
		for _, p := range []float64{15, 13, 11, 9, 7} {
			for _, s := range seq(1, 9, 2) {
				cells = append(cells, Cell{WalkLength: s, Threshold: p})
			}
		}
		return cells
	}()
)

func seq(from, to, step float64) []float64 {
	var out []float64
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

// GroupBy splits column value by the distinct values of column key. Groups
// are sorted by key.
func GroupBy(t *Table, key, value string) ([]Group, error) {
	if err := t.Require(key, value); err != nil {
		return nil, err
	}
	ki, vi := t.index[key], t.index[value]

	byKey := map[float64][]float64{}
	for _, row := range t.Rows {
		byKey[row[ki]] = append(byKey[row[ki]], row[vi])
	}

	groups := make([]Group, 0, len(byKey))
	for k, vals := range byKey {
		groups = append(groups, Group{Key: k, Values: vals})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups, nil
}

// MeansBy returns the mean runtime for every value in keys of column key.
// Keys with no rows get a NaN mean.
func MeansBy(t *Table, key string, keys []float64) ([]GroupMean, error) {
	groups, err := GroupBy(t, key, ColRuntime)
	if err != nil {
		return nil, err
	}
	byKey := make(map[float64][]float64, len(groups))
	for _, g := range groups {
		byKey[g.Key] = g.Values
	}

	out := make([]GroupMean, 0, len(keys))
	for _, k := range keys {
		vals := byKey[k]
		out = append(out, GroupMean{Key: k, Count: len(vals), Mean: mean(vals)})
	}
	return out, nil
}

// MeansByPair returns the mean runtime of rows matching both parameters of
// every cell. Cells with no rows get a NaN mean.
func MeansByPair(t *Table, cells []Cell) ([]CellMean, error) {
	if err := t.Require(ColWalkLength, ColThreshold, ColRuntime); err != nil {
		return nil, err
	}
	si, pi, ri := t.index[ColWalkLength], t.index[ColThreshold], t.index[ColRuntime]

	byCell := map[Cell][]float64{}
	for _, row := range t.Rows {
		c := Cell{WalkLength: row[si], Threshold: row[pi]}
		byCell[c] = append(byCell[c], row[ri])
	}

	out := make([]CellMean, 0, len(cells))
	for _, c := range cells {
		vals := byCell[c]
		out = append(out, CellMean{Cell: c, Count: len(vals), Mean: mean(vals)})
	}
	return out, nil
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m, err := stats.Mean(vals)
	if err != nil {
		return math.NaN()
	}
	return m
}
