package analysis

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureA = `length random walk;threshold random walk;iterations;sudoku id;runtime
1;9;120;1;10
1;9;130;1;20
2;9;140;1;30
2;9;150;2;50
5;9;160;2;7

`

const fixtureC = `length random walk;threshold random walk;iterations;sudoku id;runtime
1;15;10;1;100
1;15;10;1;200
3;15;10;1;40
1;13;10;1;8
`

func mustRead(t *testing.T, s string) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(s))
	require.NoError(t, err)
	return tbl
}

func TestReadCSV(t *testing.T) {
	tbl := mustRead(t, fixtureA)
	assert.Equal(t, []string{ColWalkLength, ColThreshold, ColIterations, ColPuzzleID, ColRuntime}, tbl.Columns)
	assert.Equal(t, 5, tbl.Len())

	rt, err := tbl.Column(ColRuntime)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 50, 7}, rt)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = ReadCSV(strings.NewReader("runtime;x\n1;abc\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "x"`)

	_, err = ReadCSV(strings.NewReader("runtime;x\n1;2;3\n"))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataA.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureA), 0o644))

	tbl, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Source)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMissingColumn(t *testing.T) {
	tbl := mustRead(t, "runtime\n1\n")
	_, err := MeansBy(tbl, ColThreshold, DefaultThresholds)
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = MeansByPair(tbl, DefaultGrid)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestMeansBy(t *testing.T) {
	tbl := mustRead(t, fixtureA)
	means, err := MeansBy(tbl, ColWalkLength, []float64{1, 2, 3, 5})
	require.NoError(t, err)
	require.Len(t, means, 4)

	assert.Equal(t, GroupMean{Key: 1, Count: 2, Mean: 15}, means[0])
	assert.Equal(t, GroupMean{Key: 2, Count: 2, Mean: 40}, means[1])
	assert.Equal(t, 0, means[2].Count)
	assert.True(t, math.IsNaN(means[2].Mean))
	assert.Equal(t, 7.0, means[3].Mean)
}

func TestMeansByPair(t *testing.T) {
	tbl := mustRead(t, fixtureC)
	means, err := MeansByPair(tbl, []Cell{{1, 15}, {3, 15}, {1, 13}, {9, 7}})
	require.NoError(t, err)
	require.Len(t, means, 4)

	assert.Equal(t, 150.0, means[0].Mean)
	assert.Equal(t, 2, means[0].Count)
	assert.Equal(t, 40.0, means[1].Mean)
	assert.Equal(t, 8.0, means[2].Mean)
	assert.True(t, math.IsNaN(means[3].Mean))
}

func TestGroupBy_SortedKeys(t *testing.T) {
	tbl := mustRead(t, fixtureA)
	groups, err := GroupBy(tbl, ColWalkLength, ColRuntime)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []float64{1, 2, 5}, []float64{groups[0].Key, groups[1].Key, groups[2].Key})
	assert.Equal(t, []float64{30, 50}, groups[1].Values)
}

func TestDefaultGrid(t *testing.T) {
	require.Len(t, DefaultGrid, 25)
	assert.Equal(t, Cell{WalkLength: 1, Threshold: 15}, DefaultGrid[0])
	assert.Equal(t, Cell{WalkLength: 9, Threshold: 15}, DefaultGrid[4])
	assert.Equal(t, Cell{WalkLength: 9, Threshold: 7}, DefaultGrid[24])
	assert.Len(t, DefaultWalkLengths, 10)
	assert.Equal(t, []float64{7, 8, 9, 10, 11, 12, 13, 14, 15}, DefaultThresholds)
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 4.5, s.Mean, 1e-9)
	assert.InDelta(t, 4.5, s.Median, 1e-9)
	// Linear interpolation between closest ranks.
	assert.InDelta(t, 2.75, s.Q1, 1e-9)
	assert.InDelta(t, 6.25, s.Q3, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 8.0, s.Max)

	one, err := Summarize([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, 42.0, one.Q1)
	assert.Equal(t, 42.0, one.Q3)

	_, err = Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestWriteMeans(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMeans(&buf, []GroupMean{{Key: 1, Mean: 15}, {Key: 2, Mean: math.NaN()}, {Key: 3, Mean: 2.5}}))
	assert.Equal(t, "15.0\nnan\n2.5\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteCellMeans(&buf, []CellMean{{Cell: Cell{1, 15}, Mean: 150}}))
	assert.Equal(t, "mean for s value: 1 p value: 15 is 150.0\n", buf.String())
}

func TestSummaryTable(t *testing.T) {
	out := SummaryTable("dataset A", "S", []Group{{Key: 1, Values: []float64{10, 20}}, {Key: 2}})
	assert.Contains(t, out, "dataset A")
	assert.Contains(t, out, "median")
	assert.Contains(t, out, "15.00")
	assert.Contains(t, out, "nan")
}
