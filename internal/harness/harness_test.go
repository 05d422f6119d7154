package harness

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/mwiater/sudokubench/internal/analysis"
	"github.com/mwiater/sudokubench/internal/logger"
)

const solution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

var emptyPuzzle = strings.Repeat(".", 81)

func blank(idx ...int) string {
	b := []byte(solution)
	for _, i := range idx {
		b[i] = '.'
	}
	return string(b)
}

func testPlan() Plan {
	return Plan{ID: "T", Combinations: []Combination{{WalkLength: 1, Threshold: 9}, {WalkLength: 2, Threshold: 7}}}
}

func TestPlans(t *testing.T) {
	a := PlanA()
	require.Len(t, a.Combinations, 10)
	assert.Equal(t, Combination{WalkLength: 10, Threshold: 9}, a.Combinations[9])

	b := PlanB()
	require.Len(t, b.Combinations, 9)
	assert.Equal(t, Combination{WalkLength: 1, Threshold: 7}, b.Combinations[0])
	assert.Equal(t, Combination{WalkLength: 1, Threshold: 15}, b.Combinations[8])

	c := PlanC()
	require.Len(t, c.Combinations, 25)
	assert.Equal(t, Combination{WalkLength: 1, Threshold: 7}, c.Combinations[0])
	assert.Equal(t, Combination{WalkLength: 3, Threshold: 7}, c.Combinations[1])
	assert.Equal(t, Combination{WalkLength: 9, Threshold: 15}, c.Combinations[24])

	p, err := PlanByID(" b ")
	require.NoError(t, err)
	assert.Equal(t, "B", p.ID)
	_, err = PlanByID("D")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	yaml := `
description: short walks
runs: 3
combinations:
  - {s: 1, p: 9}
  - {s: 4, p: 11}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	p, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.ID)
	assert.Equal(t, 3, p.Runs)
	assert.Equal(t, []Combination{{1, 9}, {4, 11}}, p.Combinations)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("id: X\ncombinations:\n  - {s: 1, p: 0}\n"), 0o644))
	_, err = LoadPlan(bad)
	assert.ErrorContains(t, err, "combination 1")

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("id: X\nwalks: 3\n"), 0o644))
	_, err = LoadPlan(unknown)
	assert.Error(t, err)
}

func TestRunSuite_Validation(t *testing.T) {
	ctx := context.Background()
	_, err := RunSuite(ctx, SuiteConfig{Plan: testPlan()}, logger.Nop())
	assert.ErrorContains(t, err, "puzzle")

	_, err = RunSuite(ctx, SuiteConfig{Puzzles: []string{solution}}, logger.Nop())
	assert.ErrorContains(t, err, "combination")

	_, err = RunSuite(ctx, SuiteConfig{Puzzles: []string{solution, "12"}, Plan: testPlan()}, logger.Nop())
	assert.ErrorContains(t, err, "puzzle 2")
}

func TestRunSuite_OrderAndSummaries(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.InfoLevel)
	cfg := SuiteConfig{
		Puzzles: []string{blank(0, 40, 80), blank(4, 44)},
		Plan:    testPlan(),
		Runs:    3,
		Workers: 3,
		Seed:    7,
	}

	res, err := RunSuite(context.Background(), cfg, lggr)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.RunID)
	assert.Equal(t, DefaultTimeout, res.Config.Timeout)
	require.Len(t, res.Trials, 12)
	assert.Zero(t, res.Failed())

	i := 0
	for puzzle := 1; puzzle <= 2; puzzle++ {
		for _, c := range cfg.Plan.Combinations {
			for run := 1; run <= 3; run++ {
				tr := res.Trials[i]
				assert.Equal(t, puzzle, tr.PuzzleID)
				assert.Equal(t, c.WalkLength, tr.WalkLength)
				assert.Equal(t, c.Threshold, tr.Threshold)
				assert.Equal(t, run, tr.Run)
				i++
			}
		}
	}

	require.Len(t, res.Summaries, 2)
	assert.Equal(t, Combination{WalkLength: 1, Threshold: 9}, res.Summaries[0].Combination)
	assert.Equal(t, 6, res.Summaries[0].Trials)
	assert.LessOrEqual(t, res.Summaries[0].RuntimeP50, res.Summaries[0].RuntimeP95)

	assert.Len(t, logs.FilterMessage("trial finished").All(), 12)
	assert.Len(t, logs.FilterMessage("suite finished").All(), 1)
}

func TestRunSuite_SeedIsIndependentOfWorkers(t *testing.T) {
	cfg := SuiteConfig{
		Puzzles: []string{blank(0, 10, 30, 40, 60, 70)},
		Plan:    testPlan(),
		Runs:    4,
		Seed:    42,
	}
	cfg.Workers = 1
	serial, err := RunSuite(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	cfg.Workers = 4
	parallel, err := RunSuite(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)

	require.Len(t, parallel.Trials, len(serial.Trials))
	for i := range serial.Trials {
		assert.Equal(t, serial.Trials[i].Iterations, parallel.Trials[i].Iterations, "trial %d", i)
	}
}

func TestRunSuite_TimeoutIsRecorded(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.WarnLevel)
	res, err := RunSuite(context.Background(), SuiteConfig{
		Puzzles: []string{emptyPuzzle},
		Plan:    Plan{ID: "T", Combinations: []Combination{{WalkLength: 1, Threshold: 9}}},
		Runs:    2,
		Timeout: time.Nanosecond,
	}, lggr)
	require.NoError(t, err)
	require.Len(t, res.Trials, 2)
	assert.Equal(t, 2, res.Failed())
	assert.Contains(t, res.Trials[0].Error, "deadline exceeded")
	assert.Equal(t, 2, res.Summaries[0].Failed)
	assert.Zero(t, res.Summaries[0].Trials)
	assert.Len(t, logs.FilterMessage("trial failed").All(), 2)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Trials))
	assert.Equal(t, "length random walk;threshold random walk;iterations;sudoku id;runtime\n", buf.String())
}

func TestRunSuite_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := RunSuite(ctx, SuiteConfig{
		Puzzles: []string{emptyPuzzle},
		Plan:    testPlan(),
		Runs:    5,
		Workers: 2,
	}, logger.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, res.Trials, 10)
	assert.Equal(t, 10, res.Failed())
}

func TestWriteCSV_RoundTripsThroughAnalysis(t *testing.T) {
	trials := []TrialResult{
		{PuzzleID: 1, WalkLength: 1, Threshold: 9, Run: 1, Iterations: 120, RuntimeMillis: 14},
		{PuzzleID: 1, WalkLength: 1, Threshold: 9, Run: 2, Error: "error: boom"},
		{PuzzleID: 2, WalkLength: 3, Threshold: 9, Run: 1, Iterations: 80, RuntimeMillis: 9},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trials))
	assert.Equal(t, "length random walk;threshold random walk;iterations;sudoku id;runtime\n"+
		"1;9;120;1;14\n3;9;80;2;9\n", buf.String())

	table, err := analysis.ReadCSV(&buf)
	require.NoError(t, err)
	means, err := analysis.MeansBy(table, analysis.ColWalkLength, []float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 14.0, means[0].Mean)
	assert.Equal(t, 9.0, means[1].Mean)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	at := time.Date(2024, 3, 1, 14, 3, 59, 0, time.UTC)
	res := SuiteResult{
		RunID:       uuid.New(),
		Config:      SuiteConfig{Plan: PlanA()},
		Trials:      []TrialResult{{PuzzleID: 1, WalkLength: 1, Threshold: 9, Run: 1, Iterations: 5, RuntimeMillis: 1}},
		GeneratedAt: at,
	}
	res.Summaries = summarize(res.Config.Plan, res.Trials)

	paths, err := Save(dir, res, true)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "dataA14-03-59.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "dataA14-03-59.json"), paths[1])

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), res.RunID.String())
	assert.Contains(t, string(data), `"runtime_p50_ms": 1`)

	out := SummaryTable(res)
	assert.Contains(t, out, "mean iterations")
	assert.Contains(t, out, "10")
}

func TestReadPuzzles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "puzzles.txt")
	require.NoError(t, os.WriteFile(path, []byte(solution+"\n\n  "+emptyPuzzle+"  \n"), 0o644))

	puzzles, err := ReadPuzzles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{solution, emptyPuzzle}, puzzles)

	emptyFile := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0o644))
	_, err = ReadPuzzles(emptyFile)
	assert.ErrorIs(t, err, analysis.ErrNoInput)
}
