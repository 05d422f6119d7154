package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/sudokubench/internal/analysis"
	"github.com/mwiater/sudokubench/internal/logger"
)

const header = "length random walk;threshold random walk;iterations;sudoku id;runtime\n"

func writeData(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(header+strings.Join(rows, "\n")+"\n"), 0o644))
	return path
}

func TestRun_AllDatasets(t *testing.T) {
	dir := t.TempDir()
	walk := writeData(t, dir, "dataA.csv", "1;9;100;1;10", "1;9;120;1;20", "2;9;90;1;7")
	threshold := writeData(t, dir, "dataB.csv", "1;7;50;1;4", "1;15;70;1;8")

	var combined []string
	for i, c := range analysis.DefaultGrid {
		combined = append(combined, fmt.Sprintf("%g;%g;10;1;%d", c.WalkLength, c.Threshold, i+1))
	}
	comb := writeData(t, dir, "dataC.csv", combined...)

	out := filepath.Join(dir, "charts")
	var buf bytes.Buffer
	rep, err := Run(Options{
		WalkData:      walk,
		ThresholdData: threshold,
		CombinedData:  comb,
		OutputDir:     out,
		Format:        "png",
	}, &buf, logger.Test(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(out, "boxplot_s.png"),
		filepath.Join(out, "boxplot_p.png"),
		filepath.Join(out, "bar3d_sp.png"),
	}, rep.Charts)
	for _, p := range rep.Charts {
		assert.FileExists(t, p)
	}

	console := buf.String()
	// Walk lengths 1..10: two groups with data, eight empty.
	assert.True(t, strings.HasPrefix(console, "15.0\n7.0\nnan\n"), console)
	assert.Contains(t, console, TitleWalk)
	assert.Contains(t, console, TitleThreshold)
	assert.Contains(t, console, "mean for s value: 1 p value: 15 is 1.0\n")
	assert.Contains(t, console, "mean for s value: 9 p value: 7 is 25.0\n")
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(Options{}, &bytes.Buffer{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoDatasets)

	dir := t.TempDir()
	_, err = Run(Options{WalkData: filepath.Join(dir, "missing.csv")}, &bytes.Buffer{}, logger.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)

	noRuntime := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(noRuntime, []byte("length random walk;iterations\n1;2\n"), 0o644))
	_, err = Run(Options{WalkData: noRuntime, OutputDir: dir}, &bytes.Buffer{}, logger.Nop())
	assert.ErrorIs(t, err, analysis.ErrMissingColumn)

	walk := writeData(t, dir, "dataA.csv", "1;9;100;1;10")
	_, err = Run(Options{WalkData: walk, Format: "gif"}, &bytes.Buffer{}, logger.Nop())
	assert.ErrorContains(t, err, "gif")
}
