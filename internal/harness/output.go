// internal/harness/output.go
// Package: harness
package harness

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mwiater/sudokubench/internal/analysis"
)

// csvHeader is the column order read back by the analysis package.
var csvHeader = []string{
	analysis.ColWalkLength,
	analysis.ColThreshold,
	analysis.ColIterations,
	analysis.ColPuzzleID,
	analysis.ColRuntime,
}

// ReadPuzzles reads one puzzle per non-blank line from path.
func ReadPuzzles(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open puzzle file: %w", err)
	}
	defer f.Close()

	var puzzles []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		puzzles = append(puzzles, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read puzzle file: %w", err)
	}
	if len(puzzles) == 0 {
		return nil, fmt.Errorf("%s: %w", path, analysis.ErrNoInput)
	}
	return puzzles, nil
}

// FileName returns the data file name for a plan finished at t,
// e.g. dataA14-03-59.csv.
func FileName(planID string, t time.Time) string {
	return fmt.Sprintf("data%s%s.csv", planID, t.Format("15-04-05"))
}

// WriteCSV writes the successful trials in run order.
func WriteCSV(w io.Writer, trials []TrialResult) error {
	cw := csv.NewWriter(w)
	cw.Comma = analysis.Delimiter
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trials {
		if !t.OK() {
			continue
		}
		err := cw.Write([]string{
			strconv.Itoa(t.WalkLength),
			strconv.Itoa(t.Threshold),
			strconv.Itoa(t.Iterations),
			strconv.Itoa(t.PuzzleID),
			strconv.FormatInt(t.RuntimeMillis, 10),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the whole suite result, indented.
func WriteJSON(w io.Writer, res SuiteResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// Save writes the data CSV, and with withJSON a JSON summary next to it, into
// dir. It returns the written paths.
func Save(dir string, res SuiteResult, withJSON bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create output directory: %w", err)
	}
	csvPath := filepath.Join(dir, FileName(res.Config.Plan.ID, res.GeneratedAt))
	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, res.Trials) }); err != nil {
		return nil, err
	}
	paths := []string{csvPath}
	if withJSON {
		jsonPath := strings.TrimSuffix(csvPath, ".csv") + ".json"
		if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, res) }); err != nil {
			return paths, err
		}
		paths = append(paths, jsonPath)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return f.Close()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("9"))
)

// SummaryTable renders the per-combination summaries for the terminal.
func SummaryTable(res SuiteResult) string {
	rows := make([][]string, 0, len(res.Summaries))
	for _, s := range res.Summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.WalkLength),
			strconv.Itoa(s.Threshold),
			strconv.Itoa(s.Trials),
			strconv.Itoa(s.Failed),
			fmt.Sprintf("%.1f", s.RuntimeMean),
			fmt.Sprintf("%.1f", s.RuntimeP50),
			fmt.Sprintf("%.1f", s.RuntimeP95),
			fmt.Sprintf("%.1f", s.IterationsMean),
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3 && rows[row][3] != "0":
				return failStyle
			default:
				return cellStyle
			}
		}).
		Headers("S", "P", "ok", "failed", "mean ms", "p50 ms", "p95 ms", "mean iterations").
		Rows(rows...)
	return t.Render()
}
