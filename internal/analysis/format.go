// internal/analysis/format.go
// Package: analysis
package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// FormatValue prints a parameter key in its shortest form, "nan" for NaN.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMean prints a mean the way the console output expects: shortest
// form with at least one decimal ("15.0", "2.5"), "nan" for empty groups.
func FormatMean(v float64) string {
	s := FormatValue(v)
	if !math.IsNaN(v) && !math.IsInf(v, 0) && v == math.Trunc(v) {
		s += ".0"
	}
	return s
}

// WriteMeans prints one mean per line.
func WriteMeans(w io.Writer, means []GroupMean) error {
	for _, m := range means {
		if _, err := fmt.Fprintln(w, FormatMean(m.Mean)); err != nil {
			return err
		}
	}
	return nil
}

// WriteCellMeans prints one line per parameter combination.
func WriteCellMeans(w io.Writer, means []CellMean) error {
	for _, m := range means {
		_, err := fmt.Fprintf(w, "mean for s value: %s p value: %s is %s\n",
			FormatValue(m.WalkLength), FormatValue(m.Threshold), FormatMean(m.Mean))
		if err != nil {
			return err
		}
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	faintStyle  = cellStyle.Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// SummaryTable renders descriptive statistics of each group as a bordered
// terminal table. keyLabel names the grouping column.
func SummaryTable(title, keyLabel string, groups []Group) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		s, err := Summarize(g.Values)
		if err != nil {
			rows = append(rows, []string{FormatValue(g.Key), "0", "nan", "nan", "nan", "nan", "nan", "nan"})
			continue
		}
		rows = append(rows, []string{
			FormatValue(g.Key),
			strconv.Itoa(s.Count),
			fmt.Sprintf("%.2f", s.Mean),
			fmt.Sprintf("%.2f", s.Median),
			fmt.Sprintf("%.2f", s.Q1),
			fmt.Sprintf("%.2f", s.Q3),
			fmt.Sprintf("%.0f", s.Min),
			fmt.Sprintf("%.0f", s.Max),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("244"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return faintStyle
			default:
				return cellStyle
			}
		}).
		Headers(keyLabel, "n", "mean", "median", "q1", "q3", "min", "max").
		Rows(rows...)

	return titleStyle.Render(title) + "\n" + t.Render()
}
