// internal/report/report.go
// Package: report
package report

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/mwiater/sudokubench/internal/analysis"
	"github.com/mwiater/sudokubench/internal/chart"
	"github.com/mwiater/sudokubench/internal/logger"
)

// ErrNoDatasets is returned when no dataset path is configured.
var ErrNoDatasets = errors.New("no dataset given: set at least one of walk, threshold or combined data")

// Chart titles and axis labels.
const (
	TitleWalk      = "boxplot S vs runtime with outliers"
	TitleThreshold = "boxplot P vs runtime with outliers"
	TitleCombined  = "runtime for different combinations of S and P"

	LabelWalk      = "length random walk (S)"
	LabelThreshold = "height threshold random walk (P)"
	LabelRuntime   = "runtime in ms"
)

// Options selects the datasets to analyse and where charts go.
type Options struct {
	WalkData      string
	ThresholdData string
	CombinedData  string
	OutputDir     string
	Format        string
	Width         vg.Length
	Height        vg.Length
}

// Report lists what a Run produced.
type Report struct {
	Charts []string
}

// Run analyses every dataset that has a path, in the order walk, threshold,
// combined. Means and summary tables go to out; charts are saved to
// OutputDir. The first failing dataset stops the run.
func Run(opts Options, out io.Writer, lggr logger.Logger) (Report, error) {
	if opts.WalkData == "" && opts.ThresholdData == "" && opts.CombinedData == "" {
		return Report{}, ErrNoDatasets
	}
	if opts.Format == "" {
		opts.Format = "svg"
	}
	if !chart.ValidFormat(opts.Format) {
		return Report{}, fmt.Errorf("unsupported chart format %q (valid: svg, png, pdf)", opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "charts"
	}
	if opts.Width == 0 {
		opts.Width = chart.DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = chart.DefaultHeight
	}
	lggr = lggr.Named("analyze")

	var rep Report
	if opts.WalkData != "" {
		path, err := boxplotDataset(opts, opts.WalkData, analysis.ColWalkLength, analysis.DefaultWalkLengths,
			"S", TitleWalk, LabelWalk, "boxplot_s", out, lggr)
		if err != nil {
			return rep, err
		}
		rep.Charts = append(rep.Charts, path)
	}
	if opts.ThresholdData != "" {
		path, err := boxplotDataset(opts, opts.ThresholdData, analysis.ColThreshold, analysis.DefaultThresholds,
			"P", TitleThreshold, LabelThreshold, "boxplot_p", out, lggr)
		if err != nil {
			return rep, err
		}
		rep.Charts = append(rep.Charts, path)
	}
	if opts.CombinedData != "" {
		path, err := combinedDataset(opts, out, lggr)
		if err != nil {
			return rep, err
		}
		rep.Charts = append(rep.Charts, path)
	}
	return rep, nil
}

func boxplotDataset(opts Options, file, key string, keys []float64, keyLabel, title, xLabel, basename string, out io.Writer, lggr logger.Logger) (string, error) {
	t, err := analysis.LoadCSV(file)
	if err != nil {
		return "", err
	}
	lggr.Debugw("dataset loaded", "file", file, "rows", t.Len())

	means, err := analysis.MeansBy(t, key, keys)
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	if err := analysis.WriteMeans(out, means); err != nil {
		return "", err
	}

	groups, err := analysis.GroupBy(t, key, analysis.ColRuntime)
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	fmt.Fprintln(out, analysis.SummaryTable(title, keyLabel, groups))

	p, err := chart.NewBoxPlot(chart.BoxPlotSpec{
		Title:        title,
		XLabel:       xLabel,
		YLabel:       LabelRuntime,
		Groups:       groups,
		ShowOutliers: true,
		ShowMeans:    true,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	return save(p, opts, basename, lggr)
}

func combinedDataset(opts Options, out io.Writer, lggr logger.Logger) (string, error) {
	t, err := analysis.LoadCSV(opts.CombinedData)
	if err != nil {
		return "", err
	}
	lggr.Debugw("dataset loaded", "file", opts.CombinedData, "rows", t.Len())

	means, err := analysis.MeansByPair(t, analysis.DefaultGrid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opts.CombinedData, err)
	}
	if err := analysis.WriteCellMeans(out, means); err != nil {
		return "", err
	}

	p, err := chart.NewBar3DChart(chart.Bar3DSpec{
		Title:  TitleCombined,
		XLabel: LabelThreshold,
		YLabel: LabelWalk,
		ZLabel: LabelRuntime,
		Means:  means,
		XTicks: []float64{7, 9, 11, 13, 15},
		YTicks: []float64{1, 3, 5, 7, 9},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", opts.CombinedData, err)
	}
	return save(p, opts, "bar3d_sp", lggr)
}

func save(p *plot.Plot, opts Options, basename string, lggr logger.Logger) (string, error) {
	path, err := chart.Save(p, opts.OutputDir, basename, opts.Format, opts.Width, opts.Height)
	if err != nil {
		return "", err
	}
	lggr.Infow("chart written", "path", path)
	return path, nil
}
