// internal/chart/boxplot.go
package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mwiater/sudokubench/internal/analysis"
)

// BoxPlotSpec describes a boxplot of one value column grouped by a key.
type BoxPlotSpec struct {
	Title  string
	XLabel string
	YLabel string
	Groups []analysis.Group
	// ShowOutliers draws points beyond the whiskers.
	ShowOutliers bool
	// ShowMeans draws a dashed line at each group mean.
	ShowMeans bool
}

const boxWidth = 20 // points

// NewBoxPlot builds one box per non-empty group, placed at nominal x
// positions labelled with the group key.
func NewBoxPlot(spec BoxPlotSpec) (*plot.Plot, error) {
	var groups []analysis.Group
	for _, g := range spec.Groups {
		if len(g.Values) > 0 {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	fills, err := colors(brewer.TypeQualitative, "Set3", len(groups))
	if err != nil {
		return nil, err
	}

	w := vg.Points(boxWidth)
	names := make([]string, len(groups))
	means := &meanLines{width: w, style: draw.LineStyle{
		Color:  color.RGBA{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff},
		Width:  vg.Points(1.2),
		Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
	}}

	for i, g := range groups {
		names[i] = analysis.FormatValue(g.Key)

		box, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(g.Values))
		if err != nil {
			return nil, err
		}
		sum, err := analysis.Summarize(g.Values)
		if err != nil {
			return nil, err
		}
		setQuartiles(box, sum)
		box.FillColor = fills[i]
		box.MedianStyle.Width = vg.Points(1.5)
		if !spec.ShowOutliers {
			box.GlyphStyle.Radius = 0
		}
		p.Add(box)

		if spec.ShowMeans {
			means.locs = append(means.locs, float64(i))
			means.means = append(means.means, sum.Mean)
		}
	}
	if spec.ShowMeans {
		p.Add(means)
	}
	p.NominalX(names...)
	return p, nil
}

// setQuartiles replaces the box statistics with those of sum and recomputes
// the 1.5 IQR whiskers and outliers, so the drawn box matches the summary
// table printed for the same group.
func setQuartiles(box *plotter.BoxPlot, sum analysis.Summary) {
	box.Median, box.Quartile1, box.Quartile3 = sum.Median, sum.Q1, sum.Q3
	iqr := sum.Q3 - sum.Q1
	low, high := sum.Q1-1.5*iqr, sum.Q3+1.5*iqr

	box.Outside = box.Outside[:0]
	box.AdjLow, box.AdjHigh = math.Inf(1), math.Inf(-1)
	for i, v := range box.Values {
		if v < low || v > high {
			box.Outside = append(box.Outside, i)
			continue
		}
		box.AdjLow, box.AdjHigh = min(box.AdjLow, v), max(box.AdjHigh, v)
	}
}

// meanLines draws a short horizontal line across each box at its mean.
type meanLines struct {
	locs  []float64
	means []float64
	width vg.Length
	style draw.LineStyle
}

// Plot implements plot.Plotter.
func (m *meanLines) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, loc := range m.locs {
		x, y := trX(loc), trY(m.means[i])
		if !c.Contains(vg.Point{X: x, Y: y}) {
			continue
		}
		c.StrokeLine2(m.style, x-m.width/2, y, x+m.width/2, y)
	}
}

// DataRange implements plot.DataRanger.
func (m *meanLines) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = m.locs[0], m.means[0]
	xmax, ymax = xmin, ymin
	for i, loc := range m.locs {
		xmin, xmax = min(xmin, loc), max(xmax, loc)
		ymin, ymax = min(ymin, m.means[i]), max(ymax, m.means[i])
	}
	return xmin, xmax, ymin, ymax
}
