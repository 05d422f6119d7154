// internal/chart/bar3d.go
package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mwiater/sudokubench/internal/analysis"
)

// Bar3D is one bar with its near-left corner at (X, Y) and height Z.
type Bar3D struct {
	X, Y, Z float64
}

// Bars3D draws bars on an (X, Y) floor using an oblique projection: the Y
// axis recedes up and to the right, Z is vertical. It implements
// plot.Plotter and expects the hosting plot's axes to be hidden.
type Bars3D struct {
	Bars []Bar3D
	// DX and DY are the bar footprint in data units.
	DX, DY float64

	XLabel, YLabel, ZLabel string
	XTicks, YTicks         []float64

	// Recede scales the Y axis depth and Angle sets its direction in radians.
	Recede float64
	Angle  float64

	LineStyle draw.LineStyle
	TextStyle text.Style
	Colors    []color.Color

	xmin, xmax, ymin, ymax, zmax float64
}

// NewBars3D returns a Bars3D with the default projection. NaN heights are
// drawn as zero.
func NewBars3D(bars []Bar3D, dx, dy float64) (*Bars3D, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("bar footprint must be positive, got %gx%g", dx, dy)
	}
	b := &Bars3D{
		Bars:   make([]Bar3D, len(bars)),
		DX:     dx,
		DY:     dy,
		Recede: 0.55,
		Angle:  math.Pi / 5,
		LineStyle: draw.LineStyle{
			Color: color.Gray{90},
			Width: vg.Points(0.4),
		},
	}
	copy(b.Bars, bars)

	b.xmin, b.ymin = math.Inf(1), math.Inf(1)
	b.xmax, b.ymax = math.Inf(-1), math.Inf(-1)
	for i := range b.Bars {
		bar := &b.Bars[i]
		if math.IsNaN(bar.Z) || bar.Z < 0 {
			bar.Z = 0
		}
		b.xmin, b.xmax = min(b.xmin, bar.X), max(b.xmax, bar.X+dx)
		b.ymin, b.ymax = min(b.ymin, bar.Y), max(b.ymax, bar.Y+dy)
		b.zmax = max(b.zmax, bar.Z)
	}
	if b.zmax == 0 {
		b.zmax = 1
	}
	return b, nil
}

// project maps a data-space point to normalized plot coordinates.
func (b *Bars3D) project(x, y, z float64) (float64, float64) {
	u := (x - b.xmin) / (b.xmax - b.xmin)
	v := (y - b.ymin) / (b.ymax - b.ymin)
	w := z / b.zmax
	return u + v*b.Recede*math.Cos(b.Angle), w + v*b.Recede*math.Sin(b.Angle)
}

// DataRange implements plot.DataRanger. The margins leave room for the
// hand-drawn axis labels.
func (b *Bars3D) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -0.22, 1 + b.Recede*math.Cos(b.Angle) + 0.08, -0.2, 1 + b.Recede*math.Sin(b.Angle) + 0.05
}

// Plot implements plot.Plotter.
func (b *Bars3D) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pt := func(x, y, z float64) vg.Point {
		px, py := b.project(x, y, z)
		return vg.Point{X: trX(px), Y: trY(py)}
	}

	b.plotFloor(c, pt)

	// Painter's order: far rows first, then left to right.
	order := make([]int, len(b.Bars))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		bi, bj := b.Bars[order[i]], b.Bars[order[j]]
		if bi.Y != bj.Y {
			return bi.Y > bj.Y
		}
		return bi.X < bj.X
	})

	for _, i := range order {
		bar := b.Bars[i]
		base := b.color(bar.Z)
		x0, x1 := bar.X, bar.X+b.DX
		y0, y1 := bar.Y, bar.Y+b.DY
		h := bar.Z

		faces := []struct {
			fill color.Color
			pts  []vg.Point
		}{
			{shade(base, 0.7), []vg.Point{pt(x1, y0, 0), pt(x1, y1, 0), pt(x1, y1, h), pt(x1, y0, h)}},
			{base, []vg.Point{pt(x0, y0, 0), pt(x1, y0, 0), pt(x1, y0, h), pt(x0, y0, h)}},
			{shade(base, 1.15), []vg.Point{pt(x0, y0, h), pt(x1, y0, h), pt(x1, y1, h), pt(x0, y1, h)}},
		}
		for _, f := range faces {
			c.FillPolygon(f.fill, f.pts)
			c.StrokeLines(b.LineStyle, append(f.pts, f.pts[0]))
		}
	}
}

// plotFloor draws the axes along the floor and the back wall with their
// ticks and labels.
func (b *Bars3D) plotFloor(c draw.Canvas, pt func(x, y, z float64) vg.Point) {
	axis := b.LineStyle
	axis.Color = color.Gray{128}
	grid := axis
	grid.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	sty := b.TextStyle
	tick := vg.Points(4)

	// X along the front edge.
	c.StrokeLine2(axis, pt(b.xmin, b.ymin, 0).X, pt(b.xmin, b.ymin, 0).Y, pt(b.xmax, b.ymin, 0).X, pt(b.xmax, b.ymin, 0).Y)
	xs := sty
	xs.XAlign, xs.YAlign = text.XCenter, text.YTop
	for _, x := range b.XTicks {
		p := pt(x, b.ymin, 0)
		c.StrokeLine2(axis, p.X, p.Y, p.X, p.Y-tick)
		c.FillText(xs, vg.Point{X: p.X, Y: p.Y - tick}, analysis.FormatValue(x))
	}
	if b.XLabel != "" {
		p := pt((b.xmin+b.xmax)/2, b.ymin, 0)
		c.FillText(xs, vg.Point{X: p.X, Y: p.Y - 4*tick}, b.XLabel)
	}

	// Y receding along the left edge.
	c.StrokeLine2(axis, pt(b.xmin, b.ymin, 0).X, pt(b.xmin, b.ymin, 0).Y, pt(b.xmin, b.ymax, 0).X, pt(b.xmin, b.ymax, 0).Y)
	ys := sty
	ys.XAlign, ys.YAlign = text.XRight, text.YCenter
	for _, y := range b.YTicks {
		p := pt(b.xmin, y, 0)
		c.StrokeLine2(grid, p.X, p.Y, pt(b.xmax, y, 0).X, pt(b.xmax, y, 0).Y)
		c.FillText(ys, vg.Point{X: p.X - tick, Y: p.Y}, analysis.FormatValue(y))
	}
	if b.YLabel != "" {
		p := pt(b.xmin, (b.ymin+b.ymax)/2, 0)
		c.FillText(ys, vg.Point{X: p.X - 5*tick, Y: p.Y}, b.YLabel)
	}

	// Z rising from the back-left corner.
	top := pt(b.xmin, b.ymax, b.zmax)
	bottom := pt(b.xmin, b.ymax, 0)
	c.StrokeLine2(axis, bottom.X, bottom.Y, top.X, top.Y)
	zs := sty
	zs.XAlign, zs.YAlign = text.XRight, text.YCenter
	for _, t := range (plot.DefaultTicks{}).Ticks(0, b.zmax) {
		if t.Label == "" || t.Value > b.zmax {
			continue
		}
		p := pt(b.xmin, b.ymax, t.Value)
		c.StrokeLine2(grid, p.X, p.Y, pt(b.xmax, b.ymax, t.Value).X, pt(b.xmax, b.ymax, t.Value).Y)
		c.FillText(zs, vg.Point{X: p.X - tick, Y: p.Y}, t.Label)
	}
	if b.ZLabel != "" {
		zl := sty
		zl.XAlign, zl.YAlign = text.XCenter, text.YBottom
		c.FillText(zl, vg.Point{X: top.X, Y: top.Y + tick}, b.ZLabel)
	}
}

// color picks a sequential palette entry proportional to height.
func (b *Bars3D) color(z float64) color.Color {
	if len(b.Colors) == 0 {
		return color.RGBA{R: 0x31, G: 0x82, B: 0xbd, A: 0xff}
	}
	i := int(math.Round(z / b.zmax * float64(len(b.Colors)-1)))
	return b.Colors[min(max(i, 0), len(b.Colors)-1)]
}

// Bar3DSpec describes the mean-runtime bar chart over an (S, P) grid.
type Bar3DSpec struct {
	Title  string
	XLabel string
	YLabel string
	ZLabel string
	Means  []analysis.CellMean
	// Footprint is the bar width along both floor axes.
	Footprint float64
	XTicks    []float64
	YTicks    []float64
}

// NewBar3DChart places one bar per cell at (P, S) with the mean as height.
func NewBar3DChart(spec Bar3DSpec) (*plot.Plot, error) {
	if spec.Footprint == 0 {
		spec.Footprint = 2
	}
	bars := make([]Bar3D, len(spec.Means))
	for i, m := range spec.Means {
		bars[i] = Bar3D{X: m.Threshold, Y: m.WalkLength, Z: m.Mean}
	}
	b, err := NewBars3D(bars, spec.Footprint, spec.Footprint)
	if err != nil {
		return nil, err
	}
	b.XLabel, b.YLabel, b.ZLabel = spec.XLabel, spec.YLabel, spec.ZLabel
	b.XTicks, b.YTicks = spec.XTicks, spec.YTicks

	p := newPlot(spec.Title, "", "")
	p.HideAxes()
	b.TextStyle = p.X.Tick.Label
	b.TextStyle.Font.Size = vg.Points(8)

	if b.Colors, err = colors(brewer.TypeSequential, "Blues", 9); err != nil {
		return nil, err
	}
	// The lightest entries wash out against the background.
	b.Colors = b.Colors[2:]

	p.Add(b)
	return p, nil
}
