// internal/chart/chart.go
// Package chart renders experiment datasets with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("no data to plot")

// Formats lists the output formats Save accepts.
var Formats = []string{"svg", "png", "pdf"}

// Default page size of a saved chart.
var (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// Save writes p to dir/basename.format, creating dir if needed, and returns
// the written path.
func Save(p *plot.Plot, dir, basename, format string, w, h vg.Length) (string, error) {
	format = strings.ToLower(format)
	if !ValidFormat(format) {
		return "", fmt.Errorf("unsupported chart format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create chart directory: %w", err)
	}
	path := filepath.Join(dir, basename+"."+format)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("could not save chart %s: %w", path, err)
	}
	return path, nil
}

// newPlot returns a plot with the muted styling shared by every chart.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	p.Title.TextStyle.Color = color.Gray{64}
	p.X.Color = color.Gray{128}
	p.Y.Color = color.Gray{128}
	p.X.Label.TextStyle.Color = color.Gray{96}
	p.Y.Label.TextStyle.Color = color.Gray{96}
	p.X.Tick.Color = color.Gray{128}
	p.Y.Tick.Color = color.Gray{128}
	p.X.Tick.Label.Color = color.Gray{96}
	p.Y.Tick.Label.Color = color.Gray{96}
	return p
}

// colors returns n colors from the named brewer palette, cycling when the
// palette is smaller than n.
func colors(typ brewer.PaletteType, name string, n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}
	var (
		pal palette.Palette
		err error
	)
	for size := min(max(n, 3), 12); size >= 3; size-- {
		if pal, err = brewer.GetPalette(typ, name, size); err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	base := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out, nil
}

// shade scales the RGB channels of c by f, clamping to the valid range.
func shade(c color.Color, f float64) color.Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		x := float64(v>>8) * f
		if x > 255 {
			x = 255
		}
		return uint8(x)
	}
	return color.NRGBA{R: scale(r), G: scale(g), B: scale(b), A: uint8(a >> 8)}
}
