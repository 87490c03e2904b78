package board

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// markerColor matches the scatter marker colour used by the web chart.
var markerColor = color.RGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff}

// WritePlotPNG renders the points as a labeled scatter plot over the fixed
// board axes and writes the PNG to w. Used by the snapshot endpoint and the
// group-points tool; the interactive chart is rendered separately in the
// monitor package.
func WritePlotPNG(points []Point, title string, w io.Writer) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = AxisMin, AxisMax
	p.Y.Min, p.Y.Max = AxisMin, AxisMax
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		labels[i] = pt.Label
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = markerColor
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("build labels: %w", err)
	}
	p.Add(names)

	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}
