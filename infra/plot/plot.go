// Package plot renders charts to PNG files with gonum/plot, implementing the
// core render contract.
package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/transitlab/carbonfleet/core/render"
)

// Palette applied to series in order, wrapping around when exhausted.
var seriesColors = []color.Color{
	color.RGBA{R: 70, G: 130, B: 180, A: 255},
	color.RGBA{R: 255, G: 140, B: 0, A: 255},
	color.RGBA{R: 34, G: 139, B: 34, A: 255},
}

var markColor = color.RGBA{R: 220, G: 20, B: 60, A: 255}

// Renderer draws charts to PNG files. The zero value is ready to use.
type Renderer struct {
	// Width and Height of the saved image; defaults are 8x6 inches.
	Width  vg.Length
	Height vg.Length
}

// New returns a Renderer with default dimensions.
func New() *Renderer { return &Renderer{} }

// Render writes the chart as a PNG to path.
func (r *Renderer) Render(chart render.Chart, path string) error {
	p := plot.New()
	p.Title.Text = chart.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel
	p.Add(plotter.NewGrid())

	for i, s := range chart.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: x/y length mismatch %d != %d", s.Label, len(s.X), len(s.Y))
		}
		line, err := plotter.NewLine(xyPoints(s.X, s.Y))
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = seriesColors[i%len(seriesColors)]
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}

	if len(chart.Marks) > 0 {
		if err := addMarks(p, chart.Marks); err != nil {
			return err
		}
	}

	if t := chart.YTicks; t != nil {
		p.Y.Min = t.Min
		p.Y.Max = t.Max
		p.Y.Tick.Marker = constantTicks(t)
	}

	w, h := r.Width, r.Height
	if w == 0 {
		w = 8 * vg.Inch
	}
	if h == 0 {
		h = 6 * vg.Inch
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func addMarks(p *plot.Plot, marks []render.MarkedPoint) error {
	pts := make(plotter.XYs, len(marks))
	labels := make([]string, len(marks))
	for i, m := range marks {
		pts[i] = plotter.XY{X: m.X, Y: m.Y}
		labels[i] = m.Label
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("marks: %w", err)
	}
	scatter.GlyphStyle.Color = markColor
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return fmt.Errorf("mark labels: %w", err)
	}
	p.Add(lbl)
	return nil
}

func xyPoints(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return pts
}

// constantTicks builds evenly spaced labeled ticks over [t.Min, t.Max].
func constantTicks(t *render.Ticks) plot.ConstantTicks {
	var ticks []plot.Tick
	for v := t.Min; v <= t.Max+t.Step/2; v += t.Step {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%g", v)})
	}
	return plot.ConstantTicks(ticks)
}
