package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/transitlab/carbonfleet/core/render"
)

func TestRender_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")

	chart := render.Chart{
		Title:  "Test",
		XLabel: "x",
		YLabel: "y",
		Series: []render.Series{
			{Label: "s1", X: []float64{0, 1, 2, 3}, Y: []float64{1, 4, 9, 16}},
			{Label: "s2", X: []float64{0, 1, 2, 3}, Y: []float64{16, 9, 4, 1}},
		},
		Marks: []render.MarkedPoint{
			{X: 1, Y: 4, Label: "Peak: (1.000, 4.0 tons)"},
		},
		YTicks: &render.Ticks{Min: 0, Max: 20, Step: 5},
	}
	if err := New().Render(chart, path); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("rendered file is empty")
	}
}

func TestRender_RejectsLengthMismatch(t *testing.T) {
	chart := render.Chart{
		Series: []render.Series{{Label: "bad", X: []float64{0, 1}, Y: []float64{1}}},
	}
	err := New().Render(chart, filepath.Join(t.TempDir(), "bad.png"))
	if err == nil {
		t.Fatal("expected error for mismatched series lengths")
	}
}
