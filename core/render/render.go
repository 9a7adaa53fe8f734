// Package render defines the contract between the numerical pipeline and
// whatever draws the charts. Core packages depend only on these types.
package render

// Series is an ordered set of points sharing one legend label. X and Y must
// have equal length.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// MarkedPoint annotates a single point with pre-formatted text.
type MarkedPoint struct {
	X     float64
	Y     float64
	Label string
}

// Ticks fixes the axis range and tick spacing; a nil Ticks leaves the axis to
// the renderer.
type Ticks struct {
	Min  float64
	Max  float64
	Step float64
}

// Chart is one complete figure: titled axes, one or more series and optional
// point annotations.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Marks  []MarkedPoint
	YTicks *Ticks
}

// Renderer writes a chart to the file at path, overwriting any previous run.
type Renderer interface {
	Render(chart Chart, path string) error
}
