// Package report renders run results as embeddable HTML charts.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/transitlab/carbonfleet/core/model"
)

// EmissionChartHTML renders the emission trajectory as an HTML line chart and
// returns it as a string, ready to embed in a report page. Nothing is written
// to disk.
func EmissionChartHTML(traj model.Trajectory, series model.DerivedSeries) (string, error) {
	if len(traj) != len(series) {
		return "", fmt.Errorf("trajectory and series length mismatch: %d != %d", len(traj), len(series))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Total Carbon Emissions"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (years)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "TCE (tons)"}),
	)

	xAxis := make([]string, len(traj))
	yAxis := make([]opts.LineData, len(series))
	for i, s := range traj {
		xAxis[i] = fmt.Sprintf("%.2f", s.T)
		yAxis[i] = opts.LineData{Value: series[i].Emissions}
	}
	line.SetXAxis(xAxis).AddSeries("TCE", yAxis)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.String(), nil
}
