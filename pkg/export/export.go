// Package export writes run results to an io.Writer in JSON or CSV form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/transitlab/carbonfleet/app"
)

// Summary is the compact JSON view of one run.
type Summary struct {
	RunID       string  `json:"run_id"`
	Samples     int     `json:"samples"`
	SpanStart   float64 `json:"span_start_years"`
	SpanEnd     float64 `json:"span_end_years"`
	PeakTCE     float64 `json:"peak_tce_tons"`
	PeakTime    float64 `json:"peak_time_years"`
	PeakRatio   float64 `json:"peak_market_ratio"`
	MinTCE      float64 `json:"min_tce_tons"`
	MinTime     float64 `json:"min_time_years"`
	MinRatio    float64 `json:"min_market_ratio"`
	CarbonChart string  `json:"carbon_chart"`
	ShareChart  string  `json:"share_chart"`
}

// WriteSummaryJSON writes the run summary to w in JSON format.
func WriteSummaryJSON(w io.Writer, res *app.Result) error {
	s := Summary{
		RunID:       res.RunID,
		Samples:     len(res.Trajectory),
		SpanStart:   res.Scenario.Span.Start,
		SpanEnd:     res.Scenario.Span.End,
		PeakTCE:     res.Extrema.Max.Emissions,
		PeakTime:    res.Extrema.Max.T,
		PeakRatio:   res.Extrema.Max.MarketRatio,
		MinTCE:      res.Extrema.Min.Emissions,
		MinTime:     res.Extrema.Min.T,
		MinRatio:    res.Extrema.Min.MarketRatio,
		CarbonChart: res.Scenario.CarbonChartPath,
		ShareChart:  res.Scenario.ShareChartPath,
	}
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// WriteTrajectoryCSV writes the sampled trajectory and its derived series to
// w in CSV format, one row per sample.
func WriteTrajectoryCSV(w io.Writer, res *app.Result) error {
	cw := csv.NewWriter(w)
	header := []string{
		"t_years", "ride_fleet", "cruise_fleet",
		"ride_distance", "cruise_distance", "tce_tons",
		"ride_share", "cruise_share", "market_ratio",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, s := range res.Trajectory {
		d := res.Derived[i]
		rec := []string{
			fmtF(s.T), fmtF(s.Ride), fmtF(s.Cruise),
			fmtF(d.RideDistance), fmtF(d.CruiseDistance), fmtF(d.Emissions),
			fmtF(d.RideShare), fmtF(d.CruiseShare), fmtF(d.MarketRatio),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtF(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
