// Package metrics turns a fleet trajectory into driving distances, carbon
// emissions and market shares, and locates the emission extremes.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/transitlab/carbonfleet/core/model"
)

// Distance returns the per-vehicle driving distance for a fleet of size x
// under the saturation model D(x) = c - b^2/(a*x + b). When a*x + b reaches
// zero the model leaves its validity regime and the result is +/-Inf; that is
// intentional and must stay visible downstream.
func Distance(p model.Parameters, x float64) float64 {
	return p.C - p.B*p.B/(p.A*x+p.B)
}

// Emissions computes the total carbon emissions (tons) at one state,
// combining the gasoline and electric fractions of both segments.
func Emissions(p model.Parameters, s model.State) float64 {
	dr := Distance(p, s.Ride)
	dt := Distance(p, s.Cruise)
	return p.EF*s.Ride*p.RideGasoline*dr +
		p.EF*s.Cruise*p.CruiseGasoline*p.E*dt +
		p.E*p.EEF*s.Ride*p.RideElectric*dr +
		p.E*p.EEF*s.Cruise*p.CruiseElectric*dt
}

// At computes the full derived point for one state. Degenerate states divide
// to NaN or Inf and are passed through unchanged.
func At(p model.Parameters, s model.State) model.DerivedPoint {
	total := s.Ride + s.Cruise
	return model.DerivedPoint{
		RideDistance:   Distance(p, s.Ride),
		CruiseDistance: Distance(p, s.Cruise),
		Emissions:      Emissions(p, s),
		RideShare:      s.Ride / total,
		CruiseShare:    s.Cruise / total,
		MarketRatio:    s.Ride / s.Cruise,
	}
}

// Derive maps every trajectory sample to its derived quantities. The result
// has exactly one entry per sample.
func Derive(p model.Parameters, traj model.Trajectory) model.DerivedSeries {
	out := make(model.DerivedSeries, len(traj))
	for i, s := range traj {
		out[i] = At(p, s.State())
	}
	return out
}

// FindExtrema locates the global emission maximum and minimum over the
// series, taking the first index on ties, and reports the market situation at
// those points. traj and series must have equal length and be non-empty.
func FindExtrema(traj model.Trajectory, series model.DerivedSeries) model.Extrema {
	tce := series.Emissions()
	maxIdx := floats.MaxIdx(tce)
	minIdx := floats.MinIdx(tce)
	return model.Extrema{
		Max: extremumAt(traj, series, maxIdx),
		Min: extremumAt(traj, series, minIdx),
	}
}

func extremumAt(traj model.Trajectory, series model.DerivedSeries, i int) model.Extremum {
	return model.Extremum{
		Index:       i,
		T:           traj[i].T,
		MarketRatio: series[i].MarketRatio,
		RideShare:   series[i].RideShare,
		Emissions:   series[i].Emissions,
	}
}
