package config

import (
	"fmt"
	"math"

	"github.com/transitlab/carbonfleet/core/model"
)

// Scenario bundles everything one simulation run needs: the competition and
// emission coefficients, the starting fleet sizes, the time window and the
// chart file names. All values are fixed in code; there is no file or
// environment loading.
type Scenario struct {
	Params  model.Parameters
	Initial model.State
	Span    model.Span

	// CarbonChartPath receives the emissions-versus-market-ratio chart.
	CarbonChartPath string
	// ShareChartPath receives the market-share evolution chart.
	ShareChartPath string
}

// Default returns the reference scenario: a ride-sourcing fleet of 14.5k
// vehicles competing with a 15.5k cruise-taxi fleet over fifty years.
func Default() Scenario {
	return Scenario{
		Params: model.Parameters{
			R1:  0.3,
			R2:  0.2,
			N1:  17.5,
			N2:  17.5,
			Mu1: 0.2,
			Mu2: 0.1,

			A: -0.002404,
			B: 46.184166,
			C: 534.469131,

			EF:  0.184,
			EEF: 0.607,
			E:   0.12,

			RideGasoline:   0.15,
			RideElectric:   0.85,
			CruiseGasoline: 0.526,
			CruiseElectric: 0.474,
		},
		Initial: model.State{Ride: 14.5, Cruise: 15.5},
		Span:    model.Span{Start: 0, End: 50},
	}
}

// SetDefaults applies fallback values for optional fields.
func (s *Scenario) SetDefaults() {
	if s.CarbonChartPath == "" {
		s.CarbonChartPath = "carbon_vs_market_share.png"
	}
	if s.ShareChartPath == "" {
		s.ShareChartPath = "market_share_evolution.png"
	}
}

// Validate checks that the scenario describes a well-posed run.
func (s Scenario) Validate() error {
	p := s.Params
	if p.N1 <= 0 || p.N2 <= 0 {
		return fmt.Errorf("carrying capacities must be positive, got N1=%g N2=%g", p.N1, p.N2)
	}
	if s.Initial.Ride < 0 || s.Initial.Cruise < 0 {
		return fmt.Errorf("initial fleet sizes must be non-negative, got (%g, %g)", s.Initial.Ride, s.Initial.Cruise)
	}
	if s.Span.Start >= s.Span.End {
		return fmt.Errorf("time span must satisfy start < end, got [%g, %g]", s.Span.Start, s.Span.End)
	}
	const tol = 1e-9
	if math.Abs(p.RideGasoline+p.RideElectric-1) > tol {
		return fmt.Errorf("ride fleet splits must sum to 1, got %g + %g", p.RideGasoline, p.RideElectric)
	}
	if math.Abs(p.CruiseGasoline+p.CruiseElectric-1) > tol {
		return fmt.Errorf("cruise fleet splits must sum to 1, got %g + %g", p.CruiseGasoline, p.CruiseElectric)
	}
	if s.CarbonChartPath == "" || s.ShareChartPath == "" {
		return fmt.Errorf("chart paths are required")
	}
	return nil
}
