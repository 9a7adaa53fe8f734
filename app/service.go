// Package app wires the simulation pipeline: integrate the competition
// model, derive the carbon metrics, locate the extremes and render the
// charts.
package app

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/transitlab/carbonfleet/config"
	"github.com/transitlab/carbonfleet/core/metrics"
	"github.com/transitlab/carbonfleet/core/model"
	"github.com/transitlab/carbonfleet/core/render"
	"github.com/transitlab/carbonfleet/core/solver"
	"github.com/transitlab/carbonfleet/infra/logger"
)

// Service runs one simulation scenario end to end.
type Service struct {
	cfg      config.Scenario
	solver   solver.Config
	renderer render.Renderer
	log      logger.Logger
}

// Result carries everything one run produced. All fields are computed before
// any chart is written, so a rendering failure never corrupts them.
type Result struct {
	RunID      string
	Scenario   config.Scenario
	Trajectory model.Trajectory
	Derived    model.DerivedSeries
	Extrema    model.Extrema
}

// New validates the scenario and returns a ready Service.
func New(cfg config.Scenario, renderer render.Renderer) (*Service, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	return &Service{
		cfg:      cfg,
		renderer: renderer,
		log:      logger.New("service"),
	}, nil
}

// Run executes the pipeline once. The numerical result is returned even when
// chart rendering fails; integration failures abort before any rendering.
func (s *Service) Run() (*Result, error) {
	runID := uuid.NewString()
	s.log.Infof("run %s: integrating over [%g, %g] years from (%g, %g)",
		runID, s.cfg.Span.Start, s.cfg.Span.End, s.cfg.Initial.Ride, s.cfg.Initial.Cruise)

	traj, err := solver.Integrate(s.cfg.Params, s.cfg.Initial, s.cfg.Span, s.solver)
	if err != nil {
		return nil, fmt.Errorf("run %s: integrate: %w", runID, err)
	}
	s.log.Infof("run %s: %d samples accepted", runID, len(traj))

	derived := metrics.Derive(s.cfg.Params, traj)
	ex := metrics.FindExtrema(traj, derived)
	if math.IsNaN(ex.Max.Emissions) || math.IsInf(ex.Max.Emissions, 0) {
		s.log.Warnf("run %s: emission extremes are not finite, parameter regime hit a model singularity", runID)
	} else {
		s.log.Infof("run %s: TCE peak %.1f tons at t=%.1f, minimum %.1f tons at t=%.1f",
			runID, ex.Max.Emissions, ex.Max.T, ex.Min.Emissions, ex.Min.T)
	}

	res := &Result{
		RunID:      runID,
		Scenario:   s.cfg,
		Trajectory: traj,
		Derived:    derived,
		Extrema:    ex,
	}

	if err := s.renderer.Render(carbonChart(res), s.cfg.CarbonChartPath); err != nil {
		return res, fmt.Errorf("run %s: render %s: %w", runID, s.cfg.CarbonChartPath, err)
	}
	if err := s.renderer.Render(shareChart(res), s.cfg.ShareChartPath); err != nil {
		return res, fmt.Errorf("run %s: render %s: %w", runID, s.cfg.ShareChartPath, err)
	}
	s.log.Infof("run %s: wrote %s and %s", runID, s.cfg.CarbonChartPath, s.cfg.ShareChartPath)
	return res, nil
}

// carbonChart plots total emissions against the ride/cruise market ratio,
// marking the global peak and minimum.
func carbonChart(res *Result) render.Chart {
	ex := res.Extrema
	return render.Chart{
		Title:  "Total Carbon Emissions vs Market Structure",
		XLabel: "Market ratio (ride-sourcing / cruise taxi)",
		YLabel: "TCE (tons)",
		Series: []render.Series{{
			Label: "TCE",
			X:     res.Derived.MarketRatios(),
			Y:     res.Derived.Emissions(),
		}},
		Marks: []render.MarkedPoint{
			{
				X:     ex.Max.MarketRatio,
				Y:     ex.Max.Emissions,
				Label: fmt.Sprintf("Peak: (%.3f, %.1f tons)", ex.Max.MarketRatio, ex.Max.Emissions),
			},
			{
				X:     ex.Min.MarketRatio,
				Y:     ex.Min.Emissions,
				Label: fmt.Sprintf("Min: (%.3f, %.1f tons)", ex.Min.MarketRatio, ex.Min.Emissions),
			},
		},
	}
}

// shareChart plots both segments' market shares over time as percentages,
// annotating the ride-sourcing curve at the emission extremes.
func shareChart(res *Result) render.Chart {
	times := res.Trajectory.Times()
	ride := make([]float64, len(res.Derived))
	cruise := make([]float64, len(res.Derived))
	for i, d := range res.Derived {
		ride[i] = d.RideShare * 100
		cruise[i] = d.CruiseShare * 100
	}
	ex := res.Extrema
	return render.Chart{
		Title:  "Market Share Evolution",
		XLabel: "Time (years)",
		YLabel: "Market share (%)",
		Series: []render.Series{
			{Label: "Ride-sourcing", X: times, Y: ride},
			{Label: "Cruise taxi", X: times, Y: cruise},
		},
		Marks: []render.MarkedPoint{
			{
				X:     ex.Max.T,
				Y:     ex.Max.RideShare * 100,
				Label: fmt.Sprintf("Peak: %.1f years\nShare: %.1f%%", ex.Max.T, ex.Max.RideShare*100),
			},
			{
				X:     ex.Min.T,
				Y:     ex.Min.RideShare * 100,
				Label: fmt.Sprintf("Min: %.1f years\nShare: %.1f%%", ex.Min.T, ex.Min.RideShare*100),
			},
		},
		YTicks: &render.Ticks{Min: 0, Max: 100, Step: 10},
	}
}
