package test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitlab/carbonfleet/app"
	"github.com/transitlab/carbonfleet/config"
	"github.com/transitlab/carbonfleet/core/metrics"
	"github.com/transitlab/carbonfleet/core/model"
	"github.com/transitlab/carbonfleet/core/solver"
	"github.com/transitlab/carbonfleet/infra/plot"
)

// Runs the reference scenario through the real renderer and checks both
// artifacts land on disk with sane numerical results.
func TestPipeline_ReferenceScenario(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.CarbonChartPath = filepath.Join(dir, "carbon_vs_market_share.png")
	cfg.ShareChartPath = filepath.Join(dir, "market_share_evolution.png")

	svc, err := app.New(cfg, plot.New())
	require.NoError(t, err)
	res, err := svc.Run()
	require.NoError(t, err)

	require.Equal(t, model.Sample{T: 0, Ride: 14.5, Cruise: 15.5}, res.Trajectory[0])
	last := res.Trajectory[len(res.Trajectory)-1]
	require.InDelta(t, 50, last.T, 1e-3)

	require.False(t, math.IsNaN(res.Extrema.Max.Emissions))
	require.False(t, math.IsInf(res.Extrema.Max.Emissions, 0))
	require.False(t, math.IsNaN(res.Extrema.Min.Emissions))
	require.False(t, math.IsNaN(res.Extrema.Max.MarketRatio))
	require.False(t, math.IsNaN(res.Extrema.Min.MarketRatio))
	require.GreaterOrEqual(t, res.Extrema.Max.Emissions, res.Extrema.Min.Emissions)

	for _, p := range []string{cfg.CarbonChartPath, cfg.ShareChartPath} {
		info, err := os.Stat(p)
		require.NoError(t, err, "chart %s should exist", p)
		require.Greater(t, info.Size(), int64(0))
	}
}

// An empty ride-sourcing fleet is a permitted degenerate input: shares and
// ratios stay defined at zero and the run must not crash.
func TestPipeline_EmptyRideFleet(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Initial = model.State{Ride: 0, Cruise: 15.5}
	cfg.CarbonChartPath = filepath.Join(dir, "carbon.png")
	cfg.ShareChartPath = filepath.Join(dir, "share.png")

	svc, err := app.New(cfg, plot.New())
	require.NoError(t, err)
	res, err := svc.Run()
	require.NoError(t, err)

	require.Equal(t, 0.0, res.Derived[0].MarketRatio)
	require.Equal(t, 0.0, res.Derived[0].RideShare)
}

// Recomputing every derived entry from its stored sample must reproduce the
// series exactly: the calculator is pure.
func TestPipeline_DerivedSeriesIsReproducible(t *testing.T) {
	cfg := config.Default()
	traj, err := solver.Integrate(cfg.Params, cfg.Initial, cfg.Span, solver.Config{})
	require.NoError(t, err)
	derived := metrics.Derive(cfg.Params, traj)
	require.Len(t, derived, len(traj))

	for i, s := range traj {
		require.Equal(t, derived[i], metrics.At(cfg.Params, s.State()), "sample %d", i)
	}
	for i, d := range derived {
		sum := d.RideShare + d.CruiseShare
		require.InDelta(t, 1, sum, 1e-12, "shares at sample %d", i)
	}
}
