package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/transitlab/carbonfleet/core/model"
)

func testParams() model.Parameters {
	return model.Parameters{
		R1: 0.3, R2: 0.2,
		N1: 17.5, N2: 17.5,
		Mu1: 0.2, Mu2: 0.1,
	}
}

func TestIntegrate_TrajectoryShape(t *testing.T) {
	init := model.State{Ride: 14.5, Cruise: 15.5}
	span := model.Span{Start: 0, End: 50}
	traj, err := Integrate(testParams(), init, span, Config{})
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	if len(traj) < 2 {
		t.Fatalf("expected several samples, got %d", len(traj))
	}
	first := traj[0]
	if first.T != 0 || first.Ride != init.Ride || first.Cruise != init.Cruise {
		t.Fatalf("first sample must equal the initial state, got %+v", first)
	}
	for i := 1; i < len(traj); i++ {
		if traj[i].T <= traj[i-1].T {
			t.Fatalf("timestamps must be strictly increasing: t[%d]=%g t[%d]=%g", i-1, traj[i-1].T, i, traj[i].T)
		}
	}
	if got := traj[len(traj)-1].T; math.Abs(got-span.End) > 1e-3 {
		t.Fatalf("last sample should land on t=%g, got %g", span.End, got)
	}
}

func TestIntegrate_MatchesLogisticSolution(t *testing.T) {
	// With the competition switched off each segment follows the plain
	// logistic curve, which has a closed form to compare against.
	p := model.Parameters{R1: 0.3, R2: 0.2, N1: 17.5, N2: 17.5}
	init := model.State{Ride: 14.5, Cruise: 15.5}
	traj, err := Integrate(p, init, model.Span{Start: 0, End: 50}, Config{})
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	logistic := func(x0, r, n, tt float64) float64 {
		e := math.Exp(r * tt)
		return n * x0 * e / (n + x0*(e-1))
	}
	for _, s := range traj {
		want := logistic(init.Ride, p.R1, p.N1, s.T)
		if math.Abs(s.Ride-want) > 5e-4 {
			t.Fatalf("ride fleet at t=%g: got %g want %g", s.T, s.Ride, want)
		}
		want = logistic(init.Cruise, p.R2, p.N2, s.T)
		if math.Abs(s.Cruise-want) > 5e-4 {
			t.Fatalf("cruise fleet at t=%g: got %g want %g", s.T, s.Cruise, want)
		}
	}
}

func TestIntegrate_ZeroFleetStaysZero(t *testing.T) {
	traj, err := Integrate(testParams(), model.State{Ride: 0, Cruise: 15.5}, model.Span{Start: 0, End: 50}, Config{})
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	for _, s := range traj {
		if s.Ride != 0 {
			t.Fatalf("empty segment must not grow, got %g at t=%g", s.Ride, s.T)
		}
	}
}

func TestIntegrate_StepBudget(t *testing.T) {
	_, err := Integrate(testParams(), model.State{Ride: 14.5, Cruise: 15.5}, model.Span{Start: 0, End: 50}, Config{MaxSteps: 2})
	if !errors.Is(err, ErrStepBudget) {
		t.Fatalf("expected ErrStepBudget, got %v", err)
	}
}

func TestIntegrate_EquilibriumIsStationary(t *testing.T) {
	p := model.Parameters{R1: 0.3, R2: 0.2, N1: 17.5, N2: 17.5}
	traj, err := Integrate(p, model.State{Ride: 17.5, Cruise: 17.5}, model.Span{Start: 0, End: 10}, Config{})
	if err != nil {
		t.Fatalf("integrate: %v", err)
	}
	last := traj[len(traj)-1]
	if math.Abs(last.Ride-17.5) > 1e-6 || math.Abs(last.Cruise-17.5) > 1e-6 {
		t.Fatalf("capacity equilibrium drifted to (%g, %g)", last.Ride, last.Cruise)
	}
}

func TestDerivatives_CompetitionReducesGrowth(t *testing.T) {
	p := testParams()
	alone := Derivatives(p, model.State{Ride: 10, Cruise: 0})
	crowded := Derivatives(p, model.State{Ride: 10, Cruise: 15})
	if crowded.Ride >= alone.Ride {
		t.Fatalf("cruise competition should slow ride growth: alone=%g crowded=%g", alone.Ride, crowded.Ride)
	}
}
