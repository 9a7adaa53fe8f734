// Package solver integrates the two-segment competition model with an
// adaptive-step embedded Runge-Kutta method (Dormand-Prince 5(4)).
package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/transitlab/carbonfleet/core/model"
)

// ErrStepBudget is returned when the integrator cannot reach the end of the
// span within the configured number of steps.
var ErrStepBudget = errors.New("solver: step budget exhausted")

// ErrStepUnderflow is returned when error control drives the step size below
// the smallest representable increment, e.g. for divergent parameter sets.
var ErrStepUnderflow = errors.New("solver: step size underflow")

// Config tunes the step controller. The zero value is usable; SetDefaults
// fills in the reference tolerances.
type Config struct {
	AbsTol      float64 // absolute local error tolerance
	RelTol      float64 // relative local error tolerance
	InitialStep float64 // first step size in years
	MaxSteps    int     // accepted-plus-rejected step budget
}

// SetDefaults applies fallback values for unset fields.
func (c *Config) SetDefaults() {
	if c.AbsTol <= 0 {
		c.AbsTol = 1e-8
	}
	if c.RelTol <= 0 {
		c.RelTol = 1e-6
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = 100_000
	}
}

// Derivatives evaluates the Lotka-Volterra competition law at a state. Each
// segment grows logistically, reduced by the other segment's pressure on its
// carrying capacity. Negative states are evaluated as written, without
// clamping.
func Derivatives(p model.Parameters, s model.State) model.State {
	return model.State{
		Ride:   p.R1 * s.Ride * (1 - s.Ride/p.N1 - p.Mu1*s.Cruise/p.N2),
		Cruise: p.R2 * s.Cruise * (1 - s.Cruise/p.N2 - p.Mu2*s.Ride/p.N1),
	}
}

// Dormand-Prince 5(4) tableau. b holds the fifth-order weights, bHat the
// embedded fourth-order weights used for the local error estimate.
var (
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	// Stage abscissae; the competition law is autonomous so they never
	// enter an evaluation, but the tableau is kept complete.
	dpC    = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpB    = [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0}
	dpBHat = [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40}
)

const dim = 2

// Integrate solves the competition ODE over span starting from init and
// returns the accepted sample points. The first sample is exactly
// (span.Start, init); the last lands on span.End. Sample spacing is chosen by
// the embedded error estimate, not by the caller.
func Integrate(p model.Parameters, init model.State, span model.Span, cfg Config) (model.Trajectory, error) {
	cfg.SetDefaults()

	t := span.Start
	y := []float64{init.Ride, init.Cruise}
	traj := model.Trajectory{{T: t, Ride: y[0], Cruise: y[1]}}

	h := cfg.InitialStep
	if h <= 0 {
		h = (span.End - span.Start) / 100
	}

	k := make([][]float64, 7)
	for i := range k {
		k[i] = make([]float64, dim)
	}
	stage := make([]float64, dim)
	yNext := make([]float64, dim)
	yHat := make([]float64, dim)

	for steps := 0; t < span.End; steps++ {
		if steps >= cfg.MaxSteps {
			return nil, ErrStepBudget
		}
		last := false
		if t+h >= span.End {
			h = span.End - t
			last = true
		}
		if t+h == t {
			return nil, ErrStepUnderflow
		}

		for i := 0; i < 7; i++ {
			copy(stage, y)
			for j := 0; j < i; j++ {
				floats.AddScaled(stage, h*dpA[i][j], k[j])
			}
			d := Derivatives(p, model.State{Ride: stage[0], Cruise: stage[1]})
			k[i][0], k[i][1] = d.Ride, d.Cruise
		}

		copy(yNext, y)
		copy(yHat, y)
		for i := 0; i < 7; i++ {
			floats.AddScaled(yNext, h*dpB[i], k[i])
			floats.AddScaled(yHat, h*dpBHat[i], k[i])
		}

		errNorm := stepError(y, yNext, yHat, cfg.AbsTol, cfg.RelTol)
		if math.IsNaN(errNorm) {
			return nil, ErrStepUnderflow
		}

		if errNorm <= 1 {
			if last {
				t = span.End
			} else {
				t += h
			}
			copy(y, yNext)
			traj = append(traj, model.Sample{T: t, Ride: y[0], Cruise: y[1]})
		}

		// Standard fifth-order step-size update, clamped to avoid
		// oscillating between extremes.
		factor := 5.0
		if errNorm > 0 {
			factor = 0.9 * math.Pow(errNorm, -0.2)
		}
		factor = math.Min(5, math.Max(0.2, factor))
		h *= factor
	}

	return traj, nil
}

// stepError returns the weighted RMS of the difference between the fifth and
// fourth order solutions; values at or below 1 accept the step.
func stepError(y, yNext, yHat []float64, absTol, relTol float64) float64 {
	var sum float64
	for i := 0; i < dim; i++ {
		scale := absTol + relTol*math.Max(math.Abs(y[i]), math.Abs(yNext[i]))
		e := (yNext[i] - yHat[i]) / scale
		sum += e * e
	}
	return math.Sqrt(sum / dim)
}
