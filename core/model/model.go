package model

// Parameters holds the scalar coefficients of one simulation run. The set is
// fixed when the run starts and never mutated afterwards.
type Parameters struct {
	R1 float64 // ride-sourcing intrinsic growth rate (1/year)
	R2 float64 // cruise-taxi intrinsic growth rate (1/year)
	N1 float64 // ride-sourcing carrying capacity (thousand vehicles)
	N2 float64 // cruise-taxi carrying capacity (thousand vehicles)

	Mu1 float64 // impact of the cruise fleet on ride-sourcing capacity
	Mu2 float64 // impact of the ride fleet on cruise-taxi capacity

	// Saturation coefficients of the per-fleet driving-distance model
	// D(x) = C - B^2/(A*x + B).
	A float64
	B float64
	C float64

	EF  float64 // gasoline emission factor
	EEF float64 // electricity emission factor
	E   float64 // energy consumption factor

	// Fleet-composition splits: fraction of each segment running on
	// gasoline versus electricity. Each pair must sum to 1.
	RideGasoline   float64
	RideElectric   float64
	CruiseGasoline float64
	CruiseElectric float64
}

// State is a pair of fleet sizes in thousands of vehicles.
type State struct {
	Ride   float64
	Cruise float64
}

// Span is a simulation time window in years.
type Span struct {
	Start float64
	End   float64
}

// Sample is one integrator output point.
type Sample struct {
	T      float64
	Ride   float64
	Cruise float64
}

// State returns the fleet sizes of the sample.
func (s Sample) State() State { return State{Ride: s.Ride, Cruise: s.Cruise} }

// Trajectory is the ordered integrator output, strictly increasing in T.
type Trajectory []Sample

// Times returns the timestamps of the trajectory.
func (tr Trajectory) Times() []float64 {
	ts := make([]float64, len(tr))
	for i, s := range tr {
		ts[i] = s.T
	}
	return ts
}

// DerivedPoint carries the quantities computed from one trajectory sample.
type DerivedPoint struct {
	RideDistance   float64 // DR, per-vehicle driving distance of the ride fleet
	CruiseDistance float64 // DT, per-vehicle driving distance of the cruise fleet
	Emissions      float64 // TCE, total carbon emissions in tons
	RideShare      float64 // x1/(x1+x2)
	CruiseShare    float64 // x2/(x1+x2)
	MarketRatio    float64 // x1/x2
}

// DerivedSeries holds one DerivedPoint per trajectory sample.
type DerivedSeries []DerivedPoint

// Emissions returns the TCE column of the series.
func (ds DerivedSeries) Emissions() []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.Emissions
	}
	return out
}

// MarketRatios returns the x1/x2 column of the series.
func (ds DerivedSeries) MarketRatios() []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.MarketRatio
	}
	return out
}

// Extremum records where an emission extreme occurs and the market situation
// at that point.
type Extremum struct {
	Index       int
	T           float64
	MarketRatio float64
	RideShare   float64
	Emissions   float64
}

// Extrema pairs the global emission maximum and minimum of a run.
type Extrema struct {
	Max Extremum
	Min Extremum
}
