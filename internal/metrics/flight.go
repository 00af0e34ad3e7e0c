package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Apex is the greatest height reached.
type Apex struct {
	max     float64
	samples int
}

func NewApex() *Apex { return &Apex{} }

func (a *Apex) Name() string { return "apex" }

func (a *Apex) Observe(s dynamo.KinematicState) {
	if a.samples == 0 || s.Height > a.max {
		a.max = s.Height
	}
	a.samples++
}

func (a *Apex) Value() float64 { return a.max }

func (a *Apex) Reset() {
	a.max = 0
	a.samples = 0
}

// FlightTime is the simulated time between the first and last observed
// states.
type FlightTime struct {
	start, end float64
	samples    int
}

func NewFlightTime() *FlightTime { return &FlightTime{} }

func (f *FlightTime) Name() string { return "flight_time" }

func (f *FlightTime) Observe(s dynamo.KinematicState) {
	if f.samples == 0 {
		f.start = s.Time
	}
	f.end = s.Time
	f.samples++
}

func (f *FlightTime) Value() float64 { return f.end - f.start }

func (f *FlightTime) Reset() {
	f.start, f.end = 0, 0
	f.samples = 0
}

// ImpactSpeed is the speed of the last observed state. For a run that
// ended on the ground this is the speed just before the crossing.
type ImpactSpeed struct {
	last float64
}

func NewImpactSpeed() *ImpactSpeed { return &ImpactSpeed{} }

func (i *ImpactSpeed) Name() string { return "impact_speed" }

func (i *ImpactSpeed) Observe(s dynamo.KinematicState) { i.last = math.Abs(s.Velocity) }

func (i *ImpactSpeed) Value() float64 { return i.last }

func (i *ImpactSpeed) Reset() { i.last = 0 }

// Default returns the metrics reported for every run.
func Default(p dynamo.Params) []dynamo.Metric {
	return []dynamo.Metric{
		NewApex(),
		NewFlightTime(),
		NewImpactSpeed(),
		NewEnergyDrift(p.Acceleration),
	}
}
