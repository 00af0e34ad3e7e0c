package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// SpecificEnergy is the mechanical energy per unit mass of a state under
// constant acceleration a: kinetic 0.5*v^2 plus potential -a*h.
func SpecificEnergy(s dynamo.KinematicState, acceleration float64) float64 {
	return 0.5*s.Velocity*s.Velocity - acceleration*s.Height
}

// EnergyDrift tracks the largest relative deviation of the specific
// mechanical energy from its value at the first observed state. When that
// initial energy is exactly zero the deviation is absolute, in J/kg.
type EnergyDrift struct {
	name          string
	acceleration  float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(acceleration float64) *EnergyDrift {
	return &EnergyDrift{
		name:         "energy_drift",
		acceleration: acceleration,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.KinematicState) {
	energy := SpecificEnergy(s, e.acceleration)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if e.initialEnergy != 0 {
		drift /= math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
