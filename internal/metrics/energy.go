package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

// EnergyFunc maps a state to its total energy.
type EnergyFunc func(y algebra.Vector) float64

// zeroEnergy is the magnitude below which the initial energy is treated as
// zero and drift is reported in absolute terms.
const zeroEnergy = 1e-9

// EnergyDrift tracks the largest deviation of the energy from its value at
// the first observed sample, relative to that value.
type EnergyDrift struct {
	name          string
	energy        EnergyFunc
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(energy EnergyFunc) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: energy,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(t float64, y algebra.Vector) {
	energy := e.energy(y)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if math.Abs(e.initialEnergy) > zeroEnergy {
		drift /= math.Abs(e.initialEnergy)
	}
	if math.IsNaN(drift) {
		e.maxDrift = math.Inf(1)
		return
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

// MaxEnergyDrift is the EnergyDrift of a whole trajectory.
func MaxEnergyDrift(tr *odeint.Trajectory, energy EnergyFunc) float64 {
	m := NewEnergyDrift(energy)
	return Evaluate(tr, m)[m.Name()]
}
