package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

// Metric accumulates a scalar over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(t float64, y algebra.Vector)
	Value() float64
	Reset()
}

// Evaluate resets every metric, feeds it the whole trajectory and returns
// the values by name.
func Evaluate(tr *odeint.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, y := range tr.States {
			m.Observe(tr.Times[i], y)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// Finite returns the entries of values that are neither NaN nor infinite.
func Finite(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}
