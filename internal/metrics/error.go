package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

// Solution is a known exact solution y(t).
type Solution func(t float64) algebra.Vector

// GlobalError tracks the largest Euclidean distance between the samples and
// an exact solution.
type GlobalError struct {
	name     string
	exact    Solution
	maxError float64
	last     float64
}

func NewGlobalError(exact Solution) *GlobalError {
	return &GlobalError{
		name:  "global_error",
		exact: exact,
	}
}

func (g *GlobalError) Name() string { return g.name }

func (g *GlobalError) Observe(t float64, y algebra.Vector) {
	g.last = y.Sub(g.exact(t)).Norm()
	g.maxError = math.Max(g.maxError, g.last)
}

func (g *GlobalError) Value() float64 { return g.maxError }

// Last is the error at the most recent sample.
func (g *GlobalError) Last() float64 { return g.last }

func (g *GlobalError) Reset() {
	g.maxError = 0
	g.last = 0
}

// FinalError is the distance between the last sample and the exact solution
// at that time.
func FinalError(tr *odeint.Trajectory, exact Solution) float64 {
	t, y := tr.Final()
	return y.Sub(exact(t)).Norm()
}
