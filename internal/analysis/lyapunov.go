package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

// LyapunovExponent estimates the largest Lyapunov exponent by integrating
// y0 and a twin displaced by perturbation along the first component. After
// every step of length dt the twin is pulled back to distance perturbation
// along the current separation, and
//
//	lambda = sum(ln(d_k / d0)) / elapsed
//
// A positive value indicates chaos.
func LyapunovExponent(
	method odeint.Method,
	f odeint.Func,
	y0 algebra.Vector,
	dt, duration float64,
	perturbation float64,
	opts ...odeint.Option,
) (float64, error) {
	if len(y0) == 0 {
		return 0, odeint.ErrEmptyState
	}
	if !(perturbation > 0) {
		return 0, errors.New("analysis: perturbation must be positive")
	}
	if !(duration >= dt) {
		return 0, odeint.ErrInvalidSpan
	}

	x := y0.Clone()
	xp := y0.Clone()
	xp[0] += perturbation
	d0 := perturbation

	sumLog := 0.0
	t := 0.0
	for k := 1; t+dt <= duration; k++ {
		next := t + dt

		var err error
		if x, err = advance(method, f, x, t, next, dt, opts); err != nil {
			return 0, fmt.Errorf("reference trajectory: %w", err)
		}
		if xp, err = advance(method, f, xp, t, next, dt, opts); err != nil {
			return 0, fmt.Errorf("perturbed trajectory: %w", err)
		}
		t = next

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, fmt.Errorf("analysis: degenerate separation %g at step %d", sep, k)
		}
		sumLog += math.Log(sep / d0)

		// renormalize
		xp = x.Add(xp.Sub(x).Scale(d0 / sep))
	}

	return sumLog / t, nil
}

// advance integrates y from t to next and returns the final state.
func advance(method odeint.Method, f odeint.Func, y algebra.Vector, t, next, dt float64, opts []odeint.Option) (algebra.Vector, error) {
	tr, err := method(f, y, t, next, dt, opts...)
	if err != nil {
		return nil, err
	}
	_, final := tr.Final()
	return final, nil
}
