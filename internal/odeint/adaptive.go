package odeint

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
)

// tableau is an explicit Runge-Kutta scheme with an embedded pair of weights.
type tableau struct {
	c    []float64
	a    [][]float64
	high []float64 // higher-order solution weights
	low  []float64 // lower-order solution weights, the accepted one
}

// try evaluates every stage at (t, y) with the given step and returns both
// embedded solutions.
func (tb *tableau) try(ev *evaluator, t float64, y algebra.Vector, step float64) (high, low algebra.Vector, err error) {
	k := make([]algebra.Vector, len(tb.c))
	for i := range tb.c {
		yi := y
		if i > 0 {
			yi = axpy(y, step, tb.a[i], k[:i])
		}
		k[i], err = ev.eval(t+tb.c[i]*step, yi)
		if err != nil {
			return nil, nil, err
		}
	}
	return axpy(y, step, tb.high, k), axpy(y, step, tb.low, k), nil
}

// integrateAdaptive runs the accept/shrink loop shared by RKF45 and
// DormandPrince. Every point starts from h; a rejected attempt shrinks the
// step by (tol/(2*eps))^(1/4) and retries the same point.
func integrateAdaptive(name string, tb *tableau, defaultTol float64, f Func, y0 algebra.Vector, tStart, tMax, h float64, opts []Option) (*Trajectory, error) {
	ev, o, err := setup(name, f, y0, tStart, tMax, h, opts)
	if err != nil {
		return nil, err
	}
	tol := defaultTol
	if o.Tolerance > 0 {
		tol = o.Tolerance
	}

	tr := newTrajectory(tStart, y0, capacityHint(tMax-tStart, h))
	ev.stats = &tr.Stats

	t, y := tStart, tr.States[0]
	for t < tMax {
		if o.MaxSteps > 0 && tr.Stats.Steps >= o.MaxSteps {
			return nil, ev.fail(t, ErrMaxSteps)
		}
		ev.step = tr.Stats.Steps + 1

		step := h
		for retries := 0; ; retries++ {
			high, low, err := tb.try(ev, t, y, step)
			if err != nil {
				return nil, err
			}

			eps := high.Sub(low).Abs().Norm()
			if !(eps > tol) {
				y = low
				break
			}

			tr.Stats.Rejected++
			step *= math.Pow(tol/(2*eps), 0.25)
			if retries+1 >= o.MaxRetries || !(step >= o.MinStep) || t+step == t {
				return nil, ev.fail(t, ErrStepTooSmall)
			}
		}

		next := t + step
		if next == t {
			return nil, ev.fail(t, ErrStepTooSmall)
		}
		t = next
		tr.push(t, step, y)
	}
	return tr, nil
}
