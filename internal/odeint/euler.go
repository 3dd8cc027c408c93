package odeint

import "github.com/san-kum/odeint/internal/algebra"

// Euler integrates with the explicit Euler method:
// y[k] = y[k-1] + h*f(t[k], y[k-1]). The derivative is taken at the new
// sample's time with the old state.
func Euler(f Func, y0 algebra.Vector, tStart, tMax, h float64, opts ...Option) (*Trajectory, error) {
	return integrateFixed("euler", eulerStep, f, y0, tStart, tMax, h, opts)
}

// eulerStep advances y from t; t+h is exactly the next grid time since the
// grid is built by the same addition.
func eulerStep(ev *evaluator, t float64, y algebra.Vector, h float64) (algebra.Vector, error) {
	dy, err := ev.eval(t+h, y)
	if err != nil {
		return nil, err
	}
	return y.Add(dy.Scale(h)), nil
}

type stepFunc func(ev *evaluator, t float64, y algebra.Vector, h float64) (algebra.Vector, error)

func integrateFixed(name string, step stepFunc, f Func, y0 algebra.Vector, tStart, tMax, h float64, opts []Option) (*Trajectory, error) {
	ev, _, err := setup(name, f, y0, tStart, tMax, h, opts)
	if err != nil {
		return nil, err
	}

	times, err := fixedGrid(tStart, tMax, h)
	if err != nil {
		return nil, ev.fail(times[len(times)-1], err)
	}
	tr := newTrajectory(tStart, y0, len(times))
	ev.stats = &tr.Stats

	y := tr.States[0]
	for k := 1; k < len(times); k++ {
		ev.step = k
		y, err = step(ev, times[k-1], y, h)
		if err != nil {
			return nil, err
		}
		tr.push(times[k], h, y)
	}
	return tr, nil
}
