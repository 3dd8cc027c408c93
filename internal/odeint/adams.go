package odeint

import "github.com/san-kum/odeint/internal/algebra"

// AdamsBashforth3 integrates with the three-step Adams-Bashforth method. The
// first three points come from RK4 at the same step. Each step evaluates f
// at all three history points; nothing is cached between steps.
func AdamsBashforth3(f Func, y0 algebra.Vector, tStart, tMax, h float64, opts ...Option) (*Trajectory, error) {
	ev, _, err := setup("ab3", f, y0, tStart, tMax, h, opts)
	if err != nil {
		return nil, err
	}

	times, err := fixedGrid(tStart, tMax, h)
	if err != nil {
		return nil, ev.fail(times[len(times)-1], err)
	}
	tr := newTrajectory(tStart, y0, len(times))
	ev.stats = &tr.Stats

	for k := 1; k < len(times); k++ {
		ev.step = k
		var y algebra.Vector
		if k < 3 {
			y, err = rk4Step(ev, times[k-1], tr.States[k-1], h)
		} else {
			y, err = ab3Step(ev, times[k-3:k], tr.States[k-3:k], h)
		}
		if err != nil {
			return nil, err
		}
		tr.push(times[k], h, y)
	}
	return tr, nil
}

// ab3Step advances ys[2] using the derivatives at the three history points,
// oldest first.
func ab3Step(ev *evaluator, ts []float64, ys []algebra.Vector, h float64) (algebra.Vector, error) {
	f0, err := ev.eval(ts[2], ys[2])
	if err != nil {
		return nil, err
	}
	f1, err := ev.eval(ts[1], ys[1])
	if err != nil {
		return nil, err
	}
	f2, err := ev.eval(ts[0], ys[0])
	if err != nil {
		return nil, err
	}

	sum := f0.Scale(23).Sub(f1.Scale(16)).Add(f2.Scale(5))
	return ys[2].Add(sum.Scale(h / 12.0)), nil
}
