package odeint

import "github.com/san-kum/odeint/internal/algebra"

// RK4 integrates with the classical fourth-order Runge-Kutta method.
func RK4(f Func, y0 algebra.Vector, tStart, tMax, h float64, opts ...Option) (*Trajectory, error) {
	return integrateFixed("rk4", rk4Step, f, y0, tStart, tMax, h, opts)
}

func rk4Step(ev *evaluator, t float64, y algebra.Vector, h float64) (algebra.Vector, error) {
	half := h * 0.5

	k1, err := ev.eval(t, y)
	if err != nil {
		return nil, err
	}
	k2, err := ev.eval(t+half, y.Add(k1.Scale(half)))
	if err != nil {
		return nil, err
	}
	k3, err := ev.eval(t+half, y.Add(k2.Scale(half)))
	if err != nil {
		return nil, err
	}
	k4, err := ev.eval(t+h, y.Add(k3.Scale(h)))
	if err != nil {
		return nil, err
	}

	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return y.Add(sum.Scale(h / 6.0)), nil
}
