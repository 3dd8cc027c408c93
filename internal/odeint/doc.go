// Package odeint integrates ordinary differential equations dy/dt = f(t, y).
//
// Five methods share one call shape ([Method]):
//
//   - [Euler]: explicit Euler, first order
//   - [RK4]: classical four-stage Runge-Kutta
//   - [AdamsBashforth3]: three-step Adams-Bashforth, bootstrapped with RK4
//   - [RKF45]: Runge-Kutta-Fehlberg 4(5) with step rejection
//   - [DormandPrince]: Dormand-Prince 5(4) with step rejection
//
// # Example
//
//	f := func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
//		return algebra.Vector{y[1], -y[0]}, nil
//	}
//	traj, err := odeint.RK4(f, algebra.Vector{1, 0}, 0, 10, 0.01)
//
// # Time grid
//
// Fixed-step methods sample tStart+h, tStart+2h, ... by repeated addition
// while the sample does not exceed tMax, so the last sample may fall one step
// short of tMax when the span is not a multiple of h. The trajectory always
// starts with (tStart, y0).
//
// # Adaptive methods
//
// Each accepted point starts from the caller's h and shrinks the step by
// (tol/(2*err))^(1/4) until the embedded error estimate is within tolerance.
// Steps never grow. The retry loop is bounded by [WithMaxRetries] and
// [WithMinStep]; exhausting it fails with [ErrStepTooSmall]. Any method
// whose step no longer changes the running time fails the same way.
//
// Integration is synchronous and allocates fresh Vectors per call; separate
// calls share no state.
package odeint
