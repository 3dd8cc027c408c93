// Package analysis inspects integrated trajectories.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectrum of a sampled series
//   - [LyapunovExponent]: largest exponent by repeated renormalization of a
//     perturbed twin trajectory
//   - [NewPhasePortrait]: two state components plotted against each other
//   - [NewPoincareSection]: states recorded where one component crosses a level
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(odeint.RK4, f, y0, dt, duration, 1e-8)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
