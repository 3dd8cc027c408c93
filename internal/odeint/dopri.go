package odeint

import "github.com/san-kum/odeint/internal/algebra"

// DormandPrinceDefaultTolerance bounds the Dormand-Prince error estimate.
const DormandPrinceDefaultTolerance = 1e-4

// Dormand-Prince 5(4) coefficients. The seventh stage is evaluated at the
// fifth-order solution (FSAL row); it is recomputed on every attempt rather
// than carried into the next step.
var dormandPrince = &tableau{
	c: []float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
	a: [][]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	},
	high: []float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
	low:  []float64{5179.0 / 57600.0, 0, 7571.0 / 16695.0, 393.0 / 640.0, -92097.0 / 339200.0, 187.0 / 2100.0, 1.0 / 40.0},
}

// DormandPrince integrates with the Dormand-Prince 5(4) pair, keeping the
// fourth-order solution.
func DormandPrince(f Func, y0 algebra.Vector, tStart, tMax, h float64, opts ...Option) (*Trajectory, error) {
	return integrateAdaptive("rkdp", dormandPrince, DormandPrinceDefaultTolerance, f, y0, tStart, tMax, h, opts)
}
