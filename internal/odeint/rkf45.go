package odeint

import "github.com/san-kum/odeint/internal/algebra"

// RKF45DefaultTolerance bounds the Fehlberg error estimate.
const RKF45DefaultTolerance = 1e-5

// Fehlberg 4(5) coefficients
var fehlberg = &tableau{
	c: []float64{0, 1.0 / 4.0, 3.0 / 8.0, 12.0 / 13.0, 1, 1.0 / 2.0},
	a: [][]float64{
		{},
		{1.0 / 4.0},
		{3.0 / 32.0, 9.0 / 32.0},
		{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
		{439.0 / 216.0, -8.0, 3680.0 / 513.0, -845.0 / 4104.0},
		{-8.0 / 27.0, 2.0, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
	},
	high: []float64{16.0 / 135.0, 0, 6656.0 / 12825.0, 28561.0 / 56430.0, -9.0 / 50.0, 2.0 / 55.0},
	low:  []float64{25.0 / 216.0, 0, 1408.0 / 2565.0, 2197.0 / 4104.0, -1.0 / 5.0, 0},
}

// RKF45 integrates with Runge-Kutta-Fehlberg 4(5). The fourth-order solution
// is the one kept; the fifth-order one only feeds the error estimate.
func RKF45(f Func, y0 algebra.Vector, tStart, tMax, h float64, opts ...Option) (*Trajectory, error) {
	return integrateAdaptive("rkf45", fehlberg, RKF45DefaultTolerance, f, y0, tStart, tMax, h, opts)
}
