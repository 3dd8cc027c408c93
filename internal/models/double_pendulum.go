package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/algebra"
)

const (
	DefaultMass   = 1.0
	DefaultLength = 1.0
	// StandardGravity is g in m/s^2. The default model gravity is its
	// negation: angles are measured so that y = L*cos(theta) points up.
	StandardGravity = 9.80665
	DefaultGravity  = -StandardGravity
)

// ErrParams indicates a derivative call with the wrong number of parameters.
var ErrParams = errors.New("models: double pendulum expects args L1, L2, m1, m2, g")

// Params are the physical constants of a double pendulum. They travel to the
// derivative as extra arguments in the order returned by Args.
type Params struct {
	L1, L2 float64
	M1, M2 float64
	G      float64
}

func DefaultParams() Params {
	return Params{
		L1: DefaultLength, L2: DefaultLength,
		M1: DefaultMass, M2: DefaultMass,
		G: DefaultGravity,
	}
}

// Args returns L1, L2, m1, m2, g.
func (p Params) Args() []float64 {
	return []float64{p.L1, p.L2, p.M1, p.M2, p.G}
}

func ParamsFromArgs(args ...float64) (Params, error) {
	if len(args) != 5 {
		return Params{}, fmt.Errorf("%w: got %d values", ErrParams, len(args))
	}
	return Params{L1: args[0], L2: args[1], M1: args[2], M2: args[3], G: args[4]}, nil
}

func (p Params) Validate() error {
	if p.L1 <= 0 || p.L2 <= 0 {
		return fmt.Errorf("models: lengths must be positive, got L1=%g L2=%g", p.L1, p.L2)
	}
	if p.M1 <= 0 || p.M2 <= 0 {
		return fmt.Errorf("models: masses must be positive, got m1=%g m2=%g", p.M1, p.M2)
	}
	return nil
}

// Derivative is the right-hand side of the double pendulum for the state
// [theta1, omega1, theta2, omega2], with args L1, L2, m1, m2, g.
func Derivative(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error) {
	p, err := ParamsFromArgs(args...)
	if err != nil {
		return nil, err
	}
	if len(y) != 4 {
		return nil, &algebra.DimensionError{Op: "double pendulum state", Want: 4, Got: len(y)}
	}

	theta1, z1, theta2, z2 := y[0], y[1], y[2], y[3]
	l1, l2, m1, m2, g := p.L1, p.L2, p.M1, p.M2, p.G

	c, s := math.Cos(theta1-theta2), math.Sin(theta1-theta2)
	den := m1 + m2*s*s

	z1dot := (m2*g*math.Sin(theta2)*c -
		m2*s*(l1*z1*z1*c+l2*z2*z2) -
		(m1+m2)*g*math.Sin(theta1)) / (l1 * den)

	z2dot := ((m1+m2)*(l1*z1*z1*s-g*math.Sin(theta2)+g*math.Sin(theta1)*c) +
		m2*l2*z2*z2*s*c) / (l2 * den)

	return algebra.Vector{z1, z1dot, z2, z2dot}, nil
}

// Energy is the total mechanical energy of state y. It is conserved by the
// exact flow for any sign of G.
func (p Params) Energy(y algebra.Vector) float64 {
	theta1, z1, theta2, z2 := y[0], y[1], y[2], y[3]
	l1, l2, m1, m2, g := p.L1, p.L2, p.M1, p.M2, p.G

	ke := 0.5*(m1+m2)*l1*l1*z1*z1 +
		0.5*m2*l2*l2*z2*z2 +
		m2*l1*l2*z1*z2*math.Cos(theta1-theta2)
	pe := -(m1+m2)*g*l1*math.Cos(theta1) - m2*g*l2*math.Cos(theta2)

	return ke + pe
}

// HangingAngle is the stable equilibrium of either arm: pi for the default
// negative gravity, 0 when G is positive.
func (p Params) HangingAngle() float64 {
	if p.G < 0 {
		return math.Pi
	}
	return 0
}
