package models

import (
	"errors"
	"math"

	"github.com/san-kum/odeint/internal/algebra"
)

// Pendulum is one arm of a chained pendulum: a rod of length L carrying a
// bob of mass M. CalculatePath fills its Cartesian trajectory.
type Pendulum struct {
	L float64
	M float64

	Theta  algebra.Vector
	DTheta algebra.Vector
	X      algebra.Vector
	Y      algebra.Vector
}

func NewPendulum(length, mass float64) *Pendulum {
	return &Pendulum{L: length, M: mass}
}

// CalculatePath converts angle samples into bob positions
// x = L*sin(theta) + x0, y = L*cos(theta) + y0. The pivot offsets x0 and y0
// are per-sample (the previous arm's bob); nil means the origin.
func (p *Pendulum) CalculatePath(theta, dtheta, x0, y0 algebra.Vector) error {
	if len(theta) != len(dtheta) {
		return &algebra.DimensionError{Op: "angular velocity samples", Want: len(theta), Got: len(dtheta)}
	}
	if x0 == nil {
		x0 = algebra.Zeros(len(theta))
	}
	if y0 == nil {
		y0 = algebra.Zeros(len(theta))
	}

	x, err := theta.Map(math.Sin).Scale(p.L).AddE(x0)
	if err != nil {
		return err
	}
	y, err := theta.Map(math.Cos).Scale(p.L).AddE(y0)
	if err != nil {
		return err
	}

	p.Theta, p.DTheta = theta.Clone(), dtheta.Clone()
	p.X, p.Y = x, y
	return nil
}

var errNoPath = errors.New("models: path not calculated")

// MaxX is the largest x coordinate the bob reaches.
func (p *Pendulum) MaxX() (float64, error) {
	if len(p.X) == 0 {
		return 0, errNoPath
	}
	return p.X.Max(), nil
}

// MaxY is the largest y coordinate the bob reaches.
func (p *Pendulum) MaxY() (float64, error) {
	if len(p.Y) == 0 {
		return 0, errNoPath
	}
	return p.Y.Max(), nil
}

func (p *Pendulum) MaxCoordinates() (x, y float64, err error) {
	if x, err = p.MaxX(); err != nil {
		return 0, 0, err
	}
	y, err = p.MaxY()
	return x, y, err
}
