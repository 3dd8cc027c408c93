package models

import (
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

const (
	DefaultTMax   = 30.0
	DefaultDt     = 0.05
	DefaultMethod = "rk4"
	// DefaultDTheta is the ensemble spacing of theta1, in degrees.
	DefaultDTheta = 0.05
)

// DefaultY0 is the initial state [theta1, omega1, theta2, omega2] in degrees.
func DefaultY0() []float64 { return []float64{90, 0, 90, 0} }

type settings struct {
	params Params
	y0     []float64
	method string
	dt     float64
	tMax   float64
	solver []odeint.Option
}

// Option configures a DoublePendulum before it is integrated.
type Option func(*settings)

func WithParams(p Params) Option {
	return func(s *settings) { s.params = p }
}

func WithLengths(l1, l2 float64) Option {
	return func(s *settings) { s.params.L1, s.params.L2 = l1, l2 }
}

func WithMasses(m1, m2 float64) Option {
	return func(s *settings) { s.params.M1, s.params.M2 = m1, m2 }
}

func WithGravity(g float64) Option {
	return func(s *settings) { s.params.G = g }
}

// WithInitialDegrees sets [theta1, omega1, theta2, omega2] in degrees and
// degrees per second.
func WithInitialDegrees(y0 ...float64) Option {
	return func(s *settings) { s.y0 = append([]float64(nil), y0...) }
}

// WithMethod selects the integrator by registry name.
func WithMethod(name string) Option {
	return func(s *settings) { s.method = name }
}

func WithTimeStep(dt float64) Option {
	return func(s *settings) { s.dt = dt }
}

func WithDuration(tMax float64) Option {
	return func(s *settings) { s.tMax = tMax }
}

// WithSolverOptions forwards options to the integrator.
func WithSolverOptions(opts ...odeint.Option) Option {
	return func(s *settings) { s.solver = append(s.solver, opts...) }
}

func defaultSettings() settings {
	return settings{
		params: DefaultParams(),
		y0:     DefaultY0(),
		method: DefaultMethod,
		dt:     DefaultDt,
		tMax:   DefaultTMax,
	}
}

// DoublePendulum is an integrated double pendulum. The whole trajectory is
// computed by New; the accessors only slice it.
type DoublePendulum struct {
	Params    Params
	Method    string
	Y0        algebra.Vector // radians
	Pendulum1 *Pendulum
	Pendulum2 *Pendulum

	traj  *odeint.Trajectory
	omega algebra.Vector
}

func New(opts ...Option) (*DoublePendulum, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return newFromSettings(s)
}

func newFromSettings(s settings) (*DoublePendulum, error) {
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	if len(s.y0) != 4 {
		return nil, &algebra.DimensionError{Op: "initial state", Want: 4, Got: len(s.y0)}
	}
	info, err := odeint.Describe(s.method)
	if err != nil {
		return nil, err
	}

	y0 := algebra.NewVector(s.y0...).Map(radians)
	dp := &DoublePendulum{
		Params:    s.params,
		Method:    info.Name,
		Y0:        y0,
		Pendulum1: NewPendulum(s.params.L1, s.params.M1),
		Pendulum2: NewPendulum(s.params.L2, s.params.M2),
	}
	if err := dp.integrate(info.Method, s); err != nil {
		return nil, err
	}
	return dp, nil
}

func (dp *DoublePendulum) integrate(method odeint.Method, s settings) error {
	opts := append([]odeint.Option{odeint.WithArgs(s.params.Args()...)}, s.solver...)
	traj, err := method(Derivative, dp.Y0, 0, s.tMax, s.dt, opts...)
	if err != nil {
		return fmt.Errorf("integrate double pendulum: %w", err)
	}

	m, err := traj.Matrix()
	if err != nil {
		return err
	}
	cols := m.Columns()
	if err := dp.Pendulum1.CalculatePath(cols[0], cols[1], nil, nil); err != nil {
		return err
	}
	if err := dp.Pendulum2.CalculatePath(cols[2], cols[3], dp.Pendulum1.X, dp.Pendulum1.Y); err != nil {
		return err
	}

	dp.traj = traj
	dp.omega = cols[1]
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func (dp *DoublePendulum) Len() int { return dp.traj.Len() }

func (dp *DoublePendulum) Times() []float64 { return dp.traj.Times }

func (dp *DoublePendulum) Trajectory() *odeint.Trajectory { return dp.traj }

// Omega returns the angular velocity of the first arm at every sample.
func (dp *DoublePendulum) Omega() algebra.Vector { return dp.omega }

// MaxLength is the reach of the system, L1 + L2.
func (dp *DoublePendulum) MaxLength() float64 {
	return dp.Pendulum1.L + dp.Pendulum2.L
}

// FrameX returns the x coordinates of pivot, first bob and second bob.
func (dp *DoublePendulum) FrameX(i int) [3]float64 {
	return [3]float64{0, dp.Pendulum1.X[i], dp.Pendulum2.X[i]}
}

func (dp *DoublePendulum) FrameY(i int) [3]float64 {
	return [3]float64{0, dp.Pendulum1.Y[i], dp.Pendulum2.Y[i]}
}

func (dp *DoublePendulum) Frame(i int) (xs, ys [3]float64) {
	return dp.FrameX(i), dp.FrameY(i)
}

func (dp *DoublePendulum) MaxX() (float64, error) { return dp.Pendulum2.MaxX() }

func (dp *DoublePendulum) MaxY() (float64, error) { return dp.Pendulum2.MaxY() }

func (dp *DoublePendulum) MaxCoordinates() (x, y float64, err error) {
	return dp.Pendulum2.MaxCoordinates()
}

// Energies returns the total mechanical energy at every sample.
func (dp *DoublePendulum) Energies() algebra.Vector {
	out := make(algebra.Vector, len(dp.traj.States))
	for i, y := range dp.traj.States {
		out[i] = dp.Params.Energy(y)
	}
	return out
}

// NewEnsemble builds n double pendula sharing opts, each starting with theta1
// dtheta degrees above the previous one.
func NewEnsemble(n int, dtheta float64, opts ...Option) ([]*DoublePendulum, error) {
	if n < 1 {
		return nil, fmt.Errorf("models: ensemble size must be positive, got %d", n)
	}
	base := defaultSettings()
	for _, opt := range opts {
		opt(&base)
	}
	if len(base.y0) == 0 {
		return nil, &algebra.DimensionError{Op: "initial state", Want: 4, Got: 0}
	}

	y0 := append([]float64(nil), base.y0...)
	pendula := make([]*DoublePendulum, 0, n)
	for i := 0; i < n; i++ {
		s := base
		s.y0 = append([]float64(nil), y0...)
		dp, err := newFromSettings(s)
		if err != nil {
			return nil, fmt.Errorf("pendulum %d: %w", i, err)
		}
		pendula = append(pendula, dp)
		y0[0] += dtheta
	}
	return pendula, nil
}
