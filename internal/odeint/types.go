package odeint

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
)

// Func is the right-hand side dy/dt = f(t, y, args...). It must return a
// Vector of the same length as y and must not modify y. A non-nil error
// aborts the integration.
type Func func(t float64, y algebra.Vector, args ...float64) (algebra.Vector, error)

// Method is the call shape shared by every integrator.
type Method func(f Func, y0 algebra.Vector, tStart, tMax, h float64, opts ...Option) (*Trajectory, error)

// Stats counts the work done by one integration call.
type Stats struct {
	Steps       int // accepted steps
	Rejected    int // adaptive retries
	Evaluations int // calls to f
	MinStep     float64 // 0 until a step is accepted
	MaxStep     float64
}

// Trajectory is the index-aligned output of an integrator: Times[i] is the
// time of States[i].
type Trajectory struct {
	Times  []float64
	States []algebra.Vector
	Stats  Stats
}

// maxPrealloc caps the samples reserved up front; longer runs grow by append.
const maxPrealloc = 1 << 16

// capacityHint estimates the number of steps over span, clamped to
// [0, maxPrealloc].
func capacityHint(span, h float64) int {
	n := math.Ceil(span / h)
	if !(n > 0) {
		return 0
	}
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}

func newTrajectory(tStart float64, y0 algebra.Vector, capacity int) *Trajectory {
	capacity = min(max(capacity, 0), maxPrealloc)
	tr := &Trajectory{
		Times:  make([]float64, 0, capacity+1),
		States: make([]algebra.Vector, 0, capacity+1),
	}
	tr.Times = append(tr.Times, tStart)
	tr.States = append(tr.States, y0.Clone())
	return tr
}

func (tr *Trajectory) push(t, step float64, y algebra.Vector) {
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, y)
	if tr.Stats.Steps == 0 || step < tr.Stats.MinStep {
		tr.Stats.MinStep = step
	}
	tr.Stats.MaxStep = math.Max(tr.Stats.MaxStep, step)
	tr.Stats.Steps++
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Final returns the last sample.
func (tr *Trajectory) Final() (float64, algebra.Vector) {
	i := len(tr.Times) - 1
	return tr.Times[i], tr.States[i]
}

// Matrix returns the states as matrix rows, one row per sample.
func (tr *Trajectory) Matrix() (*algebra.Matrix, error) {
	return algebra.FromVectors(tr.States)
}

// Component returns component i of every state.
func (tr *Trajectory) Component(i int) (algebra.Vector, error) {
	m, err := tr.Matrix()
	if err != nil {
		return nil, err
	}
	return m.Column(i)
}

// Options tune a single integration call.
type Options struct {
	Args       []float64
	Tolerance  float64
	MaxRetries int
	MinStep    float64
	MaxSteps   int
	Validate   bool
}

type Option func(*Options)

// DefaultOptions returns the hardening limits used when no Option overrides
// them. Tolerance 0 selects the method's own default.
func DefaultOptions() Options {
	return Options{
		MaxRetries: 64,
		MinStep:    1e-12,
	}
}

// WithArgs forwards extra parameters to every call of f.
func WithArgs(args ...float64) Option {
	return func(o *Options) { o.Args = append([]float64(nil), args...) }
}

// WithTolerance overrides the adaptive methods' error tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.Tolerance = tol }
}

// WithMaxRetries bounds the rejections allowed for a single point.
func WithMaxRetries(n int) Option {
	return func(o *Options) { o.MaxRetries = n }
}

// WithMinStep sets the smallest adaptive step tried before giving up.
func WithMinStep(step float64) Option {
	return func(o *Options) { o.MinStep = step }
}

// WithMaxSteps caps the number of accepted adaptive steps; 0 means no cap.
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.MaxSteps = n }
}

// WithValidation rejects derivatives containing NaN or Inf.
func WithValidation() Option {
	return func(o *Options) { o.Validate = true }
}
