package odeint

import (
	"github.com/san-kum/odeint/internal/algebra"
)

// evaluator wraps f with the checks and bookkeeping every method needs.
type evaluator struct {
	method   string
	f        Func
	args     []float64
	dim      int
	validate bool
	step     int
	stats    *Stats
}

func (e *evaluator) eval(t float64, y algebra.Vector) (algebra.Vector, error) {
	e.stats.Evaluations++
	dy, err := e.f(t, y, e.args...)
	if err != nil {
		return nil, e.fail(t, err)
	}
	if len(dy) != e.dim {
		return nil, e.fail(t, &algebra.DimensionError{Op: "derivative", Want: e.dim, Got: len(dy)})
	}
	if e.validate && !dy.IsValid() {
		return nil, e.fail(t, ErrInvalidState)
	}
	return dy, nil
}

func (e *evaluator) fail(t float64, err error) error {
	return &StepError{Method: e.method, Step: e.step, Time: t, Err: err}
}

// setup checks the preconditions shared by all methods.
func setup(method string, f Func, y0 algebra.Vector, tStart, tMax, h float64, opts []Option) (*evaluator, Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case f == nil:
		return nil, o, ErrNilFunc
	case len(y0) == 0:
		return nil, o, ErrEmptyState
	case !(h > 0):
		return nil, o, ErrInvalidStep
	case !(tMax > tStart):
		return nil, o, ErrInvalidSpan
	}

	ev := &evaluator{
		method:   method,
		f:        f,
		args:     o.Args,
		dim:      len(y0),
		validate: o.Validate,
	}
	return ev, o, nil
}

// axpy returns y + sum(step*w[i]*k[i]) over the non-zero weights.
func axpy(y algebra.Vector, step float64, w []float64, k []algebra.Vector) algebra.Vector {
	acc := y.Clone()
	for i, wi := range w {
		if wi == 0 {
			continue
		}
		acc = acc.Add(k[i].Scale(step * wi))
	}
	return acc
}
