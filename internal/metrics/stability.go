package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
)

// Stability is the fraction of samples whose components are all finite and
// within Bound in magnitude.
type Stability struct {
	Bound float64

	bad, seen int
	firstBad  float64
}

func NewStability(bound float64) *Stability {
	s := &Stability{Bound: bound}
	s.Reset()
	return s
}

func (*Stability) Name() string { return "stability" }

func (s *Stability) bounded(y algebra.Vector) bool {
	for _, v := range y {
		// NaN fails every comparison
		if !(math.Abs(v) <= s.Bound) {
			return false
		}
	}
	return true
}

func (s *Stability) Observe(t float64, y algebra.Vector) {
	s.seen++
	if s.bounded(y) {
		return
	}
	if s.bad == 0 {
		s.firstBad = t
	}
	s.bad++
}

func (s *Stability) Value() float64 {
	if s.seen == 0 {
		return 1
	}
	return float64(s.seen-s.bad) / float64(s.seen)
}

// Onset reports the time of the first out of bounds sample.
func (s *Stability) Onset() (float64, bool) {
	return s.firstBad, s.bad > 0
}

func (s *Stability) Reset() {
	s.bad, s.seen = 0, 0
	s.firstBad = math.NaN()
}
