package algebra

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DivByZeroSentinel replaces a quotient component whose divisor is exactly zero.
const DivByZeroSentinel = -1e10

// Vector is an ordered sequence of reals. Operations never modify the receiver
// and return a fresh Vector; Set is the only mutator.
type Vector []float64

// NewVector copies components into a new Vector.
func NewVector(components ...float64) Vector {
	v := make(Vector, len(components))
	copy(v, components)
	return v
}

// Zeros returns a Vector of n zero components.
func Zeros(n int) Vector {
	return make(Vector, n)
}

func (v Vector) Len() int { return len(v) }

func (v Vector) At(i int) float64 { return v[i] }

func (v Vector) Set(i int, x float64) { v[i] = x }

// Append returns v extended by x. Integrators never resize a state.
func (v Vector) Append(x float64) Vector {
	return append(v.Clone(), x)
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// Components returns the components as a plain slice copy.
func (v Vector) Components() []float64 {
	return []float64(v.Clone())
}

// Add returns v + b. It panics with a *DimensionError if the lengths differ.
func (v Vector) Add(b Vector) Vector {
	mustLen("add", len(v), len(b))
	return floats.AddTo(make(Vector, len(v)), v, b)
}

// AddE is Add returning the length mismatch as an error.
func (v Vector) AddE(b Vector) (Vector, error) {
	if err := checkLen("add", len(v), len(b)); err != nil {
		return nil, err
	}
	return v.Add(b), nil
}

// AddScalar adds k to every component.
func (v Vector) AddScalar(k float64) Vector {
	r := v.Clone()
	floats.AddConst(k, r)
	return r
}

// Sub returns v - b. It panics with a *DimensionError if the lengths differ.
func (v Vector) Sub(b Vector) Vector {
	mustLen("subtract", len(v), len(b))
	return floats.SubTo(make(Vector, len(v)), v, b)
}

// SubE is Sub returning the length mismatch as an error.
func (v Vector) SubE(b Vector) (Vector, error) {
	if err := checkLen("subtract", len(v), len(b)); err != nil {
		return nil, err
	}
	return v.Sub(b), nil
}

// Scale returns k*v.
func (v Vector) Scale(k float64) Vector {
	return floats.ScaleTo(make(Vector, len(v)), k, v)
}

// ScaleBy returns k*v; it is the scalar-on-the-left spelling of v.Scale(k).
func ScaleBy(k float64, v Vector) Vector {
	return v.Scale(k)
}

// Dot returns the inner product. It panics with a *DimensionError if the
// lengths differ.
func (v Vector) Dot(b Vector) float64 {
	mustLen("dot", len(v), len(b))
	return floats.Dot(v, b)
}

// DotE is Dot returning the length mismatch as an error.
func (v Vector) DotE(b Vector) (float64, error) {
	if err := checkLen("dot", len(v), len(b)); err != nil {
		return 0, err
	}
	return v.Dot(b), nil
}

// DivScalar multiplies v by 1/k.
func (v Vector) DivScalar(k float64) Vector {
	return v.Scale(1 / k)
}

// Div returns the element-wise quotient v/b. A component whose divisor is
// exactly zero is set to DivByZeroSentinel rather than Inf or NaN.
func (v Vector) Div(b Vector) Vector {
	mustLen("divide", len(v), len(b))
	r := make(Vector, len(v))
	for i := range v {
		if b[i] != 0 {
			r[i] = v[i] / b[i]
		} else {
			r[i] = DivByZeroSentinel
		}
	}
	return r
}

// DivE is Div returning the length mismatch as an error.
func (v Vector) DivE(b Vector) (Vector, error) {
	if err := checkLen("divide", len(v), len(b)); err != nil {
		return nil, err
	}
	return v.Div(b), nil
}

// Norm is the Euclidean norm.
func (v Vector) Norm() float64 {
	return floats.Norm(v, 2)
}

func (v Vector) Abs() Vector {
	r := make(Vector, len(v))
	for i, x := range v {
		r[i] = math.Abs(x)
	}
	return r
}

// Max returns the largest component. It panics on an empty Vector.
func (v Vector) Max() float64 {
	return floats.Max(v)
}

// Min returns the smallest component. It panics on an empty Vector.
func (v Vector) Min() float64 {
	return floats.Min(v)
}

func (v Vector) Equal(b Vector) bool {
	return floats.Equal(v, b)
}

// EqualApprox reports whether v and b have the same length and every pair of
// components is within tol (absolute or relative).
func (v Vector) EqualApprox(b Vector, tol float64) bool {
	return floats.EqualApprox(v, b, tol)
}

// IsValid reports whether every component is finite.
func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}

// Map applies fn to every component.
func (v Vector) Map(fn func(float64) float64) Vector {
	r := make(Vector, len(v))
	for i, x := range v {
		r[i] = fn(x)
	}
	return r
}
