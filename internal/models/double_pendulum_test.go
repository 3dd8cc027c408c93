package models

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

func TestDerivativeEquilibrium(t *testing.T) {
	args := DefaultParams().Args()

	for _, y := range []algebra.Vector{
		{0, 0, 0, 0},
		{math.Pi, 0, math.Pi, 0},
	} {
		dy, err := Derivative(0, y, args...)
		if err != nil {
			t.Fatalf("derivative(%v): %v", y, err)
		}
		for i, v := range dy {
			if math.Abs(v) > 1e-10 {
				t.Errorf("derivative(%v)[%d] = %g, expected 0", y, i, v)
			}
		}
	}
}

func TestDerivativeSymmetry(t *testing.T) {
	args := Params{L1: 1, L2: 2, M1: 3, M2: 1, G: DefaultGravity}.Args()

	y := algebra.Vector{0.4, 0.3, -0.2, 1.1}
	dy1, err := Derivative(0, y, args...)
	if err != nil {
		t.Fatal(err)
	}
	dy2, err := Derivative(0, y.Scale(-1), args...)
	if err != nil {
		t.Fatal(err)
	}

	for i := range dy1 {
		if math.Abs(dy1[i]+dy2[i]) > 1e-12 {
			t.Errorf("component %d not odd: %g vs %g", i, dy1[i], dy2[i])
		}
	}
}

func TestDerivativeVelocities(t *testing.T) {
	y := algebra.Vector{0.1, 2, 0.3, -4}
	dy, err := Derivative(0, y, DefaultParams().Args()...)
	if err != nil {
		t.Fatal(err)
	}
	if dy[0] != 2 || dy[2] != -4 {
		t.Errorf("angle rates should copy velocities, got %v", dy)
	}
}

func TestDerivativeErrors(t *testing.T) {
	if _, err := Derivative(0, algebra.Vector{0, 0, 0, 0}, 1, 1, 1); !errors.Is(err, ErrParams) {
		t.Errorf("expected ErrParams, got %v", err)
	}
	_, err := Derivative(0, algebra.Vector{0, 0}, DefaultParams().Args()...)
	if !errors.Is(err, algebra.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestParamsRoundTrip(t *testing.T) {
	p := Params{L1: 1, L2: 2, M1: 3, M2: 4, G: 5}
	got, err := ParamsFromArgs(p.Args()...)
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("expected %+v, got %+v", p, got)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"default", DefaultParams(), false},
		{"zero length", Params{L1: 0, L2: 1, M1: 1, M2: 1}, true},
		{"negative mass", Params{L1: 1, L2: 1, M1: 1, M2: -1}, true},
		{"positive gravity", Params{L1: 1, L2: 1, M1: 1, M2: 1, G: StandardGravity}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnergyAtRest(t *testing.T) {
	p := DefaultParams()

	// hanging straight down is the energy minimum for negative g
	down := p.Energy(algebra.Vector{math.Pi, 0, math.Pi, 0})
	want := -(p.M1+p.M2)*StandardGravity*p.L1 - p.M2*StandardGravity*p.L2
	if math.Abs(down-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, down)
	}

	up := p.Energy(algebra.Vector{0, 0, 0, 0})
	if up <= down {
		t.Errorf("inverted energy %f should exceed hanging energy %f", up, down)
	}

	level := p.Energy(algebra.Vector{math.Pi / 2, 0, math.Pi / 2, 0})
	if math.Abs(level) > 1e-12 {
		t.Errorf("horizontal arms at rest should have zero energy, got %g", level)
	}
}

func TestHangingAngle(t *testing.T) {
	p := DefaultParams()
	if p.HangingAngle() != math.Pi {
		t.Errorf("expected pi for negative gravity, got %f", p.HangingAngle())
	}

	p.G = StandardGravity
	if p.HangingAngle() != 0 {
		t.Errorf("expected 0 for positive gravity, got %f", p.HangingAngle())
	}
}

func TestEnergyConservedByRK4(t *testing.T) {
	p := DefaultParams()
	y0 := algebra.Vector{170, 0, 170, 0}.Map(radians)

	traj, err := odeint.RK4(Derivative, y0, 0, 10, 0.01, odeint.WithArgs(p.Args()...))
	if err != nil {
		t.Fatal(err)
	}

	e0 := p.Energy(y0)
	for i, y := range traj.States {
		if d := math.Abs(p.Energy(y) - e0); d > 1e-3 {
			t.Fatalf("energy drifted by %g at t=%.2f", d, traj.Times[i])
		}
	}
}
