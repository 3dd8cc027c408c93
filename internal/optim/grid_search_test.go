package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/odeint"
)

func TestGridSearch(t *testing.T) {
	g, err := NewGridSearch([]string{"x", "y"}, [][]float64{{-1, 0, 1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}

	calls := 0
	params, best, err := g.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		calls++
		if p["x"] < 0 {
			return 0, errors.New("infeasible")
		}
		return (p["x"]-1)*(p["x"]-1) + p["y"], nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if calls != 8 {
		t.Errorf("expected 8 evaluations, got %d", calls)
	}
	if params["x"] != 1 || params["y"] != 3 || best != 3 {
		t.Errorf("expected x=1 y=3 score 3, got %v score %f", params, best)
	}
}

func TestGridSearchNoFeasible(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, errors.New("never")
	})
	if !errors.Is(err, ErrNoFeasible) {
		t.Errorf("expected ErrNoFeasible, got %v", err)
	}
}

func TestGridSearchCancelled(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1}})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = g.Search(ctx, func(context.Context, map[string]float64) (float64, error) { return 1, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewGridSearchErrors(t *testing.T) {
	if _, err := NewGridSearch([]string{"x", "y"}, [][]float64{{1}}); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, err := NewGridSearch([]string{"x"}, [][]float64{{}}); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestEvaluationCostPicksLargestAdmissibleStep(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TMax = 2
	cfg.Pendulum.Y0 = []float64{170, 0, 170, 0}

	g, err := NewGridSearch([]string{"dt"}, [][]float64{{0.5, 0.01, 0.05}})
	if err != nil {
		t.Fatal(err)
	}
	params, cost, err := g.Search(context.Background(), EvaluationCost(experiment.New(nil), cfg, 1e-3))
	if err != nil {
		t.Fatal(err)
	}

	// rk4 at dt 0.5 drifts far over budget; 0.05 holds it with fewer calls than 0.01
	if params["dt"] != 0.05 {
		t.Errorf("expected dt 0.05, got %v", params)
	}
	if want := 4 * len(odeint.Arrange(0, cfg.TMax, 0.05)); cost != float64(want) {
		t.Errorf("expected %d evaluations, got %f", want, cost)
	}
}

func TestEvaluationCostUnknownParam(t *testing.T) {
	obj := EvaluationCost(experiment.New(nil), config.DefaultConfig(), 1)
	if _, err := obj(context.Background(), map[string]float64{"mass": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
