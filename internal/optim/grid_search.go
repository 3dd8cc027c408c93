// Package optim searches solver settings for the cheapest integration that
// stays within an energy drift budget.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
)

var ErrNoFeasible = errors.New("optim: no parameter combination satisfied the objective")

// Objective scores one parameter combination; lower is better. An error
// marks the combination as infeasible.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: no values for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Search evaluates every combination and returns the one with the lowest
// finite score.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, map[string]float64{}, objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoFeasible
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := objective(ctx, current)
		if err != nil {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

var errOverBudget = errors.New("optim: energy drift over budget")

// EvaluationCost scores a combination of "dt" and "tolerance" by the number
// of derivative evaluations needed to integrate base with them. Runs that
// fail or drift by more than maxDrift are infeasible.
func EvaluationCost(e *experiment.Experiment, base *config.Config, maxDrift float64) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base.Clone()
		for name, v := range params {
			switch name {
			case "dt":
				cfg.Dt = v
			case "tolerance":
				cfg.Tolerance = v
			default:
				return 0, fmt.Errorf("optim: unknown parameter %s", name)
			}
		}

		rows, err := e.Compare(ctx, cfg, []string{cfg.Method})
		if err != nil {
			return 0, err
		}
		row := rows[0]
		if row.Err != nil {
			return 0, row.Err
		}
		if !(row.EnergyDrift <= maxDrift) {
			return 0, errOverBudget
		}
		return float64(row.Evaluations), nil
	}
}
