package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/models"
)

// Result is one configured ensemble, integrated.
type Result struct {
	Method  string
	Pendula []*models.DoublePendulum
	Elapsed time.Duration
}

// Experiment turns configs into integrated double pendula, logging each run.
type Experiment struct {
	logger log.Logger
}

// New returns an Experiment logging to logger; nil discards logs.
func New(logger log.Logger) *Experiment {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Experiment{logger: logger}
}

// ModelOptions translates cfg into constructor options.
func ModelOptions(cfg *config.Config) []models.Option {
	p := cfg.Pendulum
	return []models.Option{
		models.WithParams(models.Params{L1: p.L1, L2: p.L2, M1: p.M1, M2: p.M2, G: p.G}),
		models.WithInitialDegrees(p.Y0...),
		models.WithMethod(cfg.Method),
		models.WithTimeStep(cfg.Dt),
		models.WithDuration(cfg.TMax),
		models.WithSolverOptions(cfg.SolverOptions()...),
	}
}

// Run integrates cfg.Ensemble.Count pendula one after another. The context
// is checked between pendula.
func (e *Experiment) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := log.With(e.logger, "method", cfg.Method)

	start := time.Now()
	opts := ModelOptions(cfg)
	res := &Result{Method: cfg.Method}
	for i := 0; i < cfg.Ensemble.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		y0 := append([]float64(nil), cfg.Pendulum.Y0...)
		y0[0] += float64(i) * cfg.Ensemble.DTheta
		memberStart := time.Now()
		dp, err := models.New(append(opts, models.WithInitialDegrees(y0...))...)
		if err != nil {
			level.Error(logger).Log("msg", "integration failed", "pendulum", i, "err", err)
			return nil, fmt.Errorf("pendulum %d: %w", i, err)
		}
		res.Method = dp.Method

		st := dp.Trajectory().Stats
		level.Debug(logger).Log(
			"msg", "integrated",
			"pendulum", i,
			"theta1", y0[0],
			"steps", st.Steps,
			"rejected", st.Rejected,
			"evals", st.Evaluations,
			"elapsed", time.Since(memberStart),
		)
		res.Pendula = append(res.Pendula, dp)
	}
	res.Elapsed = time.Since(start)

	level.Info(logger).Log("msg", "run complete", "pendula", len(res.Pendula), "elapsed", res.Elapsed)
	return res, nil
}

// Comparison summarizes one method on a shared initial condition.
type Comparison struct {
	Method      string
	Samples     int
	Steps       int
	Rejected    int
	Evaluations int
	FinalTheta1 float64 // degrees
	FinalTheta2 float64 // degrees
	EnergyDrift float64
	Stability   float64
	Elapsed     time.Duration
	Err         error
}

// StabilityBound is the state magnitude above which a sample counts as a
// blow-up in Comparison.Stability.
const StabilityBound = 1e3

// Compare integrates the first pendulum of cfg with every method, in the
// order given. A method that fails is reported through Comparison.Err and
// does not stop the others.
func (e *Experiment) Compare(ctx context.Context, cfg *config.Config, methods []string) ([]Comparison, error) {
	if len(methods) == 0 {
		return nil, errors.New("experiment: no methods to compare")
	}

	rows := make([]Comparison, 0, len(methods))
	for _, name := range methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c := cfg.Clone()
		c.Method = name
		c.Ensemble.Count = 1
		rows = append(rows, e.compareOne(c))
	}
	return rows, nil
}

func (e *Experiment) compareOne(cfg *config.Config) Comparison {
	row := Comparison{Method: cfg.Method}
	logger := log.With(e.logger, "method", cfg.Method)

	if err := cfg.Validate(); err != nil {
		row.Err = err
		level.Warn(logger).Log("msg", "skipping method", "err", err)
		return row
	}

	start := time.Now()
	dp, err := models.New(ModelOptions(cfg)...)
	row.Elapsed = time.Since(start)
	if err != nil {
		row.Err = err
		level.Warn(logger).Log("msg", "method failed", "err", err)
		return row
	}

	tr := dp.Trajectory()
	_, final := tr.Final()
	values := metrics.Evaluate(tr,
		metrics.NewEnergyDrift(dp.Params.Energy),
		metrics.NewStability(StabilityBound),
	)

	row.Method = dp.Method
	row.Samples = tr.Len()
	row.Steps = tr.Stats.Steps
	row.Rejected = tr.Stats.Rejected
	row.Evaluations = tr.Stats.Evaluations
	row.FinalTheta1 = degrees(final[0])
	row.FinalTheta2 = degrees(final[2])
	row.EnergyDrift = values["energy_drift"]
	row.Stability = values["stability"]

	level.Info(logger).Log(
		"msg", "compared",
		"steps", row.Steps,
		"rejected", row.Rejected,
		"evals", row.Evaluations,
		"energy_drift", row.EnergyDrift,
		"elapsed", row.Elapsed,
	)
	return row
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
