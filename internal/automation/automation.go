// Package automation runs scripted sequences of double pendulum
// integrations and sweeps of one physical parameter.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (default when empty) and overrides the
// fields that are set.
type ScenarioStep struct {
	Name    string    `yaml:"name"`
	Preset  string    `yaml:"preset"`
	Method  string    `yaml:"method"`
	Dt      float64   `yaml:"dt"`
	TMax    float64   `yaml:"t_max"`
	Y0      []float64 `yaml:"y0,flow"`
	Pendula int       `yaml:"pendula"`
	Save    bool      `yaml:"save"`
}

// Config resolves the step into a validated config.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		if cfg = config.GetPreset(s.Preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Method != "" {
		cfg.Method = s.Method
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.TMax != 0 {
		cfg.TMax = s.TMax
	}
	if s.Y0 != nil {
		cfg.Pendulum.Y0 = append([]float64(nil), s.Y0...)
	}
	if s.Pendula != 0 {
		cfg.Ensemble.Count = s.Pendula
	}
	return cfg, cfg.Validate()
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepResult is one executed step. RunID is empty unless the step was saved.
type StepResult struct {
	Name   string
	Result *experiment.Result
	RunID  string
}

// RunScenario executes all steps in order. Steps marked save are written to
// st, which may be nil when no step saves.
func RunScenario(ctx context.Context, logger log.Logger, scenario *Scenario, st *storage.Store) ([]StepResult, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	e := experiment.New(logger)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		level.Info(logger).Log("msg", "running step", "scenario", scenario.Name, "step", name, "n", i+1, "of", len(scenario.Steps))

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res, err := e.Run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: res}
		if step.Save {
			if st == nil {
				return results, fmt.Errorf("step %d: no store to save into", i+1)
			}
			if sr.RunID, err = st.Save(cfg, res); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep varies one physical parameter or initial angle of Base
// over NumSteps evenly spaced values in [Min, Max].
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

// SweepParams lists the names ParameterSweep.Param accepts.
var SweepParams = []string{"l1", "l2", "m1", "m2", "g", "theta1", "theta2"}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "l1":
		cfg.Pendulum.L1 = v
	case "l2":
		cfg.Pendulum.L2 = v
	case "m1":
		cfg.Pendulum.M1 = v
	case "m2":
		cfg.Pendulum.M2 = v
	case "g":
		cfg.Pendulum.G = v
	case "theta1":
		cfg.Pendulum.Y0[0] = v
	case "theta2":
		cfg.Pendulum.Y0[2] = v
	default:
		return fmt.Errorf("unknown sweep parameter: %s (available: %v)", name, SweepParams)
	}
	return nil
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	FinalState []float64 // radians
	MinEnergy  float64
	MaxEnergy  float64
}

// RunSweep integrates the first pendulum of Base once per parameter value.
func RunSweep(ctx context.Context, logger log.Logger, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	if err := sweep.Base.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	e := experiment.New(log.NewNopLogger())

	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		cfg.Ensemble.Count = 1
		if err := setParam(cfg, sweep.Param, paramVal); err != nil {
			return nil, err
		}

		res, err := e.Run(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, paramVal, err)
		}

		dp := res.Pendula[0]
		energies := dp.Energies()
		_, final := dp.Trajectory().Final()
		results = append(results, SweepResult{
			ParamValue: paramVal,
			FinalState: final.Components(),
			MinEnergy:  energies.Min(),
			MaxEnergy:  energies.Max(),
		})

		level.Debug(logger).Log("msg", "sweep", "n", i+1, "of", sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}
