package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odeint/internal/odeint"
)

const (
	DefaultMethod  = "rk4"
	DefaultDt      = 0.05
	DefaultTMax    = 30.0
	DefaultLength  = 1.0
	DefaultMass    = 1.0
	DefaultGravity = -9.80665
	DefaultPendula = 1
	DefaultDTheta  = 0.05
	DefaultRetries = 64
	DefaultMinStep = 1e-12
)

type Config struct {
	Method     string         `yaml:"method"`
	Dt         float64        `yaml:"dt"`
	TMax       float64        `yaml:"t_max"`
	Tolerance  float64        `yaml:"tolerance,omitempty"`
	MaxRetries int            `yaml:"max_retries,omitempty"`
	MinStep    float64        `yaml:"min_step,omitempty"`
	Pendulum   PendulumConfig `yaml:"pendulum"`
	Ensemble   EnsembleConfig `yaml:"ensemble"`
}

// PendulumConfig holds the physical constants and the initial state
// [theta1, omega1, theta2, omega2] in degrees.
type PendulumConfig struct {
	L1 float64   `yaml:"l1"`
	L2 float64   `yaml:"l2"`
	M1 float64   `yaml:"m1"`
	M2 float64   `yaml:"m2"`
	G  float64   `yaml:"g"`
	Y0 []float64 `yaml:"y0,flow"`
}

type EnsembleConfig struct {
	Count  int     `yaml:"count"`
	DTheta float64 `yaml:"dtheta"`
}

// ConfigError names the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func DefaultConfig() *Config {
	return &Config{
		Method:     DefaultMethod,
		Dt:         DefaultDt,
		TMax:       DefaultTMax,
		MaxRetries: DefaultRetries,
		MinStep:    DefaultMinStep,
		Pendulum: PendulumConfig{
			L1: DefaultLength, L2: DefaultLength,
			M1: DefaultMass, M2: DefaultMass,
			G:  DefaultGravity,
			Y0: []float64{90, 0, 90, 0},
		},
		Ensemble: EnsembleConfig{
			Count:  DefaultPendula,
			DTheta: DefaultDTheta,
		},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Pendulum.Y0 = append([]float64(nil), c.Pendulum.Y0...)
	return &out
}

// Load reads a YAML file on top of DefaultConfig, so absent keys keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Method == "":
		return &ConfigError{Field: "method", Reason: "must not be empty"}
	case !(c.Dt > 0):
		return &ConfigError{Field: "dt", Reason: fmt.Sprintf("must be positive, got %g", c.Dt)}
	case !(c.TMax > 0):
		return &ConfigError{Field: "t_max", Reason: fmt.Sprintf("must be positive, got %g", c.TMax)}
	case c.Tolerance < 0:
		return &ConfigError{Field: "tolerance", Reason: "must not be negative"}
	case c.MaxRetries < 0:
		return &ConfigError{Field: "max_retries", Reason: "must not be negative"}
	case c.MinStep < 0:
		return &ConfigError{Field: "min_step", Reason: "must not be negative"}
	case c.Pendulum.L1 <= 0 || c.Pendulum.L2 <= 0:
		return &ConfigError{Field: "pendulum", Reason: "lengths must be positive"}
	case c.Pendulum.M1 <= 0 || c.Pendulum.M2 <= 0:
		return &ConfigError{Field: "pendulum", Reason: "masses must be positive"}
	case len(c.Pendulum.Y0) != 4:
		return &ConfigError{Field: "pendulum.y0", Reason: fmt.Sprintf("need 4 values, got %d", len(c.Pendulum.Y0))}
	case c.Ensemble.Count < 1:
		return &ConfigError{Field: "ensemble.count", Reason: "must be at least 1"}
	}
	if _, err := odeint.Describe(c.Method); err != nil {
		return &ConfigError{Field: "method", Reason: err.Error()}
	}
	return nil
}

// SolverOptions translates the step-control settings.
func (c *Config) SolverOptions() []odeint.Option {
	var opts []odeint.Option
	if c.Tolerance > 0 {
		opts = append(opts, odeint.WithTolerance(c.Tolerance))
	}
	if c.MaxRetries > 0 {
		opts = append(opts, odeint.WithMaxRetries(c.MaxRetries))
	}
	if c.MinStep > 0 {
		opts = append(opts, odeint.WithMinStep(c.MinStep))
	}
	return opts
}
