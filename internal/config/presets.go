package config

import "sort"

// Presets are named starting points for the double pendulum.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"gentle": {
		Method: "rk4", Dt: 0.01, TMax: 20,
		Pendulum: PendulumConfig{L1: 1, L2: 1, M1: 1, M2: 1, G: DefaultGravity, Y0: []float64{170, 0, 170, 0}},
		Ensemble: EnsembleConfig{Count: 1, DTheta: DefaultDTheta},
	},
	"chaos": {
		Method: "rk4", Dt: 0.005, TMax: 60,
		Pendulum: PendulumConfig{L1: 1, L2: 1, M1: 1, M2: 1, G: DefaultGravity, Y0: []float64{0, 0, 1, 0}},
		Ensemble: EnsembleConfig{Count: 1, DTheta: DefaultDTheta},
	},
	"fan": {
		Method: "rk4", Dt: 0.05, TMax: 30,
		Pendulum: PendulumConfig{L1: 1, L2: 2, M1: 3, M2: 1, G: DefaultGravity, Y0: []float64{90, 0, 90, 0}},
		Ensemble: EnsembleConfig{Count: 5, DTheta: DefaultDTheta},
	},
	"adaptive": {
		Method: "rkdp", Dt: 0.05, TMax: 30, Tolerance: 1e-6, MaxRetries: DefaultRetries, MinStep: DefaultMinStep,
		Pendulum: PendulumConfig{L1: 1, L2: 1, M1: 1, M2: 1, G: DefaultGravity, Y0: []float64{120, 0, -10, 0}},
		Ensemble: EnsembleConfig{Count: 1, DTheta: DefaultDTheta},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
