package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/storage"
)

const scenarioYAML = `name: methods
description: same swing, two methods
steps:
  - name: coarse
    method: euler
    dt: 0.1
    t_max: 1
  - preset: gentle
    t_max: 0.5
    pendula: 2
    save: true
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "methods" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}

	cfg, err := sc.Steps[1].Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dt != config.Presets["gentle"].Dt || cfg.TMax != 0.5 || cfg.Ensemble.Count != 2 {
		t.Errorf("overrides not applied on top of preset: %+v", cfg)
	}
}

func TestLoadScenarioEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for a scenario without steps")
	}
}

func TestStepConfigErrors(t *testing.T) {
	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := (ScenarioStep{Method: "leapfrog"}).Config(); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	st := storage.New(t.TempDir())

	results, err := RunScenario(context.Background(), nil, sc, st)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "coarse" || results[1].Name != "step2" {
		t.Errorf("unexpected step names %q, %q", results[0].Name, results[1].Name)
	}
	if results[0].Result.Method != "euler" || results[0].RunID != "" {
		t.Errorf("first step: %+v", results[0])
	}
	if len(results[1].Result.Pendula) != 2 || results[1].RunID == "" {
		t.Errorf("second step should be saved with 2 pendula: %+v", results[1])
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != results[1].RunID {
		t.Errorf("expected the saved step in the store, got %v", runs)
	}
}

func TestRunScenarioSaveWithoutStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{TMax: 0.2, Save: true}}}
	if _, err := RunScenario(context.Background(), nil, sc, nil); err == nil {
		t.Error("expected error when saving without a store")
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.TMax = 1
	base.Dt = 0.01

	results, err := RunSweep(context.Background(), nil, &ParameterSweep{
		Base: base, Param: "theta1", Min: 170, Max: 180, NumSteps: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, want := range []float64{170, 175, 180} {
		if results[i].ParamValue != want {
			t.Errorf("step %d: expected %f, got %f", i, want, results[i].ParamValue)
		}
		if results[i].MaxEnergy < results[i].MinEnergy {
			t.Errorf("step %d: energy range inverted", i)
		}
	}

	// arm one starting closer to hanging holds less potential energy
	if !(results[0].MinEnergy > results[2].MinEnergy) {
		t.Errorf("energy should fall as theta1 approaches the hanging angle: %f vs %f",
			results[0].MinEnergy, results[2].MinEnergy)
	}
	if math.Abs(results[2].MaxEnergy-results[2].MinEnergy) > 1e-2 {
		t.Errorf("rk4 at dt 0.01 should hold energy, spread %g", results[2].MaxEnergy-results[2].MinEnergy)
	}
	if base.Pendulum.Y0[0] != 90 {
		t.Error("RunSweep must not modify the base config")
	}
}

func TestRunSweepErrors(t *testing.T) {
	base := config.DefaultConfig()
	if _, err := RunSweep(context.Background(), nil, &ParameterSweep{Base: base, Param: "theta1", NumSteps: 1}); err == nil {
		t.Error("expected error for a single step")
	}
	if _, err := RunSweep(context.Background(), nil, &ParameterSweep{Base: base, Param: "omega", NumSteps: 2}); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
