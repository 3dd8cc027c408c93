// Package storage keeps a record of integrated runs on disk: one directory
// per run holding the resolved config and a metadata file with summary
// statistics. Trajectories are not stored; Replay integrates the saved
// config again.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/odeint"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string           `json:"id"`
	Method    string           `json:"method"`
	Timestamp time.Time        `json:"timestamp"`
	Dt        float64          `json:"dt"`
	TMax      float64          `json:"t_max"`
	Elapsed   time.Duration    `json:"elapsed_ns"`
	Pendula   []PendulumRecord `json:"pendula"`
}

// PendulumRecord summarizes one member of a run. Angles are radians. A
// diverged member has no final state, and metrics that are not finite are
// left out. BlowUp is the time of the first sample beyond the stability
// bound.
type PendulumRecord struct {
	Y0          []float64          `json:"y0"`
	Final       []float64          `json:"final,omitempty"`
	Diverged    bool               `json:"diverged,omitempty"`
	BlowUp      *float64           `json:"blow_up,omitempty"`
	Samples     int                `json:"samples"`
	Steps       int                `json:"steps"`
	Rejected    int                `json:"rejected"`
	Evaluations int                `json:"evaluations"`
	Metrics     map[string]float64 `json:"metrics"`
}

func newRecord(y0 algebra.Vector, tr *odeint.Trajectory, energy metrics.EnergyFunc) PendulumRecord {
	_, final := tr.Final()
	stability := metrics.NewStability(experiment.StabilityBound)
	rec := PendulumRecord{
		Y0:          y0.Components(),
		Samples:     tr.Len(),
		Steps:       tr.Stats.Steps,
		Rejected:    tr.Stats.Rejected,
		Evaluations: tr.Stats.Evaluations,
		Metrics: metrics.Finite(metrics.Evaluate(tr,
			metrics.NewEnergyDrift(energy),
			stability,
		)),
	}
	if onset, ok := stability.Onset(); ok {
		rec.BlowUp = &onset
	}
	if final.IsValid() {
		rec.Final = final.Components()
	} else {
		rec.Diverged = true
	}
	return rec
}

// Save writes res, integrated from cfg, under a fresh run id.
func (s *Store) Save(cfg *config.Config, res *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", res.Method, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Method:    res.Method,
		Timestamp: now,
		Dt:        cfg.Dt,
		TMax:      cfg.TMax,
		Elapsed:   res.Elapsed,
		Pendula:   make([]PendulumRecord, len(res.Pendula)),
	}

	for i, dp := range res.Pendula {
		meta.Pendula[i] = newRecord(dp.Y0, dp.Trajectory(), dp.Params.Energy)
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadConfig returns the config the run was integrated from.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// Replay integrates the saved config of runID again. Integration is
// deterministic, so the result matches the saved run.
func (s *Store) Replay(ctx context.Context, e *experiment.Experiment, runID string) (*experiment.Result, error) {
	cfg, err := s.LoadConfig(runID)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, cfg)
}
