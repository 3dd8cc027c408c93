package export

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/odeint"
)

// Float is a state component that encodes NaN and Inf as null, so diverged
// runs still export. null decodes back to NaN.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type Stats struct {
	Steps       int     `json:"steps"`
	Rejected    int     `json:"rejected"`
	Evaluations int     `json:"evaluations"`
	MinStep     float64 `json:"min_step"`
	MaxStep     float64 `json:"max_step"`
}

type Document struct {
	Method  string             `json:"method"`
	Dt      float64            `json:"dt"`
	TMax    float64            `json:"t_max"`
	Columns []string           `json:"columns"`
	Params  map[string]float64 `json:"params,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Stats   Stats              `json:"stats"`
	Times   []float64          `json:"times"`
	States  [][]Float          `json:"states"`
}

// NewDocument copies tr into a Document.
func NewDocument(method string, dt, tMax float64, tr *odeint.Trajectory, columns []string) *Document {
	doc := &Document{
		Method:  method,
		Dt:      dt,
		TMax:    tMax,
		Columns: columns,
		Stats: Stats{
			Steps:       tr.Stats.Steps,
			Rejected:    tr.Stats.Rejected,
			Evaluations: tr.Stats.Evaluations,
			MinStep:     tr.Stats.MinStep,
			MaxStep:     tr.Stats.MaxStep,
		},
		Times:  append([]float64(nil), tr.Times...),
		States: make([][]Float, len(tr.States)),
	}
	for i, s := range tr.States {
		row := make([]Float, len(s))
		for j, v := range s {
			row[j] = Float(v)
		}
		doc.States[i] = row
	}
	return doc
}

// WriteJSON encodes doc indented. Metrics that are not finite are left out.
func WriteJSON(w io.Writer, doc *Document) error {
	out := *doc
	if doc.Metrics != nil {
		out.Metrics = metrics.Finite(doc.Metrics)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(&out)
}
