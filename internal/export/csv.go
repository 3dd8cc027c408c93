package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
)

// DoublePendulumColumns names the components of a double pendulum state.
var DoublePendulumColumns = []string{"theta1", "omega1", "theta2", "omega2"}

func header(names []string, dim int) []string {
	h := []string{"time"}
	for i := 0; i < dim; i++ {
		if i < len(names) {
			h = append(h, names[i])
		} else {
			h = append(h, fmt.Sprintf("x%d", i))
		}
	}
	return h
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per sample: the time followed by the state.
// Components without a name in names are called x0, x1, ...
func WriteCSV(w io.Writer, tr *odeint.Trajectory, names []string) error {
	cw := csv.NewWriter(w)

	if len(tr.States) == 0 {
		return nil
	}
	if err := cw.Write(header(names, len(tr.States[0]))); err != nil {
		return err
	}

	for i := range tr.States {
		row := []string{formatFloat(tr.Times[i])}
		for _, val := range tr.States[i] {
			row = append(row, formatFloat(val))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of WriteCSV. The returned trajectory carries no
// stats.
func ReadCSV(r io.Reader) (*odeint.Trajectory, []string, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("export: no samples in csv")
	}

	names := records[0][1:]
	tr := &odeint.Trajectory{
		Times:  make([]float64, 0, len(records)-1),
		States: make([]algebra.Vector, 0, len(records)-1),
	}

	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: row %d: %w", i+1, err)
		}
		state := make(algebra.Vector, len(record)-1)
		for j, field := range record[1:] {
			if state[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, nil, fmt.Errorf("export: row %d column %d: %w", i+1, j+1, err)
			}
		}
		tr.Times = append(tr.Times, t)
		tr.States = append(tr.States, state)
	}

	return tr, names, nil
}
