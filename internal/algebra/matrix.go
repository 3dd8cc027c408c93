package algebra

import (
	"fmt"
	"strings"
)

// Matrix is an ordered sequence of equal-length row Vectors. It is built from
// a finished trajectory and read column-wise.
type Matrix struct {
	rows []Vector
}

// NewMatrix copies rows into a Matrix. Rows must all have the same length.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	vs := make([]Vector, len(rows))
	for i, r := range rows {
		vs[i] = NewVector(r...)
	}
	return FromVectors(vs)
}

// FromVectors builds a Matrix over copies of rows.
func FromVectors(rows []Vector) (*Matrix, error) {
	m := &Matrix{rows: make([]Vector, 0, len(rows))}
	for _, r := range rows {
		if err := m.Append(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromColumns builds the Matrix whose i-th column is cols[i].
func FromColumns(cols []Vector) (*Matrix, error) {
	if len(cols) == 0 {
		return &Matrix{}, nil
	}
	n := len(cols[0])
	rows := make([]Vector, n)
	for i := range rows {
		rows[i] = make(Vector, len(cols))
	}
	for j, c := range cols {
		if len(c) != n {
			return nil, fmt.Errorf("column %d: %w", j, &DimensionError{Op: "from columns", Want: n, Got: len(c)})
		}
		for i, x := range c {
			rows[i][j] = x
		}
	}
	return &Matrix{rows: rows}, nil
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.rows) }

// Dims returns the row count and the row length.
func (m *Matrix) Dims() (r, c int) {
	if len(m.rows) == 0 {
		return 0, 0
	}
	return len(m.rows), len(m.rows[0])
}

// Row returns row i. The returned Vector aliases the Matrix storage.
func (m *Matrix) Row(i int) Vector { return m.rows[i] }

// Rows returns copies of every row.
func (m *Matrix) Rows() []Vector {
	out := make([]Vector, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Clone()
	}
	return out
}

// Append adds a copy of row. Its length must match the existing rows.
func (m *Matrix) Append(row Vector) error {
	if len(m.rows) > 0 && len(row) != len(m.rows[0]) {
		return fmt.Errorf("%w: row %d has length %d, want %d", ErrRagged, len(m.rows), len(row), len(m.rows[0]))
	}
	m.rows = append(m.rows, row.Clone())
	return nil
}

// Column returns the i-th component of every row, in row order.
func (m *Matrix) Column(i int) (Vector, error) {
	col := make(Vector, len(m.rows))
	for r, row := range m.rows {
		if i < 0 || i >= len(row) {
			return nil, fmt.Errorf("%w: column %d of row %d (length %d)", ErrIndexOutOfRange, i, r, len(row))
		}
		col[r] = row[i]
	}
	return col, nil
}

// Columns returns every column.
func (m *Matrix) Columns() []Vector {
	_, c := m.Dims()
	cols := make([]Vector, c)
	for j := range cols {
		cols[j], _ = m.Column(j)
	}
	return cols
}

// Add returns the row-wise sum.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	return m.zip("add", other, Vector.AddE)
}

// Sub returns the row-wise difference.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	return m.zip("subtract", other, Vector.SubE)
}

func (m *Matrix) zip(op string, other *Matrix, fn func(Vector, Vector) (Vector, error)) (*Matrix, error) {
	if err := checkLen(op+" rows", len(m.rows), len(other.rows)); err != nil {
		return nil, err
	}
	out := &Matrix{rows: make([]Vector, len(m.rows))}
	for i := range m.rows {
		r, err := fn(m.rows[i], other.rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out.rows[i] = r
	}
	return out, nil
}

// Scale multiplies every row by k.
func (m *Matrix) Scale(k float64) *Matrix {
	out := &Matrix{rows: make([]Vector, len(m.rows))}
	for i, r := range m.rows {
		out.rows[i] = r.Scale(k)
	}
	return out
}

// DivRows divides every component of row i by v[i]. This is a per-row
// scaling and differs from Vector.Div: there is one divisor per row, and a
// zero divisor follows IEEE division instead of the sentinel.
func (m *Matrix) DivRows(v Vector) (*Matrix, error) {
	if err := checkLen("divide rows", len(m.rows), len(v)); err != nil {
		return nil, err
	}
	out := &Matrix{rows: make([]Vector, len(m.rows))}
	for i, r := range m.rows {
		row := make(Vector, len(r))
		for j, x := range r {
			row[j] = x / v[i]
		}
		out.rows[i] = row
	}
	return out, nil
}

func (m *Matrix) String() string {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
