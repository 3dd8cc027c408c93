package analysis

import (
	"math"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/odeint"
	"github.com/san-kum/odeint/internal/viz"
)

// Point is a sample in a two dimensional projection of the state space.
type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait projects every state of tr onto components xIdx and yIdx.
func NewPhasePortrait(tr *odeint.Trajectory, xIdx, yIdx int) (*PhasePortrait2D, error) {
	m, err := tr.Matrix()
	if err != nil {
		return nil, err
	}
	xs, err := m.Column(xIdx)
	if err != nil {
		return nil, err
	}
	ys, err := m.Column(yIdx)
	if err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, len(xs)),
	}
	for i := range xs {
		portrait.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return portrait, nil
}

// ToASCII renders the portrait as a braille scatter plot of width x height
// characters.
func (p *PhasePortrait2D) ToASCII(width, height int) string {
	if p == nil {
		return ""
	}
	c := scatter(p.Points, width, height)
	if c == nil {
		return ""
	}
	return c.String()
}

// Canvas draws the portrait on a braille canvas of width x height
// characters.
func (p *PhasePortrait2D) Canvas(width, height int) *viz.Canvas {
	if p == nil {
		return nil
	}
	return scatter(p.Points, width, height)
}

// span returns the padded range of the finite values in vals.
func span(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if lo > hi {
		return -1, 1
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}

func scatter(points []Point, width, height int) *viz.Canvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	xs, ys := make([]float64, len(points)), make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	x0, x1 := span(xs)
	y0, y1 := span(ys)

	c := viz.NewCanvas(width, height)
	w, h := float64(width*2-1), float64(height*4-1)
	col := func(x float64) int { return int(math.Round((x - x0) / (x1 - x0) * w)) }
	row := func(y float64) int { return int(math.Round((y1 - y) / (y1 - y0) * h)) }

	// dotted axes through the origin
	if x0 <= 0 && x1 >= 0 {
		for y := 0; y < height*4; y += 2 {
			c.Set(col(0), y)
		}
	}
	if y0 <= 0 && y1 >= 0 {
		for x := 0; x < width*2; x += 2 {
			c.Set(x, row(0))
		}
	}
	for i := range points {
		if x, y := xs[i], ys[i]; x >= x0 && x <= x1 && y >= y0 && y <= y1 {
			c.Set(col(x), row(y))
		}
	}
	return c
}

// PoincareSection records points when a trajectory crosses a level
type PoincareSection struct {
	Times  []float64
	Points []Point
}

// NewPoincareSection records components recordX and recordY wherever
// component crossIdx passes upward through threshold. Crossing states are
// linearly interpolated between the bracketing samples.
func NewPoincareSection(tr *odeint.Trajectory, crossIdx int, threshold float64, recordX, recordY int) (*PoincareSection, error) {
	dim := len(tr.States[0])
	for _, idx := range []int{crossIdx, recordX, recordY} {
		if idx < 0 || idx >= dim {
			return nil, algebra.ErrIndexOutOfRange
		}
	}

	section := &PoincareSection{}
	for i := 1; i < len(tr.States); i++ {
		prev, curr := tr.States[i-1], tr.States[i]
		if !(prev[crossIdx] < threshold && curr[crossIdx] >= threshold) {
			continue
		}

		frac := (threshold - prev[crossIdx]) / (curr[crossIdx] - prev[crossIdx])
		at := prev.Add(curr.Sub(prev).Scale(frac))
		t := tr.Times[i-1] + frac*(tr.Times[i]-tr.Times[i-1])

		section.Times = append(section.Times, t)
		section.Points = append(section.Points, Point{X: at[recordX], Y: at[recordY]})
	}
	return section, nil
}

func (s *PoincareSection) ToASCII(width, height int) string {
	if s == nil || len(s.Points) == 0 {
		return "No crossings detected"
	}
	c := scatter(s.Points, width, height)
	if c == nil {
		return ""
	}
	return c.String()
}
