package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Width x Height braille characters, addressed in
// sub-pixels: (Width*2) x (Height*4), origin at the top left.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(brailleBlank)), w))
	}
	return c
}

func (c *Canvas) cell(x, y int) (row, col int, mask rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Set lights the sub-pixel (x, y). Points off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= mask
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= mask
		c.Grid[row][col] |= brailleBlank
	}
}

// IsSet reports whether the sub-pixel (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, mask, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&mask != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc lights every sub-pixel within r of (cx, cy).
func (c *Canvas) DrawDisc(cx, cy, r int) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				c.Set(x, y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps the square [-Reach, Reach] x [-Reach, Reach] of model
// space onto the centre of a canvas, y pointing up.
type Viewport struct {
	Reach  float64
	canvas *Canvas
	scale  float64
	cx, cy int
}

func NewViewport(c *Canvas, reach float64) *Viewport {
	w, h := c.Width*2, c.Height*4
	side := math.Min(float64(w-1), float64(h-1))
	if reach <= 0 {
		reach = 1
	}
	return &Viewport{
		Reach:  reach,
		canvas: c,
		scale:  side / (2 * reach),
		cx:     (w - 1) / 2,
		cy:     (h - 1) / 2,
	}
}

// Project returns the sub-pixel for model point (x, y).
func (v *Viewport) Project(x, y float64) (int, int) {
	return v.cx + int(math.Round(x*v.scale)), v.cy - int(math.Round(y*v.scale))
}

// Segment draws the line between two model points.
func (v *Viewport) Segment(x0, y0, x1, y1 float64) {
	px0, py0 := v.Project(x0, y0)
	px1, py1 := v.Project(x1, y1)
	v.canvas.DrawLine(px0, py0, px1, py1)
}

// Chain draws a pivot-to-bob polyline with a small disc on every bob.
func (v *Viewport) Chain(xs, ys []float64) {
	for i := 1; i < len(xs) && i < len(ys); i++ {
		v.Segment(xs[i-1], ys[i-1], xs[i], ys[i])
		px, py := v.Project(xs[i], ys[i])
		v.canvas.DrawDisc(px, py, 1)
	}
}
