package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/odeint/internal/algebra"
	"github.com/san-kum/odeint/internal/viz"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%[1]g" height="%[2]g" viewBox="0 0 %[1]g %[2]g">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`

// WriteDots writes every lit sub-pixel of c as a dot of the given fill,
// scale user units apart.
func WriteDots(w io.Writer, c *viz.Canvas, scale float64, fill string) error {
	if c == nil {
		return errors.New("export: nil canvas")
	}
	if !(scale > 0) {
		return fmt.Errorf("export: dot scale must be positive, got %g", scale)
	}

	cols, rows := c.Width*2, c.Height*4
	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, float64(cols)*scale, float64(rows)*scale)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", fill)
	r := scale * 0.4
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// Path is one polyline of a PathsToSVG drawing.
type Path struct {
	X, Y   algebra.Vector
	Stroke string
}

// PathsToSVG draws bob traces, all scaled into one shared bounding box.
func PathsToSVG(paths []Path, width, height int) (string, error) {
	var minX, maxX, minY, maxY float64
	points := 0
	for _, p := range paths {
		if len(p.X) != len(p.Y) {
			return "", &algebra.DimensionError{Op: "svg path", Want: len(p.X), Got: len(p.Y)}
		}
		if len(p.X) == 0 {
			continue
		}
		if points == 0 {
			minX, maxX, minY, maxY = p.X.Min(), p.X.Max(), p.Y.Min(), p.Y.Max()
		}
		minX, maxX = min(minX, p.X.Min()), max(maxX, p.X.Max())
		minY, maxY = min(minY, p.Y.Min()), max(maxY, p.Y.Max())
		points += len(p.X)
	}
	if points < 2 {
		return "", fmt.Errorf("export: need at least 2 points, got %d", points)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeader, float64(width), float64(height))

	for _, p := range paths {
		if len(p.X) == 0 {
			continue
		}
		stroke := p.Stroke
		if stroke == "" {
			stroke = "#00ffff"
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for i := range p.X {
			x := (p.X[i] - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y[i]-minY)/rangeY*float64(height)
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// WriteSVG writes PathsToSVG output to w.
func WriteSVG(w io.Writer, paths []Path, width, height int) error {
	svg, err := PathsToSVG(paths, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg+"\n")
	return err
}
