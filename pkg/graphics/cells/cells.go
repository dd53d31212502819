// Package cells renders scene output onto a grid of terminal character cells.
// Each cell stands for a CellW×CellH block of scene pixels.
package cells

import (
	"image/color"
	"math"
	"strings"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
)

// Default cell size in scene pixels.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// Grid is a Graphics that draws box characters into a rune matrix.
type Grid struct {
	graphics.Stacks

	CellW, CellH float64
	cols, rows   int
	cells        [][]rune
}

// New returns a blank grid of cols×rows cells.
func New(cols, rows int) *Grid {
	g := &Grid{
		Stacks: graphics.NewStacks(),
		CellW:  DefaultCellW,
		CellH:  DefaultCellH,
		cols:   cols,
		rows:   rows,
	}
	g.cells = make([][]rune, rows)
	for i := range g.cells {
		g.cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// PixelSize returns the scene-pixel extent covered by the grid.
func (g *Grid) PixelSize() (w, h float64) {
	return float64(g.cols) * g.CellW, float64(g.rows) * g.CellH
}

// ToPixel maps a cell to the scene-pixel coordinate at its centre.
func (g *Grid) ToPixel(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*g.CellW, (float64(row)+0.5)*g.CellH)
}

func (g *Grid) cell(p geom.Point) (int, int) {
	return int(math.Floor(p.X / g.CellW)), int(math.Floor(p.Y / g.CellH))
}

func (g *Grid) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	if clip := g.Clip(); clip != nil {
		c0, r0 := g.cell(geom.Pt(clip.MinX(), clip.MinY()))
		c1, r1 := g.cell(geom.Pt(clip.MaxX()-1, clip.MaxY()-1))
		if col < c0 || col > c1 || row < r0 || row > r1 {
			return
		}
	}
	g.cells[row][col] = r
}

func (g *Grid) span(r geom.Rect) (c0, r0, c1, r1 int) {
	d := g.CTM().ApplyRect(r)
	c0, r0 = g.cell(geom.Pt(d.MinX(), d.MinY()))
	c1, r1 = g.cell(geom.Pt(d.MaxX()-1, d.MaxY()-1))
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	return
}

func (g *Grid) DrawRectangle(r geom.Rect) {
	c0, r0, c1, r1 := g.span(r)
	for c := c0; c <= c1; c++ {
		g.set(c, r0, '─')
		g.set(c, r1, '─')
	}
	for row := r0; row <= r1; row++ {
		g.set(c0, row, '│')
		g.set(c1, row, '│')
	}
	g.set(c0, r0, '┌')
	g.set(c1, r0, '┐')
	g.set(c0, r1, '└')
	g.set(c1, r1, '┘')
}

func (g *Grid) FillRectangle(r geom.Rect) {
	shade := shadeFor(g.Current().Fill)
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		for c := c0; c <= c1; c++ {
			g.set(c, row, shade)
		}
	}
}

func (g *Grid) DrawLine(x1, y1, x2, y2 float64) {
	m := g.CTM()
	c0, r0 := g.cell(m.Apply(geom.Pt(x1, y1)))
	c1, r1 := g.cell(m.Apply(geom.Pt(x2, y2)))
	switch {
	case r0 == r1:
		if c1 < c0 {
			c0, c1 = c1, c0
		}
		for c := c0; c <= c1; c++ {
			g.set(c, r0, '─')
		}
	case c0 == c1:
		if r1 < r0 {
			r0, r1 = r1, r0
		}
		for row := r0; row <= r1; row++ {
			g.set(c0, row, '│')
		}
	default:
		g.set(c0, r0, '·')
		g.set(c1, r1, '·')
	}
}

func (g *Grid) DrawString(x, y float64, s string) {
	// The baseline sits in the lower half of the cell above it.
	c, row := g.cell(g.CTM().Apply(geom.Pt(x, y-1)))
	for i, r := range []rune(s) {
		g.set(c+i, row, r)
	}
}

// Lines returns the grid as one string per row.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	for i, row := range g.cells {
		out[i] = string(row)
	}
	return out
}

// String returns the grid rows joined by newlines.
func (g *Grid) String() string { return strings.Join(g.Lines(), "\n") }

func shadeFor(c color.Color) rune {
	if c == nil {
		return ' '
	}
	r, gr, b, a := c.RGBA()
	if a == 0 {
		return ' '
	}
	lum := (r + gr + b) / 3 * 0xffff / a
	switch {
	case a < 0xffff/2:
		return '░'
	case lum > 0xc000:
		return '░'
	case lum > 0x6000:
		return '▒'
	default:
		return '▓'
	}
}

var _ graphics.Graphics = (*Grid)(nil)
