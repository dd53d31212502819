// Package geom provides the small set of geometric value types shared by the
// scene engine and its rendering backends.
//
// All coordinates are in scene pixels with y growing downwards. Points and
// transforms are the seehuhn.de/go/geom types; Rect keeps the top-left
// anchored form the layout code works in and converts to rect.Rect for
// bounds arithmetic.
package geom

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point is a location in scene coordinates.
type Point = vec.Vec2

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// FromBounds converts corner bounds to a Rect. LLx/LLy become the top-left
// corner since y grows downwards.
func FromBounds(b rect.Rect) Rect {
	return Rect{X: b.LLx, Y: b.LLy, W: b.Dx(), H: b.Dy()}
}

// Bounds returns r as corner bounds.
func (r Rect) Bounds() rect.Rect {
	return rect.Rect{LLx: r.MinX(), LLy: r.MinY(), URx: r.MaxX(), URy: r.MaxY()}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return r.Bounds().Covers(rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y})
}

// ContainsX reports whether x lies within the horizontal band of r, edges
// inclusive.
func (r Rect) ContainsX(x float64) bool {
	b := r.Bounds()
	return b.Covers(rect.Rect{LLx: x, LLy: b.LLy, URx: x, URy: b.URy})
}

// Matrix is an affine transform in scene coordinates.
type Matrix struct {
	matrix.Matrix
}

// Identity is the no-op transform.
var Identity = Matrix{matrix.Identity}

// Translate returns a pure translation.
func Translate(tx, ty float64) Matrix { return Matrix{matrix.Translate(tx, ty)} }

// Scale returns a pure scale.
func Scale(sx, sy float64) Matrix { return Matrix{matrix.Scale(sx, sy)} }

// ScaleY returns the vertical scale factor of m.
func (m Matrix) ScaleY() float64 { return m.Matrix[3] }

// Apply maps p through m.
func (m Matrix) Apply(p Point) Point {
	x, y := m.Matrix.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// ApplyRect maps r through m and returns the bounding box of the result.
func (m Matrix) ApplyRect(r Rect) Rect {
	p := m.Apply(Pt(r.MinX(), r.MinY()))
	q := m.Apply(Pt(r.MaxX(), r.MaxY()))
	b := rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
	b.Add(q.X, q.Y)
	return FromBounds(b)
}

// Then composes m with a transform n pushed after it. Points are mapped
// through n first and then through m, matching draw-surface stack order.
func (m Matrix) Then(n Matrix) Matrix {
	return Matrix{n.Matrix.Mul(m.Matrix)}
}
