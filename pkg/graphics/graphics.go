// Package graphics defines the draw surface the scene engine renders into.
//
// The surface keeps two independent stacks. Transforms pushed with
// PushTransform compose with the current transform, last pushed applied
// first, until the matching PopTransform. PushState/PopState save and restore
// only the fill colour and line style. Every push must be balanced by a pop
// around the render call that made it; an unbalanced push corrupts every
// sibling rendered after it.
//
// Backends live in sub-packages:
//   - raster: PNG images via fogleman/gg
//   - svg: SVG documents
//   - cells: character grids for terminal previews
//   - recording: an operation log for tests and debugging
package graphics

import (
	"image/color"

	"github.com/matzehuels/corescene/pkg/geom"
)

// Graphics is a draw surface.
type Graphics interface {
	PushTransform(m geom.Matrix)
	PopTransform()

	PushState()
	PopState()

	// SetClip restricts drawing to r in current coordinates. nil clears the clip.
	SetClip(r *geom.Rect)

	SetFill(c color.Color)
	SetLineColor(c color.Color)
	SetLineWidth(w float64)

	DrawRectangle(r geom.Rect)
	FillRectangle(r geom.Rect)
	DrawLine(x1, y1, x2, y2 float64)
	// DrawString draws s with its baseline starting at (x, y).
	DrawString(x, y float64, s string)
}

// Common colours.
var (
	Black       = color.RGBA{A: 0xff}
	White       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Gray        = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	LightGray   = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	Transparent = color.RGBA{}

	// FeedbackColor is the translucent black used for interaction previews.
	FeedbackColor = color.NRGBA{A: 192}
	// LabelBackground fills the boxes behind feedback labels.
	LabelBackground = color.RGBA{R: 240, G: 240, B: 240, A: 0xff}
)

// State is the part of the surface saved by PushState.
type State struct {
	Fill      color.Color
	Line      color.Color
	LineWidth float64
}

// DefaultState is black fill and a 1px black line.
var DefaultState = State{Fill: Black, Line: Black, LineWidth: 1}

// Stacks implements the transform and state bookkeeping shared by backends.
// Backends embed it and consult CTM and Current when drawing.
type Stacks struct {
	transforms []geom.Matrix
	states     []State
	current    State
	clip       *geom.Rect
}

// NewStacks returns stacks with the identity transform and DefaultState.
func NewStacks() Stacks {
	return Stacks{current: DefaultState}
}

// PushTransform composes m onto the current transform.
func (s *Stacks) PushTransform(m geom.Matrix) {
	s.transforms = append(s.transforms, s.CTM().Then(m))
}

// PopTransform restores the transform active before the last push.
// Popping an empty stack is a no-op.
func (s *Stacks) PopTransform() {
	if len(s.transforms) > 0 {
		s.transforms = s.transforms[:len(s.transforms)-1]
	}
}

// CTM returns the current transform.
func (s *Stacks) CTM() geom.Matrix {
	if len(s.transforms) == 0 {
		return geom.Identity
	}
	return s.transforms[len(s.transforms)-1]
}

// TransformDepth returns the number of unpopped transforms.
func (s *Stacks) TransformDepth() int { return len(s.transforms) }

// PushState saves the fill and line style.
func (s *Stacks) PushState() {
	s.states = append(s.states, s.current)
}

// PopState restores the last saved fill and line style.
func (s *Stacks) PopState() {
	if len(s.states) == 0 {
		return
	}
	s.current = s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]
}

// StateDepth returns the number of unpopped states.
func (s *Stacks) StateDepth() int { return len(s.states) }

// Current returns the active fill and line style.
func (s *Stacks) Current() State { return s.current }

func (s *Stacks) SetFill(c color.Color)      { s.current.Fill = c }
func (s *Stacks) SetLineColor(c color.Color) { s.current.Line = c }
func (s *Stacks) SetLineWidth(w float64)     { s.current.LineWidth = w }

// SetClip records r, mapped to device space, as the active clip.
func (s *Stacks) SetClip(r *geom.Rect) {
	if r == nil {
		s.clip = nil
		return
	}
	dev := s.CTM().ApplyRect(*r)
	s.clip = &dev
}

// Clip returns the active clip in device space, or nil.
func (s *Stacks) Clip() *geom.Rect { return s.clip }
