// Package recording provides a Graphics implementation that logs every call.
// It is used to check draw order and stack discipline.
package recording

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
)

// Op is one recorded call. Rect holds the argument in local coordinates and
// Device the same rectangle mapped through the transform active at the time.
type Op struct {
	Name   string
	Rect   geom.Rect
	Device geom.Rect
	Text   string
}

func (o Op) String() string {
	switch o.Name {
	case "string":
		return fmt.Sprintf("string(%g,%g,%q)", o.Rect.X, o.Rect.Y, o.Text)
	case "pushTransform":
		return fmt.Sprintf("pushTransform(%s)", o.Text)
	case "drawRect", "fillRect", "clip", "line":
		return fmt.Sprintf("%s(%g,%g,%g,%g)", o.Name, o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H)
	default:
		return o.Name
	}
}

// Recorder records calls made to it.
type Recorder struct {
	graphics.Stacks
	Ops []Op

	badPops int
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{Stacks: graphics.NewStacks()}
}

func (r *Recorder) add(op Op) {
	op.Device = r.CTM().ApplyRect(op.Rect)
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) PushTransform(m geom.Matrix) {
	r.add(Op{Name: "pushTransform", Text: fmt.Sprintf("%g,%g,%g,%g", m.Matrix[0], m.Matrix[3], m.Matrix[4], m.Matrix[5])})
	r.Stacks.PushTransform(m)
}

func (r *Recorder) PopTransform() {
	if r.TransformDepth() == 0 {
		r.badPops++
	}
	r.Stacks.PopTransform()
	r.add(Op{Name: "popTransform"})
}

func (r *Recorder) PushState() {
	r.Stacks.PushState()
	r.add(Op{Name: "pushState"})
}

func (r *Recorder) PopState() {
	if r.StateDepth() == 0 {
		r.badPops++
	}
	r.Stacks.PopState()
	r.add(Op{Name: "popState"})
}

func (r *Recorder) SetClip(c *geom.Rect) {
	r.Stacks.SetClip(c)
	if c == nil {
		r.add(Op{Name: "clearClip"})
		return
	}
	r.add(Op{Name: "clip", Rect: *c})
}

func (r *Recorder) SetFill(c color.Color) {
	r.Stacks.SetFill(c)
	r.add(Op{Name: "fill"})
}

func (r *Recorder) DrawRectangle(rect geom.Rect) { r.add(Op{Name: "drawRect", Rect: rect}) }
func (r *Recorder) FillRectangle(rect geom.Rect) { r.add(Op{Name: "fillRect", Rect: rect}) }

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.add(Op{Name: "line", Rect: geom.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}})
}

func (r *Recorder) DrawString(x, y float64, s string) {
	r.add(Op{Name: "string", Rect: geom.Rect{X: x, Y: y}, Text: s})
}

// Balanced reports whether every push was matched by exactly one pop.
func (r *Recorder) Balanced() bool {
	return r.badPops == 0 && r.TransformDepth() == 0 && r.StateDepth() == 0
}

// Named returns the recorded ops with the given name.
func (r *Recorder) Named(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Strings returns the String form of every op.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.String()
	}
	return out
}

// Reset discards recorded ops and stacks.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.badPops = 0
	r.Stacks = graphics.NewStacks()
}

var _ graphics.Graphics = (*Recorder)(nil)
