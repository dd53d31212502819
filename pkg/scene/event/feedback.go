package event

import (
	"maps"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
)

// Kind classifies feedback.
type Kind string

const (
	KindSelect Kind = "select"
	KindCreate Kind = "create"
	KindMove   Kind = "move"
	KindResize Kind = "resize"
	KindDelete Kind = "delete"
	KindType   Kind = "type"
)

// Cursor is a host cursor hint. The values follow the common desktop
// cursor numbering so hosts can map them directly.
type Cursor int

const (
	CursorDefault   Cursor = 0
	CursorCrosshair Cursor = 1
	CursorNResize   Cursor = 8
	CursorSResize   Cursor = 9
	CursorWResize   Cursor = 10
	CursorEResize   Cursor = 11
	CursorMove      Cursor = 13
)

// Figure draws a feedback preview in scene content coordinates.
type Figure interface {
	Render(g graphics.Graphics)
}

// FigureFunc adapts a function to Figure.
type FigureFunc func(g graphics.Graphics)

func (f FigureFunc) Render(g graphics.Graphics) { f(g) }

// Feedback is a transient preview produced while a gesture runs. It is
// never stored by the engine and is dropped after it has been painted.
type Feedback struct {
	Kind   Kind
	Target any
	Cursor Cursor
	Figure Figure

	props map[string]string
}

// NewFeedback returns feedback of the given kind.
func NewFeedback(kind Kind, target any, cursor Cursor, fig Figure) *Feedback {
	return &Feedback{Kind: kind, Target: target, Cursor: cursor, Figure: fig}
}

// Property returns a property of the feedback, or "".
func (f *Feedback) Property(name string) string { return f.props[name] }

// SetProperty sets a property and returns f for chaining.
func (f *Feedback) SetProperty(name, value string) *Feedback {
	if f.props == nil {
		f.props = make(map[string]string)
	}
	f.props[name] = value
	return f
}

// Properties returns a copy of all properties.
func (f *Feedback) Properties() map[string]string { return maps.Clone(f.props) }

// NeedsRendering reports whether the feedback has something to draw.
func (f *Feedback) NeedsRendering() bool { return f != nil && f.Figure != nil }

// Render draws the figure, if any.
func (f *Feedback) Render(g graphics.Graphics) {
	if f.NeedsRendering() {
		f.Figure.Render(g)
	}
}

// Rectangle fills r with the feedback colour.
func Rectangle(r geom.Rect) Figure {
	return FigureFunc(func(g graphics.Graphics) {
		g.SetFill(graphics.FeedbackColor)
		g.FillRectangle(r)
	})
}

// CreateFigure previews a new record spanning r and labels whichever of its
// top and base depths are non-empty.
func CreateFigure(r geom.Rect, top, base string) Figure {
	return FigureFunc(func(g graphics.Graphics) {
		g.SetFill(graphics.FeedbackColor)
		g.FillRectangle(r)
		x := r.MaxX() + 5
		if top != "" {
			drawDepth(g, x, r.MinY(), top)
		}
		if base != "" {
			drawDepth(g, x, r.MaxY(), base)
		}
	})
}

// MoveFigure previews a record moved to r. A single label is drawn when
// top and base read the same.
func MoveFigure(r geom.Rect, top, base string) Figure {
	return FigureFunc(func(g graphics.Graphics) {
		g.SetFill(graphics.FeedbackColor)
		g.FillRectangle(r)
		x := r.MaxX() + 5
		drawDepth(g, x, r.MinY(), top)
		if top != base {
			drawDepth(g, x, r.MaxY(), base)
		}
	})
}

// ResizeFigure previews a record resized to r and labels the edge being
// dragged: the top edge when atTop is set, the bottom edge otherwise.
func ResizeFigure(r geom.Rect, depth string, atTop bool) Figure {
	return FigureFunc(func(g graphics.Graphics) {
		g.SetFill(graphics.FeedbackColor)
		g.FillRectangle(r)
		y := r.MaxY()
		if atTop {
			y = r.MinY()
		}
		drawDepth(g, r.MaxX()+2, y, depth)
	})
}

// Approximate metrics of the label font; the draw surface does not measure text.
const (
	labelCharWidth = 6
	labelHeight    = 11
	labelPadding   = 4
)

// drawDepth draws depth in a boxed label vertically centred on y.
func drawDepth(g graphics.Graphics, x, y float64, depth string) {
	h := float64(labelHeight + labelPadding)
	box := geom.R(x, y-h/2, float64(len(depth)*labelCharWidth+labelPadding), h)
	g.SetFill(graphics.LabelBackground)
	g.FillRectangle(box)
	g.SetLineColor(graphics.Black)
	g.DrawRectangle(box)
	g.SetFill(graphics.Black)
	g.DrawString(box.X+labelPadding/2, box.MaxY()-labelPadding, depth)
}
