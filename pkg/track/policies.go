package track

import (
	"math"

	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/interval"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/scene/event"
)

// bounds returns the track band, or false when the track is not laid out.
func (t *Intervals) bounds() (geom.Rect, bool) {
	if t.scene == nil {
		return geom.Rect{}, false
	}
	return t.scene.TrackBounds(t)
}

// drag returns the domain values at the drag origin and at the pointer.
func (t *Intervals) drag(e event.Event) (from, to float64, ok bool) {
	me, ok := e.(*event.MouseEvent)
	if !ok {
		return 0, 0, false
	}
	o, ok := me.DragOrigin()
	if !ok {
		return 0, 0, false
	}
	return t.Value(o.Y), t.Value(float64(me.Y)), true
}

// createPolicy adds a record spanning the dragged range.
type createPolicy struct{ t *Intervals }

func (createPolicy) Type() event.PolicyType { return event.PolicyCreate }

func (p createPolicy) Feedback(e event.Event, target any) *event.Feedback {
	from, to, ok := p.t.drag(e)
	b, laidOut := p.t.bounds()
	if !ok || !laidOut {
		return event.NewFeedback(event.KindCreate, target, event.CursorCrosshair, nil)
	}
	top, base := math.Min(from, to), math.Max(from, to)
	fig := event.CreateFigure(p.t.recordRect(b, top, base), FormatValue(top), FormatValue(base))
	return event.NewFeedback(event.KindCreate, target, event.CursorCrosshair, fig).
		SetProperty("top", FormatValue(top)).
		SetProperty("base", FormatValue(base))
}

func (p createPolicy) Command(e event.Event, _ any) edit.Command {
	from, to, ok := p.t.drag(e)
	if !ok || from == to || p.t.models == nil {
		return nil
	}
	return edit.NewCreate(interval.New(p.t.Type(), from, to), p.t.models)
}

// movePolicy shifts a record by the dragged distance.
type movePolicy struct{ t *Intervals }

func (movePolicy) Type() event.PolicyType { return event.PolicyMove }

func (p movePolicy) Feedback(e event.Event, target any) *event.Feedback {
	iv, ok := target.(*interval.Interval)
	if !ok {
		return nil
	}
	from, to, dragging := p.t.drag(e)
	b, laidOut := p.t.bounds()
	if !dragging || !laidOut {
		return event.NewFeedback(event.KindMove, iv, event.CursorMove, nil)
	}
	delta := to - from
	top, base := iv.Top()+delta, iv.Base()+delta
	fig := event.MoveFigure(p.t.recordRect(b, top, base), FormatValue(top), FormatValue(base))
	return event.NewFeedback(event.KindMove, iv, event.CursorMove, fig).
		SetProperty("delta", FormatValue(delta))
}

func (p movePolicy) Command(e event.Event, target any) edit.Command {
	iv, ok := p.t.owns(asModel(target))
	if !ok {
		return nil
	}
	from, to, ok := p.t.drag(e)
	if !ok || from == to {
		return nil
	}
	return iv.Move(to - from)
}

// resizePolicy drags one edge of a record. The edge never crosses the
// other one.
type resizePolicy struct{ t *Intervals }

func (resizePolicy) Type() event.PolicyType { return event.PolicyResize }

// edge returns the property the gesture changes and its new value.
func (p resizePolicy) edge(e event.Event, iv *interval.Interval) (name string, value float64, ok bool) {
	_, to, ok := p.t.drag(e)
	if !ok {
		return "", 0, false
	}
	// Pixel north is the top value only when the origin is at the top.
	north := event.Of(e).Property(event.PropHandle) == edit.HandleNorth
	if p.t.sign() < 0 {
		north = !north
	}
	if north {
		return "top", math.Min(to, iv.Base()), true
	}
	return "base", math.Max(to, iv.Top()), true
}

func (p resizePolicy) Feedback(e event.Event, target any) *event.Feedback {
	iv, ok := target.(*interval.Interval)
	if !ok {
		return nil
	}
	cursor := event.CursorSResize
	if event.Of(e).Property(event.PropHandle) == edit.HandleNorth {
		cursor = event.CursorNResize
	}
	name, v, dragging := p.edge(e, iv)
	b, laidOut := p.t.bounds()
	if !dragging || !laidOut {
		return event.NewFeedback(event.KindResize, iv, cursor, nil)
	}
	top, base := iv.Top(), iv.Base()
	if name == "top" {
		top = v
	} else {
		base = v
	}
	fig := event.ResizeFigure(p.t.recordRect(b, top, base), FormatValue(v), cursor == event.CursorNResize)
	return event.NewFeedback(event.KindResize, iv, cursor, fig).
		SetProperty(name, FormatValue(v))
}

func (p resizePolicy) Command(e event.Event, target any) edit.Command {
	iv, ok := p.t.owns(asModel(target))
	if !ok {
		return nil
	}
	name, v, ok := p.edge(e, iv)
	if !ok {
		return nil
	}
	prop := edit.FindProperty(iv.Properties(), name)
	if prop == nil || prop.Value() == FormatValue(v) {
		return nil
	}
	return prop.Command(FormatValue(v))
}

// keyPolicy deletes the target record with Delete or Backspace and nudges
// it with the arrow keys: one unit, ten with shift.
type keyPolicy struct{ t *Intervals }

func (keyPolicy) Type() event.PolicyType { return event.PolicyKey }

// target resolves the record a key acts on: the gesture target, or else
// the scene selection when it heads with one of this track's records.
func (p keyPolicy) target(target any) (*interval.Interval, bool) {
	if iv, ok := p.t.owns(asModel(target)); ok {
		return iv, true
	}
	if p.t.scene == nil {
		return nil, false
	}
	return p.t.owns(asModel(p.t.scene.Selection().First()))
}

func (p keyPolicy) nudge(e *event.KeyEvent) float64 {
	step := 1.0
	if e.ShiftDown() {
		step = 10
	}
	// Up moves towards smaller y.
	step *= p.t.sign()
	switch e.Code {
	case event.KeyUp:
		return -step
	case event.KeyDown:
		return step
	}
	return 0
}

func (p keyPolicy) Feedback(e event.Event, target any) *event.Feedback {
	ke, ok := e.(*event.KeyEvent)
	if !ok {
		return nil
	}
	iv, ok := p.target(target)
	if !ok {
		return nil
	}
	switch {
	case ke.Code == event.KeyDelete || ke.Code == event.KeyBackspace:
		return event.NewFeedback(event.KindDelete, iv, event.CursorDefault, nil)
	case p.nudge(ke) != 0:
		return event.NewFeedback(event.KindMove, iv, event.CursorMove, nil).
			SetProperty("delta", FormatValue(p.nudge(ke)))
	}
	return nil
}

func (p keyPolicy) Command(e event.Event, target any) edit.Command {
	ke, ok := e.(*event.KeyEvent)
	if !ok {
		return nil
	}
	iv, ok := p.target(target)
	if !ok {
		return nil
	}
	switch {
	case ke.Code == event.KeyDelete || ke.Code == event.KeyBackspace:
		return edit.NewDelete(iv, p.t.models)
	case p.nudge(ke) != 0:
		return iv.Move(p.nudge(ke))
	}
	return nil
}

func asModel(v any) model.Model {
	m, _ := v.(model.Model)
	return m
}

var (
	_ event.Policy = createPolicy{}
	_ event.Policy = movePolicy{}
	_ event.Policy = resizePolicy{}
	_ event.Policy = keyPolicy{}
)
