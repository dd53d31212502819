package event

import (
	"reflect"

	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/interval"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/scene"
)

// fakeTrack lays its records out at scale 1 across its full band.
type fakeTrack struct {
	name     string
	width    float64
	records  []*interval.Interval
	handler  Handler
	lookups  int
	sc       *scene.Scene
	contents model.Container
}

func (t *fakeTrack) Name() string                { return t.name }
func (t *fakeTrack) Scene() *scene.Scene         { return t.sc }
func (t *fakeTrack) SetScene(s *scene.Scene)     { t.sc = s }
func (t *fakeTrack) SetModels(c model.Container) { t.contents = c }
func (t *fakeTrack) ContentSize() geom.Rect      { return geom.R(0, 0, t.width, 200) }
func (t *fakeTrack) CreatedTypes() []string      { return []string{"interval"} }

func (t *fakeTrack) FindAt(p geom.Point, part scene.Part) any {
	if part != scene.Contents {
		return nil
	}
	for _, r := range t.records {
		if p.Y >= r.Top() && p.Y <= r.Base() {
			return r
		}
	}
	return nil
}

func (t *fakeTrack) ModelBounds(m model.Model) (geom.Rect, bool) {
	iv, ok := m.(*interval.Interval)
	if !ok || t.sc == nil {
		return geom.Rect{}, false
	}
	b, ok := t.sc.TrackBounds(t)
	if !ok {
		return geom.Rect{}, false
	}
	return geom.R(b.X, iv.Top(), b.W, iv.Thickness()), true
}

func (t *fakeTrack) Parameter(_, def string) string { return def }
func (t *fakeTrack) SetParameter(string, string)    {}
func (t *fakeTrack) Parameters() map[string]string  { return nil }

func (t *fakeTrack) RenderHeader(graphics.Graphics, geom.Rect)   {}
func (t *fakeTrack) RenderContents(graphics.Graphics, geom.Rect) {}
func (t *fakeTrack) RenderFooter(graphics.Graphics, geom.Rect)   {}

func (t *fakeTrack) Adapter(typ reflect.Type) any {
	if typ == adapt.TypeOf[Handler]() && t.handler != nil {
		t.lookups++
		return t.handler
	}
	return nil
}

// call is one policy invocation.
type call struct {
	kind   string
	typ    PolicyType
	target any
	dragX  int
	dragY  int
	handle string
}

// spyPolicy records every call and returns a fresh command each time.
type spyPolicy struct {
	typ      PolicyType
	calls    *[]call
	executed *[]PolicyType
}

func (p spyPolicy) Type() PolicyType { return p.typ }

func (p spyPolicy) record(kind string, e Event, target any) {
	c := call{kind: kind, typ: p.typ, target: target}
	if me, ok := e.(*MouseEvent); ok {
		c.dragX, c.dragY = me.DragX, me.DragY
	}
	c.handle = Of(e).Property(PropHandle)
	*p.calls = append(*p.calls, c)
}

func (p spyPolicy) Feedback(e Event, target any) *Feedback {
	p.record("feedback", e, target)
	kind := map[PolicyType]Kind{
		PolicyCreate: KindCreate,
		PolicyMove:   KindMove,
		PolicyResize: KindResize,
		PolicyKey:    KindDelete,
	}[p.typ]
	return NewFeedback(kind, target, CursorCrosshair, Rectangle(geom.R(0, 0, 10, 10)))
}

func (p spyPolicy) Command(e Event, target any) edit.Command {
	p.record("command", e, target)
	return edit.NewAction(p.typ.String(), func() {
		*p.executed = append(*p.executed, p.typ)
	}, nil)
}

// rig is a scene with one interactive track holding a single record from 50 to 100.
type rig struct {
	scene    *scene.Scene
	track    *fakeTrack
	handler  *TrackHandler
	record   *interval.Interval
	stack    *edit.Stack
	calls    []call
	executed []PolicyType
}

func newRig() *rig {
	r := &rig{stack: edit.NewStack()}
	r.record = interval.New("interval", 50, 100)
	r.track = &fakeTrack{name: "intervals", width: 100, records: []*interval.Interval{r.record}}

	var policies []Policy
	for _, typ := range []PolicyType{PolicyCreate, PolicyMove, PolicyResize, PolicyKey} {
		policies = append(policies, spyPolicy{typ: typ, calls: &r.calls, executed: &r.executed})
	}
	r.handler = NewTrackHandler(r.track, policies)
	r.track.handler = r.handler

	r.scene = scene.New(scene.WithStack(r.stack))
	r.scene.AddTrack(r.track, "")
	r.scene.Validate()
	return r
}

func mouse(x, y int) *MouseEvent {
	return NewMouseEvent(scene.Contents, x, y, Button1, Button1Down)
}

func (r *rig) commands() []call {
	var out []call
	for _, c := range r.calls {
		if c.kind == "command" {
			out = append(out, c)
		}
	}
	return out
}
