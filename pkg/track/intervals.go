package track

import (
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/interval"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/scene"
	"github.com/matzehuels/corescene/pkg/scene/event"
)

// ParamType names the interval type an Intervals track shows and creates.
const ParamType = "type"

// DefaultType is used when the type parameter is unset.
const DefaultType = "interval"

// inset is the horizontal gap between the track edge and its records.
const inset = 2

// Intervals draws the interval records of one type and lets the user
// create, move, resize and delete them.
type Intervals struct {
	Base
	handler *event.TrackHandler
}

// NewIntervals returns an intervals track two inches wide.
func NewIntervals() *Intervals {
	t := &Intervals{Base: NewBase("intervals")}
	t.handler = event.NewTrackHandler(t, []event.Policy{
		createPolicy{t},
		movePolicy{t},
		resizePolicy{t},
		keyPolicy{t},
	})
	return t
}

// Type returns the interval type this track shows.
func (t *Intervals) Type() string { return t.Parameter(ParamType, DefaultType) }

// Handler returns the gesture handler of the track.
func (t *Intervals) Handler() *event.TrackHandler { return t.handler }

// Records returns the track's intervals in container order.
func (t *Intervals) Records() []*interval.Interval {
	if t.models == nil {
		return nil
	}
	var out []*interval.Interval
	for _, m := range model.OfType(t.models, t.Type()) {
		if iv, ok := m.(*interval.Interval); ok {
			out = append(out, iv)
		}
	}
	return out
}

func (t *Intervals) owns(m model.Model) (*interval.Interval, bool) {
	iv, ok := m.(*interval.Interval)
	if !ok || t.models == nil || iv.Type() != t.Type() || iv.Container() != t.models {
		return nil, false
	}
	return iv, true
}

func (t *Intervals) ContentSize() geom.Rect {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, iv := range t.Records() {
		y1, y2 := t.Span(iv.Top(), iv.Base())
		minY, maxY = math.Min(minY, y1), math.Max(maxY, y2)
	}
	if math.IsInf(minY, 1) {
		return geom.Rect{W: 2 * scene.PointsPerInch, H: -1}
	}
	return geom.R(0, minY, 2*scene.PointsPerInch, maxY-minY)
}

func (t *Intervals) CreatedTypes() []string { return []string{t.Type()} }

// FindAt returns the topmost record under p in the contents band.
func (t *Intervals) FindAt(p geom.Point, part scene.Part) any {
	if part != scene.Contents {
		return nil
	}
	recs := t.Records()
	for _, iv := range slices.Backward(recs) {
		if y1, y2 := t.Span(iv.Top(), iv.Base()); p.Y >= y1 && p.Y <= y2 {
			return iv
		}
	}
	return nil
}

// ModelBounds returns where m is drawn, when it belongs to this track.
func (t *Intervals) ModelBounds(m model.Model) (geom.Rect, bool) {
	iv, ok := t.owns(m)
	if !ok || t.scene == nil {
		return geom.Rect{}, false
	}
	b, ok := t.scene.TrackBounds(t)
	if !ok {
		return geom.Rect{}, false
	}
	y1, y2 := t.Span(iv.Top(), iv.Base())
	return geom.R(b.X, y1, b.W, y2-y1), true
}

// Label describes the record under p, or the track type elsewhere.
func (t *Intervals) Label(p geom.Point, part scene.Part) string {
	iv, ok := t.FindAt(p, part).(*interval.Interval)
	if !ok {
		return t.Type()
	}
	s := fmt.Sprintf("%s %s-%s", iv.Type(), FormatValue(iv.Top()), FormatValue(iv.Base()))
	if l := iv.Label(); l != "" {
		s += ": " + l
	}
	return s
}

// Adapter exposes the gesture handler.
func (t *Intervals) Adapter(typ reflect.Type) any {
	if typ == adapt.TypeOf[event.Handler]() {
		return t.handler
	}
	return nil
}

// recordRect returns the drawn rectangle of [top, base] within the track band b.
func (t *Intervals) recordRect(b geom.Rect, top, base float64) geom.Rect {
	y1, y2 := t.Span(top, base)
	return geom.R(b.X+inset, y1, b.W-2*inset, y2-y1)
}

func (t *Intervals) RenderContents(g graphics.Graphics, r geom.Rect) {
	var selected any
	if t.scene != nil {
		selected = t.scene.Selection().First()
	}
	for _, iv := range t.Records() {
		rect := t.recordRect(r, iv.Top(), iv.Base())
		if rect.MaxY() < r.MinY() || rect.MinY() > r.MaxY() {
			continue
		}
		fill := graphics.LightGray
		if selected == any(iv) {
			fill = graphics.Gray
		}
		g.SetFill(fill)
		g.FillRectangle(rect)
		g.SetLineColor(graphics.Black)
		g.DrawRectangle(rect)
		if l := iv.Label(); l != "" && rect.H >= textHeight {
			g.SetFill(graphics.Black)
			g.DrawString(rect.X+inset, rect.MinY()+textHeight-2, l)
		}
	}
}

var (
	_ scene.Track         = (*Intervals)(nil)
	_ scene.LabelProvider = (*Intervals)(nil)
	_ adapt.Adaptable     = (*Intervals)(nil)
)
