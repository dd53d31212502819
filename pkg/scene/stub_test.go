package scene

import (
	"maps"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/model"
)

// stubTrack is a Track with a fixed or computed natural size that writes its
// name when rendered.
type stubTrack struct {
	name   string
	size   geom.Rect
	sizeFn func(s *Scene) geom.Rect
	hit    any
	label  string
	types  []string

	scene     *Scene
	models    model.Container
	params    map[string]string
	sizeCalls int
	pageHints []string
}

func newStub(name string, w float64) *stubTrack {
	return &stubTrack{name: name, size: geom.R(0, 0, w, -1)}
}

func (t *stubTrack) Name() string                { return t.name }
func (t *stubTrack) Scene() *Scene               { return t.scene }
func (t *stubTrack) SetScene(s *Scene)           { t.scene = s }
func (t *stubTrack) SetModels(c model.Container) { t.models = c }

func (t *stubTrack) ContentSize() geom.Rect {
	t.sizeCalls++
	if t.sizeFn != nil {
		return t.sizeFn(t.scene)
	}
	return t.size
}

func (t *stubTrack) FindAt(geom.Point, Part) any { return t.hit }

func (t *stubTrack) ModelBounds(model.Model) (geom.Rect, bool) { return geom.Rect{}, false }

func (t *stubTrack) CreatedTypes() []string { return t.types }

func (t *stubTrack) Parameter(name, def string) string {
	if v, ok := t.params[name]; ok {
		return v
	}
	return def
}

func (t *stubTrack) SetParameter(name, value string) {
	if t.params == nil {
		t.params = make(map[string]string)
	}
	t.params[name] = value
}

func (t *stubTrack) Parameters() map[string]string { return maps.Clone(t.params) }

func (t *stubTrack) RenderHeader(g graphics.Graphics, b geom.Rect) {
	t.record()
	g.DrawString(b.X, b.Y, t.name+":header")
}

func (t *stubTrack) RenderContents(g graphics.Graphics, b geom.Rect) {
	t.record()
	g.DrawString(b.X, b.Y, t.name)
}

func (t *stubTrack) RenderFooter(g graphics.Graphics, b geom.Rect) {
	t.record()
	g.DrawString(b.X, b.Y, t.name+":footer")
}

func (t *stubTrack) record() {
	if t.scene != nil {
		t.pageHints = append(t.pageHints, t.scene.RenderHint(HintPage))
	}
}

// labelTrack also provides labels.
type labelTrack struct {
	*stubTrack
}

func (t labelTrack) Label(geom.Point, Part) string { return t.label }
