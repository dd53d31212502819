// Package track provides the concrete tracks a scene document can declare.
//
// Every track embeds Base, which binds it to its scene and model container,
// stores its parameters and draws the default header and footer. Domain
// values are mapped to scene pixels with the scene's scale and origin hints:
//
//	y = value * scale        (origin "top")
//	y = -value * scale       (origin "base")
//
// Tracks are created by name through a Registry:
//
//	t, err := track.Default.New("intervals")
//	s.AddTrack(t, "2in")
package track

import (
	"maps"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Band text metrics. The draw surfaces share no font metrics, so labels are
// placed with the fixed sizes used by the raster backend's face.
const (
	textHeight = 13
	charWidth  = 7
)

// Base implements the bookkeeping shared by all tracks. Embedders supply
// ContentSize and RenderContents and override what else they need.
type Base struct {
	name   string
	scene  *scene.Scene
	models model.Container
	params map[string]string
}

// NewBase returns a Base named name.
func NewBase(name string) Base {
	return Base{name: name, params: map[string]string{}}
}

func (b *Base) Name() string                  { return b.name }
func (b *Base) Scene() *scene.Scene           { return b.scene }
func (b *Base) SetScene(s *scene.Scene)       { b.scene = s }
func (b *Base) Models() model.Container       { return b.models }
func (b *Base) SetModels(c model.Container)   { b.models = c }
func (b *Base) CreatedTypes() []string        { return nil }
func (b *Base) Adapter(reflect.Type) any      { return nil }
func (b *Base) Parameters() map[string]string { return maps.Clone(b.params) }

func (b *Base) FindAt(geom.Point, scene.Part) any { return nil }

func (b *Base) ModelBounds(model.Model) (geom.Rect, bool) { return geom.Rect{}, false }

// Parameter returns the named parameter, or def when it is unset.
func (b *Base) Parameter(name, def string) string {
	if v, ok := b.params[name]; ok {
		return v
	}
	return def
}

// SetParameter stores value under name; a blank value removes it. The
// scene is invalidated because parameters may change the track's size.
func (b *Base) SetParameter(name, value string) {
	if b.params == nil {
		b.params = map[string]string{}
	}
	if strings.TrimSpace(value) == "" {
		delete(b.params, name)
	} else {
		b.params[name] = value
	}
	if b.scene != nil {
		b.scene.Invalidate()
	}
}

// Scale returns the scene's pixels per domain unit, or 1 when the track is
// detached or the hint is unusable.
func (b *Base) Scale() float64 {
	if b.scene == nil {
		return 1
	}
	if f := b.scene.ScalingFactor(); f > 0 {
		return f
	}
	return 1
}

func (b *Base) sign() float64 {
	if b.scene != nil && b.scene.Origin() == scene.OriginBase {
		return -1
	}
	return 1
}

// Y maps a domain value to a scene y coordinate.
func (b *Base) Y(v float64) float64 { return b.sign() * v * b.Scale() }

// Value maps a scene y coordinate back to a domain value, rounded to two
// decimals.
func (b *Base) Value(y float64) float64 {
	return math.Round(b.sign()*y/b.Scale()*100) / 100
}

// Span returns the vertical pixel extent of the domain range [top, base].
func (b *Base) Span(top, base float64) (minY, maxY float64) {
	y1, y2 := b.Y(top), b.Y(base)
	return math.Min(y1, y2), math.Max(y1, y2)
}

// RenderHeader draws the track name centred in the band.
func (b *Base) RenderHeader(g graphics.Graphics, r geom.Rect) {
	g.SetFill(graphics.Black)
	drawCentered(g, r, b.Parameter("title", b.name))
}

// RenderFooter draws the current page number, when paging.
func (b *Base) RenderFooter(g graphics.Graphics, r geom.Rect) {
	if b.scene == nil || b.scene.Page() == 0 {
		return
	}
	g.SetFill(graphics.Gray)
	drawCentered(g, r, "page "+strconv.Itoa(b.scene.Page()))
}

func drawCentered(g graphics.Graphics, r geom.Rect, s string) {
	w := float64(len(s) * charWidth)
	x := r.X + math.Max(0, (r.W-w)/2)
	g.DrawString(x, r.CenterY()+textHeight/2-2, s)
}

// FormatValue renders a domain value the way labels and documents show it.
func FormatValue(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
