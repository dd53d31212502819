package track

import (
	"math"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/scene"
)

// minTickSpacing is the smallest pixel distance between two ruler ticks.
const minTickSpacing = 10

// Ruler draws a depth scale along its right edge. It has no vertical extent
// of its own and spans whatever the other tracks occupy.
type Ruler struct {
	Base
}

// NewRuler returns a ruler one inch wide.
func NewRuler() *Ruler {
	return &Ruler{Base: NewBase("ruler")}
}

func (t *Ruler) ContentSize() geom.Rect {
	return geom.Rect{W: scene.PointsPerInch, H: -1}
}

// TickStep returns the domain distance between ticks at scale: the
// smallest of 1, 2 or 5 times a power of ten that is at least
// minTickSpacing pixels long.
func TickStep(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	raw := minTickSpacing / scale
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= raw-1e-9 {
			return step
		}
	}
	return 10 * mag
}

func (t *Ruler) RenderContents(g graphics.Graphics, r geom.Rect) {
	edge := r.MaxX() - 1
	g.SetLineColor(graphics.Black)
	g.DrawLine(edge, r.MinY(), edge, r.MaxY())

	step := TickStep(t.Scale())
	lo := math.Min(t.Value(r.MinY()), t.Value(r.MaxY()))
	hi := math.Max(t.Value(r.MinY()), t.Value(r.MaxY()))
	first := math.Ceil(lo/step - 1e-9)
	last := math.Floor(hi/step + 1e-9)

	g.SetFill(graphics.Black)
	for n := first; n <= last; n++ {
		v := n * step
		y := t.Y(v)
		if math.Mod(n, 5) != 0 {
			g.DrawLine(edge-5, y, edge, y)
			continue
		}
		g.DrawLine(edge-10, y, edge, y)
		label := FormatValue(math.Round(v*1e6) / 1e6)
		g.DrawString(edge-12-float64(len(label)*charWidth), y+textHeight/2-2, label)
	}
}

var _ scene.Track = (*Ruler)(nil)
