package scene

import (
	"math"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
)

// RenderHeader draws every track's header into its band (x, 0, w, headerHeight-1).
func (s *Scene) RenderHeader(g graphics.Graphics) {
	s.Validate()
	for _, e := range s.entries {
		b := geom.R(float64(e.x), 0, float64(e.width), float64(s.headerHeight-1))
		s.renderTrack(g, b, func() { e.track.RenderHeader(g, b) })
	}
}

// RenderFooter draws every track's footer into its band (x, 1, w, footerHeight-1).
func (s *Scene) RenderFooter(g graphics.Graphics) {
	s.Validate()
	for _, e := range s.entries {
		b := geom.R(float64(e.x), 1, float64(e.width), float64(s.footerHeight-1))
		s.renderTrack(g, b, func() { e.track.RenderFooter(g, b) })
	}
}

// RenderContents draws the part of the content selected by clip, or all of
// it when clip is nil. The coordinate system is shifted up by clip.Y so
// that the clip's top edge lands at y=0 on the surface.
func (s *Scene) RenderContents(g graphics.Graphics, clip *geom.Rect) {
	s.Validate()
	r := s.ContentSize()
	if clip != nil {
		r = *clip
	}
	g.PushTransform(geom.Translate(0, -r.Y))
	for _, e := range s.entries {
		b := geom.R(float64(e.x), math.Floor(r.Y), float64(e.width), math.Ceil(r.H))
		s.renderTrack(g, b, func() { e.track.RenderContents(g, b) })
	}
	g.PopTransform()
}

// renderTrack clips to b, isolates the track's drawing state and strokes the
// border afterwards when borders are enabled.
func (s *Scene) renderTrack(g graphics.Graphics, b geom.Rect, draw func()) {
	g.SetClip(&b)
	g.PushState()
	draw()
	g.PopState()
	g.SetClip(nil)
	if s.Borders() {
		g.DrawRectangle(b)
	}
}
