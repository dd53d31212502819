package scene

import (
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/model"
)

// Part identifies one of the three horizontal bands of a scene.
type Part int

const (
	Contents Part = iota
	Header
	Footer
)

func (p Part) String() string {
	switch p {
	case Header:
		return "header"
	case Footer:
		return "footer"
	default:
		return "contents"
	}
}

// Track is a vertical visualization unit occupying one horizontal band of a
// scene. Tracks may additionally implement adapt.Adaptable to supply
// capabilities such as an event handler or a LabelProvider.
type Track interface {
	// Name is a short human readable name, used for headers and logging.
	Name() string

	// Scene returns the scene the track belongs to, or nil.
	Scene() *Scene
	// SetScene is called when the track is added to or removed from a scene.
	SetScene(s *Scene)
	// SetModels binds the track to the scene's model container. It may be nil.
	SetModels(c model.Container)

	// ContentSize reports the natural size of the track: W is the preferred
	// width and Y/H the vertical extent in scene pixels. A negative H marks
	// a track with no content.
	ContentSize() geom.Rect
	// FindAt returns the element at p in the given part, or nil.
	FindAt(p geom.Point, part Part) any
	// ModelBounds returns the on-screen bounds of m.
	ModelBounds(m model.Model) (geom.Rect, bool)
	// CreatedTypes lists the model types this track can create.
	CreatedTypes() []string

	Parameter(name, def string) string
	SetParameter(name, value string)
	Parameters() map[string]string

	RenderHeader(g graphics.Graphics, bounds geom.Rect)
	RenderContents(g graphics.Graphics, bounds geom.Rect)
	RenderFooter(g graphics.Graphics, bounds geom.Rect)
}

// LabelProvider supplies a tooltip-style label for a point in a scene.
type LabelProvider interface {
	Label(p geom.Point, part Part) string
}
