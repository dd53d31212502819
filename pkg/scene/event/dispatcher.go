package event

import (
	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Dispatcher routes events to the handler of the track under the pointer.
// Key events have no location and go to the most recently resolved handler.
type Dispatcher struct {
	scene   *scene.Scene
	track   scene.Track
	handler Handler
}

// NewDispatcher returns a dispatcher for s.
func NewDispatcher(s *scene.Scene) *Dispatcher {
	return &Dispatcher{scene: s}
}

// Track returns the track the last pointer event was routed to.
func (d *Dispatcher) Track() scene.Track { return d.track }

// trackAt returns the last track, in document order, whose band contains x.
// A pointer on the edge shared by two tracks goes to the right one, unlike
// Scene.FindTrack which hit-tests the left one.
func (d *Dispatcher) trackAt(x float64) scene.Track {
	var found scene.Track
	for _, t := range d.scene.Tracks() {
		if r, ok := d.scene.TrackBounds(t); ok && r.ContainsX(x) {
			found = t
		}
	}
	return found
}

// handlerFor resolves the handler for e. The track lookup uses the last
// computed layout; the resolved handler is cached until the pointer moves
// into another track's band.
func (d *Dispatcher) handlerFor(e *MouseEvent) Handler {
	t := d.trackAt(e.Point().X)
	if t != d.track {
		d.track = t
		d.handler = nil
		if t != nil {
			d.handler, _ = adapt.To[Handler](t, d.scene.Adapters())
		}
	}
	return d.handler
}

func (d *Dispatcher) KeyPressed(e *KeyEvent) *Feedback {
	if d.handler == nil {
		return nil
	}
	return d.handler.KeyPressed(e)
}

func (d *Dispatcher) KeyReleased(e *KeyEvent) *Feedback {
	if d.handler == nil {
		return nil
	}
	return d.handler.KeyReleased(e)
}

func (d *Dispatcher) KeyTyped(e *KeyEvent) *Feedback {
	if d.handler == nil {
		return nil
	}
	return d.handler.KeyTyped(e)
}

func (d *Dispatcher) MouseClicked(e *MouseEvent) *Feedback {
	if h := d.handlerFor(e); h != nil {
		return h.MouseClicked(e)
	}
	return nil
}

func (d *Dispatcher) MouseDragged(e *MouseEvent) *Feedback {
	if h := d.handlerFor(e); h != nil {
		return h.MouseDragged(e)
	}
	return nil
}

func (d *Dispatcher) MouseMoved(e *MouseEvent) *Feedback {
	if h := d.handlerFor(e); h != nil {
		return h.MouseMoved(e)
	}
	return nil
}

func (d *Dispatcher) MousePressed(e *MouseEvent) *Feedback {
	if h := d.handlerFor(e); h != nil {
		return h.MousePressed(e)
	}
	return nil
}

func (d *Dispatcher) MouseReleased(e *MouseEvent) *Feedback {
	if h := d.handlerFor(e); h != nil {
		return h.MouseReleased(e)
	}
	return nil
}

var _ Handler = (*Dispatcher)(nil)
