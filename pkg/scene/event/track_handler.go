package event

import (
	"image"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/scene"
)

// HandleProximity is how close, in pixels, the pointer must be to a
// resizable edge to grab it instead of moving the record.
const HandleProximity = 5

// PropHandle is the event property naming the edge being resized.
const PropHandle = "handle"

// State is the phase of the gesture a TrackHandler is interpreting.
type State int

const (
	// Idle: no button is down.
	Idle State = iota
	// Creating: the press landed on empty space.
	Creating
	// Pressed: the press landed on a record; the first drag decides
	// between moving and resizing it.
	Pressed
	Moving
	Resizing
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case Pressed:
		return "pressed"
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// gesture is the state of one press-drag-release sequence.
type gesture struct {
	state  State
	target model.Model
	handle Cursor
	origin *image.Point
}

func idle() gesture { return gesture{state: Idle, handle: -1} }

// TrackHandler interprets gestures on a single track and turns them into
// policy feedback and commands.
type TrackHandler struct {
	track    scene.Track
	policies map[PolicyType]Policy
	logger   *log.Logger
	g        gesture
}

// TrackHandlerOption configures a TrackHandler.
type TrackHandlerOption func(*TrackHandler)

// WithHandlerLogger sets the logger used for debug output.
func WithHandlerLogger(l *log.Logger) TrackHandlerOption {
	return func(h *TrackHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewTrackHandler returns a handler for t using policies. A later policy of
// the same type replaces an earlier one.
func NewTrackHandler(t scene.Track, policies []Policy, opts ...TrackHandlerOption) *TrackHandler {
	h := &TrackHandler{
		track:    t,
		policies: make(map[PolicyType]Policy, len(policies)),
		logger:   log.Default(),
		g:        idle(),
	}
	for _, p := range policies {
		h.policies[p.Type()] = p
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the current gesture phase.
func (h *TrackHandler) State() State { return h.g.state }

// Target returns the record the current gesture started on, or nil.
func (h *TrackHandler) Target() model.Model { return h.g.target }

// Handle returns the resolved grab handle: CursorDefault for a move, a
// resize cursor for a resize and -1 while unresolved.
func (h *TrackHandler) Handle() Cursor { return h.g.handle }

// Moved reports whether the current gesture is moving its target.
func (h *TrackHandler) Moved() bool { return h.g.state == Moving }

// Resized reports whether the current gesture is resizing its target.
func (h *TrackHandler) Resized() bool { return h.g.state == Resizing }

func (h *TrackHandler) feedback(t PolicyType, e Event, target any) *Feedback {
	p := h.policies[t]
	if p == nil {
		return nil
	}
	return p.Feedback(e, target)
}

func (h *TrackHandler) command(t PolicyType, e Event, target any) edit.Command {
	p := h.policies[t]
	if p == nil {
		return nil
	}
	return p.Command(e, target)
}

// execute runs cmd through the scene's command stack when both admit it.
func (h *TrackHandler) execute(cmd edit.Command) {
	if cmd == nil {
		return
	}
	s := h.track.Scene()
	if s == nil {
		return
	}
	st := s.Stack()
	if st != nil && st.CanExecute() && cmd.CanExecute() {
		h.logger.Debug("executing command", "track", h.track.Name(), "command", cmd.Label())
		st.Execute(cmd)
	}
}

func (h *TrackHandler) adapters() *adapt.Manager {
	if s := h.track.Scene(); s != nil {
		return s.Adapters()
	}
	return nil
}

// modelAt returns the record under the pointer, or nil.
func (h *TrackHandler) modelAt(e *MouseEvent) model.Model {
	m, _ := h.track.FindAt(e.Point(), e.Part).(model.Model)
	return m
}

// handleAt returns the resize cursor of the edge of m within
// HandleProximity of the pointer, or CursorDefault when the pointer is not
// near an editable edge.
func (h *TrackHandler) handleAt(e *MouseEvent, m model.Model) Cursor {
	if m == nil {
		return CursorDefault
	}
	ed, ok := adapt.To[edit.Editable](m, h.adapters())
	if !ok {
		return CursorDefault
	}
	r, ok := h.track.ModelBounds(m)
	if !ok {
		return CursorDefault
	}
	x, y := float64(e.X), float64(e.Y)
	for _, handle := range edit.Handles(ed.Properties()) {
		switch handle {
		case edit.HandleNorth:
			if math.Abs(r.MinY()-y) <= HandleProximity {
				return CursorNResize
			}
		case edit.HandleSouth:
			if math.Abs(r.MaxY()-y) <= HandleProximity {
				return CursorSResize
			}
		case edit.HandleEast:
			if math.Abs(r.MaxX()-x) <= HandleProximity {
				return CursorEResize
			}
		case edit.HandleWest:
			if math.Abs(r.MinX()-x) <= HandleProximity {
				return CursorWResize
			}
		}
	}
	return CursorDefault
}

// HandleName maps a resize cursor to the edge name used in property
// constraints, or "" for other cursors.
func HandleName(c Cursor) string {
	switch c {
	case CursorNResize:
		return edit.HandleNorth
	case CursorSResize:
		return edit.HandleSouth
	case CursorEResize:
		return edit.HandleEast
	case CursorWResize:
		return edit.HandleWest
	default:
		return ""
	}
}

// stamp records the drag origin on e, fixing it on the first call of a gesture.
func (h *TrackHandler) stamp(e *MouseEvent, fix bool) {
	if h.g.origin == nil {
		if !fix {
			return
		}
		h.g.origin = &image.Point{X: e.X, Y: e.Y}
	}
	e.DragX, e.DragY = h.g.origin.X, h.g.origin.Y
	if h.g.state == Resizing {
		e.SetProperty(PropHandle, HandleName(h.g.handle))
	}
}

// MousePressed starts a gesture. A press on a record arms a move or resize;
// anything else arms creation.
func (h *TrackHandler) MousePressed(e *MouseEvent) *Feedback {
	h.g = idle()
	if e.Part == scene.Contents {
		h.g.target = h.modelAt(e)
	}
	if h.g.target == nil {
		h.g.state = Creating
	} else {
		h.g.state = Pressed
	}
	return nil
}

// MouseDragged previews the gesture. The first drag of a gesture on a
// record resolves whether it is a move or a resize.
func (h *TrackHandler) MouseDragged(e *MouseEvent) *Feedback {
	switch h.g.state {
	case Idle:
		// A drag that entered this track mid-gesture previews creation.
		h.g.state = Creating
	case Pressed:
		h.g.handle = h.handleAt(e, h.g.target)
		if h.g.handle == CursorDefault {
			h.g.state = Moving
		} else {
			h.g.state = Resizing
		}
	}
	h.stamp(e, true)

	switch h.g.state {
	case Moving:
		return h.feedback(PolicyMove, e, h.g.target)
	case Resizing:
		return h.feedback(PolicyResize, e, h.g.target)
	default:
		return h.feedback(PolicyCreate, e, h.track)
	}
}

// MouseMoved previews what a press at the pointer would do. It does not
// touch the gesture state.
func (h *TrackHandler) MouseMoved(e *MouseEvent) *Feedback {
	if e.Part != scene.Contents {
		return nil
	}
	m := h.modelAt(e)
	if m == nil {
		return h.feedback(PolicyCreate, e, h.track)
	}
	if c := h.handleAt(e, m); c != CursorDefault {
		e.SetProperty(PropHandle, HandleName(c))
		return h.feedback(PolicyResize, e, m)
	}
	return h.feedback(PolicyMove, e, m)
}

// MouseReleased ends the gesture, executing at most one command, and
// always returns the handler to Idle.
func (h *TrackHandler) MouseReleased(e *MouseEvent) *Feedback {
	h.stamp(e, false)
	if e.Part == scene.Contents {
		switch h.g.state {
		case Idle, Creating:
			h.execute(h.command(PolicyCreate, e, h.track))
		case Moving:
			h.execute(h.command(PolicyMove, e, h.g.target))
		case Resizing:
			h.execute(h.command(PolicyResize, e, h.g.target))
		}
	}
	h.g = idle()
	return nil
}

func (h *TrackHandler) MouseClicked(*MouseEvent) *Feedback { return nil }

func (h *TrackHandler) keyTarget() any {
	if h.g.target != nil {
		return h.g.target
	}
	return h.track
}

// KeyPressed previews the key policy's action.
func (h *TrackHandler) KeyPressed(e *KeyEvent) *Feedback {
	return h.feedback(PolicyKey, e, h.keyTarget())
}

// KeyReleased executes the key policy's command.
func (h *TrackHandler) KeyReleased(e *KeyEvent) *Feedback {
	h.execute(h.command(PolicyKey, e, h.keyTarget()))
	return nil
}

func (h *TrackHandler) KeyTyped(*KeyEvent) *Feedback { return nil }

var _ Handler = (*TrackHandler)(nil)
