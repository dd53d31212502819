// Package event turns raw pointer and keyboard input on a scene into
// transient feedback and undoable commands.
//
// Input flows through three layers:
//
//  1. [Dispatcher] finds the track whose horizontal band holds the pointer
//     and resolves that track's [Handler] capability.
//  2. [TrackHandler] interprets press/drag/release gestures with an explicit
//     state machine and asks the track's [Policy] values for [Feedback]
//     while the gesture runs and for one [edit.Command] when it ends.
//  3. [Controller] is the host glue: it updates the selection on press,
//     keeps the latest feedback for the next paint and exposes the cursor.
//
// Nothing in this package returns errors. A missing handler, policy,
// feedback or command simply means that nothing happens.
package event

import (
	"fmt"
	"maps"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Modifier is a bit mask of keys and buttons held during an event.
type Modifier int

const (
	ShiftDown   Modifier = 1 << 6
	CtrlDown    Modifier = 1 << 7
	MetaDown    Modifier = 1 << 8
	AltDown     Modifier = 1 << 9
	Button1Down Modifier = 1 << 10
	Button2Down Modifier = 1 << 11
	Button3Down Modifier = 1 << 12
)

// Has reports whether all bits of o are set in m.
func (m Modifier) Has(o Modifier) bool { return m&o == o }

// Button identifies the mouse button that changed state.
type Button int

const (
	NoButton Button = iota
	Button1
	Button2
	Button3
)

// Key codes understood by the built-in key policies.
const (
	KeyBackspace = 8
	KeyEnter     = 10
	KeyEscape    = 27
	KeyLeft      = 37
	KeyUp        = 38
	KeyRight     = 39
	KeyDown      = 40
	KeyDelete    = 127
)

// Event is implemented by *MouseEvent and *KeyEvent.
type Event interface {
	base() *Base
}

// Base holds the state shared by all scene events.
type Base struct {
	Modifiers Modifier
	// Part is the band of the scene the event happened in.
	Part scene.Part
	// Source is the host object that produced the event, if any.
	Source any

	consumed bool
	props    map[string]string
}

func (b *Base) base() *Base { return b }

// Consume marks the event as handled.
func (b *Base) Consume()       { b.consumed = true }
func (b *Base) Consumed() bool { return b.consumed }

func (b *Base) ShiftDown() bool   { return b.Modifiers.Has(ShiftDown) }
func (b *Base) ControlDown() bool { return b.Modifiers.Has(CtrlDown) }
func (b *Base) MetaDown() bool    { return b.Modifiers.Has(MetaDown) }
func (b *Base) AltDown() bool     { return b.Modifiers.Has(AltDown) }

// Property returns a property attached to the event, or "".
func (b *Base) Property(name string) string { return b.props[name] }

// SetProperty attaches a string property to the event.
func (b *Base) SetProperty(name, value string) {
	if b.props == nil {
		b.props = make(map[string]string)
	}
	b.props[name] = value
}

// Properties returns a copy of the event properties.
func (b *Base) Properties() map[string]string { return maps.Clone(b.props) }

// Of returns the Base of any event.
func Of(e Event) *Base { return e.base() }

// MouseEvent is a pointer event in scene coordinates.
type MouseEvent struct {
	Base
	Button Button
	Clicks int
	X, Y   int
	// DragX and DragY hold the origin of the current drag, or -1 when the
	// event is not part of one.
	DragX, DragY int
}

// NewMouseEvent returns a mouse event at (x, y) with no drag origin.
func NewMouseEvent(part scene.Part, x, y int, button Button, mods Modifier) *MouseEvent {
	return &MouseEvent{
		Base:   Base{Part: part, Modifiers: mods},
		Button: button,
		X:      x,
		Y:      y,
		DragX:  -1,
		DragY:  -1,
	}
}

// Point returns the event location.
func (e *MouseEvent) Point() geom.Point { return geom.Pt(float64(e.X), float64(e.Y)) }

// DragOrigin returns where the current drag started.
func (e *MouseEvent) DragOrigin() (geom.Point, bool) {
	if e.DragX < 0 && e.DragY < 0 {
		return geom.Point{}, false
	}
	return geom.Pt(float64(e.DragX), float64(e.DragY)), true
}

func (e *MouseEvent) String() string {
	return fmt.Sprintf("MouseEvent[part=%s mods=%d button=%d point=(%d,%d) drag=(%d,%d) clicks=%d]",
		e.Part, e.Modifiers, e.Button, e.X, e.Y, e.DragX, e.DragY, e.Clicks)
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Base
	Code int
	Char rune
}

// NewKeyEvent returns a key event.
func NewKeyEvent(part scene.Part, code int, char rune, mods Modifier) *KeyEvent {
	return &KeyEvent{Base: Base{Part: part, Modifiers: mods}, Code: code, Char: char}
}

func (e *KeyEvent) String() string {
	return fmt.Sprintf("KeyEvent[part=%s mods=%d code=%d char=%q]", e.Part, e.Modifiers, e.Code, e.Char)
}
