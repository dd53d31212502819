package event

import "github.com/matzehuels/corescene/pkg/edit"

// PolicyType is the kind of interaction a Policy handles.
type PolicyType int

const (
	PolicyCreate PolicyType = iota
	PolicyMove
	PolicyResize
	PolicyKey
)

func (t PolicyType) String() string {
	switch t {
	case PolicyCreate:
		return "create"
	case PolicyMove:
		return "move"
	case PolicyResize:
		return "resize"
	case PolicyKey:
		return "key"
	default:
		return "unknown"
	}
}

// Policy maps an input event and its target to feedback and commands for
// one kind of interaction on one track. Policies hold no gesture state.
type Policy interface {
	Type() PolicyType
	// Feedback may be called any number of times during a gesture and must
	// not change anything. It returns nil when there is nothing to show.
	Feedback(e Event, target any) *Feedback
	// Command is called at most once per gesture, when it ends. It returns
	// nil when the gesture does not amount to an edit.
	Command(e Event, target any) edit.Command
}

// Handler receives scene input events. Every method may return feedback to
// show until the next event, or nil.
type Handler interface {
	KeyPressed(e *KeyEvent) *Feedback
	KeyReleased(e *KeyEvent) *Feedback
	KeyTyped(e *KeyEvent) *Feedback
	MouseClicked(e *MouseEvent) *Feedback
	MouseDragged(e *MouseEvent) *Feedback
	MouseMoved(e *MouseEvent) *Feedback
	MousePressed(e *MouseEvent) *Feedback
	MouseReleased(e *MouseEvent) *Feedback
}
