package edit

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/notify"
	"github.com/matzehuels/corescene/pkg/observability"
)

// Availability property names published by a Stack.
const (
	PropExecute = "execute"
	PropUndo    = "undo"
	PropRedo    = "redo"
)

// StackEvent reports that one of the stack's availability flags changed.
type StackEvent struct {
	Name     string
	Old, New bool
}

// Stack records executed commands for undo and redo.
//
// By default a fresh Execute leaves the redo stack untouched, so a command
// undone earlier can still be redone after unrelated edits. Use
// [ClearRedoOnExecute] for the conventional behaviour of discarding it.
type Stack struct {
	history   []Command
	redo      []Command
	editable  bool
	clearRedo bool
	events    notify.Bus[StackEvent]
	logger    *log.Logger
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) StackOption {
	return func(s *Stack) {
		if l != nil {
			s.logger = l
		}
	}
}

// ReadOnly creates the stack with editing disabled.
func ReadOnly() StackOption {
	return func(s *Stack) { s.editable = false }
}

// ClearRedoOnExecute makes Execute discard pending redo entries.
func ClearRedoOnExecute() StackOption {
	return func(s *Stack) { s.clearRedo = true }
}

// NewStack returns an empty, editable stack.
func NewStack(opts ...StackOption) *Stack {
	s := &Stack{editable: true, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger.Debug("command stack initialized", "editable", s.editable)
	return s
}

// Subscribe registers fn for availability changes.
func (s *Stack) Subscribe(fn func(StackEvent)) *notify.Subscription {
	return s.events.Subscribe(fn)
}

// CanExecute reports whether the stack accepts commands.
func (s *Stack) CanExecute() bool { return s.editable }

// Editable is an alias of CanExecute.
func (s *Stack) Editable() bool { return s.editable }

// CanUndo reports whether the most recent command can be undone.
func (s *Stack) CanUndo() bool {
	return s.editable && len(s.history) > 0 && s.history[len(s.history)-1].CanUndo()
}

// CanRedo reports whether the most recently undone command can be redone.
func (s *Stack) CanRedo() bool {
	return s.editable && len(s.redo) > 0 && s.redo[len(s.redo)-1].CanExecute()
}

// Execute pushes cmd onto the history and executes it. It does nothing when
// the stack is read-only or cmd cannot execute.
func (s *Stack) Execute(cmd Command) {
	if cmd == nil || !s.editable || !cmd.CanExecute() {
		return
	}
	oldUndo, oldRedo := s.CanUndo(), s.CanRedo()
	if s.clearRedo {
		s.redo = nil
	}
	s.history = append(s.history, cmd)
	cmd.Execute()
	s.logger.Debug("executed command", "label", cmd.Label())
	observability.Commands().OnCommand("execute", cmd.Label())
	s.fire(PropUndo, oldUndo, s.CanUndo())
	s.fire(PropRedo, oldRedo, s.CanRedo())
}

// Undo reverts the most recent command and moves it to the redo stack.
func (s *Stack) Undo() {
	if !s.CanUndo() {
		return
	}
	oldRedo := s.CanRedo()
	cmd := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.redo = append(s.redo, cmd)
	cmd.Undo()
	s.logger.Debug("undid command", "label", cmd.Label())
	observability.Commands().OnCommand("undo", cmd.Label())
	s.fire(PropUndo, true, s.CanUndo())
	s.fire(PropRedo, oldRedo, s.CanRedo())
}

// Redo re-executes the most recently undone command. The command's Execute
// method is called, not Redo.
func (s *Stack) Redo() {
	if !s.CanRedo() {
		return
	}
	oldUndo, oldRedo := s.CanUndo(), s.CanRedo()
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.history = append(s.history, cmd)
	cmd.Execute()
	s.logger.Debug("redid command", "label", cmd.Label())
	observability.Commands().OnCommand("redo", cmd.Label())
	s.fire(PropUndo, oldUndo, s.CanUndo())
	s.fire(PropRedo, oldRedo, s.CanRedo())
}

// SetEditable freezes or resumes the stack. Neither stack is discarded.
func (s *Stack) SetEditable(editable bool) {
	oldExec, oldUndo, oldRedo := s.editable, s.CanUndo(), s.CanRedo()
	s.editable = editable
	s.fire(PropExecute, oldExec, editable)
	s.fire(PropUndo, oldUndo, s.CanUndo())
	s.fire(PropRedo, oldRedo, s.CanRedo())
}

// Commands returns the history, oldest first.
func (s *Stack) Commands() []Command {
	out := make([]Command, len(s.history))
	copy(out, s.history)
	return out
}

// RedoCommands returns the redo stack, oldest first.
func (s *Stack) RedoCommands() []Command {
	out := make([]Command, len(s.redo))
	copy(out, s.redo)
	return out
}

// UndoLabel returns the label of the command Undo would revert, or "".
func (s *Stack) UndoLabel() string {
	if !s.CanUndo() {
		return ""
	}
	return s.history[len(s.history)-1].Label()
}

// RedoLabel returns the label of the command Redo would re-apply, or "".
func (s *Stack) RedoLabel() string {
	if !s.CanRedo() {
		return ""
	}
	return s.redo[len(s.redo)-1].Label()
}

func (s *Stack) fire(name string, old, new bool) {
	if old == new {
		return
	}
	s.events.Publish(StackEvent{Name: name, Old: old, New: new})
}
