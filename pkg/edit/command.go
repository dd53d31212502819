// Package edit provides reversible commands and the undo/redo history that
// records them.
//
// # Commands
//
// A [Command] is a unit of committed change that knows how to reverse itself.
// Its executed flag is the only state the history relies on: CanExecute is
// true before execution, CanUndo after. [Action] implements that protocol
// around a pair of hook functions and is the building block for the concrete
// commands in this package. [Composite] groups commands into one unit.
//
// # History
//
// A [Stack] keeps executed commands on a history stack and undone commands on
// a redo stack. Stacks can be frozen with SetEditable(false) without losing
// either stack.
package edit

// Command is a reversible unit of change.
type Command interface {
	CanExecute() bool
	CanUndo() bool
	Execute()
	Undo()
	Redo()
	// Label is a short human-readable description, e.g. "Create: interval".
	Label() string
}

// Action is a Command built from an apply hook and a revert hook.
// Hooks must not panic; Action does not recover from them.
type Action struct {
	label    string
	apply    func()
	revert   func()
	executed bool
}

// NewAction returns an unexecuted command that calls apply on Execute and
// revert on Undo. Either hook may be nil.
func NewAction(label string, apply, revert func()) *Action {
	return &Action{label: label, apply: apply, revert: revert}
}

// Label returns the command label.
func (a *Action) Label() string { return a.label }

// Executed reports whether the command is currently applied.
func (a *Action) Executed() bool { return a.executed }

// CanExecute reports whether the command has not been applied yet.
func (a *Action) CanExecute() bool { return !a.executed }

// CanUndo reports whether the command has been applied.
func (a *Action) CanUndo() bool { return a.executed }

// Execute runs the apply hook unless the command is already applied.
func (a *Action) Execute() {
	if !a.CanExecute() {
		return
	}
	if a.apply != nil {
		a.apply()
	}
	a.executed = true
}

// Undo runs the revert hook if the command is applied.
func (a *Action) Undo() {
	if !a.CanUndo() {
		return
	}
	if a.revert != nil {
		a.revert()
	}
	a.executed = false
}

// Redo is Execute.
func (a *Action) Redo() { a.Execute() }

// Composite executes a fixed list of commands as one unit.
//
// Both Execute and Undo walk the children in construction order.
type Composite struct {
	label    string
	children []Command
	executed bool
}

// NewComposite groups cmds under label. Nil entries are dropped.
func NewComposite(label string, cmds ...Command) *Composite {
	c := &Composite{label: label}
	for _, cmd := range cmds {
		if cmd != nil {
			c.children = append(c.children, cmd)
		}
	}
	return c
}

// Label returns the composite label.
func (c *Composite) Label() string { return c.label }

// Commands returns the children in construction order.
func (c *Composite) Commands() []Command {
	out := make([]Command, len(c.children))
	copy(out, c.children)
	return out
}

// CanExecute is true if the composite has not run and every child can execute.
func (c *Composite) CanExecute() bool {
	if c.executed {
		return false
	}
	for _, cmd := range c.children {
		if !cmd.CanExecute() {
			return false
		}
	}
	return true
}

// CanUndo is true if the composite has run and every child can be undone.
func (c *Composite) CanUndo() bool {
	if !c.executed {
		return false
	}
	for _, cmd := range c.children {
		if !cmd.CanUndo() {
			return false
		}
	}
	return true
}

// Execute runs every child in order.
func (c *Composite) Execute() {
	if !c.CanExecute() {
		return
	}
	for _, cmd := range c.children {
		cmd.Execute()
	}
	c.executed = true
}

// Undo undoes every child, also in construction order.
func (c *Composite) Undo() {
	if !c.CanUndo() {
		return
	}
	for _, cmd := range c.children {
		cmd.Undo()
	}
	c.executed = false
}

// Redo is Execute.
func (c *Composite) Redo() { c.Execute() }

var (
	_ Command = (*Action)(nil)
	_ Command = (*Composite)(nil)
)
