package edit

import "github.com/matzehuels/corescene/pkg/model"

// NewCreate returns a command that adds m to c.
func NewCreate(m model.Model, c model.Container) *Action {
	return NewAction("Create: "+m.Type(),
		func() { c.Add(m) },
		func() { c.Remove(m) },
	)
}

// NewDelete returns a command that removes m from c.
func NewDelete(m model.Model, c model.Container) *Action {
	return NewAction("Delete: "+m.Type(),
		func() { c.Remove(m) },
		func() { c.Add(m) },
	)
}

// NewUpdate returns a command for an in-place change to m. apply and revert
// mutate the record; the container, if any, is told about the change after
// each of them.
func NewUpdate(label string, m model.Model, apply, revert func()) *Action {
	announce := func(fn func()) func() {
		return func() {
			fn()
			if c := m.Container(); c != nil {
				c.Update(m)
			}
		}
	}
	return NewAction(label, announce(apply), announce(revert))
}

// Handle values found under the "handle" constraint of a Property.
const (
	HandleNorth = "north"
	HandleSouth = "south"
	HandleEast  = "east"
	HandleWest  = "west"
)

// ConstraintHandle is the constraint key naming the resize edge a property controls.
const ConstraintHandle = "handle"

// Property is an editable attribute of a model.
type Property interface {
	Name() string
	Value() string
	// Constraints describes editing limits. The "handle" key, when present,
	// names the edge of the model's bounds this property moves.
	Constraints() map[string]string
	Valid(value string) bool
	// Command returns a command that sets the property to value, or nil when
	// value is invalid.
	Command(value string) Command
}

// Editable is implemented by models that expose editable properties.
type Editable interface {
	Properties() []Property
}

// FindProperty returns the property with the given name, or nil.
func FindProperty(props []Property, name string) Property {
	for _, p := range props {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Handles returns the resize handles declared by props, in declaration order.
func Handles(props []Property) []string {
	var out []string
	for _, p := range props {
		if h := p.Constraints()[ConstraintHandle]; h != "" {
			out = append(out, h)
		}
	}
	return out
}
