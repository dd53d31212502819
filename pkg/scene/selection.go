package scene

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/matzehuels/corescene/pkg/adapt"
)

// Selection is an immutable ordered set of selected objects. Changing the
// selection always means building a new Selection. The zero value is empty.
type Selection struct {
	objects  []any
	adapters *adapt.Manager
}

// Empty is the empty selection.
var Empty = Selection{}

// NewSelection returns a selection of objs. The manager, which may be nil,
// is used to adapt objects that do not adapt themselves.
func NewSelection(m *adapt.Manager, objs ...any) Selection {
	return Selection{objects: slices.Clone(objs), adapters: m}
}

// Objects returns a copy of the selected objects.
func (s Selection) Objects() []any { return slices.Clone(s.objects) }

// All iterates over the selected objects in order.
func (s Selection) All() iter.Seq2[int, any] { return slices.All(s.objects) }

// First returns the first selected object, or nil.
func (s Selection) First() any {
	if len(s.objects) == 0 {
		return nil
	}
	return s.objects[0]
}

func (s Selection) Len() int      { return len(s.objects) }
func (s Selection) IsEmpty() bool { return len(s.objects) == 0 }

// Equal reports whether both selections hold the same objects in the same order.
func (s Selection) Equal(o Selection) bool {
	return slices.EqualFunc(s.objects, o.objects, sameObject)
}

func (s Selection) String() string {
	return fmt.Sprintf("Selection: %v", s.objects)
}

// Adapter returns the first non-nil adapter of type t among the selected
// objects. Objects implementing adapt.Adaptable answer for themselves;
// the rest go through the selection's manager.
func (s Selection) Adapter(t reflect.Type) any {
	for _, o := range s.objects {
		if a := adaptObject(o, t, s.adapters); a != nil {
			return a
		}
	}
	return nil
}

// AdapterOf returns the first selected object viewed as T.
func AdapterOf[T any](s Selection) (T, bool) {
	for _, o := range s.objects {
		if v, ok := adapt.To[T](o, s.adapters); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// AllAdapters returns every selected object that can be viewed as T,
// converted to T, in selection order.
func AllAdapters[T any](s Selection) []T {
	var out []T
	for _, o := range s.objects {
		if v, ok := adapt.To[T](o, s.adapters); ok {
			out = append(out, v)
		}
	}
	return out
}

func adaptObject(o any, t reflect.Type, m *adapt.Manager) any {
	if a, ok := o.(adapt.Adaptable); ok {
		return a.Adapter(t)
	}
	return m.Adapter(o, t)
}

// sameObject compares by identity for comparable values and by deep
// equality for the rest. Comparability is checked on the values rather than
// the type: a struct of a comparable type still panics under == when one of
// its interface fields holds a slice or map.
func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

var _ adapt.Adaptable = Selection{}
