// Package adapt implements capability lookup: asking an object for a view of
// itself as some other type.
//
// An object can answer directly by implementing [Adaptable]. Objects that do
// not know about a capability can still be extended from the outside by
// registering a [Factory] with a [Manager]. [To] combines both paths behind a
// single typed call:
//
//	if h, ok := adapt.To[event.Handler](track, mgr); ok {
//	    h.MousePressed(e)
//	}
package adapt

import (
	"reflect"
	"sync"
)

// Adaptable is implemented by objects that can provide capabilities on request.
// Adapter returns nil when the capability is not supported.
type Adaptable interface {
	Adapter(t reflect.Type) any
}

// Factory creates adapters of a given type for objects registered with a Manager.
type Factory interface {
	// Adapter returns the adapter of type t for obj, or nil.
	Adapter(obj any, t reflect.Type) any
	// Types lists the adapter types this factory can produce.
	Types() []reflect.Type
}

// FactoryFunc adapts a function to the Factory interface for a fixed set of types.
type FactoryFunc struct {
	Fn       func(obj any, t reflect.Type) any
	Produces []reflect.Type
}

// Adapter calls f.Fn.
func (f FactoryFunc) Adapter(obj any, t reflect.Type) any { return f.Fn(obj, t) }

// Types returns f.Produces.
func (f FactoryFunc) Types() []reflect.Type { return f.Produces }

// Manager is a registry of factories keyed by the adaptable object's type.
// Lookups try the exact dynamic type first and then every registered interface
// the object implements, in registration order.
type Manager struct {
	mu        sync.RWMutex
	factories map[reflect.Type][]Factory
	order     []reflect.Type
}

// NewManager returns an empty registry.
func NewManager() *Manager {
	return &Manager{factories: make(map[reflect.Type][]Factory)}
}

// Register adds f for objects of type key. key may be a concrete type or an
// interface type; use TypeOf to build it.
func (m *Manager) Register(key reflect.Type, f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.factories[key]; !ok {
		m.order = append(m.order, key)
	}
	m.factories[key] = append(m.factories[key], f)
}

// Unregister removes every factory registered for key.
func (m *Manager) Unregister(key reflect.Type) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.factories, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Adapter resolves an adapter of type t for obj through the registered
// factories. It returns nil when none applies.
func (m *Manager) Adapter(obj any, t reflect.Type) any {
	if m == nil || obj == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dyn := reflect.TypeOf(obj)
	if a := m.lookup(m.factories[dyn], obj, t); a != nil {
		return a
	}
	for _, key := range m.order {
		if key == dyn || key.Kind() != reflect.Interface || !dyn.Implements(key) {
			continue
		}
		if a := m.lookup(m.factories[key], obj, t); a != nil {
			return a
		}
	}
	return nil
}

// HasAdapter reports whether some factory registered for obj declares type t.
func (m *Manager) HasAdapter(obj any, t reflect.Type) bool {
	if m == nil || obj == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dyn := reflect.TypeOf(obj)
	for _, key := range m.order {
		if key != dyn && (key.Kind() != reflect.Interface || !dyn.Implements(key)) {
			continue
		}
		for _, f := range m.factories[key] {
			for _, ft := range f.Types() {
				if ft == t {
					return true
				}
			}
		}
	}
	return false
}

func (m *Manager) lookup(fs []Factory, obj any, t reflect.Type) any {
	for _, f := range fs {
		for _, ft := range f.Types() {
			if ft != t {
				continue
			}
			if a := f.Adapter(obj, t); a != nil {
				return a
			}
		}
	}
	return nil
}

// TypeOf returns the reflect.Type for T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// To returns obj viewed as T. It tries, in order, a direct type assertion, the
// object's own Adaptable implementation and finally the manager, which may be nil.
func To[T any](obj any, m *Manager) (T, bool) {
	var zero T
	if obj == nil {
		return zero, false
	}
	if v, ok := obj.(T); ok {
		return v, true
	}
	t := TypeOf[T]()
	if a, ok := obj.(Adaptable); ok {
		if v, ok := a.Adapter(t).(T); ok {
			return v, true
		}
	}
	if v, ok := m.Adapter(obj, t).(T); ok {
		return v, true
	}
	return zero, false
}
