// Package model defines the minimal shape of a domain record as seen by the
// scene engine, and the container that owns a set of records.
package model

import (
	"slices"
	"sync"

	"github.com/matzehuels/corescene/pkg/notify"
)

// Model is a domain record placed in a scene.
type Model interface {
	// Type names the kind of record, e.g. "interval".
	Type() string
	// Data returns a flat string view of the record for labels and persistence.
	Data() map[string]string
	// Container returns the container that owns the record, or nil.
	Container() Container
	// SetContainer is called by containers when the record is added or removed.
	SetContainer(c Container)
}

// EventKind identifies a container change.
type EventKind int

const (
	Added EventKind = iota
	Removed
	Updated
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	default:
		return "unknown"
	}
}

// Event describes a change to a container.
type Event struct {
	Kind  EventKind
	Model Model
}

// Container owns an ordered set of models and announces changes to them.
type Container interface {
	Add(m Model)
	Remove(m Model)
	// Update announces that m changed in place.
	Update(m Model)
	Models() []Model
	Subscribe(fn func(Event)) *notify.Subscription
}

// DefaultContainer is an in-memory Container.
type DefaultContainer struct {
	mu     sync.RWMutex
	models []Model
	events notify.Bus[Event]
}

// NewContainer returns an empty container holding ms.
func NewContainer(ms ...Model) *DefaultContainer {
	c := &DefaultContainer{}
	for _, m := range ms {
		c.Add(m)
	}
	return c
}

// Add appends m and publishes Added. Adding a model twice is a no-op.
func (c *DefaultContainer) Add(m Model) {
	c.mu.Lock()
	if slices.Contains(c.models, m) {
		c.mu.Unlock()
		return
	}
	c.models = append(c.models, m)
	c.mu.Unlock()

	m.SetContainer(c)
	c.events.Publish(Event{Kind: Added, Model: m})
}

// Remove deletes m and publishes Removed. Unknown models are ignored.
func (c *DefaultContainer) Remove(m Model) {
	c.mu.Lock()
	i := slices.Index(c.models, m)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.models = slices.Delete(c.models, i, i+1)
	c.mu.Unlock()

	m.SetContainer(nil)
	c.events.Publish(Event{Kind: Removed, Model: m})
}

// Update publishes Updated for m.
func (c *DefaultContainer) Update(m Model) {
	c.events.Publish(Event{Kind: Updated, Model: m})
}

// Models returns a copy of the contained models in insertion order.
func (c *DefaultContainer) Models() []Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.models)
}

// Len returns the number of models.
func (c *DefaultContainer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Subscribe registers fn for container events.
func (c *DefaultContainer) Subscribe(fn func(Event)) *notify.Subscription {
	return c.events.Subscribe(fn)
}

// OfType returns the models whose Type equals typ.
func OfType(c Container, typ string) []Model {
	var out []Model
	for _, m := range c.Models() {
		if m.Type() == typ {
			out = append(out, m)
		}
	}
	return out
}

var _ Container = (*DefaultContainer)(nil)
