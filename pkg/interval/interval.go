// Package interval implements the depth-interval record: a typed span
// [Top, Base] along the domain axis with an optional label.
package interval

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/model"
)

// Interval is a model spanning Top to Base in domain units (Top <= Base).
type Interval struct {
	mu        sync.RWMutex
	id        string
	typ       string
	top, base float64
	label     string
	container model.Container
}

// New returns an interval with a fresh ID. top and base are swapped if needed.
func New(typ string, top, base float64) *Interval {
	return NewWithID(uuid.NewString(), typ, top, base)
}

// NewWithID returns an interval with the given ID.
func NewWithID(id, typ string, top, base float64) *Interval {
	if base < top {
		top, base = base, top
	}
	return &Interval{id: id, typ: typ, top: top, base: base}
}

func (i *Interval) ID() string   { return i.id }
func (i *Interval) Type() string { return i.typ }

// Top returns the upper depth.
func (i *Interval) Top() float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.top
}

// Base returns the lower depth.
func (i *Interval) Base() float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.base
}

// Label returns the display label.
func (i *Interval) Label() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.label
}

// SetLabel changes the label without notifying the container.
func (i *Interval) SetLabel(l string) {
	i.mu.Lock()
	i.label = l
	i.mu.Unlock()
}

// SetSpan changes both depths without notifying the container.
func (i *Interval) SetSpan(top, base float64) {
	if base < top {
		top, base = base, top
	}
	i.mu.Lock()
	i.top, i.base = top, base
	i.mu.Unlock()
}

// Thickness returns Base - Top.
func (i *Interval) Thickness() float64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.base - i.top
}

// Data returns the record as strings.
func (i *Interval) Data() map[string]string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	d := map[string]string{
		"id":   i.id,
		"type": i.typ,
		"top":  formatDepth(i.top),
		"base": formatDepth(i.base),
	}
	if i.label != "" {
		d["label"] = i.label
	}
	return d
}

func (i *Interval) Container() model.Container { return i.container }

func (i *Interval) SetContainer(c model.Container) { i.container = c }

func (i *Interval) String() string {
	return fmt.Sprintf("%s[%s-%s]", i.typ, formatDepth(i.Top()), formatDepth(i.Base()))
}

// Properties exposes top, base and label for editing. Top moves the north
// edge, base the south edge.
func (i *Interval) Properties() []edit.Property {
	return []edit.Property{
		&depthProperty{iv: i, name: "top", handle: edit.HandleNorth},
		&depthProperty{iv: i, name: "base", handle: edit.HandleSouth},
		&labelProperty{iv: i},
	}
}

// Move returns a command shifting the interval by delta domain units.
func (i *Interval) Move(delta float64) edit.Command {
	top, base := i.Top(), i.Base()
	return edit.NewUpdate("Move: "+i.typ, i,
		func() { i.SetSpan(top+delta, base+delta) },
		func() { i.SetSpan(top, base) },
	)
}

func formatDepth(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type depthProperty struct {
	iv     *Interval
	name   string
	handle string
}

func (p *depthProperty) Name() string { return p.name }

func (p *depthProperty) Value() string {
	if p.name == "top" {
		return formatDepth(p.iv.Top())
	}
	return formatDepth(p.iv.Base())
}

func (p *depthProperty) Constraints() map[string]string {
	return map[string]string{edit.ConstraintHandle: p.handle, "type": "float"}
}

// Valid accepts numbers that keep Top <= Base.
func (p *depthProperty) Valid(value string) bool {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	if p.name == "top" {
		return v <= p.iv.Base()
	}
	return v >= p.iv.Top()
}

func (p *depthProperty) Command(value string) edit.Command {
	if !p.Valid(value) {
		return nil
	}
	v, _ := strconv.ParseFloat(value, 64)
	top, base := p.iv.Top(), p.iv.Base()
	nextTop, nextBase := top, base
	if p.name == "top" {
		nextTop = v
	} else {
		nextBase = v
	}
	return edit.NewUpdate("Set "+p.name+": "+p.iv.typ, p.iv,
		func() { p.iv.SetSpan(nextTop, nextBase) },
		func() { p.iv.SetSpan(top, base) },
	)
}

type labelProperty struct {
	iv *Interval
}

func (p *labelProperty) Name() string                   { return "label" }
func (p *labelProperty) Value() string                  { return p.iv.Label() }
func (p *labelProperty) Constraints() map[string]string { return map[string]string{"type": "string"} }
func (p *labelProperty) Valid(string) bool              { return true }

func (p *labelProperty) Command(value string) edit.Command {
	old := p.iv.Label()
	return edit.NewUpdate("Set label: "+p.iv.typ, p.iv,
		func() { p.iv.SetLabel(value) },
		func() { p.iv.SetLabel(old) },
	)
}

var (
	_ model.Model   = (*Interval)(nil)
	_ edit.Editable = (*Interval)(nil)
)
