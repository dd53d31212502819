package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type rec struct {
	typ string
	c   Container
}

func (r *rec) Type() string             { return r.typ }
func (r *rec) Data() map[string]string  { return nil }
func (r *rec) Container() Container     { return r.c }
func (r *rec) SetContainer(c Container) { r.c = c }

func TestContainerEvents(t *testing.T) {
	c := NewContainer()
	var got []string
	c.Subscribe(func(e Event) { got = append(got, e.Kind.String()+":"+e.Model.Type()) })

	a, b := &rec{typ: "a"}, &rec{typ: "b"}
	c.Add(a)
	c.Add(b)
	c.Add(a)
	c.Update(b)
	c.Remove(a)
	c.Remove(a)

	want := []string{"added:a", "added:b", "updated:b", "removed:a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if a.Container() != nil {
		t.Error("removed model still references container")
	}
	if b.Container() != c {
		t.Error("added model does not reference container")
	}
}

func TestOfType(t *testing.T) {
	c := NewContainer(&rec{typ: "a"}, &rec{typ: "b"}, &rec{typ: "a"})
	if got := len(OfType(c, "a")); got != 2 {
		t.Errorf("len(OfType(a)) = %d, want 2", got)
	}
	if got := c.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}
