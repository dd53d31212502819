package edit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func recorder(log *[]string, name string) *Action {
	return NewAction(name,
		func() { *log = append(*log, "exec "+name) },
		func() { *log = append(*log, "undo "+name) },
	)
}

func TestActionLifecycle(t *testing.T) {
	var log []string
	a := recorder(&log, "a")

	if !a.CanExecute() || a.CanUndo() {
		t.Fatalf("new action: CanExecute() = %v, CanUndo() = %v", a.CanExecute(), a.CanUndo())
	}

	a.Execute()
	a.Execute()
	if !a.Executed() {
		t.Error("Executed() = false after Execute")
	}

	a.Undo()
	a.Undo()
	a.Redo()

	want := []string{"exec a", "undo a", "exec a"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("hook calls mismatch (-want +got):\n%s", diff)
	}
}

func TestActionNilHooks(t *testing.T) {
	a := NewAction("noop", nil, nil)
	a.Execute()
	if !a.CanUndo() {
		t.Error("CanUndo() = false after Execute")
	}
	a.Undo()
	if !a.CanExecute() {
		t.Error("CanExecute() = false after Undo")
	}
}

func TestCompositeOrder(t *testing.T) {
	var log []string
	c := NewComposite("both", recorder(&log, "c1"), nil, recorder(&log, "c2"))

	if got := len(c.Commands()); got != 2 {
		t.Fatalf("len(Commands()) = %d, want 2", got)
	}

	c.Execute()
	c.Undo()

	want := []string{"exec c1", "exec c2", "undo c1", "undo c2"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("child order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositeAdmission(t *testing.T) {
	tests := []struct {
		name        string
		preExecuted bool
		want        bool
	}{
		{"all children fresh", false, true},
		{"one child already executed", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			c1, c2 := recorder(&log, "c1"), recorder(&log, "c2")
			if tt.preExecuted {
				c2.Execute()
			}
			c := NewComposite("pair", c1, c2)
			if got := c.CanExecute(); got != tt.want {
				t.Errorf("CanExecute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompositeCanUndoNeedsAllChildren(t *testing.T) {
	var log []string
	c1, c2 := recorder(&log, "c1"), recorder(&log, "c2")
	c := NewComposite("pair", c1, c2)
	c.Execute()
	if !c.CanUndo() {
		t.Fatal("CanUndo() = false after Execute")
	}

	c2.Undo()
	if c.CanUndo() {
		t.Error("CanUndo() = true with an undone child, want false")
	}
	if c.CanExecute() {
		t.Error("CanExecute() = true after Execute, want false")
	}
}
