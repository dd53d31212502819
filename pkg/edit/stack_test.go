package edit

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/observability"
)

func TestStackExecuteUndoRedo(t *testing.T) {
	s := NewStack()
	var log []string
	c1 := recorder(&log, "c1")

	s.Execute(c1)
	afterExecute := c1.Executed()
	s.Undo()
	if c1.Executed() {
		t.Error("Executed() = true after Undo")
	}
	if got := s.RedoCommands(); len(got) != 1 || got[0] != Command(c1) {
		t.Errorf("RedoCommands() = %v, want [c1]", got)
	}
	s.Redo()

	if c1.Executed() != afterExecute {
		t.Errorf("Executed() after redo = %v, want %v", c1.Executed(), afterExecute)
	}
	if got := len(s.Commands()); got != 1 {
		t.Errorf("len(Commands()) = %d, want 1", got)
	}
	if s.CanRedo() {
		t.Error("CanRedo() = true after Redo")
	}
}

func TestStackRejectsExecutedCommand(t *testing.T) {
	s := NewStack()
	var log []string
	c := recorder(&log, "c")
	c.Execute()

	s.Execute(c)
	s.Execute(nil)

	if got := len(s.Commands()); got != 0 {
		t.Errorf("len(Commands()) = %d, want 0", got)
	}
}

func TestStackRedoRetention(t *testing.T) {
	tests := []struct {
		name     string
		opts     []StackOption
		wantRedo bool
	}{
		{"retained by default", nil, true},
		{"cleared on request", []StackOption{ClearRedoOnExecute()}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStack(tt.opts...)
			var log []string
			s.Execute(recorder(&log, "a"))
			s.Undo()
			s.Execute(recorder(&log, "b"))

			if got := s.CanRedo(); got != tt.wantRedo {
				t.Errorf("CanRedo() = %v, want %v", got, tt.wantRedo)
			}
		})
	}
}

func TestStackEditableGate(t *testing.T) {
	s := NewStack()
	var log []string
	s.Execute(recorder(&log, "a"))
	s.Execute(recorder(&log, "b"))
	s.Undo()

	s.SetEditable(false)
	s.Undo()
	s.Redo()
	s.Execute(recorder(&log, "c"))

	if s.CanExecute() || s.CanUndo() || s.CanRedo() {
		t.Error("frozen stack reports available operations")
	}

	s.SetEditable(true)
	if got, want := s.UndoLabel(), "a"; got != want {
		t.Errorf("UndoLabel() = %q, want %q", got, want)
	}
	if got, want := s.RedoLabel(), "b"; got != want {
		t.Errorf("RedoLabel() = %q, want %q", got, want)
	}

	want := []string{"exec a", "exec b", "undo b"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("hook calls mismatch (-want +got):\n%s", diff)
	}
}

func TestStackEvents(t *testing.T) {
	s := NewStack()
	var got []StackEvent
	s.Subscribe(func(e StackEvent) { got = append(got, e) })

	var log []string
	s.Execute(recorder(&log, "a"))
	s.Execute(recorder(&log, "b"))
	s.Undo()
	s.SetEditable(false)

	want := []StackEvent{
		{Name: PropUndo, Old: false, New: true},
		{Name: PropRedo, Old: false, New: true},
		{Name: PropExecute, Old: true, New: false},
		{Name: PropUndo, Old: true, New: false},
		{Name: PropRedo, Old: true, New: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

type record struct {
	typ string
	c   model.Container
}

func (r *record) Type() string                  { return r.typ }
func (r *record) Data() map[string]string       { return map[string]string{"type": r.typ} }
func (r *record) Container() model.Container    { return r.c }
func (r *record) SetContainer(c model.Container) { r.c = c }

func TestCreateDelete(t *testing.T) {
	c := model.NewContainer()
	r := &record{typ: "interval"}
	s := NewStack()

	create := NewCreate(r, c)
	if got, want := create.Label(), "Create: interval"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
	s.Execute(create)
	if c.Len() != 1 || r.Container() != c {
		t.Fatalf("after create: Len() = %d, container set = %v", c.Len(), r.Container() == c)
	}

	del := NewDelete(r, c)
	s.Execute(del)
	if c.Len() != 0 {
		t.Errorf("after delete: Len() = %d, want 0", c.Len())
	}

	s.Undo()
	if c.Len() != 1 {
		t.Errorf("after undo delete: Len() = %d, want 1", c.Len())
	}
}

func TestUpdateAnnounces(t *testing.T) {
	c := model.NewContainer()
	r := &record{typ: "interval"}
	c.Add(r)

	var kinds []model.EventKind
	sub := c.Subscribe(func(e model.Event) { kinds = append(kinds, e.Kind) })
	defer sub.Cancel()

	value := "old"
	u := NewUpdate("rename", r, func() { value = "new" }, func() { value = "old" })
	u.Execute()
	if value != "new" {
		t.Errorf("value = %q, want new", value)
	}
	u.Undo()

	want := []model.EventKind{model.Updated, model.Updated}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

type commandLog []string

func (l *commandLog) OnCommand(action, label string) { *l = append(*l, action+" "+label) }

func TestStackCommandHooks(t *testing.T) {
	var got commandLog
	observability.SetCommandHooks(&got)
	t.Cleanup(observability.Reset)

	var log []string
	s := NewStack()
	s.Execute(recorder(&log, "c1"))
	s.Undo()
	s.Redo()
	s.Undo()
	s.Undo()

	want := commandLog{"execute c1", "undo c1", "redo c1", "undo c1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hooks mismatch (-want +got):\n%s", diff)
	}
}
