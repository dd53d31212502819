package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/document"
	"github.com/matzehuels/corescene/pkg/interval"
)

const emptyScene = `[[tracks]]
type = "ruler"

[[tracks]]
type = "intervals"
constraint = "*"
`

func newTestEditor(t *testing.T) *editor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "core.toml")
	if err := os.WriteFile(path, []byte(emptyScene), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := newEditor(path, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newEditor: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	return m
}

func send(m *editor, msgs ...tea.Msg) (cmd tea.Cmd) {
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func press(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func drag(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// records returns the intervals of the editor's scene.
func records(m *editor) []*interval.Interval {
	var out []*interval.Interval
	for _, mod := range m.ctrl.Scene().Models().Models() {
		if iv, ok := mod.(*interval.Interval); ok {
			out = append(out, iv)
		}
	}
	return out
}

// createRecord drags out a record in the interval track: column 12 lies in
// its band and rows 6 to 8 span scene y 104 to 136.
func createRecord(t *testing.T, m *editor) *interval.Interval {
	t.Helper()
	send(m, press(12, 5), drag(12, 6), drag(12, 8), release(12, 8))
	recs := records(m)
	if len(recs) != 1 {
		t.Fatalf("records = %d, want 1", len(recs))
	}
	return recs[0]
}

func TestEditorCreate(t *testing.T) {
	m := newTestEditor(t)
	iv := createRecord(t, m)

	if iv.Top() != 104 || iv.Base() != 136 {
		t.Errorf("record = %v-%v, want 104-136", iv.Top(), iv.Base())
	}
	if !m.dirty {
		t.Error("dirty = false after create")
	}
	if view := m.View(); !strings.Contains(view, "undo Create: interval") {
		t.Errorf("status bar lacks undo label:\n%s", view)
	}
}

func TestEditorClickWithoutDrag(t *testing.T) {
	m := newTestEditor(t)
	send(m, press(12, 5), release(12, 5))
	if n := len(records(m)); n != 0 {
		t.Errorf("records = %d after a click, want 0", n)
	}
	if m.dirty {
		t.Error("dirty = true after a click")
	}
}

func TestEditorUndoRedo(t *testing.T) {
	m := newTestEditor(t)
	createRecord(t, m)

	send(m, keyRunes("u"))
	if n := len(records(m)); n != 0 {
		t.Fatalf("records after undo = %d, want 0", n)
	}
	if view := m.View(); !strings.Contains(view, "redo Create: interval (1)") {
		t.Errorf("status bar lacks redo label:\n%s", view)
	}
	send(m, keyRunes("r"))
	if n := len(records(m)); n != 1 {
		t.Fatalf("records after redo = %d, want 1", n)
	}
}

func TestEditorToggleWidth(t *testing.T) {
	m := newTestEditor(t)
	s := m.ctrl.Scene()
	ruler := s.Tracks()[0]

	// Column 0 lies in the ruler band.
	send(m, tea.MouseMsg{X: 0, Y: 2, Action: tea.MouseActionMotion}, keyRunes("w"))
	if got := s.Constraint(ruler); got != "*" {
		t.Errorf("constraint after w = %q, want *", got)
	}
	if !m.dirty {
		t.Error("dirty = false after width change")
	}
	if view := m.View(); !strings.Contains(view, "undo Width: ruler") {
		t.Errorf("status bar lacks undo label:\n%s", view)
	}

	send(m, keyRunes("u"))
	if got := s.Constraint(ruler); got != "" {
		t.Errorf("constraint after undo = %q, want natural", got)
	}

	send(m, keyRunes("r"), keyRunes("s"))
	doc, err := document.Load(m.path)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Tracks[0].Constraint; got != "*" {
		t.Errorf("saved constraint = %q, want *", got)
	}
}

func TestEditorKeys(t *testing.T) {
	m := newTestEditor(t)
	iv := createRecord(t, m)

	// Select the record, then nudge it one unit down.
	send(m, press(12, 7), release(12, 7), tea.KeyMsg{Type: tea.KeyDown})
	if iv.Top() != 105 || iv.Base() != 137 {
		t.Errorf("after nudge record = %v-%v, want 105-137", iv.Top(), iv.Base())
	}

	send(m, tea.KeyMsg{Type: tea.KeyDelete})
	if n := len(records(m)); n != 0 {
		t.Errorf("records after delete = %d, want 0", n)
	}
	send(m, keyRunes("u"))
	if n := len(records(m)); n != 1 {
		t.Errorf("records after undoing delete = %d, want 1", n)
	}
}

func TestEditorScroll(t *testing.T) {
	m := newTestEditor(t)
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.top != 16 {
		t.Errorf("top after down = %v, want 16", m.top)
	}
	send(m, tea.KeyMsg{Type: tea.KeyPgUp})
	if m.top != 16-19*16 {
		t.Errorf("top after pgup = %v, want %v", m.top, 16-19*16)
	}
	send(m, tea.KeyMsg{Type: tea.KeyHome})
	if m.top != 0 {
		t.Errorf("top after home = %v, want 0", m.top)
	}
}

func TestEditorSave(t *testing.T) {
	m := newTestEditor(t)
	createRecord(t, m)

	send(m, keyRunes("s"))
	if m.dirty || !m.saved {
		t.Fatalf("after save: dirty = %v, saved = %v", m.dirty, m.saved)
	}
	doc, err := document.Load(m.path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(doc.Intervals) != 1 {
		t.Fatalf("saved intervals = %d, want 1", len(doc.Intervals))
	}
	if got := doc.Intervals[0]; got.Top != 104 || got.Base != 136 || got.Type != "interval" {
		t.Errorf("saved interval = %+v", got)
	}
	if len(doc.Tracks) != 2 || doc.Tracks[1].Constraint != "*" {
		t.Errorf("saved tracks = %+v", doc.Tracks)
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t)
	if cmd := send(m, keyRunes("q")); cmd == nil {
		t.Error("q on a clean document did not quit")
	}

	createRecord(t, m)
	if cmd := send(m, keyRunes("q")); cmd != nil {
		t.Error("first q with unsaved changes quit")
	}
	if !strings.Contains(m.message, "unsaved") {
		t.Errorf("message = %q, want an unsaved warning", m.message)
	}
	if cmd := send(m, keyRunes("q")); cmd == nil {
		t.Error("second q did not quit")
	}
}
