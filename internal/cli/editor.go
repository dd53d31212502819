package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/document"
	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics/cells"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/scene"
	"github.com/matzehuels/corescene/pkg/scene/event"
)

// Editor styles
var (
	editorBarStyle   = lipgloss.NewStyle().Foreground(colorWhite).Background(colorDim)
	editorDirtyStyle = lipgloss.NewStyle().Foreground(colorYellow).Background(colorDim).Bold(true)
	editorHelpStyle  = lipgloss.NewStyle().Foreground(colorGray).Background(colorDim)
)

const editorHelp = "drag: new  del: delete  ↑/↓: nudge  w: width  u/r: undo/redo  s: save  q: quit"

// =============================================================================
// editor - Terminal scene editor
// =============================================================================

// editor is the bubbletea model behind `corescene edit`. Every terminal cell
// stands for a cells.DefaultCellW×cells.DefaultCellH block of scene pixels;
// the last terminal row is the status bar.
type editor struct {
	path   string
	doc    *document.Document
	ctrl   *event.Controller
	grid   *cells.Grid
	logger *log.Logger

	// top is the scene y shown on the first grid row.
	top float64
	// col and row track the pointer cell.
	col, row int

	pressed bool
	dirty   bool
	saved   bool
	quit    bool // a quit with unsaved changes was refused once
	message string
}

// newEditor loads the document at path into an editable scene.
func newEditor(path string, logger *log.Logger) (*editor, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	stack := edit.NewStack(edit.WithLogger(logger))
	built, err := doc.Build(document.BuildOptions{Stack: stack, Logger: logger})
	if err != nil {
		return nil, err
	}
	m := &editor{
		path:   path,
		doc:    doc,
		ctrl:   event.NewController(built.Scene, logger),
		grid:   cells.New(80, 23),
		logger: logger,
		top:    built.Scene.ContentSize().Y,
	}
	built.Models.Subscribe(func(model.Event) {
		m.dirty = true
		m.quit = false
	})
	return m, nil
}

func (m *editor) Init() tea.Cmd {
	return nil
}

func (m *editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid = cells.New(max(msg.Width, 1), max(msg.Height-1, 1))
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m, m.key(msg)
	}
	return m, nil
}

// at maps a grid cell to the scene point at its centre.
func (m *editor) at(col, row int) geom.Point {
	p := m.grid.ToPixel(col, row)
	return geom.Pt(p.X, p.Y+m.top)
}

func (m *editor) clip() geom.Rect {
	w, h := m.grid.PixelSize()
	return geom.R(0, m.top, w, h)
}

func (m *editor) scroll(rows int) {
	m.top += float64(rows) * m.grid.CellH
}

func (m *editor) mouseEvent(msg tea.MouseMsg, button event.Button) *event.MouseEvent {
	var mods event.Modifier
	if m.pressed {
		mods |= event.Button1Down
	}
	if msg.Shift {
		mods |= event.ShiftDown
	}
	if msg.Ctrl {
		mods |= event.CtrlDown
	}
	if msg.Alt {
		mods |= event.AltDown
	}
	p := m.at(msg.X, msg.Y)
	return event.NewMouseEvent(scene.Contents, int(p.X), int(p.Y), button, mods)
}

func (m *editor) mouse(msg tea.MouseMsg) {
	_, rows := m.grid.Size()
	// The status bar is not part of the scene.
	msg.Y = min(msg.Y, rows-1)
	m.col, m.row = msg.X, msg.Y

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll(3)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pressed = true
		m.message = ""
		m.ctrl.MousePressed(m.mouseEvent(msg, event.Button1))
	case msg.Action == tea.MouseActionMotion && m.pressed:
		m.ctrl.MouseDragged(m.mouseEvent(msg, event.NoButton))
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.MouseMoved(m.mouseEvent(msg, event.NoButton))
	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		m.ctrl.MouseReleased(m.mouseEvent(msg, event.Button1))
	}
}

// sendKey delivers a full press and release of code to the scene.
func (m *editor) sendKey(code int, shift bool) {
	var mods event.Modifier
	if shift {
		mods = event.ShiftDown
	}
	m.ctrl.KeyPressed(event.NewKeyEvent(scene.Contents, code, 0, mods))
	m.ctrl.KeyReleased(event.NewKeyEvent(scene.Contents, code, 0, mods))
}

func (m *editor) key(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k != "q" && k != "esc" {
		m.quit = false
	}
	_, rows := m.grid.Size()
	_, selected := m.ctrl.Scene().Selection().First().(model.Model)

	switch k {
	case "ctrl+c":
		return tea.Quit
	case "q", "esc":
		if m.dirty && !m.quit {
			m.quit = true
			m.message = "unsaved changes: s saves, q again discards"
			return nil
		}
		return tea.Quit
	case "u", "ctrl+z":
		m.ctrl.Undo()
	case "r", "ctrl+y":
		m.ctrl.Redo()
	case "s", "ctrl+s":
		m.save()
	case "w":
		m.toggleWidth()
	case "delete", "backspace":
		m.sendKey(event.KeyDelete, false)
	case "up", "shift+up":
		if selected {
			m.sendKey(event.KeyUp, k == "shift+up")
		} else {
			m.scroll(-1)
		}
	case "down", "shift+down":
		if selected {
			m.sendKey(event.KeyDown, k == "shift+down")
		} else {
			m.scroll(1)
		}
	case "pgup":
		m.scroll(-rows)
	case "pgdown":
		m.scroll(rows)
	case "home":
		m.top = m.ctrl.Scene().ContentSize().Y
	}
	return nil
}

// toggleWidth switches the track under the pointer between its natural
// width and absorbing spare width. The change goes through the stack.
func (m *editor) toggleWidth() {
	s := m.ctrl.Scene()
	t := s.FindTrack(m.at(m.col, m.row), scene.Contents)
	if t == nil {
		return
	}
	old, next := s.Constraint(t), "*"
	if scene.Expandable(old) {
		next = ""
	}
	s.Stack().Execute(edit.NewAction("Width: "+t.Name(),
		func() { s.SetConstraint(t, next) },
		func() { s.SetConstraint(t, old) },
	))
	m.dirty, m.quit = true, false
}

// save writes the scene back to the document file.
func (m *editor) save() {
	m.doc.Capture(m.ctrl.Scene())
	if err := document.Save(m.doc, m.path); err != nil {
		m.logger.Error("save failed", "path", m.path, "err", err)
		m.message = "save failed: " + err.Error()
		return
	}
	m.dirty, m.saved, m.quit = false, true, false
	m.message = "saved " + filepath.Base(m.path)
}

func (m *editor) View() string {
	g := cells.New(m.grid.Size())
	clip := m.clip()
	m.ctrl.Paint(g, &clip)
	return g.String() + "\n" + m.statusBar()
}

func (m *editor) statusBar() string {
	name := filepath.Base(m.path)
	if m.dirty {
		name = editorDirtyStyle.Render(name + "*")
	} else {
		name = editorBarStyle.Render(name)
	}

	var parts []string
	if label := m.ctrl.Scene().Label(m.at(m.col, m.row), scene.Contents); label != "" {
		parts = append(parts, label)
	}
	st := m.ctrl.Scene().Stack()
	if l := st.UndoLabel(); l != "" {
		parts = append(parts, "undo "+l)
	}
	if l := st.RedoLabel(); l != "" {
		parts = append(parts, fmt.Sprintf("redo %s (%d)", l, len(st.RedoCommands())))
	}
	if m.message != "" {
		parts = append(parts, m.message)
	}

	left := name + editorBarStyle.Render("  "+strings.Join(parts, "  "))
	cols, _ := m.grid.Size()
	pad := cols - lipgloss.Width(left) - lipgloss.Width(editorHelp)
	if pad < 1 {
		return editorBarStyle.MaxWidth(cols).Render(left)
	}
	return left + editorBarStyle.Render(strings.Repeat(" ", pad)) + editorHelpStyle.Render(editorHelp)
}
