package event

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Controller connects a host's input and paint loop to a scene. It keeps
// the selection in step with presses, forwards events to the scene's
// handler while the scene is editable and holds the latest feedback until
// the next paint.
type Controller struct {
	scene    *scene.Scene
	handler  Handler
	feedback *Feedback
	cursor   Cursor
	logger   *log.Logger
}

// NewController returns a controller for s. The scene's Handler capability
// is used when one is registered; otherwise events go through a Dispatcher.
func NewController(s *scene.Scene, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	h, ok := adapt.To[Handler](s, s.Adapters())
	if !ok {
		h = NewDispatcher(s)
	}
	return &Controller{scene: s, handler: h, logger: logger}
}

// Scene returns the controlled scene.
func (c *Controller) Scene() *scene.Scene { return c.scene }

// Editable reports whether events reach the handler: the scene needs a
// command stack that currently accepts commands.
func (c *Controller) Editable() bool {
	st := c.scene.Stack()
	return st != nil && st.CanExecute()
}

// Feedback returns the feedback waiting to be painted, or nil.
func (c *Controller) Feedback() *Feedback { return c.feedback }

// Cursor returns the cursor hint of the most recent feedback.
func (c *Controller) Cursor() Cursor { return c.cursor }

func (c *Controller) update(fb *Feedback) {
	c.feedback = fb
	if fb == nil || !c.Editable() {
		c.cursor = CursorDefault
	} else {
		c.cursor = fb.Cursor
	}
}

func (c *Controller) dispatch(fn func() *Feedback) {
	if !c.Editable() {
		c.update(nil)
		return
	}
	c.update(fn())
}

// MousePressed selects the element under the pointer and starts a gesture.
func (c *Controller) MousePressed(e *MouseEvent) {
	var sel scene.Selection
	if o := c.scene.FindAt(e.Point(), e.Part); o != nil && o != any(c.scene) {
		sel = scene.NewSelection(c.scene.Adapters(), o)
	}
	c.scene.SetSelection(sel)
	c.dispatch(func() *Feedback { return c.handler.MousePressed(e) })
}

func (c *Controller) MouseDragged(e *MouseEvent) {
	c.dispatch(func() *Feedback { return c.handler.MouseDragged(e) })
}

func (c *Controller) MouseMoved(e *MouseEvent) {
	c.dispatch(func() *Feedback { return c.handler.MouseMoved(e) })
}

func (c *Controller) MouseReleased(e *MouseEvent) {
	c.dispatch(func() *Feedback { return c.handler.MouseReleased(e) })
}

func (c *Controller) MouseClicked(e *MouseEvent) {
	c.dispatch(func() *Feedback { return c.handler.MouseClicked(e) })
}

func (c *Controller) KeyPressed(e *KeyEvent) {
	c.dispatch(func() *Feedback { return c.handler.KeyPressed(e) })
}

func (c *Controller) KeyReleased(e *KeyEvent) {
	c.dispatch(func() *Feedback { return c.handler.KeyReleased(e) })
}

func (c *Controller) KeyTyped(e *KeyEvent) {
	c.dispatch(func() *Feedback { return c.handler.KeyTyped(e) })
}

// Undo undoes the last command, if the stack allows it.
func (c *Controller) Undo() {
	if st := c.scene.Stack(); st != nil {
		st.Undo()
	}
}

// Redo redoes the last undone command, if the stack allows it.
func (c *Controller) Redo() {
	if st := c.scene.Stack(); st != nil {
		st.Redo()
	}
}

// Paint renders the scene contents within clip, or all of it when clip is
// nil, then any pending feedback on top. The feedback is dropped
// afterwards; the cursor hint is kept.
func (c *Controller) Paint(g graphics.Graphics, clip *geom.Rect) {
	c.scene.RenderContents(g, clip)
	fb := c.feedback
	c.feedback = nil
	if !fb.NeedsRendering() {
		return
	}
	r := c.scene.ContentSize()
	if clip != nil {
		r = *clip
	}
	g.PushTransform(geom.Translate(0, -r.Y))
	g.PushState()
	fb.Render(g)
	g.PopState()
	g.PopTransform()
}
