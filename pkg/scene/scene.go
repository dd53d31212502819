// Package scene arranges tracks side by side, lays them out against width
// constraints and renders them band by band.
//
// A [Scene] is single-threaded: mutation, validation and rendering are meant
// to run on the goroutine that owns the scene. Layout is lazy. Structural
// changes call [Scene.Invalidate], which announces the change once, and the
// next call that needs geometry runs [Scene.Validate].
//
// # Constraints
//
// Every track is added with an optional width constraint, see
// [ParseConstraint]. Tracks whose constraint contains '*' are expandable and
// absorb the difference between the natural total width and the preferred
// width of the scene.
//
// # Pagination
//
// [Pageable] wraps a scene and splits its continuous content into pages of a
// fixed number of domain units, scaling the scene so that one page exactly
// fills the printable area of a [paper.Paper].
package scene

import (
	"math"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/notify"
)

// Default band heights in pixels.
const (
	DefaultHeaderHeight = 36
	DefaultFooterHeight = 36
)

type entry struct {
	track      Track
	constraint string
	x, width   int
}

type bounds struct {
	width, y, height int
}

// Scene is an ordered composition of tracks plus the layout, selection and
// undo state they share.
type Scene struct {
	entries []*entry
	valid   atomic.Bool

	contents       bounds
	preferredWidth int
	headerHeight   int
	footerHeight   int

	hints      map[string]string
	parameters map[string]string

	selection Selection
	stack     *edit.Stack
	models    model.Container
	modelSub  *notify.Subscription

	adapters *adapt.Manager
	logger   *log.Logger

	changes    notify.Bus[*Scene]
	selections notify.Bus[Selection]
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAdapters sets the capability manager consulted by Adapter and by
// selections created by the scene.
func WithAdapters(m *adapt.Manager) Option {
	return func(s *Scene) { s.adapters = m }
}

// WithOrigin sets the initial origin.
func WithOrigin(o Origin) Option {
	return func(s *Scene) { s.hints[HintOrigin] = string(o) }
}

// WithStack attaches a command stack.
func WithStack(st *edit.Stack) Option {
	return func(s *Scene) { s.stack = st }
}

// WithBandHeights overrides the header and footer heights.
func WithBandHeights(header, footer int) Option {
	return func(s *Scene) {
		s.headerHeight = header
		s.footerHeight = footer
	}
}

// New returns an empty scene with origin top.
func New(opts ...Option) *Scene {
	s := &Scene{
		preferredWidth: -1,
		headerHeight:   DefaultHeaderHeight,
		footerHeight:   DefaultFooterHeight,
		hints:          map[string]string{HintOrigin: string(OriginTop)},
		parameters:     make(map[string]string),
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTrack appends t with the given width constraint and invalidates the scene.
func (s *Scene) AddTrack(t Track, constraint string) {
	s.entries = append(s.entries, &entry{track: t, constraint: constraint})
	t.SetScene(s)
	t.SetModels(s.models)
	s.logger.Debug("track added", "track", t.Name(), "constraint", constraint)
	s.Invalidate()
}

// RemoveTrack detaches t. It reports whether t was part of the scene.
func (s *Scene) RemoveTrack(t Track) bool {
	i := s.index(t)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	t.SetScene(nil)
	t.SetModels(nil)
	s.logger.Debug("track removed", "track", t.Name())
	s.Invalidate()
	return true
}

// Tracks returns the tracks in document order.
func (s *Scene) Tracks() []Track {
	out := make([]Track, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.track
	}
	return out
}

// Constraint returns the width constraint t was added with.
func (s *Scene) Constraint(t Track) string {
	if i := s.index(t); i >= 0 {
		return s.entries[i].constraint
	}
	return ""
}

// SetConstraint replaces the width constraint of t.
func (s *Scene) SetConstraint(t Track, constraint string) {
	if i := s.index(t); i >= 0 {
		s.entries[i].constraint = constraint
		s.Invalidate()
	}
}

// TrackBounds returns the layout rectangle of t as of the last layout.
// It does not validate the scene.
func (s *Scene) TrackBounds(t Track) (geom.Rect, bool) {
	i := s.index(t)
	if i < 0 {
		return geom.Rect{}, false
	}
	e := s.entries[i]
	return geom.R(float64(e.x), float64(s.contents.y), float64(e.width), float64(s.contents.height)), true
}

func (s *Scene) index(t Track) int {
	return slices.IndexFunc(s.entries, func(e *entry) bool { return e.track == t })
}

// Invalidate marks the layout stale. Only the transition from valid to
// invalid notifies subscribers, so repeated calls produce one notification.
func (s *Scene) Invalidate() {
	if s.valid.Swap(false) {
		s.changes.Publish(s)
	}
}

// Validate lays the tracks out if the scene is invalid. The scene is marked
// valid before layout runs, so an Invalidate issued during layout schedules
// another pass instead of being lost.
func (s *Scene) Validate() {
	if !s.valid.Swap(true) {
		s.layoutTracks()
	}
}

// Valid reports whether the current layout is up to date.
func (s *Scene) Valid() bool { return s.valid.Load() }

// OnChange subscribes fn to scene invalidation.
func (s *Scene) OnChange(fn func(*Scene)) *notify.Subscription {
	return s.changes.Subscribe(fn)
}

// ContentSize validates the scene and returns its content bounds.
func (s *Scene) ContentSize() geom.Rect {
	s.Validate()
	return geom.R(0, float64(s.contents.y), float64(s.contents.width), float64(s.contents.height))
}

// HeaderSize validates the scene and returns the header band.
func (s *Scene) HeaderSize() geom.Rect {
	s.Validate()
	return geom.R(0, 0, float64(s.contents.width), float64(s.headerHeight))
}

// FooterSize validates the scene and returns the footer band.
func (s *Scene) FooterSize() geom.Rect {
	s.Validate()
	return geom.R(0, 0, float64(s.contents.width), float64(s.footerHeight))
}

func (s *Scene) HeaderHeight() int { return s.headerHeight }
func (s *Scene) FooterHeight() int { return s.footerHeight }

// PreferredWidth returns the preferred width, or -1 when unset.
func (s *Scene) PreferredWidth() int { return s.preferredWidth }

// SetPreferredWidth stores ceil(w) and invalidates. A non-positive width
// unsets it.
func (s *Scene) SetPreferredWidth(w float64) {
	s.preferredWidth = int(math.Ceil(w))
	if s.preferredWidth <= 0 {
		s.preferredWidth = -1
	}
	s.Invalidate()
}

// Stack returns the command stack, which may be nil.
func (s *Scene) Stack() *edit.Stack { return s.stack }

// SetStack attaches a command stack.
func (s *Scene) SetStack(st *edit.Stack) { s.stack = st }

// Adapters returns the capability manager, which may be nil.
func (s *Scene) Adapters() *adapt.Manager { return s.adapters }

// Adapter implements adapt.Adaptable by delegating to the scene's manager.
func (s *Scene) Adapter(t reflect.Type) any {
	if s.adapters == nil {
		return nil
	}
	return s.adapters.Adapter(s, t)
}

// Models returns the bound model container, which may be nil.
func (s *Scene) Models() model.Container { return s.models }

// SetModels binds every track to c and follows its changes: additions
// invalidate and select the new model, removals clear a selection headed by
// the removed model, and updates invalidate.
func (s *Scene) SetModels(c model.Container) {
	if s.modelSub != nil {
		s.modelSub.Cancel()
		s.modelSub = nil
	}
	s.models = c
	for _, e := range s.entries {
		e.track.SetModels(c)
	}
	if c != nil {
		s.modelSub = c.Subscribe(s.modelChanged)
	}
	s.Invalidate()
}

func (s *Scene) modelChanged(ev model.Event) {
	switch ev.Kind {
	case model.Added:
		s.Invalidate()
		s.SetSelection(NewSelection(s.adapters, ev.Model))
	case model.Removed:
		if sameObject(s.selection.First(), ev.Model) {
			s.SetSelection(Empty)
		}
		s.Invalidate()
	case model.Updated:
		s.Invalidate()
	}
}

// Selection returns the current selection.
func (s *Scene) Selection() Selection { return s.selection }

// SetSelection replaces the selection, notifying subscribers only when the
// new selection differs from the old one.
func (s *Scene) SetSelection(sel Selection) {
	old := s.selection
	s.selection = sel
	if !old.Equal(sel) {
		s.logger.Debug("selection changed", "selection", sel)
		s.selections.Publish(sel)
	}
}

// OnSelection subscribes fn to selection changes.
func (s *Scene) OnSelection(fn func(Selection)) *notify.Subscription {
	return s.selections.Subscribe(fn)
}

// FindTrack returns the first track, in document order, whose horizontal
// band contains p.X. Both band edges are inclusive, so a point on the
// boundary between two tracks belongs to the left one.
func (s *Scene) FindTrack(p geom.Point, _ Part) Track {
	for _, e := range s.entries {
		if p.X >= float64(e.x) && p.X <= float64(e.x+e.width) {
			return e.track
		}
	}
	return nil
}

// FindAt returns the element under p: the track's hit, the track itself
// when it reports nothing, or the scene when no track covers p.
func (s *Scene) FindAt(p geom.Point, part Part) any {
	t := s.FindTrack(p, part)
	if t == nil {
		return s
	}
	if hit := t.FindAt(p, part); hit != nil {
		return hit
	}
	return t
}

// Label returns the label for p from the element under it or, failing
// that, from its track. It returns "" when neither provides one.
func (s *Scene) Label(p geom.Point, part Part) string {
	t := s.FindTrack(p, part)
	if t == nil {
		return ""
	}
	var lp LabelProvider
	if hit := t.FindAt(p, part); hit != nil {
		lp, _ = adapt.To[LabelProvider](hit, s.adapters)
	}
	if lp == nil {
		lp, _ = adapt.To[LabelProvider](t, s.adapters)
	}
	if lp == nil {
		return ""
	}
	return lp.Label(p, part)
}

// CreatedTypes returns the model types creatable by any track.
func (s *Scene) CreatedTypes() []string {
	var out []string
	for _, e := range s.entries {
		out = append(out, e.track.CreatedTypes()...)
	}
	return out
}

var (
	_ adapt.Adaptable = (*Scene)(nil)
	_ LabelProvider   = (*Scene)(nil)
)
