package track

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Constructor creates a fresh track.
type Constructor func() scene.Track

// Registry maps track type names to constructors. Names are matched
// case-insensitively.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Default knows the built-in tracks.
var Default = func() *Registry {
	r := NewRegistry()
	r.Register("ruler", func() scene.Track { return NewRuler() })
	r.Register("intervals", func() scene.Track { return NewIntervals() })
	return r
}()

// Register adds or replaces the constructor for name.
func (r *Registry) Register(name string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[strings.ToLower(name)] = c
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for n := range r.ctors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// New creates a track of the named type. Unknown names yield an
// INVALID_TRACK error that suggests the closest known name.
func (r *Registry) New(name string) (scene.Track, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	c, ok := r.ctors[key]
	r.mu.RUnlock()
	if ok {
		return c(), nil
	}
	msg := fmt.Sprintf("unknown track type %q", name)
	if s := r.Suggest(key); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return nil, apperr.New(apperr.ErrCodeInvalidTrack, "%s", msg)
}

// Suggest returns the registered name closest to key, or "" if none is
// within two edits.
func (r *Registry) Suggest(key string) string {
	best, bestDist := "", 3
	for _, n := range r.Names() {
		if d := levenshtein.ComputeDistance(key, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
