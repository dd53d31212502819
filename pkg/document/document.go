package document

import (
	"math"
	"strings"

	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Document is a scene definition.
type Document struct {
	Title   string  `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Origin  string  `json:"origin,omitempty" toml:"origin,omitempty" yaml:"origin,omitempty"`
	Scale   float64 `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"`
	Width   float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Borders *bool   `json:"borders,omitempty" toml:"borders,omitempty" yaml:"borders,omitempty"`

	Paper   string   `json:"paper,omitempty" toml:"paper,omitempty" yaml:"paper,omitempty"`
	PerPage float64  `json:"per_page,omitempty" toml:"per_page,omitempty" yaml:"per_page,omitempty"`
	Start   *float64 `json:"start,omitempty" toml:"start,omitempty" yaml:"start,omitempty"`
	Header  *bool    `json:"header,omitempty" toml:"header,omitempty" yaml:"header,omitempty"`
	Footer  *bool    `json:"footer,omitempty" toml:"footer,omitempty" yaml:"footer,omitempty"`

	Tracks    []Track    `json:"tracks" toml:"tracks" yaml:"tracks"`
	Intervals []Interval `json:"intervals,omitempty" toml:"intervals,omitempty" yaml:"intervals,omitempty"`
}

// Track declares one track of the scene.
type Track struct {
	Type       string            `json:"type" toml:"type" yaml:"type"`
	Constraint string            `json:"constraint,omitempty" toml:"constraint,omitempty" yaml:"constraint,omitempty"`
	Params     map[string]string `json:"params,omitempty" toml:"params,omitempty" yaml:"params,omitempty"`
}

// Interval is one interval record.
type Interval struct {
	ID    string  `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Type  string  `json:"type" toml:"type" yaml:"type"`
	Top   float64 `json:"top" toml:"top" yaml:"top"`
	Base  float64 `json:"base" toml:"base" yaml:"base"`
	Label string  `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
}

// HeaderIncluded reports whether pages carry the header band.
func (d *Document) HeaderIncluded() bool { return d.Header == nil || *d.Header }

// FooterIncluded reports whether pages carry the footer band.
func (d *Document) FooterIncluded() bool { return d.Footer == nil || *d.Footer }

// Validate checks the document for values no scene can represent.
func (d *Document) Validate() error {
	switch strings.ToLower(d.Origin) {
	case "", string(scene.OriginTop), string(scene.OriginBase):
	default:
		return apperr.New(apperr.ErrCodeInvalidDocument, "origin must be %q or %q, got %q",
			scene.OriginTop, scene.OriginBase, d.Origin)
	}
	if d.Scale < 0 || !finite(d.Scale) {
		return apperr.New(apperr.ErrCodeInvalidDocument, "scale must be positive, got %v", d.Scale)
	}
	if d.PerPage < 0 || !finite(d.PerPage) {
		return apperr.New(apperr.ErrCodeInvalidDocument, "per_page must be positive, got %v", d.PerPage)
	}
	for i, t := range d.Tracks {
		if strings.TrimSpace(t.Type) == "" {
			return apperr.New(apperr.ErrCodeInvalidDocument, "track %d: missing type", i+1)
		}
	}
	seen := make(map[string]bool, len(d.Intervals))
	for i, iv := range d.Intervals {
		if strings.TrimSpace(iv.Type) == "" {
			return apperr.New(apperr.ErrCodeInvalidDocument, "interval %d: missing type", i+1)
		}
		if !finite(iv.Top) || !finite(iv.Base) {
			return apperr.New(apperr.ErrCodeInvalidDocument, "interval %d: top and base must be finite", i+1)
		}
		if iv.ID == "" {
			continue
		}
		if seen[iv.ID] {
			return apperr.New(apperr.ErrCodeInvalidDocument, "interval %d: duplicate id %q", i+1, iv.ID)
		}
		seen[iv.ID] = true
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
