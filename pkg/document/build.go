package document

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/adapt"
	"github.com/matzehuels/corescene/pkg/edit"
	"github.com/matzehuels/corescene/pkg/interval"
	"github.com/matzehuels/corescene/pkg/model"
	"github.com/matzehuels/corescene/pkg/paper"
	"github.com/matzehuels/corescene/pkg/scene"
	"github.com/matzehuels/corescene/pkg/track"
)

// BuildOptions configures Build. The zero value uses the default track
// registry, no command stack and the default logger.
type BuildOptions struct {
	Registry *track.Registry
	Stack    *edit.Stack
	Adapters *adapt.Manager
	Logger   *log.Logger
}

// Built is a document turned into a live scene.
type Built struct {
	Scene  *scene.Scene
	Models *model.DefaultContainer
}

// Build creates the scene the document declares, with its records bound
// to the scene through a fresh container.
func (d *Document) Build(opts BuildOptions) (*Built, error) {
	reg := opts.Registry
	if reg == nil {
		reg = track.Default
	}
	sopts := []scene.Option{scene.WithLogger(opts.Logger)}
	if opts.Stack != nil {
		sopts = append(sopts, scene.WithStack(opts.Stack))
	}
	if opts.Adapters != nil {
		sopts = append(sopts, scene.WithAdapters(opts.Adapters))
	}
	if strings.EqualFold(d.Origin, string(scene.OriginBase)) {
		sopts = append(sopts, scene.WithOrigin(scene.OriginBase))
	}
	s := scene.New(sopts...)

	if d.Scale > 0 {
		s.SetScalingFactor(d.Scale)
	}
	if d.Width > 0 {
		s.SetPreferredWidth(d.Width)
	}
	if d.Borders != nil {
		s.SetRenderHint(scene.HintBorders, strconv.FormatBool(*d.Borders))
	}
	if d.Title != "" {
		s.SetParameter("title", d.Title)
	}

	for _, spec := range d.Tracks {
		t, err := reg.New(spec.Type)
		if err != nil {
			return nil, err
		}
		for k, v := range spec.Params {
			t.SetParameter(k, v)
		}
		s.AddTrack(t, spec.Constraint)
	}

	c := model.NewContainer()
	for _, rec := range d.Intervals {
		var iv *interval.Interval
		if rec.ID != "" {
			iv = interval.NewWithID(rec.ID, rec.Type, rec.Top, rec.Base)
		} else {
			iv = interval.New(rec.Type, rec.Top, rec.Base)
		}
		iv.SetLabel(rec.Label)
		c.Add(iv)
	}
	s.SetModels(c)
	return &Built{Scene: s, Models: c}, nil
}

// Capture copies the tracks, constraints, parameters and records of s
// back into d. Output settings are left alone.
func (d *Document) Capture(s *scene.Scene) {
	d.Tracks = d.Tracks[:0]
	for _, t := range s.Tracks() {
		spec := Track{Type: t.Name(), Constraint: s.Constraint(t)}
		if p := t.Parameters(); len(p) > 0 {
			spec.Params = p
		}
		d.Tracks = append(d.Tracks, spec)
	}
	if f := s.ScalingFactor(); f > 0 && s.RenderHint(scene.HintScale) != "" {
		d.Scale = f
	}

	d.Intervals = nil
	if s.Models() == nil {
		return
	}
	for _, m := range s.Models().Models() {
		iv, ok := m.(*interval.Interval)
		if !ok {
			continue
		}
		d.Intervals = append(d.Intervals, Interval{
			ID:    iv.ID(),
			Type:  iv.Type(),
			Top:   iv.Top(),
			Base:  iv.Base(),
			Label: iv.Label(),
		})
	}
}

// PaperSize resolves the document's paper strictly; blank means the locale
// default.
func (d *Document) PaperSize() (paper.Paper, error) {
	return paper.Lookup(d.Paper)
}

// Pageable wraps s for paged output on p. Without per_page the whole
// content fits on one page; without start paging begins at the top of the
// content.
func (d *Document) Pageable(s *scene.Scene, p paper.Paper) *scene.Pageable {
	opts := []scene.PageableOption{
		scene.WithHeader(d.HeaderIncluded()),
		scene.WithFooter(d.FooterIncluded()),
	}
	scale := s.ScalingFactor()
	if scale <= 0 {
		scale = 1
	}
	content := s.ContentSize()
	start := content.Y / scale
	if d.Start != nil {
		start = *d.Start
	}
	perPage := d.PerPage
	if perPage <= 0 {
		perPage = math.Max(content.MaxY()/scale-start, 1)
	}
	return scene.NewPageable(s, p, start, perPage, opts...)
}
