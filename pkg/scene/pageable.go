package scene

import (
	"math"
	"strconv"

	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/paper"
)

// SectionNameHeight is the height reserved on every page for the section label.
const SectionNameHeight = 20

// pageEpsilon absorbs floating point noise when content ends exactly on a
// page boundary.
const pageEpsilon = 1e-9

// Pageable splits the content of a scene into pages showing a fixed number
// of domain units each. It wraps the scene without copying it; the scene's
// scaling factor and preferred width are owned by the Pageable while it is
// in use.
type Pageable struct {
	scene   *Scene
	paper   paper.Paper
	start   float64
	perPage float64
	header  bool
	footer  bool
}

// PageableOption configures a Pageable.
type PageableOption func(*Pageable)

// WithHeader controls whether the header band is budgeted on every page.
func WithHeader(on bool) PageableOption { return func(p *Pageable) { p.header = on } }

// WithFooter controls whether the footer band is budgeted on every page.
func WithFooter(on bool) PageableOption { return func(p *Pageable) { p.footer = on } }

// NewPageable wraps s for output on p, starting at domain coordinate start
// with perPage units per page. The scene is widened to the printable width
// and rescaled so one page of content fills the printable height.
func NewPageable(s *Scene, p paper.Paper, start, perPage float64, opts ...PageableOption) *Pageable {
	pg := &Pageable{
		scene:  s,
		paper:  p,
		start:  start,
		header: true,
		footer: true,
	}
	for _, opt := range opts {
		opt(pg)
	}
	s.SetPreferredWidth(float64(p.PrintableWidth))
	pg.SetPerPage(perPage)
	return pg
}

// NewPageableFromContent is NewPageable with start at the top of the
// scene's current content.
func NewPageableFromContent(s *Scene, p paper.Paper, perPage float64, opts ...PageableOption) *Pageable {
	start := s.ContentSize().Y / s.ScalingFactor()
	return NewPageable(s, p, start, perPage, opts...)
}

func (p *Pageable) Scene() *Scene        { return p.scene }
func (p *Pageable) Paper() paper.Paper   { return p.paper }
func (p *Pageable) Start() float64       { return p.start }
func (p *Pageable) SetStart(v float64)   { p.start = v }
func (p *Pageable) PerPage() float64     { return p.perPage }
func (p *Pageable) HeaderIncluded() bool { return p.header }
func (p *Pageable) FooterIncluded() bool { return p.footer }

// SetPerPage sets the domain units per page and rescales the scene:
//
//	scale = (printableHeight - section - header - footer) / perPage
func (p *Pageable) SetPerPage(perPage float64) {
	p.perPage = perPage
	content := float64(p.paper.PrintableHeight - SectionNameHeight)
	if p.header {
		content -= float64(p.scene.HeaderHeight())
	}
	if p.footer {
		content -= float64(p.scene.FooterHeight())
	}
	p.scene.SetScalingFactor(content / perPage)
}

// PageCount returns the number of pages needed to show the content from
// start to the bottom of the scene. It is at least 1.
func (p *Pageable) PageCount() int {
	content := p.scene.ContentSize()
	extent := content.MaxY()/p.scene.ScalingFactor() - p.start
	n := int(math.Ceil(extent/p.perPage - pageEpsilon))
	return max(n, 1)
}

// ContentSize returns the content rectangle shown on page (1-based).
func (p *Pageable) ContentSize(page int) geom.Rect {
	content := p.scene.ContentSize()
	scale := p.scene.ScalingFactor()
	y := (p.start + float64(page-1)*p.perPage) * scale
	return geom.R(content.X, y, content.W, p.perPage*scale)
}

// RenderHeader renders the header with the page hint set.
func (p *Pageable) RenderHeader(page int, g graphics.Graphics) {
	p.withPage(page, func() { p.scene.RenderHeader(g) })
}

// RenderContents renders the content of page with the page hint set.
func (p *Pageable) RenderContents(page int, g graphics.Graphics) {
	p.withPage(page, func() {
		r := p.ContentSize(page)
		p.scene.RenderContents(g, &r)
	})
}

// RenderFooter renders the footer with the page hint set.
func (p *Pageable) RenderFooter(page int, g graphics.Graphics) {
	p.withPage(page, func() { p.scene.RenderFooter(g) })
}

// RenderSectionName draws name in the section band at the top of the page.
func (p *Pageable) RenderSectionName(name string, page int, g graphics.Graphics) {
	p.withPage(page, func() {
		g.DrawString(0, SectionNameHeight-6, name)
	})
}

func (p *Pageable) withPage(page int, fn func()) {
	p.scene.SetRenderHint(HintPage, strconv.Itoa(page))
	defer p.scene.SetRenderHint(HintPage, "")
	fn()
}
