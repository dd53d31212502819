package render

import (
	"context"
	"fmt"
	"slices"
	"strings"

	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/fonts"
	"github.com/matzehuels/corescene/pkg/geom"
	"github.com/matzehuels/corescene/pkg/graphics"
	"github.com/matzehuels/corescene/pkg/graphics/raster"
	"github.com/matzehuels/corescene/pkg/graphics/svg"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Format is an export format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// Formats lists the export formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Formats, f) {
		return "", apperr.New(apperr.ErrCodeInvalidFormat, "unknown export format %q (use svg, png or pdf)", name)
	}
	return f, nil
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// MultiPage reports whether one artifact holds every page.
func (f Format) MultiPage() bool { return f == FormatPDF }

// Options configures an export.
type Options struct {
	Format Format
	// Section is drawn in the section band of every page when set.
	Section string
	// Zoom scales PNG output (default 1).
	Zoom float64
}

// Artifact is one exported file. Page is 0 for multi-page artifacts.
type Artifact struct {
	Page   int
	Format Format
	Data   []byte
}

// Name returns the file name of a for the given base name.
func (a Artifact) Name(base string) string {
	if a.Page == 0 {
		return fmt.Sprintf("%s.%s", base, a.Format)
	}
	return fmt.Sprintf("%s-p%d.%s", base, a.Page, a.Format)
}

// DrawPage draws page (1-based) of p onto g in paper coordinates.
func DrawPage(p *scene.Pageable, page int, g graphics.Graphics, section string) {
	s := p.Scene()
	pp := p.Paper()

	g.PushTransform(geom.Translate(float64(pp.PrintableX), float64(pp.PrintableY)))
	defer g.PopTransform()
	if section != "" {
		p.RenderSectionName(section, page, g)
	}

	g.PushTransform(geom.Translate(0, scene.SectionNameHeight))
	defer g.PopTransform()
	if p.HeaderIncluded() {
		p.RenderHeader(page, g)
		g.PushTransform(geom.Translate(0, float64(s.HeaderHeight()-1)))
		defer g.PopTransform()
	}

	p.RenderContents(page, g)

	if p.FooterIncluded() {
		g.PushTransform(geom.Translate(0, p.ContentSize(page).H-1))
		defer g.PopTransform()
		p.RenderFooter(page, g)
	}
}

// Page exports a single page as SVG or PNG.
func Page(p *scene.Pageable, page int, opts Options) ([]byte, error) {
	if page < 1 || page > p.PageCount() {
		return nil, apperr.New(apperr.ErrCodeInvalidPage, "page %d out of range 1-%d", page, p.PageCount())
	}
	pp := p.Paper()
	switch opts.Format {
	case FormatSVG:
		c := svg.New(float64(pp.Width), float64(pp.Height), svg.WithBackground(graphics.White))
		DrawPage(p, page, c, opts.Section)
		return c.Bytes(), nil
	case FormatPNG:
		zoom := opts.Zoom
		if zoom <= 0 {
			zoom = 1
		}
		var ropts []raster.Option
		if face, err := fonts.Face(fonts.DefaultSize * zoom); err == nil {
			ropts = append(ropts, raster.WithFontFace(face))
		}
		c := raster.New(int(float64(pp.Width)*zoom), int(float64(pp.Height)*zoom), ropts...)
		c.PushTransform(geom.Scale(zoom, zoom))
		DrawPage(p, page, c, opts.Section)
		c.PopTransform()
		data, err := c.PNG()
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeRenderFailed, err, "encode page %d", page)
		}
		return data, nil
	}
	return nil, apperr.New(apperr.ErrCodeUnsupported, "format %q has no single-page form", opts.Format)
}

// All exports every page of p.
func All(ctx context.Context, p *scene.Pageable, opts Options) ([]Artifact, error) {
	n := p.PageCount()
	if opts.Format == FormatPDF {
		pages := make([][]byte, 0, n)
		for i := 1; i <= n; i++ {
			data, err := Page(p, i, Options{Format: FormatSVG, Section: opts.Section})
			if err != nil {
				return nil, err
			}
			pages = append(pages, data)
		}
		pdf, err := ToPDF(ctx, pages...)
		if err != nil {
			return nil, err
		}
		return []Artifact{{Format: FormatPDF, Data: pdf}}, nil
	}

	out := make([]Artifact, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := Page(p, i, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, Artifact{Page: i, Format: opts.Format, Data: data})
	}
	return out, nil
}
