// Package pipeline turns scene documents into exported pages.
//
// The same pipeline backs `corescene render` and the HTTP server. It runs
// three stages:
//
//  1. Load: decode the document and apply overrides
//  2. Paginate: build the scene and cut it into pages for the paper
//  3. Render: export pages as SVG, PNG or a single PDF
//
// Page counts and artifacts are cached under the hash of the document
// bytes, so a run that finds everything in the cache never builds a scene.
//
// # Usage
//
//	opts, err := pipeline.FromFile("core.toml")
//	opts.Formats = []render.Format{render.FormatPNG}
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, opts)
//	for _, a := range result.Artifacts {
//	    os.WriteFile(a.Name("core"), a.Data, 0o644)
//	}
package pipeline

import (
	"io"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/cache"
	"github.com/matzehuels/corescene/pkg/document"
	apperr "github.com/matzehuels/corescene/pkg/errors"
	"github.com/matzehuels/corescene/pkg/render"
)

// DefaultTTL is how long cached pages and artifacts live.
const DefaultTTL = 24 * time.Hour

// Options configures a pipeline run. It can be decoded from API requests;
// Data, TTL and Logger are set by the caller.
type Options struct {
	// Source names the document in logs, usually its path or store id.
	Source string          `json:"source,omitempty"`
	Data   []byte          `json:"-"`
	Format document.Format `json:"format"`

	// Paper and PerPage override the document when set.
	Paper   string  `json:"paper,omitempty"`
	PerPage float64 `json:"per_page,omitempty"`
	// The remaining paging settings apply only where the document leaves
	// them unset.
	PaperDefault   string  `json:"paper_default,omitempty"`
	PerPageDefault float64 `json:"per_page_default,omitempty"`
	Header         *bool   `json:"header,omitempty"`
	Footer         *bool   `json:"footer,omitempty"`
	Borders        *bool   `json:"borders,omitempty"`

	Formats []render.Format `json:"formats,omitempty"`
	// Pages restricts single-page formats to these pages. Empty means all.
	Pages   []int   `json:"pages,omitempty"`
	Zoom    float64 `json:"zoom,omitempty"`
	Section string  `json:"section,omitempty"`
	// Refresh skips cache reads but still writes fresh results.
	Refresh bool `json:"refresh,omitempty"`

	TTL    time.Duration `json:"-"`
	Logger *log.Logger   `json:"-"`
}

// FromFile reads a document from disk into Options.
func FromFile(path string) (Options, error) {
	f, err := document.FormatFor(path)
	if err != nil {
		return Options{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "document %s", path)
		}
		return Options{}, err
	}
	return Options{Source: path, Data: data, Format: f}, nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	f, err := document.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{render.FormatSVG}
	}
	for i, f := range o.Formats {
		pf, err := render.ParseFormat(string(f))
		if err != nil {
			return err
		}
		o.Formats[i] = pf
	}
	o.Formats = slices.Compact(o.Formats)
	for _, p := range o.Pages {
		if p < 1 {
			return apperr.New(apperr.ErrCodeInvalidPage, "page %d out of range", p)
		}
	}
	if o.PerPage < 0 || o.PerPageDefault < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "per_page must be positive, got %g", min(o.PerPage, o.PerPageDefault))
	}
	if o.Zoom <= 0 {
		o.Zoom = 1
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// PagesKeyOpts returns cache key options for the page count.
func (o *Options) PagesKeyOpts() cache.PagesKeyOpts {
	return cache.PagesKeyOpts{
		Paper:          o.Paper,
		PerPage:        o.PerPage,
		PaperDefault:   o.PaperDefault,
		PerPageDefault: o.PerPageDefault,
		Header:         o.Header,
		Footer:         o.Footer,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact. Page is 0 for
// multi-page formats.
func (o *Options) ArtifactKeyOpts(f render.Format, page int) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		PagesKeyOpts: o.PagesKeyOpts(),
		Format:       string(f),
		Page:         page,
		Section:      o.Section,
		Borders:      o.Borders,
	}
	if f == render.FormatPNG {
		k.Zoom = o.Zoom
	}
	return k
}

// pageList resolves which pages to export out of n.
func (o *Options) pageList(n int) ([]int, error) {
	if len(o.Pages) == 0 {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil
	}
	for _, p := range o.Pages {
		if p > n {
			return nil, apperr.New(apperr.ErrCodeInvalidPage, "page %d out of range 1-%d", p, n)
		}
	}
	return o.Pages, nil
}

// Result is the output of Execute.
type Result struct {
	// DocHash is the content hash the cache keys are built from.
	DocHash string
	// Loaded is nil when every answer came from the cache.
	Loaded    *Loaded
	Pages     int
	Artifacts []render.Artifact
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds stage timings.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were answered by the cache.
type CacheInfo struct {
	PagesHit  bool
	RenderHit bool // every requested artifact was cached
}
