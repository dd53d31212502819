package pipeline

import (
	"cmp"
	"context"
	"time"

	"github.com/matzehuels/corescene/pkg/document"
	"github.com/matzehuels/corescene/pkg/observability"
	"github.com/matzehuels/corescene/pkg/paper"
	"github.com/matzehuels/corescene/pkg/scene"
)

// Loaded is a document built into a paged scene.
type Loaded struct {
	Document *document.Document
	Built    *document.Built
	Paper    paper.Paper
	Pageable *scene.Pageable
}

// Load decodes opts.Data, applies the paging overrides and defaults, builds
// the scene and paginates it.
func Load(ctx context.Context, opts Options) (*Loaded, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	l, err := load(opts)
	var tracks, intervals int
	if l != nil {
		tracks, intervals = len(l.Document.Tracks), len(l.Document.Intervals)
	}
	hooks.OnLoadComplete(ctx, opts.Source, tracks, intervals, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	hooks.OnPaginate(ctx, l.Paper.Name, l.Pageable.PerPage(), l.Pageable.PageCount())
	return l, nil
}

func load(opts Options) (*Loaded, error) {
	doc, err := document.Parse(opts.Data, opts.Format)
	if err != nil {
		return nil, err
	}
	doc.Paper = cmp.Or(opts.Paper, doc.Paper, opts.PaperDefault)
	doc.PerPage = cmp.Or(opts.PerPage, doc.PerPage, opts.PerPageDefault)
	doc.Header = cmp.Or(doc.Header, opts.Header)
	doc.Footer = cmp.Or(doc.Footer, opts.Footer)
	doc.Borders = cmp.Or(doc.Borders, opts.Borders)
	p, err := doc.PaperSize()
	if err != nil {
		return nil, err
	}
	built, err := doc.Build(document.BuildOptions{Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	return &Loaded{
		Document: doc,
		Built:    built,
		Paper:    p,
		Pageable: doc.Pageable(built.Scene, p),
	}, nil
}
