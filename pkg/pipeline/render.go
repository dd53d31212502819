package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/corescene/pkg/observability"
	"github.com/matzehuels/corescene/pkg/render"
)

// RenderFormat exports the pages of l listed in pages in format f. PDF
// ignores pages and always yields one artifact with every page.
func RenderFormat(ctx context.Context, l *Loaded, f render.Format, pages []int, opts Options) ([]render.Artifact, error) {
	hooks := observability.Pipeline()
	n := len(pages)
	if f.MultiPage() {
		n = l.Pageable.PageCount()
	}
	hooks.OnRenderStart(ctx, string(f), n)
	start := time.Now()

	out, err := renderFormat(ctx, l, f, pages, opts)
	hooks.OnRenderComplete(ctx, string(f), n, time.Since(start), err)
	return out, err
}

func renderFormat(ctx context.Context, l *Loaded, f render.Format, pages []int, opts Options) ([]render.Artifact, error) {
	ropts := render.Options{Format: f, Section: opts.Section, Zoom: opts.Zoom}
	if f.MultiPage() {
		return render.All(ctx, l.Pageable, ropts)
	}
	out := make([]render.Artifact, 0, len(pages))
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := render.Page(l.Pageable, p, ropts)
		if err != nil {
			return nil, err
		}
		out = append(out, render.Artifact{Page: p, Format: f, Data: data})
	}
	return out, nil
}
