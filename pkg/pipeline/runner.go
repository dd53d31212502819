package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/corescene/pkg/cache"
	"github.com/matzehuels/corescene/pkg/observability"
	"github.com/matzehuels/corescene/pkg/render"
)

// Runner executes the pipeline against a cache.
//
// The Runner keeps no per-run state, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// selects the DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NullCache{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// run is the state of one Execute call. The scene is loaded on first use.
type run struct {
	r      *Runner
	opts   Options
	hash   string
	loaded *Loaded
	stats  *Stats
}

func (x *run) load(ctx context.Context) (*Loaded, error) {
	if x.loaded != nil {
		return x.loaded, nil
	}
	start := time.Now()
	l, err := Load(ctx, x.opts)
	if err != nil {
		return nil, err
	}
	x.stats.LoadTime = time.Since(start)
	x.loaded = l
	x.r.Logger.Debug("loaded document",
		"source", x.opts.Source,
		"tracks", len(l.Document.Tracks),
		"intervals", len(l.Document.Intervals),
		"paper", l.Paper.Name,
		"duration", x.stats.LoadTime)
	return l, nil
}

// Execute runs load, paginate and render for every requested format.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{DocHash: cache.Hash(opts.Data)}
	x := &run{r: r, opts: opts, hash: res.DocHash, stats: &res.Stats}

	n, hit, err := r.pageCount(ctx, x)
	if err != nil {
		return nil, err
	}
	res.Pages = n
	res.CacheInfo.PagesHit = hit

	pages, err := opts.pageList(n)
	if err != nil {
		return nil, err
	}

	renderStart, loadBefore := time.Now(), res.Stats.LoadTime
	res.CacheInfo.RenderHit = true
	for _, f := range opts.Formats {
		arts, hit, err := r.artifacts(ctx, x, f, pages)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		res.Artifacts = append(res.Artifacts, arts...)
		res.CacheInfo.RenderHit = res.CacheInfo.RenderHit && hit
	}
	res.Stats.RenderTime = time.Since(renderStart) - (res.Stats.LoadTime - loadBefore)
	res.Loaded = x.loaded

	r.Logger.Info("rendered document",
		"source", opts.Source,
		"pages", n,
		"artifacts", len(res.Artifacts),
		"cached", res.CacheInfo.RenderHit,
		"duration", res.Stats.LoadTime+res.Stats.RenderTime)
	return res, nil
}

// PageCount returns the number of pages the document spans under opts.
func (r *Runner) PageCount(ctx context.Context, opts Options) (int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return 0, fmt.Errorf("invalid options: %w", err)
	}
	x := &run{r: r, opts: opts, hash: cache.Hash(opts.Data), stats: &Stats{}}
	n, _, err := r.pageCount(ctx, x)
	return n, err
}

func (r *Runner) pageCount(ctx context.Context, x *run) (int, bool, error) {
	key := r.Keyer.PagesKey(x.hash, x.opts.PagesKeyOpts())
	if data, ok := r.get(ctx, key, "pages", x.opts.Refresh); ok {
		if n, err := strconv.Atoi(string(data)); err == nil && n > 0 {
			return n, true, nil
		}
	}
	l, err := x.load(ctx)
	if err != nil {
		return 0, false, err
	}
	n := l.Pageable.PageCount()
	r.set(ctx, key, "pages", []byte(strconv.Itoa(n)), x.opts.TTL)
	return n, false, nil
}

func (r *Runner) artifacts(ctx context.Context, x *run, f render.Format, pages []int) ([]render.Artifact, bool, error) {
	want := pages
	if f.MultiPage() {
		want = []int{0}
	}
	keys := make([]string, len(want))
	for i, p := range want {
		keys[i] = r.Keyer.ArtifactKey(x.hash, x.opts.ArtifactKeyOpts(f, p))
	}
	out := make([]render.Artifact, 0, len(want))
	for i, p := range want {
		data, ok := r.get(ctx, keys[i], "artifact", x.opts.Refresh)
		if !ok {
			break
		}
		out = append(out, render.Artifact{Page: p, Format: f, Data: data})
	}
	if len(out) == len(want) {
		return out, true, nil
	}

	l, err := x.load(ctx)
	if err != nil {
		return nil, false, err
	}
	out, err = RenderFormat(ctx, l, f, pages, x.opts)
	if err != nil {
		return nil, false, err
	}
	for i, a := range out {
		r.set(ctx, keys[i], "artifact", a.Data, x.opts.TTL)
	}
	return out, false, nil
}

// get reads key unless refresh is set. Cache errors count as misses.
func (r *Runner) get(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
