// Package observability lets callers watch corescene at work without
// corescene depending on a metrics or tracing library.
//
// The pipeline, the caches, the HTTP server and the undo stack report events
// to whatever hooks are registered here. Nothing is registered by default, so
// every call lands on a no-op.
//
//	observability.SetPipelineHooks(&promPipeline{})
//	defer observability.Reset()
//
// Reporting side:
//
//	observability.Pipeline().OnRenderStart(ctx, "png", pages)
//	// ... render ...
//	observability.Pipeline().OnRenderComplete(ctx, "png", pages, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the document pipeline.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, tracks, intervals int, duration time.Duration, err error)

	OnPaginate(ctx context.Context, paper string, perPage float64, pages int)

	OnRenderStart(ctx context.Context, format string, pages int)
	OnRenderComplete(ctx context.Context, format string, pages int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups. keyType is the kind of
// entry, "artifact" or "pages".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP server. OnRequest runs before
// routing and sees the request path; OnResponse gets the matched route
// pattern.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// CommandHooks receives edit commands as they run on a command stack.
// action is "execute", "undo" or "redo".
type CommandHooks interface {
	OnCommand(action, label string)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnPaginate(context.Context, string, float64, int)                       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, int)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// NoopCommandHooks is a no-op implementation of CommandHooks.
type NoopCommandHooks struct{}

func (NoopCommandHooks) OnCommand(string, string) {}

// slot holds one registered hook set.
type slot[H any] struct {
	mu   sync.RWMutex
	cur  H
	noop H
}

func newSlot[H any](noop H) *slot[H] {
	return &slot[H]{cur: noop, noop: noop}
}

func (s *slot[H]) get() H {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[H]) set(h H) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[H]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	pipelineHooks = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheHooks    = newSlot[CacheHooks](NoopCacheHooks{})
	serverHooks   = newSlot[ServerHooks](NoopServerHooks{})
	commandHooks  = newSlot[CommandHooks](NoopCommandHooks{})
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineHooks.set(h) }

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) { cacheHooks.set(h) }

// SetServerHooks registers server hooks. nil is ignored.
func SetServerHooks(h ServerHooks) { serverHooks.set(h) }

// SetCommandHooks registers command hooks. nil is ignored.
func SetCommandHooks(h CommandHooks) { commandHooks.set(h) }

func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func Server() ServerHooks     { return serverHooks.get() }
func Commands() CommandHooks  { return commandHooks.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	serverHooks.reset()
	commandHooks.reset()
}
