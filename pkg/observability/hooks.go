// Package observability lets a program watch bintree at work.
//
// The pipeline, the caches and the HTTP server report events to three sets of
// hooks: [PipelineHooks] for tree building and rendering, [CacheHooks] for
// artifact lookups, and [HTTPHooks] for API requests. Until something is
// registered, every event goes to a no-op implementation, so the libraries
// never depend on a metrics or tracing backend.
//
// Register hooks once, before the first tree is built:
//
//	observability.SetPipelineHooks(promHooks)
//	observability.SetHTTPHooks(promHooks)
//
// and emit events from library code through the accessors:
//
//	start := time.Now()
//	observability.Pipeline().OnBuildStart(ctx, len(vals))
//	root := tree.BuildMinHeight(vals)
//	observability.Pipeline().OnBuildComplete(ctx, tree.Size(root), tree.MaxDepth(root), time.Since(start), nil)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes the two pipeline stages.
type PipelineHooks interface {
	// OnBuildStart fires before the values are ordered and built into a tree.
	OnBuildStart(ctx context.Context, valueCount int)
	// OnBuildComplete fires after the build with the tree's size and depth.
	OnBuildComplete(ctx context.Context, nodeCount, depth int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes artifact cache traffic. kind names the cached artifact,
// for example "text" or "svg".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	// OnCacheSet reports a stored artifact and its size in bytes.
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks observes requests to the render API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires for requests answered with an error body.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards request events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry holds the active hooks. Reads vastly outnumber writes, which only
// happen at startup and in tests.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

// update runs fn with the write lock held.
func (r *registry) update(fn func()) {
	r.mu.Lock()
	fn()
	r.mu.Unlock()
}

// SetPipelineHooks installs h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		hooks.update(func() { hooks.pipeline = h })
	}
}

// SetCacheHooks installs h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		hooks.update(func() { hooks.cache = h })
	}
}

// SetHTTPHooks installs h for API request events. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		hooks.update(func() { hooks.http = h })
	}
}

// Pipeline returns the active pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the active cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the active request hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset puts the no-op hooks back. Tests that install hooks defer it.
func Reset() {
	fresh := newRegistry()
	hooks.update(func() {
		hooks.pipeline = fresh.pipeline
		hooks.cache = fresh.cache
		hooks.http = fresh.http
	})
}
