// Package observability provides hooks for metrics, tracing, and logging.
//
// The layout engine is a pure in-memory transform and emits nothing itself.
// The shell (CLI commands and the HTTP server) reports events around it
// through the hooks registered here. Hooks default to no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetDocumentHooks(&myDocumentHooks{})
//	    // ... run application
//	}
//
// Callers emit events around each operation:
//
//	observability.Layout().OnLayoutStart(ctx, source, itemCount)
//	res := layout.Run(scene, cfg)
//	observability.Layout().OnLayoutComplete(ctx, source, len(res.Passes), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events around layout invocations.
type LayoutHooks interface {
	// OnLayoutStart records the start of a layout over itemCount items.
	OnLayoutStart(ctx context.Context, source string, itemCount int)
	// OnLayoutComplete records a finished layout and the number of passes it ran.
	OnLayoutComplete(ctx context.Context, source string, passes int, duration time.Duration)
}

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives events from document import and export.
type DocumentHooks interface {
	// OnImport records a document read, successful or not.
	OnImport(ctx context.Context, path string, items, edges int, err error)

	// OnExport records a document write.
	OnExport(ctx context.Context, path string, size int, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration) {}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnImport(context.Context, string, int, int, error) {}
func (NoopDocumentHooks) OnExport(context.Context, string, int, error)      {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                       {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks   LayoutHooks   = NoopLayoutHooks{}
	documentHooks DocumentHooks = NoopDocumentHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetDocumentHooks registers custom document hooks.
// This should be called once at application startup.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	documentHooks = NoopDocumentHooks{}
	httpHooks = NoopHTTPHooks{}
}
