// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends to the theme and storage packages.
// Consumers register hooks at startup to receive events about theme
// resolution, preference storage and HTTP traffic.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// [OTelHooks] is the bundled implementation; it records every hook as an
// event on the span found in the context.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewOTelHooks()
//	    observability.SetThemeHooks(hooks)
//	    observability.SetStoreHooks(hooks)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Theme().OnResolved(ctx, "dark", observability.SourceSystem)
package observability

import (
	"context"
	"sync"
	"time"
)

// Resolution sources reported by ThemeHooks.OnResolved.
const (
	SourceStorage = "storage"
	SourceSystem  = "system"
	SourceDefault = "default"
)

// Change causes reported by ThemeHooks.OnChanged.
const (
	CauseUser   = "user"
	CauseSystem = "system"
)

// =============================================================================
// Theme Hooks
// =============================================================================

// ThemeHooks receives events from theme preference managers.
type ThemeHooks interface {
	// OnResolved records the first concrete value and where it came from.
	OnResolved(ctx context.Context, value, source string)

	// OnChanged records a transition between two concrete values.
	OnChanged(ctx context.Context, from, to, cause string)

	// OnDegraded records a swallowed storage or signal failure.
	OnDegraded(ctx context.Context, component string, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from key-value store operations.
type StoreHooks interface {
	// OnHit records a successful read.
	OnHit(ctx context.Context, backend string)

	// OnMiss records a read that found nothing.
	OnMiss(ctx context.Context, backend string)

	// OnSet records a write.
	OnSet(ctx context.Context, backend string, size int)

	// OnError records a failed operation.
	OnError(ctx context.Context, backend, op string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the web server.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopThemeHooks is a no-op implementation of ThemeHooks.
type NoopThemeHooks struct{}

func (NoopThemeHooks) OnResolved(context.Context, string, string)        {}
func (NoopThemeHooks) OnChanged(context.Context, string, string, string) {}
func (NoopThemeHooks) OnDegraded(context.Context, string, error)         {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnHit(context.Context, string)                  {}
func (NoopStoreHooks) OnMiss(context.Context, string)                 {}
func (NoopStoreHooks) OnSet(context.Context, string, int)             {}
func (NoopStoreHooks) OnError(context.Context, string, string, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	themeHooks ThemeHooks = NoopThemeHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetThemeHooks registers custom theme hooks.
// This should be called once at application startup before any manager is created.
func SetThemeHooks(h ThemeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		themeHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store is opened.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Theme returns the registered theme hooks.
func Theme() ThemeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return themeHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
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
	themeHooks = NoopThemeHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}
