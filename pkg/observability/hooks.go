// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about package resolution and git subprocess runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, a TTY progress bar)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetResolutionHooks(&myResolutionHooks{})
//	    observability.SetGitHooks(&myGitHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Resolution().OnPackageStart(ctx, module)
//	// ... resolve the package ...
//	observability.Resolution().OnPackageComplete(ctx, module, state, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Resolution Hooks
// =============================================================================

// ResolutionHooks receives events from workspace resolution runs.
type ResolutionHooks interface {
	// OnResolveStart records the start of a batch of packages.
	OnResolveStart(ctx context.Context, packages int)

	// OnPackageStart records one package entering resolution.
	OnPackageStart(ctx context.Context, module string)

	// OnPackageComplete records one package leaving resolution with its
	// outcome state ("current", "calculated", ...) or error.
	OnPackageComplete(ctx context.Context, module, state string, duration time.Duration, err error)

	// OnResolveComplete records the end of the batch.
	OnResolveComplete(ctx context.Context, packages, failed int, duration time.Duration)
}

// =============================================================================
// Git Hooks
// =============================================================================

// GitHooks receives events from git subprocess invocations.
type GitHooks interface {
	// OnCommand records a git command about to run.
	OnCommand(ctx context.Context, dir string, args []string)

	// OnCommandComplete records a finished git command.
	OnCommandComplete(ctx context.Context, dir string, args []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopResolutionHooks is a no-op implementation of ResolutionHooks.
type NoopResolutionHooks struct{}

func (NoopResolutionHooks) OnResolveStart(context.Context, int)    {}
func (NoopResolutionHooks) OnPackageStart(context.Context, string) {}
func (NoopResolutionHooks) OnPackageComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopResolutionHooks) OnResolveComplete(context.Context, int, int, time.Duration) {}

// NoopGitHooks is a no-op implementation of GitHooks.
type NoopGitHooks struct{}

func (NoopGitHooks) OnCommand(context.Context, string, []string) {}
func (NoopGitHooks) OnCommandComplete(context.Context, string, []string, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	resolutionHooks ResolutionHooks = NoopResolutionHooks{}
	gitHooks        GitHooks        = NoopGitHooks{}
	hooksMu         sync.RWMutex
)

// SetResolutionHooks registers custom resolution hooks.
// This should be called once at application startup before any resolution runs.
func SetResolutionHooks(h ResolutionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolutionHooks = h
	}
}

// SetGitHooks registers custom git hooks.
// This should be called once at application startup before any git queries.
func SetGitHooks(h GitHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gitHooks = h
	}
}

// Resolution returns the registered resolution hooks.
func Resolution() ResolutionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolutionHooks
}

// Git returns the registered git hooks.
func Git() GitHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gitHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	resolutionHooks = NoopResolutionHooks{}
	gitHooks = NoopGitHooks{}
}
