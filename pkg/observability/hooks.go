// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about pipeline stages and river tracing.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the generator packages
// stay free of any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetRiverHooks(&myRiverHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks around each stage:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageElevation)
//	// ... propagate elevation ...
//	observability.Pipeline().OnStageComplete(ctx, observability.StageElevation, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names reported to PipelineHooks.
const (
	StageGeometry  = "geometry"
	StageGraph     = "graph"
	StageCoastline = "coastline"
	StageElevation = "elevation"
	StageRivers    = "rivers"
	StageRender    = "render"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the generation pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
}

// =============================================================================
// River Hooks
// =============================================================================

// RiverHooks receives one event per river the tracer attempts.
type RiverHooks interface {
	// OnRiverTraced records a river that reached the coast after steps edges.
	OnRiverTraced(ctx context.Context, source, steps int)

	// OnRiverAbandoned records a walk that ran out of steps.
	OnRiverAbandoned(ctx context.Context, steps int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnStageComplete(context.Context, string, time.Duration, error) {}

// NoopRiverHooks is a no-op implementation of RiverHooks.
type NoopRiverHooks struct{}

func (NoopRiverHooks) OnRiverTraced(context.Context, int, int) {}
func (NoopRiverHooks) OnRiverAbandoned(context.Context, int)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	riverHooks    RiverHooks    = NoopRiverHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetRiverHooks registers custom river hooks.
func SetRiverHooks(h RiverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		riverHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Rivers returns the registered river hooks.
func Rivers() RiverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return riverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	riverHooks = NoopRiverHooks{}
}
