package mem

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/embeddedsql/memkit/internal/diag"
	"github.com/embeddedsql/memkit/mem/arena"
	"github.com/embeddedsql/memkit/pkg/types"
)

// Context is the per-execution-context allocation state: an arena backend,
// a diagnostics collector, and the auto stack with its deferred-clear flag.
//
// A Context is not thread-safe. The isolation model is one Context per
// thread of control, owned exclusively; see the package documentation.
type Context struct {
	ar arena.Arena
	dc *diag.Collector

	// auto is the stack of tracked allocations, most recent last.
	// Teardown walks it in reverse for most-recent-first release order.
	auto []autoEntry

	// deferredClear suppresses the next structural teardown. It is a
	// property of the stack as a whole; the flag-carrier entry pushed on an
	// empty stack only preserves the node accounting.
	deferredClear bool

	closed bool
}

type config struct {
	arena  arena.Arena
	logger *slog.Logger
}

// Option configures a Context.
type Option func(*config)

// WithArena selects the raw allocation backend. The Context takes ownership
// and releases it on Close. The default is a heap-backed arena.
func WithArena(a arena.Arena) Option {
	return func(c *config) { c.arena = a }
}

// WithLogger forwards every recorded diagnostic to the given logger.
// Diagnostics are collected either way.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// live counts contexts that have been created but not yet closed or
// finalized. Used for leak auditing in tests and shutdown checks.
var live atomic.Int64

// New creates an execution context. A finalizer performs the equivalent of
// full teardown if the owner never calls Close, as a safety net against
// leaks from threads of control that exit without cleanup.
func New(opts ...Option) *Context {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	ar := cfg.arena
	if ar == nil {
		ar = arena.NewHeap()
	}

	c := &Context{
		ar: ar,
		dc: diag.NewCollector(cfg.logger),
	}
	live.Add(1)
	runtime.SetFinalizer(c, (*Context).finalize)
	return c
}

// Close performs full teardown and releases the arena. Idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	runtime.SetFinalizer(c, nil)
	live.Add(-1)

	c.FreeAll()
	return c.ar.Release()
}

// finalize is the safety-net teardown for contexts that were never closed.
func (c *Context) finalize() {
	c.dc.Record(diag.Lifecycle(types.SevWarning, "finalize",
		"context finalized without Close; releasing tracked allocations"))
	c.closed = true
	live.Add(-1)
	c.FreeAll()
	_ = c.ar.Release()
}

// Diagnostics returns the finalized diagnostic report collected so far.
func (c *Context) Diagnostics() *types.DiagnosticReport {
	return c.dc.Report()
}

// Live returns the number of contexts created but not yet closed.
func Live() int64 {
	return live.Load()
}

// -----------------------------------------------------------------------------
// Process-wide default context
// -----------------------------------------------------------------------------
//
// When the runtime is built without concurrency awareness, all statement
// code shares this single context through the package-level wrappers. That
// configuration is unsafe under true concurrent use; this is an explicit
// precondition, not a guarantee.

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-wide context, creating it on first use.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultCtx = New()
	})
	return defaultCtx
}

// Alloc allocates from the process-wide context.
func Alloc(size int, origin Origin) ([]byte, error) {
	return Default().Alloc(size, origin)
}

// Dup duplicates text through the process-wide context.
func Dup(text []byte, origin Origin) ([]byte, error) {
	return Default().Dup(text, origin)
}

// Free releases a buffer through the process-wide context.
func Free(b []byte) {
	Default().Free(b)
}

// Register pushes buf onto the process-wide auto stack.
func Register(buf []byte, origin Origin) error {
	return Default().Register(buf, origin)
}

// AutoAlloc allocates and registers on the process-wide auto stack.
func AutoAlloc(size int, origin Origin) ([]byte, error) {
	return Default().AutoAlloc(size, origin)
}

// FreeAll performs full teardown of the process-wide auto stack.
func FreeAll() {
	Default().FreeAll()
}

// ClearAuto performs structural teardown of the process-wide auto stack.
func ClearAuto() {
	Default().ClearAuto()
}

// DisableAutoClear sets the deferred-clear flag on the process-wide context.
func DisableAutoClear() {
	Default().DisableAutoClear()
}
