// Package mem implements the allocation-tracking layer of the embedded-SQL
// client runtime.
//
// # Overview
//
// Generated statement code performs many small heap allocations per executed
// statement: bound parameter buffers, result conversion buffers, string
// duplicates. This package reclaims all of them automatically when a
// statement finishes, without the generated code tracking each allocation
// individually, while still letting a caller opt out of automatic
// reclamation for buffers it hands to the application.
//
// # Execution Contexts
//
// All state lives on a Context: an arena backend, a diagnostics collector,
// and the auto stack, a most-recently-registered-first list of tracked
// buffers plus one deferred-clear flag. Each execution context owns exactly
// one Context exclusively; there is no cross-context sharing and no locking.
// A runtime that is not concurrency-aware can use the process-wide Default
// context and the package-level wrappers over it, with the explicit
// precondition that concurrent use of that configuration is unsafe.
//
// # Lifecycle Operations
//
//   - Register(buf, origin): push an already-allocated buffer onto the auto
//     stack; ownership transfers to the stack
//   - AutoAlloc(size, origin): allocate and register in one step
//   - ClearAuto(): structural teardown after a statement completes; discards
//     bookkeeping nodes only, and defers entirely when the deferred-clear
//     flag is set
//   - FreeAll(): full teardown; releases every payload and node
//     unconditionally and resets the flag
//   - DisableAutoClear(): set the deferred-clear flag so results survive the
//     next statement execution
//
// # Failure Model
//
// The only error kind is ErrOutOfMemory, raised when the arena backend
// cannot satisfy a request. Failures are never retried; they propagate
// immediately to the caller and are reported to the diagnostics collector
// with the caller's origin token. A failed registration never frees the
// caller's buffer; ownership reverts to the caller so a double free is
// impossible. Logic errors (disabling auto-clear twice, full teardown while
// disabled) are logged and execution continues.
//
// # Usage Example
//
//	ctx := mem.New()
//	defer ctx.Close()
//
//	buf, err := ctx.AutoAlloc(256, origin)
//	if err != nil {
//	    return err
//	}
//	// ... convert a result column into buf ...
//
//	ctx.ClearAuto() // statement done; buf and its bookkeeping are gone
//
// # Related Packages
//
//   - github.com/embeddedsql/memkit/mem/arena: raw allocation backends
//   - github.com/embeddedsql/memkit/session: statement-lifecycle glue
//   - github.com/embeddedsql/memkit/pkg/types: diagnostic records and limits
package mem
