// Package arena provides the raw allocation backends used by the mem
// registry.
//
// # Overview
//
// The registry in package mem tracks allocations per execution context; this
// package supplies the storage those allocations come from. Backends share
// one small contract: zero-initialized blocks, explicit release of the whole
// backing store, and a real failure mode (ErrNoSpace) so out-of-memory
// handling upstream is exercised by ordinary code, not simulation.
//
// # Arena Interface
//
// The core abstraction is the Arena interface:
//
//   - Alloc(size): allocate a zero-initialized block
//   - Free(b): return a block (may be a no-op for bump backends)
//   - Release(): tear down the backing store; Alloc fails afterwards
//
// # Implementations
//
// HeapArena: Go-heap backed, the default
//
//   - Alloc never fails short of the Go runtime itself failing
//   - Free and Release are logical no-ops (the collector reclaims)
//
// BumpArena: fixed-capacity bump pointer
//
//   - O(1) allocation, 8-byte aligned
//   - Blocks are never reused; Free is a no-op, Release drops the store
//   - Fails with ErrNoSpace when the capacity is exhausted
//
// MmapArena: anonymous mapping (unix), bump allocation inside it
//
//   - Backing pages come from mmap, not the Go heap
//   - Release unmaps; double-release is tolerated
//   - On non-unix platforms it falls back to heap-backed storage
//
// # Usage Example
//
//	a, err := arena.NewBump(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer a.Release()
//
//	b, err := a.Alloc(256)
//	if err != nil {
//	    return err // ErrNoSpace when exhausted
//	}
//	copy(b, payload)
//
// # Thread Safety
//
// Arena instances are not thread-safe. Each execution context owns its arena
// exclusively; see package mem for the isolation model.
package arena
