package arena

import (
	"github.com/embeddedsql/memkit/internal/buf"
	"github.com/embeddedsql/memkit/pkg/types"
)

// BumpArena is a fixed-capacity, append-only backend using a simple
// bump-pointer approach for O(1) allocation.
//
// Key characteristics:
//   - O(1) allocation: pure bump pointer, no free lists, no maps
//   - 8-byte alignment for every block
//   - Blocks are never reused: Free is a no-op, storage is reclaimed
//     wholesale by Release
//   - Exhaustion surfaces as ErrNoSpace, which is what makes the
//     out-of-memory paths in package mem reachable under test
type BumpArena struct {
	store []byte

	// off is the bump pointer: the offset of the next allocation.
	off int

	released bool
}

// NewBump creates a bump arena with the given capacity in bytes.
// capacity <= 0 selects types.DefaultArenaCapacity.
func NewBump(capacity int) (*BumpArena, error) {
	if capacity <= 0 {
		capacity = types.DefaultArenaCapacity
	}
	return &BumpArena{store: make([]byte, capacity)}, nil
}

// Alloc allocates a zeroed block using bump-pointer allocation.
func (a *BumpArena) Alloc(size int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if size < 0 || size > types.MaxAllocSize {
		return nil, ErrBadSize
	}

	need := buf.Align8(size)
	end, ok := buf.AddOverflowSafe(a.off, need)
	if !ok || end > len(a.store) {
		return nil, ErrNoSpace
	}

	// Full-slice expression so a caller's append cannot bleed into the
	// neighbouring block.
	b := a.store[a.off : a.off+size : a.off+size]
	a.off = end
	return b, nil
}

// Free is a no-op: bump storage is never reused and is reclaimed wholesale
// by Release.
func (a *BumpArena) Free(b []byte) error {
	return nil
}

// Release drops the backing store.
func (a *BumpArena) Release() error {
	a.store = nil
	a.off = 0
	a.released = true
	return nil
}

// Cap returns the arena capacity in bytes.
func (a *BumpArena) Cap() int { return len(a.store) }

// Remaining returns the number of bytes still available for allocation.
func (a *BumpArena) Remaining() int { return len(a.store) - a.off }

// Compile-time interface check
var _ Arena = (*BumpArena)(nil)
