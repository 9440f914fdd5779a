//go:build unix

package arena

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/embeddedsql/memkit/internal/buf"
	"github.com/embeddedsql/memkit/pkg/types"
)

// MmapArena allocates its backing store from an anonymous mapping instead of
// the Go heap, then bump-allocates inside it. Release unmaps the region, so
// every block handed out becomes invalid at once; the registry guarantees it
// drops its references first.
type MmapArena struct {
	store []byte
	off   int

	released bool
}

// NewMmap creates an mmap-backed arena with the given capacity in bytes.
// capacity <= 0 selects types.DefaultArenaCapacity. Mapping failure is
// reported as ErrNoSpace wrapping the system error.
func NewMmap(capacity int) (*MmapArena, error) {
	if capacity <= 0 {
		capacity = types.DefaultArenaCapacity
	}
	data, err := unix.Mmap(-1, 0, capacity,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Join(ErrNoSpace, err)
	}
	return &MmapArena{store: data}, nil
}

// Alloc allocates a zeroed block inside the mapping. Anonymous pages arrive
// zero-filled and blocks are never reused, so no explicit clearing is needed.
func (a *MmapArena) Alloc(size int) ([]byte, error) {
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

	b := a.store[a.off : a.off+size : a.off+size]
	a.off = end
	return b, nil
}

// Free is a no-op; the mapping is reclaimed wholesale by Release.
func (a *MmapArena) Free(b []byte) error {
	return nil
}

// Release unmaps the backing store. Double-release is a no-op.
func (a *MmapArena) Release() error {
	if a.released || a.store == nil {
		a.released = true
		return nil
	}
	err := unix.Munmap(a.store)
	a.store = nil
	a.off = 0
	a.released = true
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

// Cap returns the mapped capacity in bytes.
func (a *MmapArena) Cap() int { return len(a.store) }

// Compile-time interface check
var _ Arena = (*MmapArena)(nil)
