package arena

// Arena defines the contract for raw allocation backends.
//
// Implementations:
//   - HeapArena: Go-heap backed, never exhausts
//   - BumpArena: fixed-capacity bump pointer
//   - MmapArena: anonymous mapping with bump allocation (unix)
//
// All blocks returned by Alloc are zero-initialized. Free must be safe to
// call exactly once per block and must accept nil as a no-op.
type Arena interface {
	// Alloc allocates a zero-initialized block of size bytes.
	Alloc(size int) ([]byte, error)

	// Free returns a block to the arena. Bump-style backends reclaim
	// storage wholesale on Release instead, making this a no-op.
	Free(b []byte) error

	// Release tears down the backing store. Alloc fails with ErrReleased
	// afterwards. Release is idempotent.
	Release() error
}
