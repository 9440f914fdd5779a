package arena

// HeapArena is the default backend: blocks come straight from the Go heap
// and are reclaimed by the collector once the registry drops its references.
// It exists so the registry's ownership bookkeeping works identically whether
// or not a fixed-capacity backend is in play.
type HeapArena struct {
	released bool
}

// NewHeap creates a heap-backed arena.
func NewHeap() *HeapArena {
	return &HeapArena{}
}

// Alloc returns a fresh zeroed block.
func (a *HeapArena) Alloc(size int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if size < 0 {
		return nil, ErrBadSize
	}
	return make([]byte, size), nil
}

// Free drops the reference; the collector does the rest.
func (a *HeapArena) Free(b []byte) error {
	return nil
}

// Release marks the arena unusable. There is no backing store to tear down.
func (a *HeapArena) Release() error {
	a.released = true
	return nil
}

// Compile-time interface check
var _ Arena = (*HeapArena)(nil)
