package mem

import (
	"errors"
	"fmt"

	"github.com/embeddedsql/memkit/internal/buf"
	"github.com/embeddedsql/memkit/internal/diag"
	"github.com/embeddedsql/memkit/pkg/types"
)

// rawAlloc is the single funnel to the arena. Every failure is reported to
// the diagnostics collector with the caller's origin and wrapped in
// ErrOutOfMemory before it propagates. Failures are never retried.
func (c *Context) rawAlloc(size int, origin Origin, op string) ([]byte, error) {
	b, err := c.ar.Alloc(size)
	if err != nil {
		c.dc.Record(diag.OutOfMemory(op, int(origin)))
		return nil, fmt.Errorf("mem: %s %d bytes (origin %d): %w",
			op, size, origin, errors.Join(ErrOutOfMemory, err))
	}
	return b, nil
}

// Alloc allocates a zero-initialized block of size bytes. The caller owns
// the block until it registers it or frees it.
func (c *Context) Alloc(size int, origin Origin) ([]byte, error) {
	return c.rawAlloc(size, origin, "alloc")
}

// AllocArray allocates a zeroed block for n elements of elemSize bytes,
// validating the product against overflow and the request limit first.
func (c *Context) AllocArray(n, elemSize int, origin Origin) ([]byte, error) {
	if n > types.MaxArrayElems {
		return nil, fmt.Errorf("mem: alloc array (origin %d): %d elements exceeds limit %d",
			origin, n, types.MaxArrayElems)
	}
	total, err := buf.CheckAllocSize(n, elemSize, types.MaxAllocSize)
	if err != nil {
		return nil, fmt.Errorf("mem: alloc array (origin %d): %w", origin, err)
	}
	return c.rawAlloc(total, origin, "alloc_array")
}

// Realloc grows or shrinks b to size bytes. On success the original block is
// invalidated and replaced; on failure the original block is untouched and
// still owned by the caller. Registered buffers must not be resized; the
// stack would keep releasing the stale block.
func (c *Context) Realloc(b []byte, size int, origin Origin) ([]byte, error) {
	nb, err := c.rawAlloc(size, origin, "realloc")
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	c.Free(b)
	return nb, nil
}

// Dup copies text into a fresh block. nil text returns nil with no error;
// that is an absent value, not a failure.
func (c *Context) Dup(text []byte, origin Origin) ([]byte, error) {
	if text == nil {
		return nil, nil
	}
	nb, err := c.rawAlloc(len(text), origin, "dup")
	if err != nil {
		return nil, err
	}
	copy(nb, text)
	return nb, nil
}

// DupString copies s into a fresh block.
func (c *Context) DupString(s string, origin Origin) ([]byte, error) {
	nb, err := c.rawAlloc(len(s), origin, "dup")
	if err != nil {
		return nil, err
	}
	copy(nb, s)
	return nb, nil
}

// Free releases a block previously allocated from this context. No-op on
// nil. Must be called exactly once per allocation.
func (c *Context) Free(b []byte) {
	if b == nil {
		return
	}
	_ = c.ar.Free(b)
}
