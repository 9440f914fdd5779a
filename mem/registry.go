package mem

import (
	"github.com/embeddedsql/memkit/internal/diag"
	"github.com/embeddedsql/memkit/pkg/types"
)

// Register pushes an already-allocated buffer onto the auto stack. The
// bookkeeping node is itself charged to the arena, so registration can fail
// with ErrOutOfMemory; in that case buf is NOT freed here. Ownership stays
// with the caller, who must release it.
//
// On success, ownership of buf transfers to the stack until teardown.
func (c *Context) Register(buf []byte, origin Origin) error {
	node, err := c.rawAlloc(autoNodeSize, origin, "register")
	if err != nil {
		return err
	}
	c.auto = append(c.auto, autoEntry{node: node, payload: buf})
	return nil
}

// AutoAlloc allocates a zeroed block of size bytes and registers it on the
// auto stack. If registration fails, the fresh block is freed here before
// the error propagates; unlike Register, this operation owns its own
// allocation. On success the stack owns the block until teardown.
func (c *Context) AutoAlloc(size int, origin Origin) ([]byte, error) {
	b, err := c.Alloc(size, origin)
	if err != nil {
		return nil, err
	}
	if err := c.Register(b, origin); err != nil {
		c.Free(b)
		return nil, err
	}
	return b, nil
}

// FreeAll is the full teardown: it releases every tracked payload and every
// bookkeeping node, most recent first, and resets the stack. It always
// proceeds; a set deferred-clear flag is force-cleared with a notice, since
// this is the unconditional release path used on error recovery or explicit
// user request. No-op on an empty stack.
func (c *Context) FreeAll() {
	if len(c.auto) == 0 {
		// Can only be set here if the flag-carrier charge failed.
		c.deferredClear = false
		return
	}

	if c.deferredClear {
		c.dc.Record(diag.Lifecycle(types.SevInfo, "free_all",
			"full teardown re-enabled auto-clear on exec"))
		c.deferredClear = false
	}

	for i := len(c.auto) - 1; i >= 0; i-- {
		c.Free(c.auto[i].payload)
		c.Free(c.auto[i].node)
	}
	c.auto = nil
}

// ClearAuto is the structural teardown invoked after a statement completes.
// When the deferred-clear flag is set it logs the deferral and leaves the
// stack fully intact for a later FreeAll. Otherwise it releases only the
// bookkeeping nodes and resets the stack; payloads are never touched on this
// path, since a higher layer has already taken ownership of them.
func (c *Context) ClearAuto() {
	if len(c.auto) == 0 {
		return
	}

	if c.deferredClear {
		c.dc.Record(diag.Lifecycle(types.SevInfo, "clear_auto",
			"not freeing tracked buffers; awaiting full teardown"))
		return
	}

	// Only free our own bookkeeping.
	for i := len(c.auto) - 1; i >= 0; i-- {
		c.Free(c.auto[i].node)
	}
	c.auto = nil
}

// DisableAutoClear sets the deferred-clear flag so the next structural
// teardown leaves the stack intact. On an empty stack a single flag-carrier
// entry (node, no payload) is pushed so the flag has somewhere to live in
// the accounting. Setting an already-set flag is a caller logic error:
// warned, not failed.
func (c *Context) DisableAutoClear() {
	c.dc.Record(diag.Lifecycle(types.SevInfo, "disable_auto_clear",
		"disabling auto-free on exec"))

	if len(c.auto) == 0 {
		// The flag is hoisted onto the context, so a failed charge here
		// only skews the node accounting; the flag still takes effect.
		if node, err := c.rawAlloc(autoNodeSize, OriginUnknown, "disable_auto_clear"); err == nil {
			c.auto = append(c.auto, autoEntry{node: node})
		}
	} else if c.deferredClear {
		c.dc.Record(diag.Lifecycle(types.SevWarning, "disable_auto_clear",
			"logic error: auto-clear on exec already disabled for this context"))
	}
	c.deferredClear = true
}

// AutoLen returns the number of entries on the auto stack, the flag carrier
// included.
func (c *Context) AutoLen() int {
	return len(c.auto)
}

// AutoClearDisabled reports whether the deferred-clear flag is set.
func (c *Context) AutoClearDisabled() bool {
	return c.deferredClear
}
