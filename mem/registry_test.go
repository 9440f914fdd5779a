package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedsql/memkit/mem/arena"
	"github.com/embeddedsql/memkit/pkg/types"
)

// TestAutoAllocThenFreeAll_ReleasesEverythingOnce tests that full teardown
// releases every payload and node exactly once and empties the stack.
func TestAutoAllocThenFreeAll_ReleasesEverythingOnce(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	for i := 0; i < 3; i++ {
		_, err := ctx.AutoAlloc(32+i, 100+Origin(i))
		require.NoError(t, err, "AutoAlloc %d should succeed", i)
	}
	require.Equal(t, 3, ctx.AutoLen())

	ctx.FreeAll()

	assert.Equal(t, 0, ctx.AutoLen(), "stack should be empty after full teardown")
	assert.Equal(t, 0, ra.outstanding(), "every payload and node should be released")
	assert.False(t, ra.doubleFreed(), "nothing may be released twice")

	// Double full teardown is a no-op
	ctx.FreeAll()
	assert.False(t, ra.doubleFreed())
}

// TestClearAuto_FreesNodesNotPayloads tests structural teardown: bookkeeping
// nodes go, payload release stays the caller's responsibility.
func TestClearAuto_FreesNodesNotPayloads(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	var payloads [][]byte
	for i := 0; i < 3; i++ {
		b, err := ctx.Alloc(16, 200+Origin(i))
		require.NoError(t, err)
		require.NoError(t, ctx.Register(b, 200+Origin(i)))
		payloads = append(payloads, b)
	}

	ctx.ClearAuto()

	assert.Equal(t, 0, ctx.AutoLen(), "stack should be empty")
	for i, b := range payloads {
		assert.Equal(t, 0, ra.freeCount(b), "payload %d must not be released by structural teardown", i)
	}
	// 6 blocks were allocated (3 payloads + 3 nodes); only payloads remain
	assert.Equal(t, 3, ra.outstanding(), "only the payloads should remain live")

	// Caller releases its payloads; no double free can occur
	for _, b := range payloads {
		ctx.Free(b)
	}
	assert.Equal(t, 0, ra.outstanding())
	assert.False(t, ra.doubleFreed())
}

// TestDisableAutoClear_DefersStructuralTeardown tests the deferred-clear
// flag: structural teardown leaves everything intact, full teardown then
// releases it all and clears the flag.
func TestDisableAutoClear_DefersStructuralTeardown(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	b, err := ctx.AutoAlloc(64, 300)
	require.NoError(t, err)

	ctx.DisableAutoClear()
	require.True(t, ctx.AutoClearDisabled())

	ctx.ClearAuto()

	assert.Equal(t, 1, ctx.AutoLen(), "stack must survive a deferred structural teardown")
	assert.Equal(t, 0, ra.freeCount(b), "payload must survive a deferred structural teardown")
	assert.True(t, ctx.AutoClearDisabled(), "the flag stays set until full teardown")

	ctx.FreeAll()

	assert.Equal(t, 0, ctx.AutoLen())
	assert.False(t, ctx.AutoClearDisabled(), "full teardown clears the flag")
	assert.Equal(t, 0, ra.outstanding())
	assert.False(t, ra.doubleFreed())
}

// TestDisableAutoClear_FlagSurvivesRegistrations tests that pushing new
// allocations after setting the flag does not lose the deferred-clear state:
// the flag carrier plus three payload entries all survive the next
// structural teardown.
func TestDisableAutoClear_FlagSurvivesRegistrations(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	ctx.DisableAutoClear()
	require.Equal(t, 1, ctx.AutoLen(), "empty stack gets a flag-carrier entry")

	for i := 0; i < 3; i++ {
		_, err := ctx.AutoAlloc(24, 400+Origin(i))
		require.NoError(t, err)
	}
	require.Equal(t, 4, ctx.AutoLen())
	require.True(t, ctx.AutoClearDisabled(), "registrations must not drop the flag")

	before := ra.outstanding()
	ctx.ClearAuto()
	assert.Equal(t, 4, ctx.AutoLen(), "all four entries deferred")
	assert.Equal(t, before, ra.outstanding(), "a deferred teardown frees nothing")

	ctx.FreeAll()
	assert.Equal(t, 0, ctx.AutoLen())
	assert.Equal(t, 0, ra.outstanding(), "flag carrier, nodes and payloads all released")
	assert.False(t, ra.doubleFreed())
}

// TestDisableAutoClear_TwiceWarns tests the lenient logic-error path.
func TestDisableAutoClear_TwiceWarns(t *testing.T) {
	ctx := New(WithArena(newRecArena()))

	ctx.DisableAutoClear()
	ctx.DisableAutoClear()

	require.True(t, ctx.AutoClearDisabled(), "idempotent, still set")
	report := ctx.Diagnostics()
	assert.Equal(t, 1, report.Count(types.SevWarning), "second disable records a warning")
}

// TestFreeAll_ForceClearsFlagWithNotice tests that full teardown proceeds
// regardless of the flag, recording the forced clear.
func TestFreeAll_ForceClearsFlagWithNotice(t *testing.T) {
	ctx := New(WithArena(newRecArena()))

	ctx.DisableAutoClear()
	ctx.FreeAll()

	assert.False(t, ctx.AutoClearDisabled())
	assert.Equal(t, 0, ctx.AutoLen())

	report := ctx.Diagnostics()
	require.NotNil(t, report)
	assert.Positive(t, report.Count(types.SevInfo), "forced clear is recorded")
}

// TestTeardown_EmptyStackNoOps tests idempotency on empty stacks.
func TestTeardown_EmptyStackNoOps(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	ctx.FreeAll()
	ctx.ClearAuto()
	ctx.FreeAll()

	assert.Equal(t, 0, ctx.AutoLen())
	assert.Equal(t, 0, ra.nallocs, "teardown of an empty stack allocates nothing")
}

// TestAutoAlloc_AllocFailureLeavesStackUnchanged tests the first failure
// mode: the payload allocation itself fails.
func TestAutoAlloc_AllocFailureLeavesStackUnchanged(t *testing.T) {
	ra := newRecArena()
	ra.failAfter = 0
	ctx := New(WithArena(ra))

	b, err := ctx.AutoAlloc(128, 500)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Nil(t, b)
	assert.Equal(t, 0, ctx.AutoLen(), "no partial node may be added")
}

// TestAutoAlloc_RegisterFailureFreesOwnPayload tests the second failure
// mode: the payload allocation succeeds but the bookkeeping node fails.
// AutoAlloc owns its own allocation, so the payload must be freed here.
func TestAutoAlloc_RegisterFailureFreesOwnPayload(t *testing.T) {
	ra := newRecArena()
	ra.failAfter = 1 // payload succeeds, node allocation fails
	ctx := New(WithArena(ra))

	b, err := ctx.AutoAlloc(128, 501)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Nil(t, b)
	assert.Equal(t, 0, ctx.AutoLen())
	assert.Equal(t, 0, ra.outstanding(), "the orphaned payload must be released")
	assert.False(t, ra.doubleFreed())
}

// TestRegister_NodeFailureKeepsCallerOwnership tests that a failed Register
// never frees the caller's buffer; ownership reverts to the caller to avoid
// a double free.
func TestRegister_NodeFailureKeepsCallerOwnership(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	b, err := ctx.Alloc(64, 502)
	require.NoError(t, err)

	ra.failAfter = ra.nallocs // every further allocation fails
	err = ctx.Register(b, 502)
	require.ErrorIs(t, err, ErrOutOfMemory)

	assert.Equal(t, 0, ctx.AutoLen())
	assert.Equal(t, 0, ra.freeCount(b), "caller's buffer must not be freed by a failed Register")

	// Caller still owns it and releases it exactly once.
	ctx.Free(b)
	assert.Equal(t, 1, ra.freeCount(b))
}

// TestRegistry_RealOOMWithBumpArena drives the registry against a genuinely
// exhaustible backend and checks the diagnostics trail.
func TestRegistry_RealOOMWithBumpArena(t *testing.T) {
	ba, err := arena.NewBump(512)
	require.NoError(t, err)
	ctx := New(WithArena(ba))

	n := 0
	for {
		_, err := ctx.AutoAlloc(64, 600+Origin(n))
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfMemory)
			break
		}
		n++
		require.Less(t, n, 100, "bump arena must exhaust eventually")
	}
	require.Positive(t, n, "some allocations should have succeeded first")
	assert.Equal(t, n, ctx.AutoLen(), "failed attempt left no partial node")

	report := ctx.Diagnostics()
	require.NotNil(t, report)
	assert.Positive(t, report.Count(types.SevError))
	found := false
	for _, d := range report.Diagnostics {
		if d.Severity == types.SevError {
			assert.Equal(t, types.SQLStateOutOfMemory, d.SQLState)
			found = true
		}
	}
	assert.True(t, found)

	ctx.FreeAll()
	assert.Equal(t, 0, ctx.AutoLen())
}

// TestRegistry_TeardownOrderIsMostRecentFirst pins the release order.
func TestRegistry_TeardownOrderIsMostRecentFirst(t *testing.T) {
	ra := newRecArena()
	ctx := New(WithArena(ra))

	a, err := ctx.AutoAlloc(8, 700)
	require.NoError(t, err)
	b, err := ctx.AutoAlloc(8, 701)
	require.NoError(t, err)

	ctx.FreeAll()
	assert.Equal(t, 1, ra.freeCount(a))
	assert.Equal(t, 1, ra.freeCount(b))
	assert.Equal(t, 0, ra.outstanding())

	// Entries unwind from the newest. AutoAlloc allocates payload then
	// node, so the allocation order was [pA nA pB nB]; FreeAll walks the
	// stack backwards releasing payload then node per entry, giving
	// [pB nB pA nA].
	require.Len(t, ra.order, 4)
	require.Len(t, ra.freeOrder, 4)
	want := []*byte{ra.order[2], ra.order[3], ra.order[0], ra.order[1]}
	for i := range want {
		assert.Same(t, want[i], ra.freeOrder[i], "release order must be most-recent-first")
	}
}
