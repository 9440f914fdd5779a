package mem

import (
	"github.com/embeddedsql/memkit/mem/arena"
)

// recArena is a recording backend for ownership tests: it remembers every
// block it hands out and counts how often each one is freed, and it can be
// told to start failing after a fixed number of successful allocations.
type recArena struct {
	counts    map[*byte]int // free count per live block, keyed by first byte
	order     []*byte       // allocation order, for targeted assertions
	freeOrder []*byte       // release order, for teardown-order assertions
	nallocs   int
	failAfter int // fail once nallocs reaches this; -1 = never
	released  bool
}

func newRecArena() *recArena {
	return &recArena{
		counts:    make(map[*byte]int),
		failAfter: -1,
	}
}

func (a *recArena) Alloc(size int) ([]byte, error) {
	if a.released {
		return nil, arena.ErrReleased
	}
	if a.failAfter >= 0 && a.nallocs >= a.failAfter {
		return nil, arena.ErrNoSpace
	}
	a.nallocs++
	b := make([]byte, size)
	if size > 0 {
		a.counts[&b[0]] = 0
		a.order = append(a.order, &b[0])
	}
	return b, nil
}

func (a *recArena) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	a.counts[&b[0]]++
	a.freeOrder = append(a.freeOrder, &b[0])
	return nil
}

func (a *recArena) Release() error {
	a.released = true
	return nil
}

// freeCount returns how many times b has been freed.
func (a *recArena) freeCount(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return a.counts[&b[0]]
}

// outstanding returns the number of blocks never freed.
func (a *recArena) outstanding() int {
	n := 0
	for _, c := range a.counts {
		if c == 0 {
			n++
		}
	}
	return n
}

// doubleFreed reports whether any block was freed more than once.
func (a *recArena) doubleFreed() bool {
	for _, c := range a.counts {
		if c > 1 {
			return true
		}
	}
	return false
}

var _ arena.Arena = (*recArena)(nil)
