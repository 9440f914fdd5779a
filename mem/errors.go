package mem

import "errors"

var (
	// ErrOutOfMemory indicates that the arena backend could not satisfy an
	// allocation request. Every allocation failure in this package wraps it.
	ErrOutOfMemory = errors.New("mem: out of memory")
)
