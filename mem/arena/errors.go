package arena

import "errors"

var (
	// ErrNoSpace indicates that the arena capacity cannot satisfy the request.
	ErrNoSpace = errors.New("arena: no space left for allocation")

	// ErrBadSize indicates a negative or out-of-range allocation size.
	ErrBadSize = errors.New("arena: bad allocation size")

	// ErrReleased indicates an operation on an arena whose backing store was
	// already released.
	ErrReleased = errors.New("arena: backing store released")
)
