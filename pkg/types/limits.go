package types

// ============================================================================
// Allocation Request Limits
// ============================================================================
// These constants bound single allocation requests made through the runtime.
// They exist to catch corrupted size computations in generated statement code
// before they reach a backend, not to enforce a memory budget.

const (
	// MaxAllocSize is the hard limit for a single allocation request.
	// Result-set conversion buffers never legitimately approach this.
	MaxAllocSize = 1 << 30 // 1 GiB

	// MaxArrayElems is the hard limit for the element count of an array
	// allocation request.
	MaxArrayElems = 1 << 28

	// DefaultArenaCapacity is the capacity used by fixed-size arena
	// backends when the caller does not specify one.
	DefaultArenaCapacity = 4 << 20 // 4 MiB

	// SQLStateOutOfMemory is the SQLSTATE reported on allocation failure.
	SQLStateOutOfMemory = "YE001"
)
