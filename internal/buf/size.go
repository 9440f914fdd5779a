package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// This is essential for count * elementSize calculations in array allocation requests.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	// For positive numbers, check if result would overflow
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	// For negative numbers
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	// Mixed signs - check against MinInt
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// Align8 rounds n up to the next 8-byte boundary.
func Align8(n int) int {
	return (n + 7) &^ 7
}

// CheckAllocSize validates a count * elementSize allocation request against
// the given hard limit. Returns the total size if valid, or an error
// describing the specific failure (overflow or limit exceeded).
//
// This is the recommended way to validate array requests before hitting a
// backend:
//
//	total, err := buf.CheckAllocSize(count, elemSize, types.MaxAllocSize)
//	if err != nil {
//	    return nil, fmt.Errorf("alloc array: %w", err)
//	}
func CheckAllocSize(count, elemSize, limit int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if elemSize < 0 {
		return 0, fmt.Errorf("negative element size: %d", elemSize)
	}

	total, ok := MulOverflowSafe(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}

	if total > limit {
		return 0, fmt.Errorf("bounds: size=%d > limit=%d", total, limit)
	}

	return total, nil
}
