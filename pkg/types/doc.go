// Package types defines the public shared types for the memkit allocation
// runtime: diagnostic records, severities, and the limits applied to
// allocation requests.
//
// This package only exposes plain data types. The allocation registry and
// its backends live in the mem and mem/arena packages.
//
// Design goals:
//   - Small, copyable records instead of large object graphs.
//   - Advisory diagnostics that never alter control flow.
//   - No dependencies beyond the standard library.
package types
