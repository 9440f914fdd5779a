package mem

// Origin is the opaque source-position token generated statement code
// threads through allocation calls for diagnostics. It is typically the line
// number in the embedding source file. It carries no semantic weight.
type Origin int

// OriginUnknown marks allocations made outside generated code.
const OriginUnknown Origin = 0

// autoNodeSize is the arena charge for one bookkeeping node on the auto
// stack: two pointer-sized slots, matching a {payload, next} pair.
const autoNodeSize = 16

// autoEntry is one node on the auto stack. node is the arena charge for the
// entry's own bookkeeping; payload is nil for the flag-carrier entry pushed
// by DisableAutoClear on an empty stack.
type autoEntry struct {
	node    []byte
	payload []byte
}
