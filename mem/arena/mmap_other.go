//go:build !unix

package arena

// MmapArena falls back to heap-backed bump allocation on platforms without
// anonymous mappings. The contract is identical; only the storage origin
// differs.
type MmapArena struct {
	*BumpArena
}

// NewMmap creates the fallback arena with the given capacity in bytes.
func NewMmap(capacity int) (*MmapArena, error) {
	ba, err := NewBump(capacity)
	if err != nil {
		return nil, err
	}
	return &MmapArena{BumpArena: ba}, nil
}

// Compile-time interface check
var _ Arena = (*MmapArena)(nil)
