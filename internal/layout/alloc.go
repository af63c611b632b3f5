package layout

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/deploymenttheory/go-ftlplan/internal/types"
)

// ppaSize is the size in bytes of one mapping entry.
const ppaSize = 8

// allocPolicy selects how a table's backing memory is acquired.
type allocPolicy int

const (
	// allocReserve asks the OS for address space that materializes
	// lazily. Base tables at page or subpage granularity can span many
	// gigabytes and must not require that much resident memory merely
	// to exist.
	allocReserve allocPolicy = iota

	// allocEager commits the full region up front, so a region that
	// cannot fit fails at construction rather than on first touch.
	allocEager
)

// tableRegion owns the backing memory of one mapping table. Both
// policies hand out the same view: a []Ppa with every entry set to the
// unmapped sentinel.
type tableRegion struct {
	raw     []byte
	entries []types.Ppa
}

// newTableRegion acquires backing memory for entryCount mapping entries
// under the given policy and initializes every entry to PpaUnmapped.
// The sentinel is not a zero bit pattern, so the initialization pass is
// explicit; for reserved regions this also bounds the first-touch cost
// to construction time.
func newTableRegion(entryCount uint64, policy allocPolicy) (*tableRegion, error) {
	if entryCount == 0 {
		return &tableRegion{}, nil
	}
	if entryCount > math.MaxInt64/ppaSize {
		return nil, fmt.Errorf("table of %d entries overflows addressable size", entryCount)
	}

	raw, err := mapMemory(int(entryCount*ppaSize), policy == allocEager)
	if err != nil {
		return nil, fmt.Errorf("failed to map %d bytes: %w", entryCount*ppaSize, err)
	}

	r := &tableRegion{
		raw:     raw,
		entries: unsafe.Slice((*types.Ppa)(unsafe.Pointer(&raw[0])), entryCount),
	}
	for i := range r.entries {
		r.entries[i] = types.PpaUnmapped
	}
	return r, nil
}

// release returns the region's memory to the OS. Safe to call more than
// once; only the first call unmaps.
func (r *tableRegion) release() error {
	if r == nil || r.raw == nil {
		return nil
	}
	raw := r.raw
	r.raw = nil
	r.entries = nil
	return unmapMemory(raw)
}
