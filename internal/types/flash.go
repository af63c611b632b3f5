// Package types implements the shared data structures for NAND flash
// device descriptions and FTL mapping-table planning.
package types

import "fmt"

// Ppa represents a physical page address into raw flash.
// It is treated as an opaque 64-bit identifier; an address-translation
// layer may later encode (channel, die, plane, block, page) into it.
type Ppa uint64

// PpaUnmapped is the reserved physical page address meaning "no mapping".
// It is the only sentinel value; every other bit pattern is a valid address.
const PpaUnmapped Ppa = ^Ppa(0)

// EccType identifies the error-correction code family configured for the
// device. The planner only models ECC storage overhead; it never encodes
// or decodes data.
type EccType uint8

const (
	EccNone EccType = iota
	EccBCH
	EccLDPC
)

// String returns the canonical name of the ECC type.
func (e EccType) String() string {
	switch e {
	case EccNone:
		return "NONE"
	case EccBCH:
		return "BCH"
	case EccLDPC:
		return "LDPC"
	default:
		return fmt.Sprintf("EccType(%d)", uint8(e))
	}
}

// MappingGranularity selects the addressable unit a mapping tier tracks.
type MappingGranularity uint8

const (
	// GranularityBlock keeps one mapping entry per erase block.
	GranularityBlock MappingGranularity = iota
	// GranularityPage keeps one mapping entry per physical page.
	GranularityPage
	// GranularitySubPage keeps multiple mapping entries per page,
	// e.g. 4 per page.
	GranularitySubPage
)

// String returns the canonical name of the mapping granularity.
func (g MappingGranularity) String() string {
	switch g {
	case GranularityBlock:
		return "Block"
	case GranularityPage:
		return "Page"
	case GranularitySubPage:
		return "SubPage"
	default:
		return fmt.Sprintf("MappingGranularity(%d)", uint8(g))
	}
}

// SsdConfig holds the user-facing device description consumed by the
// geometry deriver and the layout planner. It is immutable once loaded.
//
// The physical page size can be expressed two equivalent ways: directly
// as BytesPerPage, or as CellsPerPage from which the byte size is derived
// (BitsPerCell × CellsPerPage / 8). Exactly one of the two must be set.
type SsdConfig struct {
	// Physical NAND parameters.
	BitsPerCell   uint32 // 1 (SLC), 2 (MLC), 3 (TLC), 4 (QLC)
	CellsPerPage  uint32 // cells per physical page (alternative page encoding)
	BytesPerPage  uint32 // user-data bytes per physical page (direct encoding)
	PagesPerBlock uint32

	// Higher-level array geometry.
	BlocksPerPlane uint32
	PlanesPerDie   uint32
	DiesPerPackage uint32
	Packages       uint32

	// ECC overhead model.
	EccType      EccType
	EccBitsPer1K uint32 // overhead bits per 1 KiB of user data

	// Controller DRAM model.
	DRAMBytes    uint64 // total DRAM available to the controller
	FastFTLBytes uint64 // DRAM carved out for the fast mapping tier

	// FTL mapping policy.
	BaseMapping     MappingGranularity // coarse, full-coverage tier
	FastMapping     MappingGranularity // fine, DRAM-resident tier
	SubpagesPerPage uint32             // only used when a tier is SubPage
}

// Validate checks the configuration invariants that must hold before any
// geometry derivation or table allocation takes place.
func (c *SsdConfig) Validate() error {
	if c.BitsPerCell == 0 {
		return fmt.Errorf("physical.bits_per_cell must be positive")
	}
	if c.BytesPerPage == 0 && c.CellsPerPage == 0 {
		return fmt.Errorf("physical page size missing: set page_size or cells_per_page")
	}
	if c.PagesPerBlock == 0 {
		return fmt.Errorf("physical.pages_per_block must be positive")
	}
	if c.BlocksPerPlane == 0 {
		return fmt.Errorf("physical.blocks_per_plane must be positive")
	}
	if c.PlanesPerDie == 0 {
		return fmt.Errorf("physical.planes_per_die must be positive")
	}
	if c.DiesPerPackage == 0 {
		return fmt.Errorf("physical.dies_per_package must be positive")
	}
	if c.Packages == 0 {
		return fmt.Errorf("physical.packages must be positive")
	}
	if c.FastFTLBytes > c.DRAMBytes {
		return fmt.Errorf("dram.fast_ftl_bytes (%d) cannot exceed dram.total_bytes (%d)",
			c.FastFTLBytes, c.DRAMBytes)
	}
	if (c.BaseMapping == GranularitySubPage || c.FastMapping == GranularitySubPage) &&
		c.SubpagesPerPage == 0 {
		return fmt.Errorf("mapping.subpages_per_page must be positive when a tier uses SubPage granularity")
	}
	return nil
}
