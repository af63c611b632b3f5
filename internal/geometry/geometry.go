// Package geometry derives the physical geometry of a NAND flash device
// from its configuration and resolves mapping granularities into
// addressable unit counts.
package geometry

import (
	"fmt"

	"github.com/deploymenttheory/go-ftlplan/internal/types"
)

// Geometry holds the values derived from an SsdConfig. It is computed
// once and never mutated afterwards.
type Geometry struct {
	BitsPerCell      uint64
	UserBytesPerPage uint64 // data bytes per page, excluding ECC
	EccBytesPerPage  uint64 // modeled ECC overhead per page

	PagesPerBlock uint64
	BlocksTotal   uint64
	PagesTotal    uint64

	UserCapacityBytes uint64 // user data capacity, excluding ECC
	RawCapacityBytes  uint64 // capacity including ECC overhead
}

// UserCapacityGiB returns the user capacity in binary gigabytes.
func (g *Geometry) UserCapacityGiB() float64 {
	return float64(g.UserCapacityBytes) / (1024.0 * 1024.0 * 1024.0)
}

// eccBytesPerPage models the ECC storage overhead for one page.
// The rate is expressed as ECC bits per 1024 bytes of user data; user
// bytes are rounded up to whole 1024-byte units before the rate applies.
func eccBytesPerPage(cfg *types.SsdConfig, userBytesPerPage uint64) uint64 {
	if cfg.EccType == types.EccNone || cfg.EccBitsPer1K == 0 {
		return 0
	}
	units1K := (userBytesPerPage + 1023) / 1024
	eccBits := uint64(cfg.EccBitsPer1K) * units1K
	return (eccBits + 7) / 8
}

// Derive computes the device geometry from the configuration. It is a
// pure function: it performs no allocation beyond the returned Geometry
// and has no side effects.
//
// The page byte size comes either directly from cfg.BytesPerPage or,
// when that is zero, from bits_per_cell × cells_per_page / 8. Both
// encodings produce identical downstream geometry.
func Derive(cfg *types.SsdConfig) (*Geometry, error) {
	if cfg.BitsPerCell == 0 ||
		cfg.PagesPerBlock == 0 ||
		cfg.BlocksPerPlane == 0 ||
		cfg.PlanesPerDie == 0 ||
		cfg.DiesPerPackage == 0 ||
		cfg.Packages == 0 {
		return nil, fmt.Errorf("derive geometry: invalid physical parameters (zero field)")
	}

	var userBytesPerPage uint64
	switch {
	case cfg.BytesPerPage != 0:
		userBytesPerPage = uint64(cfg.BytesPerPage)
	case cfg.CellsPerPage != 0:
		userBytesPerPage = uint64(cfg.BitsPerCell) * uint64(cfg.CellsPerPage) / 8
	default:
		return nil, fmt.Errorf("derive geometry: page size missing (set bytes_per_page or cells_per_page)")
	}
	if userBytesPerPage == 0 {
		return nil, fmt.Errorf("derive geometry: page size resolves to zero bytes")
	}

	g := &Geometry{
		BitsPerCell:      uint64(cfg.BitsPerCell),
		UserBytesPerPage: userBytesPerPage,
		PagesPerBlock:    uint64(cfg.PagesPerBlock),
	}

	g.EccBytesPerPage = eccBytesPerPage(cfg, g.UserBytesPerPage)

	g.BlocksTotal = uint64(cfg.BlocksPerPlane) *
		uint64(cfg.PlanesPerDie) *
		uint64(cfg.DiesPerPackage) *
		uint64(cfg.Packages)

	g.PagesTotal = g.BlocksTotal * g.PagesPerBlock

	g.UserCapacityBytes = g.PagesTotal * g.UserBytesPerPage
	g.RawCapacityBytes = g.PagesTotal * (g.UserBytesPerPage + g.EccBytesPerPage)

	return g, nil
}

// UnitsForGranularity returns how many logical units exist on the device
// at the given mapping granularity. The subpagesPerPage factor is only
// consulted for SubPage granularity, where it must be positive.
func UnitsForGranularity(gran types.MappingGranularity, geom *Geometry, subpagesPerPage uint32) (uint64, error) {
	switch gran {
	case types.GranularityBlock:
		return geom.BlocksTotal, nil
	case types.GranularityPage:
		return geom.PagesTotal, nil
	case types.GranularitySubPage:
		if subpagesPerPage == 0 {
			return 0, fmt.Errorf("SubPage mapping requires subpages_per_page > 0")
		}
		return geom.PagesTotal * uint64(subpagesPerPage), nil
	default:
		return 0, fmt.Errorf("unknown mapping granularity: %d", gran)
	}
}
