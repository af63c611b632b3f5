// Package layout plans the address-translation tables of a hybrid FTL:
// a coarse base table covering the whole device and a fine fast table
// capped by the controller's DRAM budget.
package layout

import (
	"fmt"

	"github.com/deploymenttheory/go-ftlplan/internal/geometry"
	"github.com/deploymenttheory/go-ftlplan/internal/types"
)

// Layout owns the two mapping-table allocations and their metadata for
// its lifetime. Both tables are released together by Close; no table
// survives its Layout and tables are never shared between Layouts.
type Layout struct {
	Config types.SsdConfig
	Geom   *geometry.Geometry

	// Base (coarse) mapping table: always covers the full address
	// space at the base granularity, never truncated.
	BaseEntries uint64
	BaseBytes   uint64
	base        *tableRegion

	// Fast (fine, DRAM-resident) mapping table: capped by the fast-FTL
	// byte budget, so it may cover only a prefix of the fast address
	// space.
	FastEntriesRequested uint64
	FastEntriesAllocated uint64
	FastBytes            uint64
	fast                 *tableRegion

	// FastCoverageFraction is allocated/requested entries, 0.0 when
	// the fast tier is disabled or empty. It tells an operator whether
	// the chosen fast granularity fits the DRAM budget or hot data will
	// fall back to base-table resolution for the uncovered tail.
	FastCoverageFraction float64
}

// New derives the device geometry and allocates both mapping tables.
// The base table uses a lazy reservation; the fast tier is allocated
// eagerly. Any failure after the base table exists releases it before
// the error propagates.
func New(cfg *types.SsdConfig) (*Layout, error) {
	geom, err := geometry.Derive(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.FastFTLBytes > cfg.DRAMBytes {
		return nil, fmt.Errorf("fast_ftl_bytes (%d) cannot exceed dram_bytes (%d)",
			cfg.FastFTLBytes, cfg.DRAMBytes)
	}

	l := &Layout{
		Config: *cfg,
		Geom:   geom,
	}

	// Base mapping table, full coverage at base granularity.
	l.BaseEntries, err = geometry.UnitsForGranularity(cfg.BaseMapping, geom, cfg.SubpagesPerPage)
	if err != nil {
		return nil, err
	}
	l.BaseBytes = l.BaseEntries * ppaSize

	l.base, err = newTableRegion(l.BaseEntries, allocReserve)
	if err != nil {
		return nil, fmt.Errorf("base mapping table: %w", err)
	}

	// Fast mapping table, clamped to the DRAM carve-out. A zero budget
	// disables the tier entirely.
	if cfg.FastFTLBytes > 0 {
		l.FastEntriesRequested, err = geometry.UnitsForGranularity(cfg.FastMapping, geom, cfg.SubpagesPerPage)
		if err != nil {
			l.base.release()
			return nil, err
		}

		maxEntriesBySpace := cfg.FastFTLBytes / ppaSize
		l.FastEntriesAllocated = min(l.FastEntriesRequested, maxEntriesBySpace)
		l.FastBytes = l.FastEntriesAllocated * ppaSize

		if l.FastEntriesAllocated > 0 {
			l.fast, err = newTableRegion(l.FastEntriesAllocated, allocEager)
			if err != nil {
				l.base.release()
				return nil, fmt.Errorf("fast mapping table: %w", err)
			}
			l.FastCoverageFraction =
				float64(l.FastEntriesAllocated) / float64(l.FastEntriesRequested)
		}
	}

	return l, nil
}

// BaseTable returns the base mapping table. Every entry reads as
// PpaUnmapped until an address-translation layer writes to it.
func (l *Layout) BaseTable() []types.Ppa {
	if l.base == nil {
		return nil
	}
	return l.base.entries
}

// FastTable returns the fast mapping table, or nil when the fast tier
// is disabled.
func (l *Layout) FastTable() []types.Ppa {
	if l.fast == nil {
		return nil
	}
	return l.fast.entries
}

// Close releases both table allocations. It is safe to call more than
// once; both regions are released on the first call even if one of the
// two unmap operations fails.
func (l *Layout) Close() error {
	var fastErr, baseErr error
	if l.fast != nil {
		fastErr = l.fast.release()
	}
	if l.base != nil {
		baseErr = l.base.release()
	}
	if baseErr != nil {
		return fmt.Errorf("release base mapping table: %w", baseErr)
	}
	if fastErr != nil {
		return fmt.Errorf("release fast mapping table: %w", fastErr)
	}
	return nil
}
