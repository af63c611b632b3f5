// Package report renders the result of a layout planning run as a
// human-readable summary or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/deploymenttheory/go-ftlplan/internal/layout"
)

// Render writes the plain-text planning summary. The field set and
// order are stable so callers can diff reports across runs.
func Render(w io.Writer, l *layout.Layout) {
	fmt.Fprintf(w, "=== SSD Geometry ===\n")
	fmt.Fprintf(w, "User capacity: %.6g GiB\n", l.Geom.UserCapacityGiB())
	fmt.Fprintf(w, "Pages total:  %d\n", l.Geom.PagesTotal)
	fmt.Fprintf(w, "Blocks total: %d\n", l.Geom.BlocksTotal)
	fmt.Fprintf(w, "Page size:    %d bytes + %d ECC bytes\n\n",
		l.Geom.UserBytesPerPage, l.Geom.EccBytesPerPage)

	fmt.Fprintf(w, "=== Base Mapping ===\n")
	fmt.Fprintf(w, "Granularity:  %s\n", l.Config.BaseMapping)
	fmt.Fprintf(w, "Entries:      %d\n", l.BaseEntries)
	fmt.Fprintf(w, "Table size:   %.6g MiB\n\n", mib(l.BaseBytes))

	fmt.Fprintf(w, "=== Fast FTL (Hybrid) ===\n")
	fmt.Fprintf(w, "DRAM budget for fast FTL: %.6g MiB\n", mib(l.Config.FastFTLBytes))
	fmt.Fprintf(w, "Granularity:  %s\n", l.Config.FastMapping)
	fmt.Fprintf(w, "Entries req.: %d\n", l.FastEntriesRequested)
	fmt.Fprintf(w, "Entries alloc: %d\n", l.FastEntriesAllocated)
	fmt.Fprintf(w, "Table size:   %.6g MiB\n", mib(l.FastBytes))
	fmt.Fprintf(w, "Coverage:     %.6g%% of fast space\n", l.FastCoverageFraction*100.0)
}

func mib(bytes uint64) float64 {
	return float64(bytes) / (1024.0 * 1024.0)
}

// jsonReport is the machine-readable planning summary.
type jsonReport struct {
	PlanID      string    `json:"plan_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Geometry struct {
		UserBytesPerPage  uint64 `json:"user_bytes_per_page"`
		EccBytesPerPage   uint64 `json:"ecc_bytes_per_page"`
		PagesPerBlock     uint64 `json:"pages_per_block"`
		BlocksTotal       uint64 `json:"blocks_total"`
		PagesTotal        uint64 `json:"pages_total"`
		UserCapacityBytes uint64 `json:"user_capacity_bytes"`
		RawCapacityBytes  uint64 `json:"raw_capacity_bytes"`
	} `json:"geometry"`

	Base struct {
		Granularity string `json:"granularity"`
		Entries     uint64 `json:"entries"`
		Bytes       uint64 `json:"bytes"`
	} `json:"base_mapping"`

	Fast struct {
		Granularity      string  `json:"granularity"`
		BudgetBytes      uint64  `json:"budget_bytes"`
		EntriesRequested uint64  `json:"entries_requested"`
		EntriesAllocated uint64  `json:"entries_allocated"`
		Bytes            uint64  `json:"bytes"`
		CoverageFraction float64 `json:"coverage_fraction"`
	} `json:"fast_mapping"`
}

// RenderJSON writes the planning summary as indented JSON. The plan ID
// lets reports from separate runs be correlated downstream.
func RenderJSON(w io.Writer, l *layout.Layout, planID string) error {
	var r jsonReport
	r.PlanID = planID
	r.GeneratedAt = time.Now().UTC()

	r.Geometry.UserBytesPerPage = l.Geom.UserBytesPerPage
	r.Geometry.EccBytesPerPage = l.Geom.EccBytesPerPage
	r.Geometry.PagesPerBlock = l.Geom.PagesPerBlock
	r.Geometry.BlocksTotal = l.Geom.BlocksTotal
	r.Geometry.PagesTotal = l.Geom.PagesTotal
	r.Geometry.UserCapacityBytes = l.Geom.UserCapacityBytes
	r.Geometry.RawCapacityBytes = l.Geom.RawCapacityBytes

	r.Base.Granularity = l.Config.BaseMapping.String()
	r.Base.Entries = l.BaseEntries
	r.Base.Bytes = l.BaseBytes

	r.Fast.Granularity = l.Config.FastMapping.String()
	r.Fast.BudgetBytes = l.Config.FastFTLBytes
	r.Fast.EntriesRequested = l.FastEntriesRequested
	r.Fast.EntriesAllocated = l.FastEntriesAllocated
	r.Fast.Bytes = l.FastBytes
	r.Fast.CoverageFraction = l.FastCoverageFraction

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
