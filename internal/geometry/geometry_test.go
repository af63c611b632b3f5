package geometry

import (
	"testing"

	"github.com/deploymenttheory/go-ftlplan/internal/types"
)

// slcConfig returns a 1 GiB SLC device: 4096-byte pages, 256 pages per
// block, 1024 blocks on a single plane/die/package.
func slcConfig() *types.SsdConfig {
	return &types.SsdConfig{
		BitsPerCell:    1,
		BytesPerPage:   4096,
		PagesPerBlock:  256,
		BlocksPerPlane: 1024,
		PlanesPerDie:   1,
		DiesPerPackage: 1,
		Packages:       1,
		EccType:        types.EccNone,
	}
}

func TestDeriveSlcDevice(t *testing.T) {
	g, err := Derive(slcConfig())
	if err != nil {
		t.Fatalf("Derive() failed: %v", err)
	}

	if g.BlocksTotal != 1024 {
		t.Errorf("BlocksTotal = %d, want 1024", g.BlocksTotal)
	}
	if g.PagesTotal != 262144 {
		t.Errorf("PagesTotal = %d, want 262144", g.PagesTotal)
	}
	if g.UserBytesPerPage != 4096 {
		t.Errorf("UserBytesPerPage = %d, want 4096", g.UserBytesPerPage)
	}
	if g.EccBytesPerPage != 0 {
		t.Errorf("EccBytesPerPage = %d, want 0 for ECC None", g.EccBytesPerPage)
	}
	if g.UserCapacityBytes != 1073741824 {
		t.Errorf("UserCapacityBytes = %d, want 1073741824 (1 GiB)", g.UserCapacityBytes)
	}
	if g.RawCapacityBytes != g.UserCapacityBytes {
		t.Errorf("RawCapacityBytes = %d, want %d with no ECC overhead",
			g.RawCapacityBytes, g.UserCapacityBytes)
	}
}

func TestDeriveInvariants(t *testing.T) {
	configs := []*types.SsdConfig{
		slcConfig(),
		{
			BitsPerCell:    3,
			CellsPerPage:   43690,
			PagesPerBlock:  384,
			BlocksPerPlane: 2048,
			PlanesPerDie:   4,
			DiesPerPackage: 8,
			Packages:       2,
			EccType:        types.EccLDPC,
			EccBitsPer1K:   96,
		},
		{
			BitsPerCell:    2,
			BytesPerPage:   16384,
			PagesPerBlock:  512,
			BlocksPerPlane: 1008,
			PlanesPerDie:   2,
			DiesPerPackage: 4,
			Packages:       4,
			EccType:        types.EccBCH,
			EccBitsPer1K:   40,
		},
	}

	for i, cfg := range configs {
		g, err := Derive(cfg)
		if err != nil {
			t.Fatalf("config %d: Derive() failed: %v", i, err)
		}

		if g.PagesTotal != g.BlocksTotal*g.PagesPerBlock {
			t.Errorf("config %d: PagesTotal = %d, want BlocksTotal×PagesPerBlock = %d",
				i, g.PagesTotal, g.BlocksTotal*g.PagesPerBlock)
		}
		if g.UserCapacityBytes != g.PagesTotal*g.UserBytesPerPage {
			t.Errorf("config %d: UserCapacityBytes = %d, want PagesTotal×UserBytesPerPage = %d",
				i, g.UserCapacityBytes, g.PagesTotal*g.UserBytesPerPage)
		}
		if g.RawCapacityBytes != g.PagesTotal*(g.UserBytesPerPage+g.EccBytesPerPage) {
			t.Errorf("config %d: RawCapacityBytes = %d, want %d",
				i, g.RawCapacityBytes, g.PagesTotal*(g.UserBytesPerPage+g.EccBytesPerPage))
		}
	}
}

func TestDerivePageSizeEncodings(t *testing.T) {
	// bits_per_cell × cells_per_page / 8 and a direct byte size are two
	// encodings of the same derived value.
	direct := slcConfig()

	cells := slcConfig()
	cells.BytesPerPage = 0
	cells.CellsPerPage = 32768 // 1 bit/cell × 32768 cells = 4096 bytes

	gd, err := Derive(direct)
	if err != nil {
		t.Fatalf("Derive(direct) failed: %v", err)
	}
	gc, err := Derive(cells)
	if err != nil {
		t.Fatalf("Derive(cells) failed: %v", err)
	}

	if *gd != *gc {
		t.Errorf("geometries differ between page-size encodings:\n direct: %+v\n  cells: %+v", *gd, *gc)
	}
}

func TestDeriveEccOverhead(t *testing.T) {
	tests := []struct {
		name         string
		eccType      types.EccType
		bitsPer1K    uint32
		bytesPerPage uint32
		wantEccBytes uint64
	}{
		{"none type zeroes overhead", types.EccNone, 40, 4096, 0},
		{"zero rate zeroes overhead", types.EccBCH, 0, 4096, 0},
		// 4 units of 1 KiB at 40 bits each = 160 bits = 20 bytes
		{"bch 40 bits per 1k over 4k page", types.EccBCH, 40, 4096, 20},
		// 16 units at 96 bits each = 1536 bits = 192 bytes
		{"ldpc 96 bits per 1k over 16k page", types.EccLDPC, 96, 16384, 192},
		// 4097 bytes round up to 5 units at 8 bits each = 40 bits = 5 bytes
		{"unaligned page rounds units up", types.EccBCH, 8, 4097, 5},
		// 13 bits round up to 2 bytes
		{"bit count rounds bytes up", types.EccBCH, 13, 1024, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := slcConfig()
			cfg.EccType = tt.eccType
			cfg.EccBitsPer1K = tt.bitsPer1K
			cfg.BytesPerPage = tt.bytesPerPage

			g, err := Derive(cfg)
			if err != nil {
				t.Fatalf("Derive() failed: %v", err)
			}
			if g.EccBytesPerPage != tt.wantEccBytes {
				t.Errorf("EccBytesPerPage = %d, want %d", g.EccBytesPerPage, tt.wantEccBytes)
			}
		})
	}
}

func TestDeriveZeroFieldFails(t *testing.T) {
	mutations := map[string]func(*types.SsdConfig){
		"bits_per_cell":    func(c *types.SsdConfig) { c.BitsPerCell = 0 },
		"pages_per_block":  func(c *types.SsdConfig) { c.PagesPerBlock = 0 },
		"blocks_per_plane": func(c *types.SsdConfig) { c.BlocksPerPlane = 0 },
		"planes_per_die":   func(c *types.SsdConfig) { c.PlanesPerDie = 0 },
		"dies_per_package": func(c *types.SsdConfig) { c.DiesPerPackage = 0 },
		"packages":         func(c *types.SsdConfig) { c.Packages = 0 },
		"page size":        func(c *types.SsdConfig) { c.BytesPerPage = 0; c.CellsPerPage = 0 },
	}

	for name, mutate := range mutations {
		cfg := slcConfig()
		mutate(cfg)
		if _, err := Derive(cfg); err == nil {
			t.Errorf("Derive() with zero %s should have failed", name)
		}
	}
}

func TestUnitsForGranularity(t *testing.T) {
	g, err := Derive(slcConfig())
	if err != nil {
		t.Fatalf("Derive() failed: %v", err)
	}

	if n, err := UnitsForGranularity(types.GranularityBlock, g, 0); err != nil || n != g.BlocksTotal {
		t.Errorf("UnitsForGranularity(Block) = (%d, %v), want (%d, nil)", n, err, g.BlocksTotal)
	}
	if n, err := UnitsForGranularity(types.GranularityPage, g, 0); err != nil || n != g.PagesTotal {
		t.Errorf("UnitsForGranularity(Page) = (%d, %v), want (%d, nil)", n, err, g.PagesTotal)
	}
	if n, err := UnitsForGranularity(types.GranularitySubPage, g, 4); err != nil || n != g.PagesTotal*4 {
		t.Errorf("UnitsForGranularity(SubPage, 4) = (%d, %v), want (%d, nil)", n, err, g.PagesTotal*4)
	}

	if _, err := UnitsForGranularity(types.GranularitySubPage, g, 0); err == nil {
		t.Error("UnitsForGranularity(SubPage, 0) should have failed")
	}
	if _, err := UnitsForGranularity(types.MappingGranularity(99), g, 0); err == nil {
		t.Error("UnitsForGranularity with unknown granularity should have failed")
	}
}
