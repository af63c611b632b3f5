// Package config loads and validates the YAML device description that
// drives geometry derivation and mapping-table layout planning.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-ftlplan/internal/types"
)

// document mirrors the on-disk YAML shape. Size-valued fields are read
// as strings so size literals ("4KiB") and bare integers are both
// accepted, then resolved by ParseSize.
type document struct {
	Physical struct {
		BitsPerCell    uint32 `mapstructure:"bits_per_cell"`
		PageSize       string `mapstructure:"page_size"`
		CellsPerPage   uint32 `mapstructure:"cells_per_page"`
		PagesPerBlock  uint32 `mapstructure:"pages_per_block"`
		BlocksPerPlane uint32 `mapstructure:"blocks_per_plane"`
		PlanesPerDie   uint32 `mapstructure:"planes_per_die"`
		DiesPerPackage uint32 `mapstructure:"dies_per_package"`
		Packages       uint32 `mapstructure:"packages"`
	} `mapstructure:"physical"`

	Ecc struct {
		Type      string `mapstructure:"type"`
		BitsPer1K uint32 `mapstructure:"bits_per_1k"`
	} `mapstructure:"ecc"`

	Dram struct {
		TotalBytes   string `mapstructure:"total_bytes"`
		FastFTLBytes string `mapstructure:"fast_ftl_bytes"`
	} `mapstructure:"dram"`

	Mapping struct {
		BaseGranularity string `mapstructure:"base_granularity"`
		FastGranularity string `mapstructure:"fast_granularity"`
		SubpagesPerPage uint32 `mapstructure:"subpages_per_page"`
	} `mapstructure:"mapping"`
}

// ParseEccType resolves a case-insensitive ECC type name.
func ParseEccType(s string) (types.EccType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return types.EccNone, nil
	case "BCH":
		return types.EccBCH, nil
	case "LDPC":
		return types.EccLDPC, nil
	default:
		return 0, fmt.Errorf("invalid ECC type: %q", s)
	}
}

// ParseGranularity resolves a case-insensitive mapping granularity name.
func ParseGranularity(s string) (types.MappingGranularity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BLOCK":
		return types.GranularityBlock, nil
	case "PAGE":
		return types.GranularityPage, nil
	case "SUBPAGE":
		return types.GranularitySubPage, nil
	default:
		return 0, fmt.Errorf("invalid mapping granularity: %q", s)
	}
}

// Load reads the device description at path, resolves size literals and
// enum names, and validates the resulting configuration.
func Load(path string) (*types.SsdConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var doc document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}

	cfg := &types.SsdConfig{
		BitsPerCell:    doc.Physical.BitsPerCell,
		CellsPerPage:   doc.Physical.CellsPerPage,
		PagesPerBlock:  doc.Physical.PagesPerBlock,
		BlocksPerPlane: doc.Physical.BlocksPerPlane,
		PlanesPerDie:   doc.Physical.PlanesPerDie,
		DiesPerPackage: doc.Physical.DiesPerPackage,
		Packages:       doc.Physical.Packages,
		EccBitsPer1K:   doc.Ecc.BitsPer1K,
	}

	// page_size and cells_per_page are alternative encodings of the
	// same derived value; the document may carry either.
	if doc.Physical.PageSize != "" {
		pageBytes, err := ParseSize(doc.Physical.PageSize)
		if err != nil {
			return nil, fmt.Errorf("physical.page_size: %w", err)
		}
		if pageBytes > uint64(^uint32(0)) {
			return nil, fmt.Errorf("physical.page_size %q is implausibly large", doc.Physical.PageSize)
		}
		cfg.BytesPerPage = uint32(pageBytes)
	}

	eccType, err := ParseEccType(doc.Ecc.Type)
	if err != nil {
		return nil, fmt.Errorf("ecc.type: %w", err)
	}
	cfg.EccType = eccType

	if doc.Dram.TotalBytes == "" {
		return nil, fmt.Errorf("dram.total_bytes is required")
	}
	if cfg.DRAMBytes, err = ParseSize(doc.Dram.TotalBytes); err != nil {
		return nil, fmt.Errorf("dram.total_bytes: %w", err)
	}

	if doc.Dram.FastFTLBytes == "" {
		return nil, fmt.Errorf("dram.fast_ftl_bytes is required")
	}
	if cfg.FastFTLBytes, err = ParseSize(doc.Dram.FastFTLBytes); err != nil {
		return nil, fmt.Errorf("dram.fast_ftl_bytes: %w", err)
	}

	if cfg.BaseMapping, err = ParseGranularity(doc.Mapping.BaseGranularity); err != nil {
		return nil, fmt.Errorf("mapping.base_granularity: %w", err)
	}
	if cfg.FastMapping, err = ParseGranularity(doc.Mapping.FastGranularity); err != nil {
		return nil, fmt.Errorf("mapping.fast_granularity: %w", err)
	}
	cfg.SubpagesPerPage = doc.Mapping.SubpagesPerPage

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return cfg, nil
}
