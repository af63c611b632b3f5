package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sizeUnits maps a size-literal suffix to its byte multiplier. Decimal
// units multiply by powers of 1000, binary units by powers of 1024.
var sizeUnits = map[string]uint64{
	"":    1,
	"B":   1,
	"K":   1000,
	"KB":  1000,
	"KIB": 1024,
	"MB":  1000 * 1000,
	"MIB": 1024 * 1024,
	"GB":  1000 * 1000 * 1000,
	"GIB": 1024 * 1024 * 1024,
	"TB":  1000 * 1000 * 1000 * 1000,
	"TIB": 1024 * 1024 * 1024 * 1024,
}

// ParseSize converts a size literal such as "4KiB", "512", or "2 GB"
// into a byte count. The unit suffix is optional and case-insensitive;
// a bare number means bytes.
func ParseSize(s string) (uint64, error) {
	trimmed := strings.TrimSpace(s)

	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	value, err := strconv.ParseUint(trimmed[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %q: %w", s, err)
	}

	unit := strings.ToUpper(strings.TrimSpace(trimmed[i:]))
	mult, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unknown size unit %q in %q", unit, s)
	}

	if value != 0 && mult > math.MaxUint64/value {
		return 0, fmt.Errorf("size %q overflows 64 bits", s)
	}
	return value * mult, nil
}
