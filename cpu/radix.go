package cpu

import (
	"fmt"
	"strconv"
)

// DisplayRadix selects how values are rendered. It never affects execution.
type DisplayRadix int

//go:generate go tool stringer -linecomment -type=DisplayRadix
const (
	RADIX_UNSIGNED = DisplayRadix(0) // unsigned
	RADIX_SIGNED   = DisplayRadix(1) // signed
	RADIX_HEX      = DisplayRadix(2) // hex
	RADIX_BINARY   = DisplayRadix(3) // binary
)

var radixMap = map[string]DisplayRadix{
	"u": RADIX_UNSIGNED,
	"s": RADIX_SIGNED,
	"x": RADIX_HEX,
	"b": RADIX_BINARY,
}

// ParseRadix returns the radix for a short name (u, s, x, b) or a full name.
func ParseRadix(name string) (radix DisplayRadix, ok bool) {
	radix, ok = radixMap[name]
	if ok {
		return
	}

	for radix = RADIX_UNSIGNED; radix <= RADIX_BINARY; radix++ {
		if radix.String() == name {
			return radix, true
		}
	}

	return RADIX_UNSIGNED, false
}

// Format renders a 16-bit word in the radix.
func (radix DisplayRadix) Format(value uint16) string {
	switch radix {
	case RADIX_SIGNED:
		return strconv.Itoa(int(int16(value)))
	case RADIX_HEX:
		return fmt.Sprintf("0x%04X", value)
	case RADIX_BINARY:
		return fmt.Sprintf("0b%016b", value)
	default:
		return strconv.FormatUint(uint64(value), 10)
	}
}
