package decoder

import (
	"fmt"

	"github.com/ericlevine/qrfix"
)

// Mode represents a QR code data encoding mode.
type Mode int

const (
	ModeTerminator   Mode = 0x00
	ModeNumeric      Mode = 0x01
	ModeAlphanumeric Mode = 0x02
	ModeByte         Mode = 0x04
	ModeKanji        Mode = 0x08
)

// characterCountBits contains [v1-9, v10-26, v27-40] bit counts.
var characterCountBits = map[Mode][3]int{
	ModeTerminator:   {0, 0, 0},
	ModeNumeric:      {10, 12, 14},
	ModeAlphanumeric: {9, 11, 13},
	ModeByte:         {8, 16, 16},
	ModeKanji:        {8, 10, 12},
}

// ModeForBits returns the Mode for the given 4-bit value. Indicators outside
// the five supported modes are malformed.
func ModeForBits(bits int) (Mode, error) {
	switch Mode(bits) {
	case ModeTerminator, ModeNumeric, ModeAlphanumeric, ModeByte, ModeKanji:
		return Mode(bits), nil
	}
	return 0, fmt.Errorf("%w: unknown mode %04b", qrfix.ErrMalformedBitstream, bits)
}

// CharacterCountBits returns the number of bits used to encode the character
// count for this mode in the given version.
func (m Mode) CharacterCountBits(version *Version) int {
	number := version.Number
	var offset int
	if number <= 9 {
		offset = 0
	} else if number <= 26 {
		offset = 1
	} else {
		offset = 2
	}
	return characterCountBits[m][offset]
}

// Bits returns the 4-bit encoding of this mode.
func (m Mode) Bits() int {
	return int(m)
}

func (m Mode) String() string {
	switch m {
	case ModeTerminator:
		return "terminator"
	case ModeNumeric:
		return "numeric"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	case ModeKanji:
		return "kanji"
	}
	return fmt.Sprintf("mode(%#x)", int(m))
}
