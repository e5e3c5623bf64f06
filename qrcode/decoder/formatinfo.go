package decoder

import (
	"fmt"

	"github.com/ericlevine/qrfix"
)

// FormatBits is the length of the format information codeword.
const FormatBits = 15

const (
	formatGenerator = 0x537
	formatXORMask   = 0x5412
)

// FormatInformation encapsulates a QR code's format info (EC level + data
// mask) together with its masked 15-bit reference codeword, written 'x' for
// a black module and '.' for a white one, most significant bit first.
type FormatInformation struct {
	ECLevel  ErrorCorrectionLevel
	DataMask byte
	Pattern  string
	bits     int
}

// formatInformationTable lists every valid format codeword, levels in
// L, M, Q, H order and masks ascending within a level.
var formatInformationTable = newFormatInformationTable()

func newFormatInformationTable() [32]FormatInformation {
	var table [32]FormatInformation
	for i, ecl := range []ErrorCorrectionLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH} {
		for mask := 0; mask < 8; mask++ {
			bits := formatCodeword(ecl, mask)
			pattern := make([]byte, FormatBits)
			for j := range pattern {
				pattern[j] = '.'
				if bits&(1<<uint(FormatBits-1-j)) != 0 {
					pattern[j] = 'x'
				}
			}
			table[8*i+mask] = FormatInformation{ECLevel: ecl, DataMask: byte(mask), Pattern: string(pattern), bits: bits}
		}
	}
	return table
}

// formatCodeword returns the masked BCH(15,5) codeword carrying the level
// bits and the mask index.
func formatCodeword(ecLevel ErrorCorrectionLevel, mask int) int {
	data := ecLevel.Bits()<<3 | mask
	rem := data << 10
	for i := FormatBits - 1; i >= 10; i-- {
		if rem&(1<<uint(i)) != 0 {
			rem ^= formatGenerator << uint(i-10)
		}
	}
	return (data<<10 | rem) ^ formatXORMask
}

// LookupFormatInformation returns the table entry for an EC level and mask.
func LookupFormatInformation(ecLevel ErrorCorrectionLevel, dataMask int) (*FormatInformation, error) {
	if dataMask < 0 || dataMask > 7 {
		return nil, fmt.Errorf("qrcode/decoder: invalid data mask %d", dataMask)
	}
	for i := range formatInformationTable {
		fi := &formatInformationTable[i]
		if fi.ECLevel == ecLevel && int(fi.DataMask) == dataMask {
			return fi, nil
		}
	}
	return nil, fmt.Errorf("qrcode/decoder: invalid error correction level %d", ecLevel)
}

// Bits returns the reference codeword as an integer.
func (fi *FormatInformation) Bits() int {
	return fi.bits
}

// bit reports whether bit i of the codeword, most significant first, is set.
func (fi *FormatInformation) bit(i int) bool {
	return fi.bits&(1<<uint(FormatBits-1-i)) != 0
}

// Mask returns the data mask selected by this format.
func (fi *FormatInformation) Mask() DataMaskFunc {
	return DataMasks[fi.DataMask]
}

// Field returns the reference codeword as fully known cells.
func (fi *FormatInformation) Field() FormatField {
	var f FormatField
	for i := 0; i < FormatBits; i++ {
		f[i] = qrfix.White
		if fi.bit(i) {
			f[i] = qrfix.Black
		}
	}
	return f
}

// Matches reports whether every known cell of the observed field agrees
// with the reference codeword. Unknown cells match anything.
func (fi *FormatInformation) Matches(field FormatField) bool {
	for i, c := range field {
		if c == qrfix.Unknown {
			continue
		}
		if (c == qrfix.Black) != fi.bit(i) {
			return false
		}
	}
	return true
}

func (fi *FormatInformation) String() string {
	return fmt.Sprintf("%s/%d %s", fi.ECLevel, fi.DataMask, fi.Pattern)
}

// FormatField is an observed format codeword, most significant bit first.
type FormatField [FormatBits]qrfix.Cell

func (f FormatField) String() string {
	buf := make([]byte, FormatBits)
	for i, c := range f {
		buf[i] = c.Symbol()
	}
	return string(buf)
}

// ReadFormatField reads the format codeword from the copy that runs along
// row 8 next to the top-right finder (bits 7-14) and down column 8 next to
// the bottom-left finder (bits 0-6). The copy around the top-left finder is
// not consulted.
func ReadFormatField(m *qrfix.Matrix) FormatField {
	var f FormatField
	n := m.Dimension()
	for i := 0; i < 7; i++ {
		f[i] = m.Get(n-1-i, 8)
	}
	for i := 0; i < 8; i++ {
		f[7+i] = m.Get(8, n-8+i)
	}
	return f
}

// MatchFormatInformation returns, in table order, every format whose
// reference codeword agrees with the observed field.
func MatchFormatInformation(field FormatField) []*FormatInformation {
	var out []*FormatInformation
	for i := range formatInformationTable {
		fi := &formatInformationTable[i]
		if fi.Matches(field) {
			out = append(out, fi)
		}
	}
	return out
}

// WriteFormatField writes the reference codeword into both format areas.
func WriteFormatField(m *qrfix.Matrix, fi *FormatInformation) {
	f := fi.Field()
	n := m.Dimension()

	// Around the top-left finder: row 8 left to right, skipping the timing
	// column, then up column 8.
	for i := 0; i < 6; i++ {
		m.Set(8, i, f[i])
	}
	m.Set(8, 7, f[6])
	m.Set(8, 8, f[7])
	m.Set(7, 8, f[8])
	for i := 9; i < FormatBits; i++ {
		m.Set(14-i, 8, f[i])
	}

	// Row 8 by the top-right finder and column 8 by the bottom-left finder.
	for i := 0; i < 8; i++ {
		m.Set(8, n-8+i, f[7+i])
	}
	for i := 0; i < 7; i++ {
		m.Set(n-1-i, 8, f[i])
	}
}
