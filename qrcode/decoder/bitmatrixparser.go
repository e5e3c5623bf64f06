package decoder

import (
	"fmt"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/bitutil"
)

// Codewords holds the bytes read from the data modules of a matrix.
// Erasures has a bit set wherever the corresponding data bit came from an
// Unknown module.
type Codewords struct {
	Data     []byte
	Erasures []byte
}

// forEachDataModule visits the modules outside the function patterns in
// placement order: two-column strips from the right edge leftwards,
// skipping the vertical timing column, moving upwards through the first
// strip and alternating direction on each strip. Within a row the right
// column of the strip comes first.
func forEachDataModule(v *Version, fn func(row, col int)) {
	functionPattern := v.BuildFunctionPattern()
	dimension := v.DimensionForVersion()
	readingUp := true
	for j := dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j--
		}
		for count := 0; count < dimension; count++ {
			i := count
			if readingUp {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				if !functionPattern.Get(j-col, i) {
					fn(i, j-col)
				}
			}
		}
		readingUp = !readingUp
	}
}

// ReadCodewords reads the data modules through the given mask. Black reads
// as 1; Unknown reads as 0 and is flagged in Erasures. Remainder bits past
// the last whole codeword are dropped.
func ReadCodewords(m *qrfix.Matrix, v *Version, mask DataMaskFunc) (*Codewords, error) {
	if m.Dimension() != v.DimensionForVersion() {
		return nil, fmt.Errorf("%w: %dx%d matrix is not version %d",
			qrfix.ErrInvalidSize, m.Dimension(), m.Dimension(), v.Number)
	}
	bits := bitutil.NewBitArray(0)
	erasures := bitutil.NewBitArray(0)
	forEachDataModule(v, func(row, col int) {
		cell := m.Get(row, col)
		erased := cell == qrfix.Unknown
		bits.AppendBit(!erased && MaskBit(mask, row, col, cell == qrfix.Black))
		erasures.AppendBit(erased)
	})
	if bits.Size()/8 != v.TotalCodewords {
		return nil, fmt.Errorf("qrcode/decoder: version %d has %d data modules, want %d codewords",
			v.Number, bits.Size(), v.TotalCodewords)
	}
	return &Codewords{
		Data:     bits.Bytes()[:v.TotalCodewords],
		Erasures: erasures.Bytes()[:v.TotalCodewords],
	}, nil
}

// WriteCodewords places codewords into the data modules through the given
// mask. Modules past the end of codewords are written as masked zero bits.
func WriteCodewords(m *qrfix.Matrix, v *Version, mask DataMaskFunc, codewords []byte) error {
	if m.Dimension() != v.DimensionForVersion() {
		return fmt.Errorf("%w: %dx%d matrix is not version %d",
			qrfix.ErrInvalidSize, m.Dimension(), m.Dimension(), v.Number)
	}
	if len(codewords) > v.TotalCodewords {
		return fmt.Errorf("qrcode/decoder: %d codewords exceed version %d capacity of %d",
			len(codewords), v.Number, v.TotalCodewords)
	}
	bitIndex := 0
	forEachDataModule(v, func(row, col int) {
		bit := false
		if bitIndex < 8*len(codewords) {
			bit = codewords[bitIndex/8]&(0x80>>uint(bitIndex%8)) != 0
		}
		m.SetBit(row, col, MaskBit(mask, row, col, bit))
		bitIndex++
	})
	return nil
}
