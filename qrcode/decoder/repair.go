package decoder

import "github.com/ericlevine/qrfix"

// RepairFunctionPatterns overwrites the function patterns of a matrix in
// canonical orientation with their fixed content. The format areas are left
// alone; see WriteFormatField. Repairing twice yields the same matrix.
func RepairFunctionPatterns(m *qrfix.Matrix, v *Version) {
	repairFinderPatterns(m)
	repairAlignmentPatterns(m, v)
	repairTimingPatterns(m)
	dark := v.DarkModule()
	m.Set(dark.Row, dark.Col, qrfix.Black)
	repairVersionInformation(m, v)
}

func placePattern(m *qrfix.Matrix, top, left int, pattern []string) {
	for i, line := range pattern {
		for j := 0; j < len(line); j++ {
			c, _ := qrfix.CellForSymbol(line[j])
			m.Set(top+i, left+j, c)
		}
	}
}

// repairFinderPatterns writes the three finder patterns and the white
// separators along their inner edges.
func repairFinderPatterns(m *qrfix.Matrix) {
	n := m.Dimension()
	for _, c := range []Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft} {
		top, left := cornerOrigin(c, n)
		placePattern(m, top, left, finderPattern[:])
	}
	for i := 0; i < 8; i++ {
		// top left
		m.Set(7, i, qrfix.White)
		m.Set(i, 7, qrfix.White)
		// top right
		m.Set(7, n-1-i, qrfix.White)
		m.Set(i, n-8, qrfix.White)
		// bottom left
		m.Set(n-1-i, 7, qrfix.White)
		m.Set(n-8, i, qrfix.White)
	}
}

func repairAlignmentPatterns(m *qrfix.Matrix, v *Version) {
	for _, c := range v.AlignmentCenters() {
		placePattern(m, c.Row-2, c.Col-2, alignmentPattern[:])
	}
}

// repairTimingPatterns alternates black on even and white on odd indexes
// along row 6 and column 6.
func repairTimingPatterns(m *qrfix.Matrix) {
	start, end := TimingRange(m.Dimension())
	for i := start; i < end; i++ {
		c := qrfix.White
		if i%2 == 0 {
			c = qrfix.Black
		}
		m.Set(6, i, c)
		m.Set(i, 6, c)
	}
}

// repairVersionInformation writes the 18-bit version codeword into the 6x3
// block above the bottom-left finder and its transpose left of the
// top-right finder. Bit k sits at row k/3, column n-11+k%3 of the top-right
// block.
func repairVersionInformation(m *qrfix.Matrix, v *Version) {
	bits, ok := v.VersionInformation()
	if !ok {
		return
	}
	n := m.Dimension()
	for k := 0; k < 18; k++ {
		bit := (bits>>uint(k))&1 == 1
		m.SetBit(k/3, n-11+k%3, bit)
		m.SetBit(n-11+k%3, k/3, bit)
	}
}
