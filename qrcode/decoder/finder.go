package decoder

import "github.com/ericlevine/qrfix"

// Corner identifies one of the four corners of a matrix.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "LT"
	case CornerTopRight:
		return "RT"
	case CornerBottomLeft:
		return "LB"
	case CornerBottomRight:
		return "RB"
	}
	return "?"
}

// QuarterTurns returns the number of counter-clockwise quarter turns that
// move this corner to the bottom-right, where a canonical QR code has no
// finder pattern.
func (c Corner) QuarterTurns() int {
	switch c {
	case CornerTopLeft:
		return 2
	case CornerTopRight:
		return 3
	case CornerBottomLeft:
		return 1
	}
	return 0
}

var finderPattern = [7]string{
	"xxxxxxx",
	"x.....x",
	"x.xxx.x",
	"x.xxx.x",
	"x.xxx.x",
	"x.....x",
	"xxxxxxx",
}

var alignmentPattern = [5]string{
	"xxxxx",
	"x...x",
	"x.x.x",
	"x...x",
	"xxxxx",
}

// cornerOrigin returns the top-left module of the 7x7 finder footprint at c.
func cornerOrigin(c Corner, dimension int) (row, col int) {
	switch c {
	case CornerTopRight:
		return 0, dimension - 7
	case CornerBottomLeft:
		return dimension - 7, 0
	case CornerBottomRight:
		return dimension - 7, dimension - 7
	}
	return 0, 0
}

func hasFinderPattern(m *qrfix.Matrix, c Corner) bool {
	top, left := cornerOrigin(c, m.Dimension())
	for i, line := range finderPattern {
		for j := 0; j < len(line); j++ {
			want, _ := qrfix.CellForSymbol(line[j])
			if m.Get(top+i, left+j) != want {
				return false
			}
		}
	}
	return true
}

// FindFinderPatterns returns the corners holding an intact finder pattern.
// Unknown modules count as mismatches.
func FindFinderPatterns(m *qrfix.Matrix) []Corner {
	var found []Corner
	for c := CornerTopLeft; c <= CornerBottomRight; c++ {
		if hasFinderPattern(m, c) {
			found = append(found, c)
		}
	}
	return found
}

// MissingCorners returns the corners without an intact finder pattern.
func MissingCorners(m *qrfix.Matrix) []Corner {
	var missing []Corner
	for c := CornerTopLeft; c <= CornerBottomRight; c++ {
		if !hasFinderPattern(m, c) {
			missing = append(missing, c)
		}
	}
	return missing
}
