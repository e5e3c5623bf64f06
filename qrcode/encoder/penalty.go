package encoder

import "github.com/ericlevine/qrfix"

// MaskPenalty scores a fully determined matrix with the four QR mask
// penalty rules. Lower is better.
func MaskPenalty(m *qrfix.Matrix) int {
	return penaltyRuns(m) + penaltyBoxes(m) + penaltyFinderLike(m) + penaltyBalance(m)
}

// cellAt reads m along rows when horizontal is true and along columns
// otherwise.
func cellAt(m *qrfix.Matrix, horizontal bool, line, i int) qrfix.Cell {
	if horizontal {
		return m.Get(line, i)
	}
	return m.Get(i, line)
}

// penaltyRuns adds 3 for each run of five equal modules and 1 for every
// module beyond five.
func penaltyRuns(m *qrfix.Matrix) int {
	n := m.Dimension()
	penalty := 0
	for _, horizontal := range []bool{true, false} {
		for line := 0; line < n; line++ {
			run := 1
			for i := 1; i <= n; i++ {
				if i < n && cellAt(m, horizontal, line, i) == cellAt(m, horizontal, line, i-1) {
					run++
					continue
				}
				if run >= 5 {
					penalty += 3 + run - 5
				}
				run = 1
			}
		}
	}
	return penalty
}

// penaltyBoxes adds 3 for every 2x2 block of one color.
func penaltyBoxes(m *qrfix.Matrix) int {
	n := m.Dimension()
	penalty := 0
	for r := 0; r+1 < n; r++ {
		for c := 0; c+1 < n; c++ {
			v := m.Get(r, c)
			if v == m.Get(r, c+1) && v == m.Get(r+1, c) && v == m.Get(r+1, c+1) {
				penalty += 3
			}
		}
	}
	return penalty
}

var finderLike = [7]qrfix.Cell{
	qrfix.Black, qrfix.White, qrfix.Black, qrfix.Black, qrfix.Black, qrfix.White, qrfix.Black,
}

// penaltyFinderLike adds 40 for every 1:1:3:1:1 pattern with four light
// modules on either side.
func penaltyFinderLike(m *qrfix.Matrix) int {
	n := m.Dimension()
	penalty := 0
	for _, horizontal := range []bool{true, false} {
		for line := 0; line < n; line++ {
			for i := 0; i+7 <= n; i++ {
				if !matchesAt(m, horizontal, line, i) {
					continue
				}
				if whiteRun(m, horizontal, line, i+7, i+11) || whiteRun(m, horizontal, line, i-4, i) {
					penalty += 40
				}
			}
		}
	}
	return penalty
}

func matchesAt(m *qrfix.Matrix, horizontal bool, line, start int) bool {
	for k, want := range finderLike {
		if cellAt(m, horizontal, line, start+k) != want {
			return false
		}
	}
	return true
}

// whiteRun reports whether modules [from, to) exist and are all White.
func whiteRun(m *qrfix.Matrix, horizontal bool, line, from, to int) bool {
	if from < 0 || to > m.Dimension() {
		return false
	}
	for i := from; i < to; i++ {
		if cellAt(m, horizontal, line, i) != qrfix.White {
			return false
		}
	}
	return true
}

// penaltyBalance adds 10 for every 5% the dark share deviates from half.
func penaltyBalance(m *qrfix.Matrix) int {
	total := m.Dimension() * m.Dimension()
	dark := m.Count(qrfix.Black)
	deviation := dark*2 - total
	if deviation < 0 {
		deviation = -deviation
	}
	return deviation * 10 / total * 10
}
