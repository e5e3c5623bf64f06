package decoder

import (
	"errors"
	"testing"

	"github.com/ericlevine/qrfix"
)

func TestGetVersionForNumber(t *testing.T) {
	for number := 1; number <= 40; number++ {
		v, err := GetVersionForNumber(number)
		if err != nil {
			t.Fatalf("version %d: %v", number, err)
		}
		if v.Number != number {
			t.Errorf("version %d: got number %d", number, v.Number)
		}
		if got := v.DimensionForVersion(); got != 4*number+17 {
			t.Errorf("version %d: dimension %d", number, got)
		}
		back, err := GetVersionForDimension(4*number + 17)
		if err != nil || back != v {
			t.Errorf("GetVersionForDimension(%d) = %v, %v", 4*number+17, back, err)
		}
	}
	for _, bad := range []int{0, 41, -1} {
		if _, err := GetVersionForNumber(bad); !errors.Is(err, qrfix.ErrInvalidSize) {
			t.Errorf("GetVersionForNumber(%d): expected ErrInvalidSize, got %v", bad, err)
		}
	}
	for _, bad := range []int{20, 22, 24, 181} {
		if _, err := GetVersionForDimension(bad); !errors.Is(err, qrfix.ErrInvalidSize) {
			t.Errorf("GetVersionForDimension(%d): expected ErrInvalidSize, got %v", bad, err)
		}
	}
}

func remainderBits(number int) int {
	switch {
	case number == 1:
		return 0
	case number <= 6:
		return 7
	case number <= 13:
		return 0
	case number <= 20:
		return 3
	case number <= 27:
		return 4
	case number <= 34:
		return 3
	}
	return 0
}

func TestNumDataModules(t *testing.T) {
	for number := 1; number <= 40; number++ {
		v := mustVersion(t, number)
		want := 8*v.TotalCodewords + remainderBits(number)
		if got := v.NumDataModules(); got != want {
			t.Errorf("version %d: %d data modules, want %d", number, got, want)
		}
	}
}

func TestTotalCodewordsMatchBlocks(t *testing.T) {
	for number := 1; number <= 40; number++ {
		v := mustVersion(t, number)
		for _, ecl := range []ErrorCorrectionLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH} {
			ecb := v.ECBlocksForLevel(ecl)
			total := ecb.TotalDataCodewords() + ecb.NumBlocks()*ecb.ECCodewordsPerBlock
			if total != v.TotalCodewords {
				t.Errorf("version %d %s: blocks hold %d codewords, want %d", number, ecl, total, v.TotalCodewords)
			}
		}
	}
}

func TestAlignmentCenters(t *testing.T) {
	tests := []struct {
		number int
		count  int
	}{
		{1, 0},
		{2, 1},
		{6, 1},
		{7, 6},
		{14, 13},
		{21, 22},
		{28, 33},
		{35, 46},
		{40, 46},
	}
	for _, tt := range tests {
		v := mustVersion(t, tt.number)
		if got := len(v.AlignmentCenters()); got != tt.count {
			t.Errorf("version %d: %d alignment centers, want %d", tt.number, got, tt.count)
		}
	}
}

func TestAlignmentLocationsReachLastColumn(t *testing.T) {
	for number := 2; number <= 40; number++ {
		v := mustVersion(t, number)
		locs := v.AlignmentPatternCenters
		want := number/7 + 2
		if len(locs) != want {
			t.Errorf("version %d: %d alignment locations, want %d", number, len(locs), want)
		}
		if last := locs[len(locs)-1]; last != v.DimensionForVersion()-7 {
			t.Errorf("version %d: last alignment location %d, want %d", number, last, v.DimensionForVersion()-7)
		}
	}
}

func TestAlignmentAvoidsFinders(t *testing.T) {
	for number := 2; number <= 40; number++ {
		v := mustVersion(t, number)
		n := v.DimensionForVersion()
		for _, c := range v.AlignmentCenters() {
			top, left := c.Row-2, c.Col-2
			bottom, right := c.Row+2, c.Col+2
			if bottom < 0 || right < 0 || top < 0 || left < 0 || bottom >= n || right >= n {
				t.Fatalf("version %d: center %v outside matrix", number, c)
			}
			inTopLeft := top <= 8 && left <= 8
			inTopRight := top <= 8 && right >= n-8
			inBottomLeft := bottom >= n-8 && left <= 8
			if inTopLeft || inTopRight || inBottomLeft {
				t.Errorf("version %d: center %v overlaps a finder area", number, c)
			}
		}
	}
}

func TestDarkModule(t *testing.T) {
	v := mustVersion(t, 1)
	if got := v.DarkModule(); got != (Point{Row: 13, Col: 8}) {
		t.Errorf("got %v", got)
	}
	v = mustVersion(t, 40)
	if got := v.DarkModule(); got != (Point{Row: 169, Col: 8}) {
		t.Errorf("got %v", got)
	}
}

func TestVersionInformation(t *testing.T) {
	if _, ok := mustVersion(t, 6).VersionInformation(); ok {
		t.Error("version 6 should carry no version information")
	}
	bits, ok := mustVersion(t, 7).VersionInformation()
	if !ok || bits != 0x07C94 {
		t.Errorf("version 7: got %#x, %v", bits, ok)
	}
	for number := 7; number <= 40; number++ {
		bits, _ := mustVersion(t, number).VersionInformation()
		if bits>>12 != number {
			t.Errorf("version %d: codeword %#x does not start with the version number", number, bits)
		}
	}
}

func TestBuildFunctionPatternVersion1(t *testing.T) {
	fp := mustVersion(t, 1).BuildFunctionPattern()
	// 3 finder areas, 2 timing runs of 4 modules each.
	want := 81 + 72 + 72 + 8
	if got := fp.CountSet(); got != want {
		t.Errorf("got %d protected modules, want %d", got, want)
	}
	if !fp.Get(8, 13) {
		t.Error("dark module should be protected")
	}
	if fp.Get(20, 20) {
		t.Error("bottom-right corner should be data")
	}
}
