package bitutil

import "testing"

func TestBitMatrixGetSet(t *testing.T) {
	bm := NewBitMatrixWithSize(40, 10)
	bm.Set(3, 5)
	bm.Set(35, 9)
	if !bm.Get(3, 5) || !bm.Get(35, 9) {
		t.Error("bits (3,5) and (35,9) should be set")
	}
	if bm.Get(5, 3) {
		t.Error("bit (5,3) should not be set")
	}
	if bm.Width() != 40 || bm.Height() != 10 {
		t.Errorf("size = %dx%d, want 40x10", bm.Width(), bm.Height())
	}
}

func TestBitMatrixSetRegion(t *testing.T) {
	bm := NewBitMatrix(8)
	bm.SetRegion(2, 2, 4, 4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			expected := x >= 2 && x < 6 && y >= 2 && y < 6
			if bm.Get(x, y) != expected {
				t.Errorf("(%d,%d) = %v, want %v", x, y, bm.Get(x, y), expected)
			}
		}
	}
	if got := bm.CountSet(); got != 16 {
		t.Errorf("CountSet() = %d, want 16", got)
	}
}

func TestBitMatrixSetRegionOverlap(t *testing.T) {
	bm := NewBitMatrix(45)
	bm.SetRegion(0, 0, 9, 9)
	bm.SetRegion(5, 5, 40, 2)
	if got, want := bm.CountSet(), 81+40*2-4*2; got != want {
		t.Errorf("CountSet() = %d, want %d", got, want)
	}
}

func TestBitMatrixSetRegionOutOfBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for region outside the matrix")
		}
	}()
	NewBitMatrix(4).SetRegion(2, 2, 3, 3)
}

func TestBitMatrixString(t *testing.T) {
	bm := NewBitMatrix(2)
	bm.Set(0, 0)
	if got, want := bm.String(), "X   \n    \n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
