package decoder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ericlevine/qrfix"
)

func noMask(row, col int) bool { return false }

func TestDataModuleOrderVersion1(t *testing.T) {
	v := mustVersion(t, 1)
	var visited [][2]int
	forEachDataModule(v, func(row, col int) {
		visited = append(visited, [2]int{row, col})
	})
	if len(visited) != 208 {
		t.Fatalf("visited %d modules, want 208", len(visited))
	}
	head := [][2]int{{20, 20}, {20, 19}, {19, 20}, {19, 19}}
	for i, want := range head {
		if visited[i] != want {
			t.Errorf("module %d: got %v, want %v", i, visited[i], want)
		}
	}
	// The second strip runs downwards from row 9.
	if visited[24] != [2]int{9, 18} {
		t.Errorf("module 24: got %v, want [9 18]", visited[24])
	}
	// The last strip is columns 1 and 0 between the left finder areas.
	if last := visited[len(visited)-1]; last != [2]int{12, 0} {
		t.Errorf("last module: got %v, want [12 0]", last)
	}
	for _, p := range visited {
		if p[1] == 6 {
			t.Fatalf("visited timing column at %v", p)
		}
	}
}

func TestWriteCodewordsPlacement(t *testing.T) {
	v := mustVersion(t, 1)
	m, err := qrfix.NewMatrixForVersion(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteCodewords(m, v, noMask, []byte{0xA0}); err != nil {
		t.Fatal(err)
	}
	if m.Get(20, 20) != qrfix.Black || m.Get(20, 19) != qrfix.White || m.Get(19, 20) != qrfix.Black {
		t.Errorf("unexpected first modules: %v %v %v", m.Get(20, 20), m.Get(20, 19), m.Get(19, 20))
	}
	if m.Get(0, 0) != qrfix.Unknown {
		t.Error("protected module written")
	}
}

func TestCodewordsRoundTrip(t *testing.T) {
	for _, number := range []int{1, 2, 7, 15} {
		v := mustVersion(t, number)
		data := make([]byte, v.TotalCodewords)
		for i := range data {
			data[i] = byte(i*37 + number)
		}
		for mask, fn := range DataMasks {
			m, err := qrfix.NewMatrixForVersion(number)
			if err != nil {
				t.Fatal(err)
			}
			if err := WriteCodewords(m, v, fn, data); err != nil {
				t.Fatal(err)
			}
			got, err := ReadCodewords(m, v, fn)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got.Data, data) {
				t.Fatalf("version %d mask %d: codewords differ", number, mask)
			}
			if !bytes.Equal(got.Erasures, make([]byte, v.TotalCodewords)) {
				t.Fatalf("version %d mask %d: unexpected erasures", number, mask)
			}
		}
	}
}

func TestReadCodewordsUnknownModules(t *testing.T) {
	v := mustVersion(t, 1)
	m, err := qrfix.NewMatrixForVersion(1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadCodewords(m, v, DataMasks[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Data) != 26 {
		t.Fatalf("got %d codewords", len(got.Data))
	}
	for i := range got.Data {
		if got.Data[i] != 0 || got.Erasures[i] != 0xFF {
			t.Fatalf("codeword %d: data %#x erasures %#x", i, got.Data[i], got.Erasures[i])
		}
	}

	// One known module clears its erasure bit.
	m.Set(20, 20, qrfix.White)
	got, err = ReadCodewords(m, v, DataMasks[0])
	if err != nil {
		t.Fatal(err)
	}
	// Mask 0 inverts (20,20), so White reads as 1.
	if got.Data[0] != 0x80 || got.Erasures[0] != 0x7F {
		t.Errorf("codeword 0: data %#x erasures %#x", got.Data[0], got.Erasures[0])
	}
}

func TestCodewordsErrors(t *testing.T) {
	v := mustVersion(t, 2)
	m, err := qrfix.NewMatrixForVersion(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCodewords(m, v, noMask); !errors.Is(err, qrfix.ErrInvalidSize) {
		t.Errorf("ReadCodewords: expected ErrInvalidSize, got %v", err)
	}
	if err := WriteCodewords(m, v, noMask, nil); !errors.Is(err, qrfix.ErrInvalidSize) {
		t.Errorf("WriteCodewords: expected ErrInvalidSize, got %v", err)
	}
	if err := WriteCodewords(m, mustVersion(t, 1), noMask, make([]byte, 27)); err == nil {
		t.Error("expected error for too many codewords")
	}
}
