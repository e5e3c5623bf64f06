package decoder

import (
	"testing"

	"github.com/ericlevine/qrfix"
	"github.com/ericlevine/qrfix/bitutil"
)

type field struct {
	value uint32
	width int
}

// packBits appends the fields most significant bit first and zero pads the
// result to size bytes.
func packBits(size int, fields ...field) []byte {
	ba := bitutil.NewBitArray(0)
	for _, f := range fields {
		ba.AppendBits(f.value, f.width)
	}
	out := make([]byte, size)
	copy(out, ba.Bytes())
	return out
}

// "HELLO" as an alphanumeric segment followed by the terminator.
var helloFields = []field{
	{0x2, 4},
	{5, 9},
	{17*45 + 14, 11},
	{21*45 + 21, 11},
	{24, 11},
	{0x0, 4},
}

func mustVersion(t *testing.T, number int) *Version {
	t.Helper()
	v, err := GetVersionForNumber(number)
	if err != nil {
		t.Fatalf("GetVersionForNumber(%d): %v", number, err)
	}
	return v
}

func mustFormat(t *testing.T, ecLevel ErrorCorrectionLevel, mask int) *FormatInformation {
	t.Helper()
	fi, err := LookupFormatInformation(ecLevel, mask)
	if err != nil {
		t.Fatalf("LookupFormatInformation(%s, %d): %v", ecLevel, mask, err)
	}
	return fi
}

// helloMatrix builds a clean version 1 matrix with format L/0 carrying
// HELLO in the paired layout.
func helloMatrix(t *testing.T) *qrfix.Matrix {
	t.Helper()
	m, err := qrfix.NewMatrixForVersion(1)
	if err != nil {
		t.Fatal(err)
	}
	m.Fill(qrfix.White)
	v := mustVersion(t, 1)
	RepairFunctionPatterns(m, v)
	fi := mustFormat(t, ECLevelL, 0)
	WriteFormatField(m, fi)
	data := packBits(26, helloFields...)
	if err := WriteCodewords(m, v, fi.Mask(), InterleavePaired(data)); err != nil {
		t.Fatalf("WriteCodewords: %v", err)
	}
	return m
}
