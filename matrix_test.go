package qrfix

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeToVersion(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		got, err := SizeToVersion(VersionToSize(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	for _, n := range []int{0, 17, 20, 22, 23, 24, 178, 181, -3} {
		_, err := SizeToVersion(n)
		assert.True(t, errors.Is(err, ErrInvalidSize), "N=%d: got %v", n, err)
	}
}

func TestParseMatrix(t *testing.T) {
	rows := []string{
		"xxxxxxx..*.x..xxxxxxx",
		"x.....x.x*x..*x.....x",
		"x.xxx.x..x.*x.x.xxx.x",
		"x.xxx.x.*..x..x.xxx.x",
		"x.xxx.x..xx.x.x.xxx.x",
		"x.....x.*.x.x.x.....x",
		"xxxxxxx.x.x.x.xxxxxxx",
		"........x.*x.........",
		"**x.xxx.*..x*x..*xx..",
		".x..x*.x.x.x..x.x.x.x",
		"*.x.*xx..x*..xx..x.x.",
		".x..x..x.x*.x..x.x..x",
		".x.*x.x*..xx..x.x.x..",
		"........x..x.xx.x.x.x",
		"xxxxxxx...x.x.*.x.x..",
		"x.....x..x*.x..x.x..x",
		"x.xxx.x.x.x*.x..x.x.x",
		"x.xxx.x..x.*.x.x.x.x.",
		"x.xxx.x.x.x.x*.x.x..x",
		"x.....x.x*.x.x.x*.x.x",
		"xxxxxxx.x.x.xx.x.x.x.",
	}
	text := "\n" + strings.Join(rows, "\n") + "\n\n"
	m, err := ParseMatrixString(text)
	require.NoError(t, err)
	assert.Equal(t, 21, m.Dimension())
	assert.Equal(t, 1, m.Version())
	assert.Equal(t, Black, m.Get(0, 0))
	assert.Equal(t, White, m.Get(0, 7))
	assert.Equal(t, Unknown, m.Get(0, 9))
	if diff := cmp.Diff(rows, m.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(21*22), n)
	again, err := ParseMatrix(&buf)
	require.NoError(t, err)
	assert.True(t, again.Equal(m))
}

func TestParseMatrixDecoration(t *testing.T) {
	rows := make([]string, 21)
	for i := range rows {
		rows[i] = " |" + strings.Repeat("X", 21) + "|\t"
	}
	m, err := ParseMatrixString(strings.Join(rows, "\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 21*21, m.Count(Black))
}

func TestParseMatrixErrors(t *testing.T) {
	square := func(n int, ch string) []string {
		rows := make([]string, n)
		for i := range rows {
			rows[i] = strings.Repeat(ch, n)
		}
		return rows
	}

	_, err := ParseMatrixRows(square(22, "."))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ParseMatrixString("")
	assert.ErrorIs(t, err, ErrInvalidSize)

	ragged := square(21, ".")
	ragged[4] = ragged[4][:20]
	_, err = ParseMatrixRows(ragged)
	assert.ErrorIs(t, err, ErrMalformedCell)
	assert.Contains(t, err.Error(), "row 4")

	bad := square(21, ".")
	bad[2] = "..o.................?"
	_, err = ParseMatrixRows(bad)
	assert.ErrorIs(t, err, ErrMalformedCell)
	assert.Contains(t, err.Error(), `'o'`)
	assert.Contains(t, err.Error(), `'?'`)
}

func TestCellSymbols(t *testing.T) {
	for _, c := range []Cell{Unknown, White, Black} {
		got, ok := CellForSymbol(c.Symbol())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
	got, ok := CellForSymbol('X')
	assert.True(t, ok)
	assert.Equal(t, Black, got)
	_, ok = CellForSymbol('o')
	assert.False(t, ok)
	var zero Cell
	assert.Equal(t, Unknown, zero)
}

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrixForVersion(3)
	require.NoError(t, err)
	assert.Equal(t, 29, m.Dimension())
	assert.Equal(t, 29*29, m.Count(Unknown))

	_, err = NewMatrix(30)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewMatrixForVersion(41)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func numbered(t *testing.T) *Matrix {
	t.Helper()
	m, err := NewMatrix(21)
	require.NoError(t, err)
	for i := 0; i < 21; i++ {
		for j := 0; j < 21; j++ {
			m.Set(i, j, Cell((i*5+j*j)%3))
		}
	}
	return m
}

func TestRotate(t *testing.T) {
	m := numbered(t)
	r := m.Clone()
	r.Rotate(1)
	for i := 0; i < 21; i++ {
		for j := 0; j < 21; j++ {
			// counter-clockwise: the top row becomes the left column
			require.Equal(t, m.Get(i, j), r.Get(20-j, i))
		}
	}

	full := m.Clone()
	full.Rotate(4)
	assert.True(t, full.Equal(m))

	back := m.Clone()
	back.Rotate(3)
	back.Rotate(1)
	assert.True(t, back.Equal(m))

	neg := m.Clone()
	neg.Rotate(-1)
	three := m.Clone()
	three.Rotate(3)
	assert.True(t, neg.Equal(three))
}

func TestCloneIndependent(t *testing.T) {
	m := numbered(t)
	c := m.Clone()
	require.True(t, c.Equal(m))
	c.Set(0, 0, Black)
	c.Set(0, 1, White)
	c.Fill(Unknown)
	assert.False(t, c.Equal(m))
	assert.Equal(t, numbered(t).Rows(), m.Rows())
}

func TestSetBitAndCount(t *testing.T) {
	m, err := NewMatrix(21)
	require.NoError(t, err)
	m.SetBit(1, 2, true)
	m.SetBit(3, 4, false)
	assert.Equal(t, Black, m.Get(1, 2))
	assert.Equal(t, White, m.Get(3, 4))
	assert.Equal(t, 1, m.Count(Black))
	assert.Equal(t, 1, m.Count(White))
	assert.Equal(t, 21*21-2, m.Count(Unknown))
	assert.False(t, m.Equal(nil))
}

func TestReconstructionError(t *testing.T) {
	err := error(&ReconstructionError{Attempts: []Attempt{
		{QuarterTurns: 0, Err: ErrNoConfigurationMatch},
		{QuarterTurns: 1, ECLevel: "M", DataMask: 3, Err: ErrMalformedBitstream},
	}})
	assert.ErrorIs(t, err, ErrReconstructionFailed)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Contains(t, err.Error(), "turns=1 ec=M mask=3: malformed bitstream")
}
