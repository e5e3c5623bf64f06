package qrfix

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FormatHelp describes the matrix text format.
const FormatHelp = `matrix text format:

*...xxx***x*x**x
xx****xxxx*..***

'x' or 'X' => black
'.'        => white
'*'        => unknown

It must be an NxN matrix of 'x', '.' and '*' characters where
N = 4*version+17 (21, 25, 29, ..., 177) and 1 <= version <= 40.

Spaces and '|' around lines are removed and empty lines are ignored.
`

// ParseMatrix reads a matrix in text format. It never returns a partially
// parsed matrix: any size or cell violation fails the whole read.
func ParseMatrix(r io.Reader) (*Matrix, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1<<20)
	for sc.Scan() {
		line := strings.Trim(sc.Text(), " \t\r|")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseMatrixRows(lines)
}

// ParseMatrixString parses a matrix held in a string.
func ParseMatrixString(s string) (*Matrix, error) {
	return ParseMatrix(strings.NewReader(s))
}

// ParseMatrixRows builds a matrix from already-split rows.
func ParseMatrixRows(rows []string) (*Matrix, error) {
	n := len(rows)
	if _, err := SizeToVersion(n); err != nil {
		return nil, err
	}
	m := &Matrix{dimension: n, cells: make([]Cell, n*n)}
	for row, line := range rows {
		if len(line) != n {
			return nil, fmt.Errorf("%w: row %d: dimensions do not match: line length %d, N %d",
				ErrMalformedCell, row, len(line), n)
		}
		var bad []string
		for col := 0; col < n; col++ {
			c, ok := CellForSymbol(line[col])
			if !ok {
				bad = append(bad, fmt.Sprintf("%q", line[col]))
				continue
			}
			m.Set(row, col, c)
		}
		if len(bad) > 0 {
			return nil, fmt.Errorf("%w: row %d: not allowed character(s): %s",
				ErrMalformedCell, row, strings.Join(bad, ", "))
		}
	}
	return m, nil
}

// WriteTo writes the matrix in text format, one row per line.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, row := range m.Rows() {
		n, err := io.WriteString(w, row+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the matrix in text format.
func (m *Matrix) String() string {
	var sb strings.Builder
	m.WriteTo(&sb)
	return sb.String()
}
