package qrfix

// Cell is the tri-state value of one module.
type Cell uint8

const (
	Unknown Cell = iota
	White
	Black
)

// Symbol returns the text-format character for the cell.
func (c Cell) Symbol() byte {
	switch c {
	case White:
		return '.'
	case Black:
		return 'x'
	}
	return '*'
}

// String returns the cell name.
func (c Cell) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "Unknown"
}

// CellForSymbol maps a text-format character to a Cell.
func CellForSymbol(ch byte) (Cell, bool) {
	switch ch {
	case 'x', 'X':
		return Black, true
	case '.':
		return White, true
	case '*':
		return Unknown, true
	}
	return Unknown, false
}

// Matrix is a square grid of cells. Row 0 is the top row and column 0 the
// left column. A Matrix is a value: Clone it before mutating a copy that
// others may still read.
type Matrix struct {
	dimension int
	cells     []Cell
}

// NewMatrix returns an all-Unknown matrix of the given dimension.
func NewMatrix(dimension int) (*Matrix, error) {
	if _, err := SizeToVersion(dimension); err != nil {
		return nil, err
	}
	return &Matrix{dimension: dimension, cells: make([]Cell, dimension*dimension)}, nil
}

// NewMatrixForVersion returns an all-Unknown matrix of the given version.
func NewMatrixForVersion(version int) (*Matrix, error) {
	return NewMatrix(VersionToSize(version))
}

// Dimension returns N.
func (m *Matrix) Dimension() int {
	return m.dimension
}

// Version returns the version derived from the dimension.
func (m *Matrix) Version() int {
	return (m.dimension - 17) / 4
}

// Get returns the cell at (row, col).
func (m *Matrix) Get(row, col int) Cell {
	return m.cells[row*m.dimension+col]
}

// Set sets the cell at (row, col).
func (m *Matrix) Set(row, col int, c Cell) {
	m.cells[row*m.dimension+col] = c
}

// SetBit sets the cell at (row, col) to Black when bit is true and White otherwise.
func (m *Matrix) SetBit(row, col int, bit bool) {
	if bit {
		m.Set(row, col, Black)
	} else {
		m.Set(row, col, White)
	}
}

// Fill sets every cell to c.
func (m *Matrix) Fill(c Cell) {
	for i := range m.cells {
		m.cells[i] = c
	}
}

// Count returns the number of cells equal to c.
func (m *Matrix) Count(c Cell) int {
	n := 0
	for _, v := range m.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	return &Matrix{dimension: m.dimension, cells: cells}
}

// Rotate rotates the matrix counter-clockwise by quarterTurns * 90 degrees.
// Negative values rotate clockwise.
func (m *Matrix) Rotate(quarterTurns int) {
	turns := ((quarterTurns % 4) + 4) % 4
	n := m.dimension
	for ; turns > 0; turns-- {
		rotated := make([]Cell, len(m.cells))
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				// (row, col) moves to (n-1-col, row)
				rotated[(n-1-col)*n+row] = m.cells[row*n+col]
			}
		}
		m.cells = rotated
	}
}

// Equal reports whether two matrices hold the same cells.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || m.dimension != other.dimension {
		return false
	}
	for i, c := range m.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Rows returns the matrix as text-format rows.
func (m *Matrix) Rows() []string {
	rows := make([]string, m.dimension)
	buf := make([]byte, m.dimension)
	for row := 0; row < m.dimension; row++ {
		for col := 0; col < m.dimension; col++ {
			buf[col] = m.Get(row, col).Symbol()
		}
		rows[row] = string(buf)
	}
	return rows
}
