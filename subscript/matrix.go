package subscript

import (
	"github.com/npillmayer/casematch/persistent/vector"
	"github.com/npillmayer/casematch/value"
)

// Matrix is a two-dimensional grid of values, stored row-major in a flat
// persistent vector. Its subscript table has entries
//
//	(Int, Int)    get and set of cell [row, column]
//	(Int)         get and set of the flat storage at row * columns + column
//
// Accessing a cell outside of the matrix is a programmer error and panics.
type Matrix struct {
	rows, cols int
	cells      vector.Vector[value.Value]
	table      *Table
}

// NewMatrix creates a matrix with all cells set to fill.
func NewMatrix(rows, cols int, fill value.Value) *Matrix {
	assertThat(rows > 0 && cols > 0, "matrix dimensions must be positive, are %dx%d", rows, cols)
	m := &Matrix{
		rows:  rows,
		cols:  cols,
		cells: vector.Immutable[value.Value]().Grow(rows*cols, fill),
	}
	m.table = MustTable("Matrix",
		Entry{Name: "cell", Params: []Param{IntParam, IntParam}, Get: m.loadCell, Set: m.storeCell},
		Entry{Name: "flat", Params: []Param{IntParam}, Get: m.loadFlat, Set: m.storeFlat},
	)
	return m
}

// Table returns the subscript table of m.
func (m *Matrix) Table() *Table {
	return m.table
}

// Rows returns the number of rows of m.
func (m *Matrix) Rows() int {
	return m.rows
}

// Columns returns the number of columns of m.
func (m *Matrix) Columns() int {
	return m.cols
}

// ValidIndex is a predicate: is [row, col] a cell of m?
func (m *Matrix) ValidIndex(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

func (m *Matrix) offset(row, col int) int {
	assertThat(m.ValidIndex(row, col), "matrix index out of range: [%d, %d] for %dx%d matrix",
		row, col, m.rows, m.cols)
	return row*m.cols + col
}

func (m *Matrix) loadCell(args []value.Value) (value.Value, error) {
	row, _ := value.ToInt(args[0])
	col, _ := value.ToInt(args[1])
	return m.cells.Get(m.offset(row, col)), nil
}

func (m *Matrix) storeCell(args []value.Value, v value.Value) error {
	row, _ := value.ToInt(args[0])
	col, _ := value.ToInt(args[1])
	m.cells = m.cells.Set(m.offset(row, col), v)
	return nil
}

func (m *Matrix) loadFlat(args []value.Value) (value.Value, error) {
	i, _ := value.ToInt(args[0])
	if i < 0 || i >= m.cells.Len() {
		return nil, OutOfRange("offset %d in %dx%d matrix", i, m.rows, m.cols)
	}
	return m.cells.Get(i), nil
}

func (m *Matrix) storeFlat(args []value.Value, v value.Value) error {
	i, _ := value.ToInt(args[0])
	if i < 0 || i >= m.cells.Len() {
		return OutOfRange("offset %d in %dx%d matrix", i, m.rows, m.cols)
	}
	m.cells = m.cells.Set(i, v)
	return nil
}

// Row returns the values of row r.
func (m *Matrix) Row(r int) []value.Value {
	row := make([]value.Value, m.cols)
	for c := range row {
		row[c] = m.cells.Get(m.offset(r, c))
	}
	return row
}
