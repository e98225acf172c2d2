// Package sparsemat provides a coordinate-form sparse matrix tailored to
// the way LCI matrices are built: many entries accumulated incrementally
// from a graph traversal, then either multiplied against a vector or,
// for small acyclic foreground blocks, inverted densely.
//
// Dense materialization and inversion are delegated to matrix.Dense and
// matrix.Inverse, so sparsemat never re-implements linear algebra.
package sparsemat

import (
	"sort"

	"github.com/lcafoundry/lcicore/matrix"
)

// Triple is one nonzero entry of a sparse matrix.
type Triple struct {
	Row, Col int
	Value    float64
}

type coord struct{ row, col int }

// COO is a sparse matrix in coordinate form. Repeated Add calls at the
// same (row, col) accumulate rather than overwrite, matching how matrix
// entries are built up across a graph traversal.
type COO struct {
	Rows, Cols int
	entries    map[coord]float64
	order      []coord
}

// NewCOO returns an empty rows×cols sparse matrix.
func NewCOO(rows, cols int) *COO {
	return &COO{Rows: rows, Cols: cols, entries: make(map[coord]float64)}
}

// Add accumulates value into (row, col). Returns ErrOutOfRange if the
// coordinate falls outside the matrix's declared shape.
func (m *COO) Add(row, col int, value float64) error {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return ErrOutOfRange
	}
	key := coord{row, col}
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] += value
	return nil
}

// Set overwrites the entry at (row, col), regardless of any prior value.
func (m *COO) Set(row, col int, value float64) error {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return ErrOutOfRange
	}
	key := coord{row, col}
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = value
	return nil
}

// At returns the current value at (row, col), or 0 if unset.
func (m *COO) At(row, col int) float64 {
	return m.entries[coord{row, col}]
}

// NNZ returns the number of distinct coordinates recorded, including any
// whose accumulated value is zero.
func (m *COO) NNZ() int {
	return len(m.entries)
}

// Triples returns every recorded entry in row-major, then column-major,
// order: deterministic regardless of insertion order or map iteration.
func (m *COO) Triples() []Triple {
	keys := make([]coord, len(m.order))
	copy(keys, m.order)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].row != keys[j].row {
			return keys[i].row < keys[j].row
		}
		return keys[i].col < keys[j].col
	})
	out := make([]Triple, 0, len(keys))
	for _, k := range keys {
		out = append(out, Triple{Row: k.row, Col: k.col, Value: m.entries[k]})
	}
	return out
}

// Dense materializes the sparse matrix as a matrix.Dense.
func (m *COO) Dense() (*matrix.Dense, error) {
	d, err := matrix.NewDense(m.Rows, m.Cols)
	if err != nil {
		return nil, err
	}
	for _, t := range m.Triples() {
		if err := d.Set(t.Row, t.Col, t.Value); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MulVec computes y = M·x. Returns ErrDimensionMismatch if len(x) != m.Cols.
func (m *COO) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.Cols {
		return nil, ErrDimensionMismatch
	}
	y := make([]float64, m.Rows)
	for _, t := range m.Triples() {
		y[t.Row] += t.Value * x[t.Col]
	}
	return y, nil
}

// Invert densifies m and computes its matrix inverse via matrix.Inverse
// (Doolittle LU without pivoting, then forward and back substitution).
// Intended for small square blocks,
// such as a foreground's (I - Af) matrix.
func Invert(m *COO) (*matrix.Dense, error) {
	if m.Rows != m.Cols {
		return nil, matrix.ErrNonSquare
	}
	dense, err := m.Dense()
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(dense)
	if err != nil {
		return nil, err
	}
	d, ok := inv.(*matrix.Dense)
	if !ok {
		return nil, ErrUnexpectedMatrixType
	}
	return d, nil
}
