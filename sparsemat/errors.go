package sparsemat

import "errors"

var (
	// ErrOutOfRange is returned when a triple addresses a row or column
	// outside the matrix's declared shape.
	ErrOutOfRange = errors.New("sparsemat: index out of range")

	// ErrDimensionMismatch is returned when an operand's shape does not
	// match the matrix's.
	ErrDimensionMismatch = errors.New("sparsemat: dimension mismatch")

	// ErrUnexpectedMatrixType is returned if matrix.Inverse ever returns a
	// concrete type other than *matrix.Dense for a Dense input.
	ErrUnexpectedMatrixType = errors.New("sparsemat: unexpected matrix implementation returned by inverse")
)
