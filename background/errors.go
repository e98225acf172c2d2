package background

import "errors"

var (
	// ErrNotFinalized is returned by operations that require Finalize to
	// have run (building A*/B*, running the LCI solver).
	ErrNotFinalized = errors.New("background: manager not finalized")

	// ErrRecursionBudgetExceeded is returned when the technosphere
	// traversal recurses deeper than the configured budget, guarding
	// against runaway or pathological archives.
	ErrRecursionBudgetExceeded = errors.New("background: recursion budget exceeded")

	// ErrDidNotConverge is returned by Solve when the iterative series did
	// not fall below its convergence threshold within the iteration budget.
	ErrDidNotConverge = errors.New("background: lci series did not converge")

	// ErrDimensionMismatch is returned when a demand vector's length does
	// not match the matrix it is solved against.
	ErrDimensionMismatch = errors.New("background: dimension mismatch")
)
