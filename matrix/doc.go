// Package matrix provides a dense, row-major Matrix implementation and the
// linear-algebra kernels built on top of it: elementwise Add/Sub/Hadamard,
// Mul, Transpose, Scale, MatVec, LU/Inverse (Doolittle, no pivoting, for
// deterministic results), QR, and Jacobi Eigen decomposition for symmetric
// matrices.
//
// sparsemat and fragment use Dense and Inverse to solve (I-A)^-1 once a
// foreground system has been assembled as sparse triples; everything else
// in this package is a reusable kernel colocated with the ones they need.
package matrix
