// Package matrix provides the dense linear-algebra primitives behind invcache.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Inverse, the inversion capability: LU with partial pivoting by
//     default, or the deterministic no-pivot Doolittle scheme on request.
//   - Mul, Sub, LU, AllClose, IsInverse and Residual for building and
//     checking results.
//   - Functional options (WithPivotTolerance, WithNoPivoting, ...) that
//     callers forward to Inverse, possibly through cachesolve.
//
// Inverse and LU report ErrSingular when a pivot falls to n·ε·max|A| or
// below (ε is the float64 machine epsilon), so inputs that are singular up
// to rounding fail instead of producing huge, meaningless entries.
// WithPivotTolerance replaces that relative bound with an absolute one.
//
// All kernels return sentinel errors (ErrSingular, ErrDimensionMismatch,
// ErrNilMatrix, ...) wrapped with an operation tag; match them with errors.Is.
//
// See the examples in this package and in cachesolve for usage patterns.
package matrix
