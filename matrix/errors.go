// SPDX-License-Identifier: MIT
// Sentinel error set.
// This file defines ONLY package-level sentinel errors. Kernels return these
// sentinels (optionally wrapped with an operation tag) and tests match them
// via errors.Is. No kernel panics on user-triggered error conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." so logs stay greppable.
// Wrap with fmt.Errorf("Op: %w", ErrX) at the kernel boundary; callers still
// match with errors.Is.

var (
	// ErrBadShape is returned when an input cannot describe a rectangular
	// matrix (e.g., ragged rows or an empty row set).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Mul where a.Cols != b.Rows, or a non-square input to LU/Inverse.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when a pivot within tolerance of zero is met
	// during LU factorization or inversion.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)
