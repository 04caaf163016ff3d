// SPDX-License-Identifier: MIT
// Linear-algebra kernels: multiplication, difference, LU factorization and
// inversion. All functions perform strict fail-fast validation and return
// sentinel errors wrapped with an operation tag.
//
// Notes:
//   - Kernels never mutate their inputs; results are freshly allocated *Dense.
//   - *Dense inputs hit flat-slice fast paths; other Matrix implementations
//     go through At/Set with the same loop order.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opSub     = "Sub"
	opMul     = "Mul"
	opInverse = "Inverse"
	opLU      = "LU"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Sub returns the element-wise difference a - b as a new matrix.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := newDenseWithPolicy(rows, cols, false)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] - db.data[idx]
			}

			return res, nil
		}
	}

	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			res.data[i*cols+j] = av - bv
		}
	}

	return res, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides and skip zeros;
//     otherwise use i→j→k with a fixed order.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k         int
		av, bv, current float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowOffsetA, rowOffsetB, rowOffsetR int
			for i = 0; i < aRows; i++ {
				rowOffsetA = i * aCols
				rowOffsetR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowOffsetA+k]
					if av == 0 {
						continue
					}
					rowOffsetB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
					}
				}
			}

			return res, nil
		}
	}

	// Fallback: generic interface triple-loop (i-j-k)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			if err = res.Set(i, j, current); err != nil {
				return nil, matrixErrorf(opMul, err)
			}
		}
	}

	return res, nil
}

// flatCopy returns a row-major copy of the n×n matrix m.
func flatCopy(m Matrix, n int) ([]float64, error) {
	a := make([]float64, n*n)
	if d, ok := m.(*Dense); ok {
		copy(a, d.data)
		return a, nil
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			a[i*n+j] = v
		}
	}

	return a, nil
}

// luFactor factorizes the flat n×n buffer a in place so that P·A = L·U.
// On return the strict lower triangle of a holds L (unit diagonal implied),
// the upper triangle holds U, and perm[i] is the source row of row i.
//
// Implementation:
//   - For each column k pick the pivot row: max |a[i,k]| for i ≥ k when
//     pivoting, else row k itself (Doolittle order).
//   - Reject |pivot| ≤ tol with ErrSingular (tol comes from
//     Options.pivotThreshold).
//   - Eliminate below the pivot with fixed i→j loops.
//
// Complexity: Time O(n^3), Space O(n) for perm.
func luFactor(a []float64, n int, pivoting bool, tol float64) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var i, j, k, p int
	var pivot, best, l float64
	for k = 0; k < n; k++ {
		p = k
		if pivoting {
			best = math.Abs(a[k*n+k])
			for i = k + 1; i < n; i++ {
				if v := math.Abs(a[i*n+k]); v > best {
					best, p = v, i
				}
			}
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}

		pivot = a[k*n+k]
		if math.Abs(pivot) <= tol {
			return nil, fmt.Errorf("zero pivot at %d: %w", k, ErrSingular)
		}
		for i = k + 1; i < n; i++ {
			l = a[i*n+k] / pivot
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return perm, nil
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (if |U[i,i]| ≤ n·ε·max|A|
//     during factorization).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - Deterministic by design; Inverse adds row pivoting on top of the same kernel.
func LU(m Matrix) (Matrix, Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	n := m.Rows()
	a, err := flatCopy(m, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	tol := defaultOptions().pivotThreshold(a, n)
	if _, err = luFactor(a, n, false, tol); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		L.data[i*n+i] = 1.0
		for j = 0; j < n; j++ {
			if j < i {
				L.data[i*n+j] = a[i*n+j]
			} else {
				U.data[i*n+j] = a[i*n+j]
			}
		}
	}

	return L, U, nil
}

// Inverse computes A^{-1} via LU factorization and n triangular solves.
// The input must be non-nil and square. Options are resolved with
// gatherOptions and select pivoting, the singularity tolerance and the
// numeric policy of the result.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil(m); when the NaN/Inf policy is on,
//     ValidateFinite(m).
//   - Stage 2: copy m into a flat buffer and factorize P·A = L·U in place.
//   - Stage 3: for each basis column e_col solve L*y = P*e_col (top-down)
//     then U*x = y (bottom-up) and write x into column col.
//
// Errors:
//   - ErrNilMatrix         (nil input).
//   - ErrDimensionMismatch (non-square input).
//   - ErrNaNInf            (non-finite input or overflow, under the policy).
//   - ErrSingular          (a pivot with |p| ≤ n·ε·max|A|, or ≤ the absolute
//     tolerance set by WithPivotTolerance). Numerically singular inputs such
//     as [[1,2,3],[4,5,6],[7,8,9]] leave a rounding-sized pivot and are
//     rejected too.
//
// Determinism:
//   - Fixed traversal (col↑, forward i↑, backward i↓); ties in pivot
//     search keep the upper row.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(m); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
	}

	n := m.Rows()
	a, err := flatCopy(m, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	perm, err := luFactor(a, n, o.pivoting, o.pivotThreshold(a, n))
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	inv, err := newDenseWithPolicy(n, n, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = P*e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += a[i*n+k] * y[k]
			}
			if perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = ZeroSum - sum
			}
		}
		// Backward substitution: U*x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += a[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / a[i*n+i]
			if x[i] == 0 {
				x[i] = 0 // normalize -0 so printed inverses stay stable
			}
		}
		for i = 0; i < n; i++ {
			if o.validateNaNInf && isNonFinite(x[i]) {
				return nil, matrixErrorf(opInverse, denseErrorf(ctxSet, i, col, ErrNaNInf))
			}
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
