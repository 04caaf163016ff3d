// SPDX-License-Identifier: MIT
// Public API helpers.
//
// Purpose:
//   - Provide thin, well-documented constructors and comparisons used by
//     cachesolve, the CLI and tests.
//   - Validation is performed in the kernels; helpers only compose or forward.

package matrix

import (
	"fmt"
	"math"
)

const opAllClose = "AllClose"

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// IdentityLike returns the identity with m's row count.
// m must be non-nil and square.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, err
	}

	return NewIdentity(m.Rows())
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|.
//
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	var i, j int
	var av, bv float64
	var err error
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !closeEnough(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeEnough is the scalar relation behind AllClose.
func closeEnough(a, b, rtol, atol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}

	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// MaxAbs returns max |m[i,j]| (the max norm). NaN entries yield NaN.
func MaxAbs(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, fmt.Errorf("MaxAbs: %w", err)
	}
	var best float64
	var v float64
	var err error
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, fmt.Errorf("MaxAbs: %w", err)
			}
			if math.IsNaN(v) {
				return math.NaN(), nil
			}
			best = math.Max(best, math.Abs(v))
		}
	}

	return best, nil
}

// Residual returns max |(m×inv - I)[i,j]|, the worst deviation of the
// product from the identity.
func Residual(m, inv Matrix) (float64, error) {
	prod, err := Mul(m, inv)
	if err != nil {
		return 0, fmt.Errorf("Residual: %w", err)
	}
	I, err := IdentityLike(prod)
	if err != nil {
		return 0, fmt.Errorf("Residual: %w", err)
	}
	diff, err := Sub(prod, I)
	if err != nil {
		return 0, fmt.Errorf("Residual: %w", err)
	}

	return MaxAbs(diff)
}

// IsInverse reports whether m×inv ≈ I within tol (absolute, per element).
// Used by the CLI --check step; cachesolve itself never verifies inverses.
func IsInverse(m, inv Matrix, tol float64) (bool, error) {
	prod, err := Mul(m, inv)
	if err != nil {
		return false, fmt.Errorf("IsInverse: %w", err)
	}
	I, err := IdentityLike(prod)
	if err != nil {
		return false, fmt.Errorf("IsInverse: %w", err)
	}

	return AllClose(prod, I, 0, tol)
}
