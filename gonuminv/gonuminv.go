// Package gonuminv provides a gonum-backed inversion capability with the
// same signature as matrix.Inverse, so it can be plugged into
// cachesolve.WithInverse.
//
// gonum factorizes with LAPACK-style partial pivoting (Getrf/Getri) and
// returns a mat.Condition error when the condition number exceeds
// mat.ConditionTolerance (1e16) or is infinite. Either way the result is
// not a usable inverse, so every mat.Condition maps to matrix.ErrSingular.
package gonuminv

import (
	"errors"
	"fmt"

	"github.com/apex/log"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/invcache/matrix"
)

const opInverse = "gonuminv.Inverse"

// Inverse returns the inverse of m computed by gonum.
//
// Only the NaN/Inf policy in opts is honoured; pivoting is always on and
// the pivot tolerance does not apply.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (checked before gonum,
//     which would otherwise panic on a non-square input).
//   - matrix.ErrNaNInf (non-finite input under the policy).
//   - matrix.ErrSingular (gonum reports a mat.Condition error).
func Inverse(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	o := matrix.NewMatrixOptions(opts...)
	if o.ValidateNaNInf() {
		if err := matrix.ValidateFinite(m); err != nil {
			return nil, fmt.Errorf("%s: %w", opInverse, err)
		}
	}

	src, err := toGonum(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}

	var inv mat.Dense
	if err = inv.Inverse(src); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("%s: %w", opInverse, err)
		}
		log.WithField("condition", float64(cond)).Debug("gonuminv: singular matrix")

		return nil, fmt.Errorf("%s: %v: %w", opInverse, err, matrix.ErrSingular)
	}

	res, err := fromGonum(&inv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}

	return res, nil
}

// toGonum copies m into a row-major gonum Dense.
func toGonum(m matrix.Matrix) (*mat.Dense, error) {
	r, c := m.Rows(), m.Cols()
	data := make([]float64, r*c)
	var v float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			data[i*c+j] = v
		}
	}

	return mat.NewDense(r, c, data), nil
}

// fromGonum copies a gonum matrix into a fresh *matrix.Dense.
func fromGonum(g mat.Matrix) (*matrix.Dense, error) {
	r, _ := g.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = mat.Row(nil, i, g)
	}

	return matrix.NewDenseFromRows(rows)
}
