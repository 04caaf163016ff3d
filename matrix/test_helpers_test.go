// SPDX-License-Identifier: MIT
// Test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures for the dense and inversion kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/invcache/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their generic At/Set path.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// NewFilledDense builds an r×c *Dense from a row-major flat slice.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	require.Len(t, vals, r*c, "NewFilledDense: value count")
	d := MustDense(t, r, c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			require.NoError(t, d.Set(i, j, vals[i*c+j]))
		}
	}

	return d
}

// RandFilledDense returns an r×c Dense with values in [-1,1) from a fixed seed.
func RandFilledDense(t testing.TB, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			require.NoError(t, m.Set(i, j, rng.Float64()*2-1))
		}
	}

	return m
}

// DiagDominant returns a random n×n matrix with |a_ii| > Σ|a_ij|, which is
// always invertible without pivoting.
func DiagDominant(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	m := RandFilledDense(t, n, n, seed)
	for i := 0; i < n; i++ {
		v, err := m.At(i, i)
		require.NoError(t, err)
		require.NoError(t, m.Set(i, i, v+float64(n)+1))
	}

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// CompareExact checks every element of m against want with ==.
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			require.Equal(t, want[i][j], MustAt(t, m, i, j), "[%d,%d]", i, j)
		}
	}
}

// RequireInverse asserts m×inv ≈ I and inv×m ≈ I within atol.
func RequireInverse(t *testing.T, m, inv matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.IsInverse(m, inv, atol)
	require.NoError(t, err)
	require.True(t, ok, "m×inv is not identity within %g", atol)
	ok, err = matrix.IsInverse(inv, m, atol)
	require.NoError(t, err)
	require.True(t, ok, "inv×m is not identity within %g", atol)
}
