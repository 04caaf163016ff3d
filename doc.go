// Package invcache memoizes the inverse of a square matrix.
//
// The module is organized as:
//
//	matrix/      Dense storage, LU factorization and the Inverse capability
//	cachesolve/  CachedMatrix (value + cached inverse) and CacheSolve
//	gonuminv/    a gonum-backed Inverse with the same signature
//	cmd/invcache command-line front-end (inverse FILE)
//
// Typical use:
//
//	a, _ := matrix.NewDenseFromRows([][]float64{{2, 0}, {0, 2}})
//	cm := cachesolve.NewCachedMatrix(a)
//	inv, err := cachesolve.CacheSolve(cm) // computes and caches
//	inv, err = cachesolve.CacheSolve(cm)  // returns the cached inverse
//
// Replacing the value with SetValue discards the cached inverse.
package invcache
