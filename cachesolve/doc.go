// Package cachesolve memoizes matrix inversion.
//
// A CachedMatrix owns a matrix value and, optionally, the inverse computed
// for it. Replacing the value through SetValue always clears the cached
// inverse in the same step, so a stale inverse is never paired with a new
// value.
//
// CacheSolve (and Solver.Solve) is the compute-or-fetch front-end:
//
//	cm := cachesolve.NewCachedMatrix(m)
//	inv, err := cachesolve.CacheSolve(cm)   // miss: computes via matrix.Inverse
//	inv, err = cachesolve.CacheSolve(cm)    // hit: returns the same object, logs at debug
//	cm.SetValue(other)                      // invalidates the cached inverse
//
// The inversion itself is an external capability (matrix.Inverse by
// default, or any InverseFunc such as gonuminv.Inverse). Options passed to
// CacheSolve are forwarded to it verbatim and errors come back unchanged.
//
// CachedMatrix and Solver are not safe for concurrent use. Guarded adds a
// mutex around the whole check-compute-store sequence for callers that share
// one container between goroutines.
package cachesolve
