package cachesolve

import "github.com/katalvlaran/invcache/matrix"

// CachedMatrix is a matrix value paired with its memoized inverse.
// The zero value is ready to use: an unspecified (nil) value and no cache.
//
// Matrices are stored and returned by reference. Callers must not mutate a
// matrix after handing it over; pass a new (or cloned) matrix to SetValue
// instead, which is the only way the cache learns about the change.
type CachedMatrix struct {
	value   matrix.Matrix // current matrix (nil = unspecified)
	inverse matrix.Matrix // cached inverse of value, nil when absent
}

// NewCachedMatrix returns a container holding m with no cached inverse.
func NewCachedMatrix(m matrix.Matrix) *CachedMatrix {
	return &CachedMatrix{value: m}
}

// SetValue replaces the matrix and clears the cached inverse.
// It never fails and performs no shape or invertibility validation.
func (c *CachedMatrix) SetValue(m matrix.Matrix) {
	c.value = m
	c.inverse = nil
}

// Value returns the current matrix.
func (c *CachedMatrix) Value() matrix.Matrix {
	return c.value
}

// SetCachedInverse stores inv as the inverse of the current value,
// overwriting any previous one.
//
// The caller asserts that inv inverts Value(); this is not verified.
// CacheSolve only ever stores what the inverter returned for the value it
// read, so the assertion holds as long as the container is not shared
// across goroutines without Guarded.
func (c *CachedMatrix) SetCachedInverse(inv matrix.Matrix) {
	c.inverse = inv
}

// CachedInverse returns the cached inverse, or nil when absent.
func (c *CachedMatrix) CachedInverse() matrix.Matrix {
	return c.inverse
}

// HasCachedInverse reports whether an inverse is cached.
func (c *CachedMatrix) HasCachedInverse() bool {
	return c.inverse != nil
}
