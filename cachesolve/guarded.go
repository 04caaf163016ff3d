package cachesolve

import (
	"sync"

	"github.com/katalvlaran/invcache/matrix"
)

// Guarded is a CachedMatrix that may be shared between goroutines.
//
// Solve holds the lock across the whole check-compute-store sequence, so a
// SetValue that arrives while an inverse is being computed waits for it and
// then clears it; a stale inverse can never be written back after the value
// changed. The price is that concurrent Solve calls on one Guarded serialize.
type Guarded struct {
	mu     sync.Mutex
	cm     CachedMatrix
	solver *Solver
}

// NewGuarded returns a Guarded holding m. A nil solver selects the default.
func NewGuarded(m matrix.Matrix, solver *Solver) *Guarded {
	if solver == nil {
		solver = defaultSolver
	}

	return &Guarded{cm: CachedMatrix{value: m}, solver: solver}
}

// SetValue replaces the matrix and clears the cached inverse.
func (g *Guarded) SetValue(m matrix.Matrix) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cm.SetValue(m)
}

// Value returns the current matrix.
func (g *Guarded) Value() matrix.Matrix {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.cm.Value()
}

// CachedInverse returns the cached inverse, or nil when absent.
func (g *Guarded) CachedInverse() matrix.Matrix {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.cm.CachedInverse()
}

// Solve resolves the inverse of the current value under the lock.
func (g *Guarded) Solve(opts ...matrix.Option) (matrix.Matrix, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.solver.Solve(&g.cm, opts...)
}

// Snapshot returns the current value and its cached inverse (nil when
// absent) as one consistent pair.
func (g *Guarded) Snapshot() (value, inverse matrix.Matrix) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.cm.Value(), g.cm.CachedInverse()
}
