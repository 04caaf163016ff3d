package cachesolve

import (
	"fmt"

	"github.com/apex/log"

	"github.com/katalvlaran/invcache/matrix"
)

const (
	msgCacheHit  = "returning cached inverse"
	msgCacheMiss = "computed inverse"
)

// InverseFunc is the external inversion capability: it returns the inverse
// of a square matrix, or an error when the input is not square or not
// invertible. Options are implementation-specific and forwarded verbatim.
type InverseFunc func(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error)

// Solver resolves inverses through a CachedMatrix.
// A Solver holds no per-container state and may be reused across containers.
type Solver struct {
	inverse InverseFunc
	logger  log.Interface
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithInverse replaces the inversion capability (default matrix.Inverse).
// A nil f is ignored.
func WithInverse(f InverseFunc) SolverOption {
	return func(s *Solver) {
		if f != nil {
			s.inverse = f
		}
	}
}

// WithLogger sets the logger that receives cache diagnostics
// (default: the apex/log package logger). A nil logger is ignored.
func WithLogger(l log.Interface) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSolver returns a Solver backed by matrix.Inverse unless overridden.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		inverse: matrix.Inverse,
		logger:  log.Log,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

var defaultSolver = NewSolver()

// CacheSolve returns the inverse of cm's current value using the default
// Solver. See Solver.Solve.
func CacheSolve(cm *CachedMatrix, opts ...matrix.Option) (matrix.Matrix, error) {
	return defaultSolver.Solve(cm, opts...)
}

// Solve returns the inverse of cm's current value.
//
// On a cache hit it logs a debug entry and returns the cached matrix as is,
// without reading the value or calling the inverter. On a miss it inverts
// Value() with opts, stores the result with SetCachedInverse and returns it.
// Inverter errors are returned unchanged and leave the cache absent.
func (s *Solver) Solve(cm *CachedMatrix, opts ...matrix.Option) (matrix.Matrix, error) {
	if cm == nil {
		return nil, fmt.Errorf("cachesolve: nil container: %w", matrix.ErrNilMatrix)
	}

	if inv := cm.CachedInverse(); inv != nil {
		s.logger.WithFields(log.Fields{
			"rows": inv.Rows(),
			"cols": inv.Cols(),
		}).Debug(msgCacheHit)

		return inv, nil
	}

	inv, err := s.inverse(cm.Value(), opts...)
	if err != nil {
		return nil, err
	}
	cm.SetCachedInverse(inv)
	s.logger.WithFields(log.Fields{
		"rows": inv.Rows(),
		"cols": inv.Cols(),
	}).Debug(msgCacheMiss)

	return inv, nil
}
