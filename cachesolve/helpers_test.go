package cachesolve_test

import (
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/invcache/cachesolve"
	"github.com/katalvlaran/invcache/matrix"
)

// countingInverse wraps matrix.Inverse and records every call.
type countingInverse struct {
	calls int
	opts  [][]matrix.Option
}

func (c *countingInverse) Inverse(m matrix.Matrix, opts ...matrix.Option) (matrix.Matrix, error) {
	c.calls++
	c.opts = append(c.opts, opts)

	return matrix.Inverse(m, opts...)
}

// newTestSolver returns a Solver wired to a counting inverter and an
// in-memory debug logger.
func newTestSolver() (*cachesolve.Solver, *countingInverse, *memory.Handler) {
	counter := &countingInverse{}
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	s := cachesolve.NewSolver(
		cachesolve.WithInverse(counter.Inverse),
		cachesolve.WithLogger(logger),
	)

	return s, counter, h
}

// countMessages returns how many log entries carry msg.
func countMessages(h *memory.Handler, msg string) int {
	n := 0
	for _, e := range h.Entries {
		if e.Message == msg {
			n++
		}
	}

	return n
}

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func requireRows(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	d, ok := m.(*matrix.Dense)
	require.True(t, ok, "want *matrix.Dense, got %T", m)
	require.Equal(t, want, d.ToRows())
}
