// SPDX-License-Identifier: MIT

// Functional configuration for the inversion kernels and the numeric policy:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves setters against defaults.
//
// Options reach Inverse verbatim through cachesolve.CacheSolve, so every
// setter here is also part of the caching front-end's surface.

package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the customary absolute tolerance for IsInverse.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultPivoting enables partial (row) pivoting in Inverse.
	DefaultPivoting = true
)

// machineEpsilon is the gap between 1 and the next float64 (2^-52).
// Without WithPivotTolerance, Inverse treats |pivot| <= n·ε·max|A| as zero.
const machineEpsilon = 0x1p-52

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPivotTolInvalid = "matrix: WithPivotTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	validateNaNInf bool    // DefaultValidateNaNInf
	pivoting       bool    // DefaultPivoting
	pivotTol       float64 // >= 0; meaningful only when pivotTolSet
	pivotTolSet    bool    // false: relative threshold n·ε·max|A|
}

// ValidateNaNInf reports whether the finite-only policy is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// Pivoting reports whether Inverse uses partial pivoting.
func (o Options) Pivoting() bool { return o.pivoting }

// PivotTolerance reports the absolute singularity threshold and whether one
// was set. When absolute is false Inverse uses the relative threshold
// n·ε·max|A|.
func (o Options) PivotTolerance() (tol float64, absolute bool) {
	return o.pivotTol, o.pivotTolSet
}

// pivotThreshold returns the |pivot| bound at or below which the n×n
// buffer a is reported singular.
func (o Options) pivotThreshold(a []float64, n int) float64 {
	if o.pivotTolSet {
		return o.pivotTol
	}
	var maxAbs float64
	for _, v := range a {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	return float64(n) * machineEpsilon * maxAbs
}

// ---------- Constructors (WithX) ----------

// WithValidateNaNInf enables strict finite-value validation.
// Inverse then rejects non-finite inputs and allocates results that refuse
// NaN/Inf in Set. This is the default.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation.
// Use only in controlled experiments; NaN propagates through the kernels.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithPivoting enables partial (row) pivoting in Inverse. This is the default.
func WithPivoting() Option {
	return func(o *Options) { o.pivoting = true }
}

// WithNoPivoting selects the deterministic Doolittle scheme without row
// exchanges. Matrices with a zero leading minor (e.g. [[0,1],[1,0]]) are
// then reported as ErrSingular even though they are invertible.
func WithNoPivoting() Option {
	return func(o *Options) { o.pivoting = false }
}

// WithPivotTolerance replaces the relative default with an absolute
// threshold: pivots with |p| <= tol make Inverse report ErrSingular.
// WithPivotTolerance(0) rejects exact zeros only. Panics when tol is
// negative or non-finite.
func WithPivotTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicPivotTolInvalid)
	}

	return func(o *Options) {
		o.pivotTol = tol
		o.pivotTolSet = true
	}
}

// --------------------------- Option Resolution ---------------------------

// NewMatrixOptions resolves option setters against documented defaults.
// Pure function; last-writer-wins for a given sequence of opts.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		pivoting:       DefaultPivoting,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Nil setters are skipped so callers can forward optional slices verbatim.
// Complexity: O(k) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		if set == nil {
			continue
		}
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
