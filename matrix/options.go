// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - NewOptions resolver shared with the ops sub-package.
//
// Design goals:
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - Predicates (IsSymmetric, IsOrthogonal, ...) read Epsilon.
//   - Decompositions and iterative eigen solvers read Tolerance and MaxIter.
//   - Randomized constructors read Rand; nil falls back to the shared source.
package matrix

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/katalvlaran/lvla/internal/logger"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the tolerance used by structural predicates.
	DefaultEpsilon = 1e-9

	// DefaultTolerance is the convergence threshold of iterative algorithms.
	DefaultTolerance = 1e-12

	// DefaultMaxIter caps the iteration count of iterative algorithms.
	DefaultMaxIter = 100000
)

// QRMethod selects the algorithm behind the generic QR entry point.
type QRMethod int

const (
	// QRAuto uses Gram-Schmidt for single-column input and Householder otherwise.
	QRAuto QRMethod = iota
	// QRHouseholder forces Householder reflections (full Q).
	QRHouseholder
	// QRGramSchmidt forces classical Gram-Schmidt (thin Q).
	QRGramSchmidt
)

// String implements fmt.Stringer.
func (m QRMethod) String() string {
	switch m {
	case QRHouseholder:
		return "householder"
	case QRGramSchmidt:
		return "gram-schmidt"
	default:
		return "auto"
	}
}

// ParseQRMethod maps "auto", "householder" or "gram-schmidt" to a QRMethod.
// Errors:
//   - ErrInvalidArgument for any other name.
func ParseQRMethod(name string) (QRMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return QRAuto, nil
	case "householder":
		return QRHouseholder, nil
	case "gram-schmidt", "gramschmidt", "gs":
		return QRGramSchmidt, nil
	}
	return QRAuto, fmt.Errorf("ParseQRMethod: %q: %w", name, ErrInvalidArgument)
}

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicToleranceInvalid = "matrix: WithTolerance: tol must be finite, non-negative"
	panicMaxIterInvalid   = "matrix: WithMaxIter: n must be > 0"
	panicQRMethodInvalid  = "matrix: WithQRMethod: unknown method"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps      float64
	tol      float64
	maxIter  int
	qr       QRMethod
	log      logger.Logger
	rng      *rand.Rand
	logIsSet bool
}

// WithEpsilon sets the tolerance used by structural predicates.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0 (panic otherwise).
//   - Stage 2: return a setter that writes eps into Options.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithTolerance sets the convergence / pivot threshold of numeric algorithms.
func WithTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicToleranceInvalid)
	}
	return func(o *Options) { o.tol = tol }
}

// WithMaxIter caps the number of iterations of iterative algorithms.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}
	return func(o *Options) { o.maxIter = n }
}

// WithQRMethod selects the algorithm of the generic QR entry point.
func WithQRMethod(m QRMethod) Option {
	if m < QRAuto || m > QRGramSchmidt {
		panic(panicQRMethodInvalid)
	}
	return func(o *Options) { o.qr = m }
}

// WithLogger routes soft-failure diagnostics to l. A nil l silences them.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		o.log = l
		o.logIsSet = true
	}
}

// WithRand makes randomized operations draw from r instead of the shared source.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.rng = r }
}

// NewOptions resolves opts over the documented defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		eps:     DefaultEpsilon,
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIter,
		qr:      QRAuto,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Epsilon returns the predicate tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// Tolerance returns the convergence threshold.
func (o Options) Tolerance() float64 { return o.tol }

// MaxIter returns the iteration budget.
func (o Options) MaxIter() int { return o.maxIter }

// QR returns the selected QR algorithm.
func (o Options) QR() QRMethod { return o.qr }

// Logger returns the configured logger, the package logger when unset, or a
// discarding logger when WithLogger(nil) was applied.
func (o Options) Logger() logger.Logger {
	if o.logIsSet {
		if o.log == nil {
			return logger.Discard()
		}
		return o.log
	}
	return packageLogger()
}

// Rand returns the configured random source or the shared one.
func (o Options) Rand() *rand.Rand {
	if o.rng != nil {
		return o.rng
	}
	return sharedRand()
}

var (
	logMu  sync.RWMutex
	pkgLog = logger.Default()
)

// SetLogger replaces the package-level logger used when no WithLogger option
// is given. A nil l restores the default stderr logger.
func SetLogger(l logger.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		l = logger.Default()
	}
	pkgLog = l
}

func packageLogger() logger.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return pkgLog
}
