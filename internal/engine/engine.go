// SPDX-License-Identifier: MIT

// Package engine evaluates named matrix operations on decoded operands. It is
// the single dispatch table shared by the lvla CLI and the HTTP service, so
// both surfaces accept the same operation names and return the same result
// layout.
package engine

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/katalvlaran/lvla/internal/logger"
	"github.com/katalvlaran/lvla/matrix"
)

// Sentinel errors for request validation.
var (
	// ErrUnknownOp is returned for an operation name with no registered handler.
	ErrUnknownOp = errors.New("engine: unknown operation")

	// ErrArity is returned when the number of matrix operands is wrong.
	ErrArity = errors.New("engine: wrong number of operands")

	// ErrMissingScalar is returned when an operation needs a scalar parameter
	// and the request carries none.
	ErrMissingScalar = errors.New("engine: missing scalar parameter")
)

// Request is one operation call.
type Request struct {
	Op     string          `json:"op"`
	Args   []*matrix.Dense `json:"args"`
	Scalar *float64        `json:"scalar,omitempty"`
}

// Result maps output names (for example "l" and "u" for LU) to matrices,
// numbers, vectors or booleans.
type Result map[string]any

// Info describes a registered operation.
type Info struct {
	Name   string `json:"name"`
	Arity  int    `json:"arity"`
	Scalar string `json:"scalar,omitempty"`
	Usage  string `json:"usage"`
}

type call struct {
	args   []*matrix.Dense
	scalar *float64
	opts   []matrix.Option
}

type handler func(c call) (Result, error)

type operation struct {
	Info
	needScalar bool
	run        handler
}

// Engine holds the numeric policy applied to every call.
type Engine struct {
	opts []matrix.Option
	log  logger.Logger
	ops  map[string]operation
}

// New returns an Engine with the full operation table. A nil log discards
// diagnostics; opts become the numeric policy of every call.
func New(log logger.Logger, opts ...matrix.Option) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	e := &Engine{
		opts: append([]matrix.Option{matrix.WithLogger(log)}, opts...),
		log:  log,
		ops:  make(map[string]operation),
	}
	registerBuiltins(e)
	return e
}

// register adds an operation. Scalar names the meaning of the optional
// scalar parameter; required marks it mandatory.
func (e *Engine) register(name string, arity int, scalar string, required bool, usage string, run handler) {
	e.ops[name] = operation{
		Info:       Info{Name: name, Arity: arity, Scalar: scalar, Usage: usage},
		needScalar: required,
		run:        run,
	}
}

// Ops lists every operation sorted by name.
func (e *Engine) Ops() []Info {
	out := make([]Info, 0, len(e.ops))
	for _, op := range e.ops {
		out = append(out, op.Info)
	}
	slices.SortFunc(out, func(a, b Info) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Lookup returns the description of one operation.
func (e *Engine) Lookup(name string) (Info, bool) {
	op, ok := e.ops[name]
	return op.Info, ok
}

// Eval validates req and runs it. Operands are never mutated.
func (e *Engine) Eval(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	op, ok := e.ops[req.Op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}
	if len(req.Args) != op.Arity {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", req.Op, ErrArity, len(req.Args), op.Arity)
	}
	for i, a := range req.Args {
		if a == nil {
			return nil, fmt.Errorf("%s: operand %d: %w", req.Op, i, matrix.ErrNilMatrix)
		}
	}
	if op.needScalar && req.Scalar == nil {
		return nil, fmt.Errorf("%s: %w (%s)", req.Op, ErrMissingScalar, op.Scalar)
	}
	if req.Scalar != nil && (math.IsNaN(*req.Scalar) || op.Scalar == "") {
		return nil, fmt.Errorf("%s: scalar %v: %w", req.Op, *req.Scalar, matrix.ErrInvalidArgument)
	}

	args := make([]*matrix.Dense, len(req.Args))
	for i, a := range req.Args {
		args[i] = a.Copy()
	}
	start := time.Now()
	res, err := op.run(call{args: args, scalar: req.Scalar, opts: e.opts})
	if err != nil {
		e.log.Debug("operation failed", "op", req.Op, "error", err)
		return nil, err
	}
	e.log.Debug("operation done", "op", req.Op, "elapsed", time.Since(start))
	return res, nil
}
