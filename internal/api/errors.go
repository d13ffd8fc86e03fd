// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"

	"github.com/katalvlaran/lvla/internal/engine"
	"github.com/katalvlaran/lvla/matrix"
)

// Error types reported in the "type" field of an error body.
const (
	errTypeInvalidRequest = "invalid_request_error"
	errTypeNotFound       = "not_found_error"
	errTypeComputation    = "computation_error"
	errTypeServer         = "server_error"
)

// ResponseError is the body of every failed call.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// classify maps an engine or numeric error to an HTTP status and error type.
// Malformed calls are client errors; operands the algorithm cannot handle
// (singular, non-square, complex spectrum...) are unprocessable.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrUnknownOp):
		return http.StatusNotFound, errTypeNotFound
	case errors.Is(err, engine.ErrArity),
		errors.Is(err, engine.ErrMissingScalar),
		errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, matrix.ErrInvalidArgument),
		errors.Is(err, matrix.ErrUnsupportedInit),
		errors.Is(err, matrix.ErrInvalidLength):
		return http.StatusBadRequest, errTypeInvalidRequest
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrNonSquare),
		errors.Is(err, matrix.ErrAsymmetry),
		errors.Is(err, matrix.ErrSingular),
		errors.Is(err, matrix.ErrNotPositiveDefinite),
		errors.Is(err, matrix.ErrOverdetermined),
		errors.Is(err, matrix.ErrComplexEigen),
		errors.Is(err, matrix.ErrEigenDomain):
		return http.StatusUnprocessableEntity, errTypeComputation
	}
	return http.StatusInternalServerError, errTypeServer
}

// errorCode is the sentinel text without its package prefix, e.g. "singular matrix".
func errorCode(err error) string {
	for _, s := range []error{
		matrix.ErrDimensionMismatch, matrix.ErrNonSquare, matrix.ErrAsymmetry,
		matrix.ErrSingular, matrix.ErrNotPositiveDefinite, matrix.ErrOverdetermined,
		matrix.ErrComplexEigen, matrix.ErrEigenDomain,
	} {
		if errors.Is(err, s) {
			return s.Error()[len("matrix: "):]
		}
	}
	return ""
}
