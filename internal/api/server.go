// SPDX-License-Identifier: MIT

// Package api exposes the lvla engine as an HTTP JSON service.
//
//	GET  /healthz       liveness
//	GET  /v1/ops        registered operations
//	POST /v1/ops/:op    evaluate one operation
//
// Matrices travel as arrays of rows; a flat array is a single row and a bare
// number a 1×1 matrix.
package api

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/katalvlaran/lvla/internal/engine"
	"github.com/katalvlaran/lvla/internal/logger"
	"github.com/katalvlaran/lvla/matrix"
)

const headerRequestID = "X-Request-Id"

// OpRequest is the body of POST /v1/ops/:op.
type OpRequest struct {
	Args   []*matrix.Dense `json:"args"`
	Scalar *float64        `json:"scalar,omitempty"`
}

// OpResponse is the body of a successful evaluation.
type OpResponse struct {
	ID     string        `json:"id"`
	Op     string        `json:"op"`
	Result engine.Result `json:"result"`
}

// OpsResponse lists the registered operations.
type OpsResponse struct {
	Object string        `json:"object"`
	Data   []engine.Info `json:"data"`
}

// Server routes HTTP calls into an Engine.
type Server struct {
	engine *engine.Engine
	log    logger.Logger
}

// NewServer returns a Server over eng. A nil log discards records.
func NewServer(eng *engine.Engine, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{engine: eng, log: log}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/ops", s.handleListOps)
	e.POST("/v1/ops/:op", s.handleEval)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListOps(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, OpsResponse{Object: "list", Data: s.engine.Ops()})
}

func (s *Server) handleEval(c *echo.Context) error {
	id := uuid.NewString()
	c.Response().Header().Set(headerRequestID, id)

	op := c.Param("op")
	if _, ok := s.engine.Lookup(op); !ok {
		return writeError(c, http.StatusNotFound, errTypeNotFound, "unknown operation "+op, "")
	}
	var req OpRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return writeError(c, http.StatusBadRequest, errTypeInvalidRequest, err.Error(), "")
	}

	res, err := s.engine.Eval(c.Request().Context(), engine.Request{Op: op, Args: req.Args, Scalar: req.Scalar})
	if err != nil {
		status, typ := classify(err)
		s.log.Info("operation rejected", "id", id, "op", op, "status", status, "error", err)
		return writeError(c, status, typ, err.Error(), errorCode(err))
	}
	b, err := json.Marshal(OpResponse{ID: id, Op: op, Result: res})
	if err != nil {
		// NaN or ±Inf in a result has no JSON form.
		return writeError(c, http.StatusUnprocessableEntity, errTypeComputation, err.Error(), "non-finite result")
	}
	return writeRaw(c, http.StatusOK, b)
}

func writeError(c *echo.Context, status int, errType, msg, code string) error {
	return writeJSON(c, status, map[string]any{
		"error": ResponseError{Message: msg, Type: errType, Code: code},
	})
}

// writeJSON encodes v with go-json.
func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeRaw(c, status, b)
}

func writeRaw(c *echo.Context, status int, b []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	_, err := res.Write(b)
	return err
}
