// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import (
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/typed-jsonrpc/jsonrpc2/internal/codec"
)

// Server dispatches JSON-RPC 2.0 request text against a fixed catalog
// of statically-typed methods and returns response text synchronously.
// A Server has no notion of transport or concurrency; Call is safe for
// concurrent use because each call only reads the registry and its own
// local state.
type Server struct {
	registry *ServerRegistry
	codec    *codec.Codec
	logger   *zap.Logger

	requestsServed atomic.Int64
	errorsServed   atomic.Int64
}

// ServerOption configures a Server at construction.
type ServerOption func(*Server)

// WithServerLogger overrides the Server's logger, which defaults to a
// no-op logger.
func WithServerLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer builds a Server hosting registry.
func NewServer(registry *ServerRegistry, opts ...ServerOption) *Server {
	s := &Server{
		registry: registry,
		codec:    codec.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServerResult is one response element produced by a Call. Text is the
// serialized response object, not wrapped in an array; Err is the
// *Error it carries, nil on success.
type ServerResult struct {
	Text string
	Err  *Error
}

// Call dispatches text, a single JSON-RPC 2.0 request or batch of
// requests, and returns the response text for every request that is
// not a notification, in request order. Notifications never produce a
// ServerResult, even when they carry a wrong version, name an unknown
// method or have params that fail to decode: a matched notification's
// handler still runs, for its side effects, but its result is
// discarded. Input that does not decode as a request object at all is
// still answered with an error carrying a null id.
//
// The caller is responsible for joining multiple results into a JSON
// array when more than one is returned; Call itself never wraps a
// batch's replies in brackets.
func (s *Server) Call(text string) []ServerResult {
	raw := []byte(text)

	if !s.codec.Valid(raw) {
		s.errorsServed.Inc()
		errv := NewError(ParseError, ParseError.DefaultMessage()).WithData(parseDiagnostic(s.codec, raw))
		return []ServerResult{s.emitGenericError(NullID(), errv)}
	}

	decoded, err := s.codec.DecodeValue(raw)
	if err != nil {
		s.errorsServed.Inc()
		errv := DefaultError(ParseError)
		return []ServerResult{s.emitGenericError(NullID(), errv)}
	}

	if elems, ok := decoded.([]any); ok {
		return s.callBatch(raw, elems)
	}
	return s.callOne(raw)
}

func parseDiagnostic(c *codec.Codec, raw []byte) string {
	_, err := c.DecodeValue(raw)
	if err == nil {
		return ""
	}
	return c.FormatDiagnostic(err, raw)
}

func (s *Server) callBatch(raw []byte, elems []any) []ServerResult {
	if len(elems) == 0 {
		s.errorsServed.Inc()
		return []ServerResult{s.emitGenericError(NullID(), DefaultError(InvalidRequest))}
	}

	rawElems, err := s.codec.DecodeRawArray(raw)
	if err != nil || len(rawElems) != len(elems) {
		s.errorsServed.Inc()
		return []ServerResult{s.emitGenericError(NullID(), DefaultError(InvalidRequest))}
	}

	var results []ServerResult
	for _, elem := range rawElems {
		results = append(results, s.callOne([]byte(elem))...)
	}
	return results
}

// callOne processes a single, already-isolated request or notification
// object and returns zero or one ServerResult.
func (s *Server) callOne(raw []byte) []ServerResult {
	req, err := codec.Decode[genericRequest](s.codec, raw)
	if err != nil {
		id := s.recoverID(raw)
		s.errorsServed.Inc()
		errv := NewError(InvalidRequest, InvalidRequest.DefaultMessage()).WithData(s.codec.FormatDiagnostic(err, raw))
		return []ServerResult{s.emitGenericError(id, errv)}
	}

	notification := req.isNotification()

	if req.JSONRPC != Version {
		s.errorsServed.Inc()
		if notification {
			return nil
		}
		errv := Errorf(InvalidRequest, InvalidRequest.DefaultMessage()).
			WithData("Invalid version: " + req.JSONRPC + " only supported version is " + Version)
		return []ServerResult{s.emitGenericError(idOrNull(req.ID), errv)}
	}

	if req.Method == "" {
		s.errorsServed.Inc()
		if notification {
			return nil
		}
		return []ServerResult{s.emitGenericError(idOrNull(req.ID), DefaultError(InvalidRequest))}
	}

	binding, ok := s.registry.lookup(req.Method)
	if !ok {
		s.errorsServed.Inc()
		if notification {
			return nil
		}
		errv := NewError(MethodNotFound, MethodNotFound.DefaultMessage()).
			WithData(fmt.Sprintf("Method: %q not found", req.Method))
		return []ServerResult{s.emitGenericError(idOrNull(req.ID), errv)}
	}

	s.requestsServed.Inc()
	out, callErr := binding.dispatch(s.codec, raw, req.ID)
	if !callErr.IsZero() {
		s.errorsServed.Inc()
	}
	if notification {
		return nil
	}
	return []ServerResult{{Text: string(out), Err: callErr}}
}

func (s *Server) recoverID(raw []byte) ID {
	v, err := s.codec.DecodeValue(raw)
	if err != nil {
		return NullID()
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return NullID()
	}
	switch idv := obj["id"].(type) {
	case string:
		return NewStringID(idv)
	case float64:
		// A fractional id is not a valid request id (see id.go); treat
		// it as unrecoverable rather than truncating it into a
		// collision with a genuine integer id.
		if idv != float64(int64(idv)) {
			return NullID()
		}
		return NewNumberID(int64(idv))
	default:
		return NullID()
	}
}

func (s *Server) emitGenericError(id ID, errv *Error) ServerResult {
	out, _ := s.codec.Encode(errorOnlyResponse{JSONRPC: Version, Error: errv, ID: id})
	return ServerResult{Text: string(out), Err: errv}
}

// ServerStats is a point-in-time snapshot of a Server's call counters.
type ServerStats struct {
	RequestsServed int64
	ErrorsServed   int64
}

// Stats returns a snapshot of s's call counters.
func (s *Server) Stats() ServerStats {
	return ServerStats{
		RequestsServed: s.requestsServed.Load(),
		ErrorsServed:   s.errorsServed.Load(),
	}
}
