// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import (
	"fmt"

	"github.com/typed-jsonrpc/jsonrpc2/internal/codec"
)

// ServerMethod binds a compile-time method name to a Params/Result pair
// and a mutable handler slot, the Go realization of the heterogeneous,
// statically-typed descriptor described by the kit's method catalog.
//
// The zero value is not usable; construct with NewServerMethod.
type ServerMethod[P, R any] struct {
	name    string
	handler func(P) (R, *Error)
}

// NewServerMethod declares a server method named name with params type P
// and result type R. Until SetHandler is called its handler returns an
// InternalError "Not implemented".
func NewServerMethod[P, R any](name string) *ServerMethod[P, R] {
	return &ServerMethod[P, R]{name: name, handler: serverNotImplemented[P, R]}
}

func serverNotImplemented[P, R any](P) (R, *Error) {
	var zero R
	return zero, NewError(InternalError, "Not implemented")
}

// Name returns the method's name.
func (m *ServerMethod[P, R]) Name() string { return m.name }

// SetHandler installs fn as the method's handler.
func (m *ServerMethod[P, R]) SetHandler(fn func(P) (R, *Error)) {
	m.handler = fn
}

// dispatch decodes raw as this method's typed request, invokes the
// handler, and returns the serialized response together with the
// *Error it carries (nil on success). id is the already-recovered
// request id (nil for a notification, still dispatched for its side
// effects but whose response the caller will discard).
func (m *ServerMethod[P, R]) dispatch(c *codec.Codec, raw []byte, id *ID) ([]byte, *Error) {
	idVal := idOrNull(id)

	req, err := codec.DecodeLenient[typedRequest[P]](c, raw)
	if err != nil {
		diag := c.FormatDiagnostic(err, raw)
		respErr := NewError(InvalidRequest, InvalidRequest.DefaultMessage()).WithData(diag)
		out, _ := c.Encode(typedResponse[R]{JSONRPC: Version, ID: idVal, Error: respErr})
		return out, respErr
	}

	result, handlerErr := m.handler(req.Params)
	if !handlerErr.IsZero() {
		out, _ := c.Encode(typedResponse[R]{JSONRPC: Version, ID: idVal, Error: handlerErr})
		return out, handlerErr
	}

	out, _ := c.Encode(typedResponse[R]{JSONRPC: Version, ID: idVal, Result: &result})
	return out, nil
}

// ClientHandler receives the decoded outcome of a call: exactly one of
// result/err is meaningful, selected by err being nil.
type ClientHandler[R any] func(id ID, result R, err *Error)

// ClientMethod binds a compile-time method name to a Params/Result pair
// and a mutable response-callback slot.
type ClientMethod[P, R any] struct {
	name    string
	handler ClientHandler[R]
}

// NewClientMethod declares a client method named name with params type P
// and result type R. Until SetHandler is called its handler is a no-op.
func NewClientMethod[P, R any](name string) *ClientMethod[P, R] {
	return &ClientMethod[P, R]{name: name, handler: func(ID, R, *Error) {}}
}

// Name returns the method's name.
func (m *ClientMethod[P, R]) Name() string { return m.name }

// SetHandler installs fn as the method's response callback.
func (m *ClientMethod[P, R]) SetHandler(fn ClientHandler[R]) {
	m.handler = fn
}

func (m *ClientMethod[P, R]) acceptsParams(params any) bool {
	_, ok := params.(P)
	return ok
}

func (m *ClientMethod[P, R]) buildRequest(c *codec.Codec, id ID, params any) ([]byte, error) {
	p, ok := params.(P)
	if !ok {
		return nil, fmt.Errorf("jsonrpc2: params type %T does not match method %q", params, m.name)
	}
	return c.Encode(typedRequest[P]{JSONRPC: Version, Method: m.name, Params: p, ID: &id})
}

func (m *ClientMethod[P, R]) dispatchResponse(c *codec.Codec, raw []byte, id ID) *Error {
	resp, err := codec.DecodeLenient[typedResponse[R]](c, raw)
	if err != nil {
		return NewError(ParseError, ParseError.DefaultMessage()).WithData(c.FormatDiagnostic(err, raw))
	}
	switch {
	case resp.Error != nil:
		m.handler(id, *new(R), resp.Error)
	case resp.Result != nil:
		m.handler(id, *resp.Result, nil)
	default:
		return NewError(ParseError, "response carries neither result nor error")
	}
	return nil
}

// bindHandler installs fn as m's response callback if fn has the
// concrete ClientHandler[R] type, letting SetClientHandler rebind a
// handler knowing only R, not the method's params type P.
func (m *ClientMethod[P, R]) bindHandler(fn any) bool {
	h, ok := fn.(ClientHandler[R])
	if !ok {
		return false
	}
	m.handler = h
	return true
}
