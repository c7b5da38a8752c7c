// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import "github.com/typed-jsonrpc/jsonrpc2/internal/codec"

// Version is the only JSON-RPC version this kit speaks.
const Version = "2.0"

// genericRequest is the version+method+untyped-params+optional-id view
// of an incoming request. It is decoded first, before the method's
// static params type is known, so the dispatcher can route and apply
// the version/notification checks in step (b)-(c) of the algorithm.
type genericRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	Method  string           `json:"method"`
	Params  codec.RawMessage `json:"params,omitempty"`
	ID      *ID              `json:"id,omitempty"`
}

func (r *genericRequest) isNotification() bool {
	return r.ID == nil || r.ID.IsNull()
}

// genericResponse is the id+result+error view of an incoming response,
// used to recover the id before the method's static result type is
// known.
type genericResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	Result  codec.RawMessage `json:"result,omitempty"`
	Error   *Error           `json:"error,omitempty"`
	ID      ID               `json:"id"`
}

// typedRequest is a method's request shape, decoded once the method
// name is known so Params recovers its static type. The same shape is
// used by the client to encode outgoing requests.
type typedRequest[P any] struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  P      `json:"params"`
	ID      *ID    `json:"id,omitempty"`
}

// typedResponse is a method's response shape. Result and Error are
// never both set; construction sites in this package enforce that.
type typedResponse[R any] struct {
	JSONRPC string `json:"jsonrpc"`
	Result  *R     `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      ID     `json:"id"`
}

// errorOnlyResponse is used for protocol errors discovered before a
// method's static result type is known (parse_error, invalid_request,
// method_not_found).
type errorOnlyResponse struct {
	JSONRPC string `json:"jsonrpc"`
	Error   *Error `json:"error"`
	ID      ID     `json:"id"`
}

func idOrNull(id *ID) ID {
	if id == nil {
		return NullID()
	}
	return *id
}
