// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import "fmt"

// CallErrorKind discriminates the ways a Client can fail to route an
// incoming response to a pending call.
type CallErrorKind int

const (
	// CallErrorIDNotFound means the response's id does not match any
	// call this Client currently has pending (it may have already been
	// answered, evicted for capacity, or never sent).
	CallErrorIDNotFound CallErrorKind = iota

	// CallErrorMethodNotFound means the response's id was pending but
	// its method is no longer in the Client's catalog. A Client's
	// catalog is fixed at construction and each pending entry holds its
	// method, so Client.Call does not return this kind.
	CallErrorMethodNotFound

	// CallErrorDecode means the response text was not a valid JSON-RPC
	// 2.0 response object, or could not be decoded as the typed
	// response of the method its id was pending for (including a
	// response that carries neither result nor error).
	CallErrorDecode
)

// CallError reports why Client.Call could not route a response.
type CallError struct {
	Kind       CallErrorKind
	ID         ID
	Diagnostic string
}

// compile time check whether CallError implements the error interface.
var _ error = (*CallError)(nil)

// Error implements error.
func (e *CallError) Error() string {
	switch e.Kind {
	case CallErrorIDNotFound:
		return fmt.Sprintf("jsonrpc2: response id %q not found among pending calls", e.ID)
	case CallErrorMethodNotFound:
		return fmt.Sprintf("jsonrpc2: pending call for id %q has no matching method", e.ID)
	default:
		return fmt.Sprintf("jsonrpc2: %s", e.Diagnostic)
	}
}
