// Copyright 2019 The go-language-server Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/typed-jsonrpc/jsonrpc2/internal/codec"
)

// Error represents a JSON-RPC 2.0 error object. DefaultError sets
// Message to Code's canonical message; NewError and Errorf store the
// caller's text as given, and it is not checked against Code.
type Error struct {
	// Code indicates the error's category.
	Code Code `json:"code"`

	// Message is a short description of the error.
	Message string `json:"message"`

	// Data carries additional, method-specific error detail. Omitted
	// from the wire when absent.
	Data codec.RawMessage `json:"data,omitempty"`

	frame xerrors.Frame
	err   error
}

// compile time check whether Error implements the error interface.
var _ error = (*Error)(nil)

// Error implements error.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsZero reports whether e represents "no error" (Code == NoError).
// A nil *Error is also zero.
func (e *Error) IsZero() bool {
	return e == nil || e.Code == NoError
}

// Is reports whether e carries the given canonical code.
func (e *Error) Is(code Code) bool {
	return e != nil && e.Code == code
}

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, c rune) {
	xerrors.FormatError(e, s, c)
}

// FormatError implements xerrors.Formatter.
func (e *Error) FormatError(p xerrors.Printer) (next error) {
	p.Printf("%s (code=%d)", e.Message, e.Code)
	e.frame.Format(p)

	return e.err
}

// Unwrap implements xerrors.Wrapper.
func (e *Error) Unwrap() error {
	return e.err
}

// NewError builds an Error for code with the given message. Use
// WithData to attach additional detail.
func NewError(code Code, message string) *Error {
	e := &Error{
		Code:    code,
		Message: message,
		frame:   xerrors.Caller(1),
	}
	e.err = xerrors.New(e.Message)
	return e
}

// Errorf builds an Error for code with a formatted message.
func Errorf(code Code, format string, args ...interface{}) *Error {
	e := &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		frame:   xerrors.Caller(1),
	}
	e.err = xerrors.New(e.Message)
	return e
}

// DefaultError builds an Error for code using its canonical message.
func DefaultError(code Code) *Error {
	return NewError(code, code.DefaultMessage())
}

// WithData attaches a structured data payload to e and returns e for
// chaining.
func (e *Error) WithData(data interface{}) *Error {
	raw, err := codec.Default().Encode(data)
	if err != nil {
		return e
	}
	e.Data = raw
	return e
}
