// SPDX-FileCopyrightText: 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package codec isolates the JSON encoding and decoding concerns that
// jsonrpc2 depends on: syntactic validation, strict typed decoding,
// loose decoding for error recovery, batch splitting and canonical
// serialization.
package codec

import (
	stdjson "encoding/json"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Codec performs the JSON operations jsonrpc2's dispatcher and client
// depend on. The zero value is not usable; use New or Default.
type Codec struct {
	lenient jsoniter.API
	strict  jsoniter.API
}

// New builds a Codec. lenient decodes ignore unknown struct fields,
// strict decodes (used for request/response shape validation) reject
// them.
func New() *Codec {
	return &Codec{
		lenient: jsoniter.ConfigCompatibleWithStandardLibrary,
		strict: jsoniter.Config{
			EscapeHTML:             false,
			SortMapKeys:            true,
			ValidateJsonRawMessage: true,
			DisallowUnknownFields:  true,
		}.Froze(),
	}
}

var std = New()

// Default returns the package-wide default Codec instance.
func Default() *Codec { return std }

// Valid reports whether data is syntactically valid JSON.
func (c *Codec) Valid(data []byte) bool {
	return c.lenient.Valid(data)
}

// Decode decodes data into a strictly-typed T, rejecting unknown
// object keys in every struct it decodes into. It is used for the
// generic request and response envelopes, where the JSON-RPC 2.0 shape
// must be exact.
func Decode[T any](c *Codec, data []byte) (T, error) {
	var v T
	err := c.strict.Unmarshal(data, &v)
	return v, err
}

// DecodeLenient decodes data into T without rejecting unknown fields.
// Used for method-declared params/result types, which are free-form by
// spec and may legitimately carry fields the kit doesn't know about.
func DecodeLenient[T any](c *Codec, data []byte) (T, error) {
	var v T
	err := c.lenient.Unmarshal(data, &v)
	return v, err
}

// DecodeValue decodes data into a dynamic tree, used to tell a batch
// from a single object and to recover an "id" field from input that
// failed to parse as a well-formed request.
func (c *Codec) DecodeValue(data []byte) (any, error) {
	var v any
	err := c.lenient.Unmarshal(data, &v)
	return v, err
}

// DecodeRawArray decodes data as a JSON array of raw sub-values, used to
// split a batch into its elements without committing to their shape.
func (c *Codec) DecodeRawArray(data []byte) ([]jsoniter.RawMessage, error) {
	var v []jsoniter.RawMessage
	err := c.lenient.Unmarshal(data, &v)
	return v, err
}

// Encode serializes v to canonical JSON.
func (c *Codec) Encode(v any) ([]byte, error) {
	return c.lenient.Marshal(v)
}

// FormatDiagnostic renders a human-readable "line:col: message"
// diagnostic for a decode failure against the offending text, with a
// pointer-style excerpt of the offending line.
//
// jsoniter does not expose the byte offset of a decode failure through
// its public API, so the offset is recovered with a throwaway decode
// through the standard library, which does report it on
// *json.SyntaxError and *json.UnmarshalTypeError. Only the offset is
// taken from that decode; the message itself is the original error.
func (c *Codec) FormatDiagnostic(err error, data []byte) string {
	offset := diagnosticOffset(data)
	line, col, excerpt := position(data, offset)
	pointer := strings.Repeat(" ", max0(col-1)) + "^"
	return fmt.Sprintf("%d:%d: %s\n%s\n%s", line, col, err, excerpt, pointer)
}

func diagnosticOffset(data []byte) int {
	var probe any
	err := stdjson.Unmarshal(data, &probe)
	switch e := err.(type) {
	case *stdjson.SyntaxError:
		return int(e.Offset)
	case *stdjson.UnmarshalTypeError:
		return int(e.Offset)
	default:
		return 0
	}
}

func position(data []byte, offset int) (line, col int, lineText string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	line = 1
	lastNL := -1
	for i := 0; i < offset; i++ {
		if data[i] == '\n' {
			line++
			lastNL = i
		}
	}
	col = offset - lastNL
	start := lastNL + 1
	end := start
	for end < len(data) && data[end] != '\n' {
		end++
	}
	return line, col, string(data[start:end])
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
