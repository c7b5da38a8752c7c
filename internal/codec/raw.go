// SPDX-FileCopyrightText: 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec

import (
	"errors"

	"github.com/francoispqt/gojay"
)

// RawMessage is a raw encoded JSON value, used to delay decoding of
// method-specific params, results and error data until the method's
// static type is known.
type RawMessage gojay.EmbeddedJSON

// IsNull reports whether the raw value is absent or the JSON literal null.
func (m RawMessage) IsNull() bool {
	return len(m) == 0 || string(m) == "null"
}

// String returns the raw JSON text.
func (m RawMessage) String() string {
	if m == nil {
		return ""
	}
	return string(m)
}

// MarshalJSON implements json.Marshaler.
func (m RawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return errors.New("codec.RawMessage: UnmarshalJSON on nil pointer")
	}
	*m = append((*m)[0:0], data...)
	return nil
}
