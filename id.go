// SPDX-FileCopyrightText: 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IDKind discriminates the variant carried by an ID.
type IDKind int

// The three variants an ID may hold, per the JSON-RPC 2.0 id type.
const (
	IDKindNull IDKind = iota
	IDKindString
	IDKindNumber
)

// ID is a request identifier: exactly one of null, a string, or a
// signed 64-bit integer. The zero value is the null variant.
//
// ID is comparable with ==; equality holds only between values of the
// same variant.
type ID struct {
	kind IDKind
	str  string
	num  int64
}

// NullID returns the null-variant ID. A request carrying a null (or
// absent) ID is a notification.
func NullID() ID { return ID{kind: IDKindNull} }

// NewStringID returns a string-variant ID.
func NewStringID(v string) ID { return ID{kind: IDKindString, str: v} }

// NewNumberID returns an integer-variant ID.
func NewNumberID(v int64) ID { return ID{kind: IDKindNumber, num: v} }

// Kind reports which variant id holds.
func (id ID) Kind() IDKind { return id.kind }

// IsNull reports whether id is the null variant.
func (id ID) IsNull() bool { return id.kind == IDKindNull }

// String returns the string value if id is the string variant.
func (id ID) String() string {
	switch id.kind {
	case IDKindString:
		return id.str
	case IDKindNumber:
		return strconv.FormatInt(id.num, 10)
	default:
		return ""
	}
}

// Number returns the integer value if id is the number variant.
func (id ID) Number() int64 { return id.num }

// Format implements fmt.Formatter. With the 'q' verb string forms are
// quoted and number forms are preceded by '#'; otherwise they print
// plain.
func (id ID) Format(f fmt.State, r rune) {
	switch {
	case r == 'q' && id.kind == IDKindString:
		fmt.Fprintf(f, "%q", id.str)
	case r == 'q' && id.kind == IDKindNumber:
		fmt.Fprintf(f, "#%d", id.num)
	case id.kind == IDKindString:
		fmt.Fprint(f, id.str)
	case id.kind == IDKindNumber:
		fmt.Fprintf(f, "%d", id.num)
	default:
		fmt.Fprint(f, "null")
	}
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case IDKindString:
		return json.Marshal(id.str)
	case IDKindNumber:
		return []byte(strconv.FormatInt(id.num, 10)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. A JSON number with no
// fractional part is accepted as the number variant even when written
// with a decimal point, e.g. 2.0 decodes to the same ID as 2.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID{}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		id.kind = IDKindString
		id.str = s
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("jsonrpc2: invalid id %q: %w", trimmed, err)
	}
	if f != float64(int64(f)) {
		return fmt.Errorf("jsonrpc2: id %q is not an integral number", trimmed)
	}
	id.kind = IDKindNumber
	id.num = int64(f)
	return nil
}
