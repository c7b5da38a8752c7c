// SPDX-FileCopyrightText: 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/typed-jsonrpc/jsonrpc2/internal/codec"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestCodec_Decode_StrictRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	c := codec.New()

	_, err := codec.Decode[point](c, []byte(`{"x":1,"y":2,"z":3}`))
	if err == nil {
		t.Fatal("expected strict decode to reject an unknown field")
	}
}

func TestCodec_DecodeLenient_AllowsUnknownFields(t *testing.T) {
	t.Parallel()

	c := codec.New()

	got, err := codec.DecodeLenient[point](c, []byte(`{"x":1,"y":2,"z":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(point{X: 1, Y: 2}, got); diff != "" {
		t.Fatalf("decoded value does not match (-want +got):\n%s", diff)
	}
}

func TestCodec_Valid(t *testing.T) {
	t.Parallel()

	c := codec.New()

	if !c.Valid([]byte(`{"x":1}`)) {
		t.Fatal("expected valid JSON to be reported valid")
	}
	if c.Valid([]byte(`{not json`)) {
		t.Fatal("expected invalid JSON to be reported invalid")
	}
}

func TestCodec_DecodeRawArray(t *testing.T) {
	t.Parallel()

	c := codec.New()

	elems, err := c.DecodeRawArray([]byte(`[{"x":1},{"x":2}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(elems))
	}
}

func TestCodec_FormatDiagnostic(t *testing.T) {
	t.Parallel()

	c := codec.New()
	data := []byte("{\n  \"x\": tru\n}")

	_, err := c.DecodeValue(data)
	if err == nil {
		t.Fatal("expected a decode error")
	}

	diag := c.FormatDiagnostic(err, data)
	if diag == "" {
		t.Fatal("expected a non-empty diagnostic")
	}
}

func TestRawMessage_IsNull(t *testing.T) {
	t.Parallel()

	var empty codec.RawMessage
	if !empty.IsNull() {
		t.Fatal("expected a zero-value RawMessage to be null")
	}

	lit := codec.RawMessage("null")
	if !lit.IsNull() {
		t.Fatal("expected the literal null to be null")
	}

	val := codec.RawMessage(`{"a":1}`)
	if val.IsNull() {
		t.Fatal("expected a populated RawMessage to not be null")
	}
}
