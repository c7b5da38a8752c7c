// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/typed-jsonrpc/jsonrpc2"
)

func sprintfID(verb string, id jsonrpc2.ID) string {
	return fmt.Sprintf(verb, id)
}

func TestID_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id   jsonrpc2.ID
		want string
	}{
		"null":   {id: jsonrpc2.NullID(), want: "null"},
		"string": {id: jsonrpc2.NewStringID("abc"), want: `"abc"`},
		"number": {id: jsonrpc2.NewNumberID(42), want: "42"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Fatalf("marshaled id does not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		encoded string
		want    jsonrpc2.ID
		wantErr bool
	}{
		"null":            {encoded: "null", want: jsonrpc2.NullID()},
		"string":          {encoded: `"abc"`, want: jsonrpc2.NewStringID("abc")},
		"integer":         {encoded: "2", want: jsonrpc2.NewNumberID(2)},
		"integral float":  {encoded: "2.0", want: jsonrpc2.NewNumberID(2)},
		"fractional":      {encoded: "2.5", wantErr: true},
		"not a json atom": {encoded: "{}", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got jsonrpc2.ID
			err := json.Unmarshal([]byte(tt.encoded), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(jsonrpc2.ID{})); diff != "" {
				t.Fatalf("unmarshaled id does not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestID_Format(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id   jsonrpc2.ID
		verb string
		want string
	}{
		"plain string": {id: jsonrpc2.NewStringID("abc"), verb: "%v", want: "abc"},
		"quoted string": {id: jsonrpc2.NewStringID("abc"), verb: "%q", want: `"abc"`},
		"plain number": {id: jsonrpc2.NewNumberID(7), verb: "%v", want: "7"},
		"quoted number": {id: jsonrpc2.NewNumberID(7), verb: "%q", want: "#7"},
		"null":          {id: jsonrpc2.NullID(), verb: "%v", want: "null"},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := sprintfID(tt.verb, tt.id)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("formatted id does not match (-want +got):\n%s", diff)
			}
		})
	}
}
