// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package jsonrpc2 implements a statically-typed JSON-RPC 2.0 endpoint
// kit: a Server and Client built from a compile-time catalog of named
// methods, each with its own request params and result types. Dispatch
// is synchronous text in, text out; transport, general-purpose JSON
// tooling, and asynchronous or streaming delivery are left to callers.
package jsonrpc2
