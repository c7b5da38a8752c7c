// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import (
	"container/list"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/typed-jsonrpc/jsonrpc2/internal/codec"
)

// defaultPendingCapacity bounds how many in-flight calls a Client
// tracks before evicting the oldest, unanswered one, mirroring the
// original implementation's ring-buffered id table.
const defaultPendingCapacity = 100

type pendingCall struct {
	id      ID
	binding clientBinding
}

// Client builds JSON-RPC 2.0 request text against a fixed catalog of
// statically-typed methods, and routes response text back to the
// caller-supplied handler for the method that sent it. It tracks
// in-flight calls in a bounded, oldest-evicted pending table keyed by
// request id.
type Client struct {
	registry *ClientRegistry
	codec    *codec.Codec
	logger   *zap.Logger
	capacity int

	mu      sync.Mutex
	pending *list.List // of *pendingCall, front = most recently sent

	requestsSent     atomic.Int64
	responsesRouted  atomic.Int64
	responsesDropped atomic.Int64
}

// ClientOption configures a Client at construction.
type ClientOption func(*Client)

// WithClientLogger overrides the Client's logger, which defaults to a
// no-op logger.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithCapacity overrides how many in-flight calls the Client tracks
// before evicting the oldest unanswered one. The default is 100.
func WithCapacity(capacity int) ClientOption {
	return func(c *Client) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// NewClient builds a Client whose outgoing requests are drawn from
// registry.
func NewClient(registry *ClientRegistry, opts ...ClientOption) *Client {
	c := &Client{
		registry: registry,
		codec:    codec.Default(),
		logger:   zap.NewNop(),
		capacity: defaultPendingCapacity,
		pending:  list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request builds the request text for method name with params, tracks
// id as pending, and returns the serialized request object. params
// must be the concrete type the named method was declared with.
func (c *Client) Request(name string, id ID, params any) (string, error) {
	binding, ok := c.registry.forParams(name, params)
	if !ok {
		return "", fmt.Errorf("jsonrpc2: no client method %q accepting params of type %T", name, params)
	}
	out, err := binding.buildRequest(c.codec, id, params)
	if err != nil {
		return "", err
	}
	c.pushPending(id, binding)
	c.requestsSent.Inc()
	return string(out), nil
}

// BatchEntry is one call to include in a RequestBatch.
type BatchEntry struct {
	Method string
	ID     ID
	Params any
}

// RequestBatch builds a batch request from entries, which must be
// non-empty, tracking each entry's id as pending.
func (c *Client) RequestBatch(entries ...BatchEntry) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("jsonrpc2: RequestBatch requires at least one entry")
	}

	parts := make([][]byte, 0, len(entries))
	pending := make([]pendingCall, 0, len(entries))
	for _, e := range entries {
		binding, ok := c.registry.forParams(e.Method, e.Params)
		if !ok {
			return "", fmt.Errorf("jsonrpc2: no client method %q accepting params of type %T", e.Method, e.Params)
		}
		out, err := binding.buildRequest(c.codec, e.ID, e.Params)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
		pending = append(pending, pendingCall{id: e.ID, binding: binding})
	}

	batch := make([]byte, 0, len(entries)*32)
	batch = append(batch, '[')
	for i, part := range parts {
		if i > 0 {
			batch = append(batch, ',')
		}
		batch = append(batch, part...)
	}
	batch = append(batch, ']')

	for _, p := range pending {
		c.pushPending(p.id, p.binding)
		c.requestsSent.Inc()
	}
	return string(batch), nil
}

// Call dispatches response text, a single JSON-RPC 2.0 response or
// batch of responses, routing each to the handler of the pending call
// its id matches. It returns the first routing failure encountered, if
// any; every response, matched or not, is still consumed.
func (c *Client) Call(text string) *CallError {
	raw := []byte(text)

	decoded, err := c.codec.DecodeValue(raw)
	if err != nil {
		return &CallError{Kind: CallErrorDecode, Diagnostic: c.codec.FormatDiagnostic(err, raw)}
	}

	if elems, ok := decoded.([]any); ok {
		rawElems, err := c.codec.DecodeRawArray(raw)
		if err != nil || len(rawElems) != len(elems) {
			return &CallError{Kind: CallErrorDecode, Diagnostic: "malformed batch"}
		}
		var first *CallError
		for _, elem := range rawElems {
			if callErr := c.callOne([]byte(elem)); callErr != nil && first == nil {
				first = callErr
			}
		}
		return first
	}
	return c.callOne(raw)
}

func (c *Client) callOne(raw []byte) *CallError {
	resp, err := codec.Decode[genericResponse](c.codec, raw)
	if err != nil {
		return &CallError{Kind: CallErrorDecode, Diagnostic: c.codec.FormatDiagnostic(err, raw)}
	}

	binding, ok := c.popPending(resp.ID)
	if !ok {
		c.responsesDropped.Inc()
		return &CallError{Kind: CallErrorIDNotFound, ID: resp.ID}
	}

	if callErr := binding.dispatchResponse(c.codec, raw, resp.ID); callErr != nil {
		c.responsesDropped.Inc()
		return &CallError{Kind: CallErrorDecode, ID: resp.ID, Diagnostic: callErr.Error()}
	}
	c.responsesRouted.Inc()
	return nil
}

// pushPending records id as in flight for binding, evicting the
// oldest pending entry first if the table is already at capacity.
func (c *Client) pushPending(id ID, binding clientBinding) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending.Len() >= c.capacity {
		oldest := c.pending.Back()
		if oldest != nil {
			c.pending.Remove(oldest)
		}
	}
	c.pending.PushFront(&pendingCall{id: id, binding: binding})
}

// popPending removes and returns the pending entry for id, if any.
// Lookup is linear, matching the original implementation's
// linear-scan ring buffer; the pending table is bounded by capacity so
// this stays cheap.
func (c *Client) popPending(id ID) (clientBinding, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for e := c.pending.Front(); e != nil; e = e.Next() {
		entry := e.Value.(*pendingCall)
		if entry.id == id {
			c.pending.Remove(e)
			return entry.binding, true
		}
	}
	return nil, false
}

// ClientStats is a point-in-time snapshot of a Client's call counters.
type ClientStats struct {
	RequestsSent     int64
	ResponsesRouted  int64
	ResponsesDropped int64
}

// Stats returns a snapshot of c's call counters.
func (c *Client) Stats() ClientStats {
	return ClientStats{
		RequestsSent:     c.requestsSent.Load(),
		ResponsesRouted:  c.responsesRouted.Load(),
		ResponsesDropped: c.responsesDropped.Load(),
	}
}
