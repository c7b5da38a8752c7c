// SPDX-FileCopyrightText: Copyright 2021 The Go Language Server Authors
// SPDX-License-Identifier: BSD-3-Clause

package jsonrpc2

import (
	"fmt"

	"github.com/typed-jsonrpc/jsonrpc2/internal/codec"
)

// serverBinding is the type-erased view of a *ServerMethod[P, R] that lets
// heterogeneous method descriptors share a single catalog slice, the Go
// analogue of the variadic method_type... template parameter pack.
type serverBinding interface {
	Name() string
	dispatch(c *codec.Codec, raw []byte, id *ID) ([]byte, *Error)
}

// clientBinding is the type-erased view of a *ClientMethod[P, R].
type clientBinding interface {
	Name() string
	acceptsParams(params any) bool
	buildRequest(c *codec.Codec, id ID, params any) ([]byte, error)
	dispatchResponse(c *codec.Codec, raw []byte, id ID) *Error
	bindHandler(fn any) bool
}

// ServerRegistry is an ordered, name-keyed catalog of server methods.
// Methods are matched by name in O(1); Methods reports them in
// catalog order.
type ServerRegistry struct {
	order []serverBinding
	byName map[string]serverBinding
}

// NewServerRegistry builds a registry from methods. It is an error for
// two methods to share a name.
func NewServerRegistry(methods ...serverBinding) (*ServerRegistry, error) {
	reg := &ServerRegistry{byName: make(map[string]serverBinding, len(methods))}
	for _, m := range methods {
		if _, dup := reg.byName[m.Name()]; dup {
			return nil, fmt.Errorf("jsonrpc2: duplicate server method name %q", m.Name())
		}
		reg.byName[m.Name()] = m
		reg.order = append(reg.order, m)
	}
	return reg, nil
}

func (reg *ServerRegistry) lookup(name string) (serverBinding, bool) {
	m, ok := reg.byName[name]
	return m, ok
}

// Methods returns the registered method names in catalog order.
func (reg *ServerRegistry) Methods() []string {
	names := make([]string, len(reg.order))
	for i, m := range reg.order {
		names[i] = m.Name()
	}
	return names
}

// ClientRegistry is an ordered, name-keyed catalog of client methods.
type ClientRegistry struct {
	order  []clientBinding
	byName map[string]clientBinding
}

// NewClientRegistry builds a registry from methods. It is an error for
// two methods to share a name.
func NewClientRegistry(methods ...clientBinding) (*ClientRegistry, error) {
	reg := &ClientRegistry{byName: make(map[string]clientBinding, len(methods))}
	for _, m := range methods {
		if _, dup := reg.byName[m.Name()]; dup {
			return nil, fmt.Errorf("jsonrpc2: duplicate client method name %q", m.Name())
		}
		reg.byName[m.Name()] = m
		reg.order = append(reg.order, m)
	}
	return reg, nil
}

func (reg *ClientRegistry) lookup(name string) (clientBinding, bool) {
	m, ok := reg.byName[name]
	return m, ok
}

// Methods returns the registered method names in catalog order.
func (reg *ClientRegistry) Methods() []string {
	names := make([]string, len(reg.order))
	for i, m := range reg.order {
		names[i] = m.Name()
	}
	return names
}

// forParams returns the method registered under name, provided its
// params type matches params; used by Client.Request. It does not
// search other methods by params type.
func (reg *ClientRegistry) forParams(name string, params any) (clientBinding, bool) {
	m, ok := reg.byName[name]
	if !ok {
		return nil, false
	}
	if !m.acceptsParams(params) {
		return nil, false
	}
	return m, true
}

// SetServerHandler looks up a method named name in reg and, if it is a
// *ServerMethod[P, R], installs fn as its handler. It reports whether a
// matching method was found and bound. This mirrors the kit's literal
// "rebind a handler by name" wording; with static generics the common
// case is simply calling method.SetHandler directly on the descriptor
// you already hold.
func SetServerHandler[P, R any](reg *ServerRegistry, name string, fn func(P) (R, *Error)) bool {
	binding, ok := reg.lookup(name)
	if !ok {
		return false
	}
	typed, ok := binding.(*ServerMethod[P, R])
	if !ok {
		return false
	}
	typed.SetHandler(fn)
	return true
}

// SetClientHandler looks up a method named name in reg and, if its
// result type matches R, installs fn as its response callback.
func SetClientHandler[R any](reg *ClientRegistry, name string, fn ClientHandler[R]) bool {
	binding, ok := reg.lookup(name)
	if !ok {
		return false
	}
	return binding.bindHandler(fn)
}
