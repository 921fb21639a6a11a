// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"

	"github.com/ava-labs/changeback/codec"
	"github.com/ava-labs/changeback/contracts/change"
	"github.com/ava-labs/changeback/state"
)

const (
	GetNumMethod = "get_num"
	AddMethod    = "add"
	ChangeMethod = "change"
	ResetMethod  = "reset"

	// ViewKind methods only read state.
	ViewKind = "view"
	// CallKind methods may change state.
	CallKind = "call"
)

// Handler runs one exported method against a bound contract and returns its
// Borsh-encoded output, if any.
type Handler func(change.Counter) ([]byte, error)

// Method is an entry of the contract ABI.
type Method struct {
	Name string
	// Permissions the method may require on contract state. View methods are
	// limited to [state.Read].
	Permissions state.Permissions
	Handler     Handler
}

func (m Method) ReadOnly() bool {
	return !m.Permissions.Has(state.Write)
}

func (m Method) Kind() string {
	if m.ReadOnly() {
		return ViewKind
	}
	return CallKind
}

type MethodSpec struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ABI describes the methods a runtime exposes, in registration order.
type ABI struct {
	Contract string       `json:"contract"`
	Methods  []MethodSpec `json:"methods"`
}

func (a ABI) FindMethod(name string) (MethodSpec, bool) {
	for _, m := range a.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodSpec{}, false
}

// Methods is the registry of exported methods.
type Methods struct {
	methods map[string]Method
	order   []string
}

func NewMethods() *Methods {
	return &Methods{methods: map[string]Method{}}
}

func (m *Methods) Register(method Method) error {
	if len(method.Name) == 0 || method.Handler == nil {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method.Name)
	}
	if _, ok := m.methods[method.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, method.Name)
	}
	m.methods[method.Name] = method
	m.order = append(m.order, method.Name)
	return nil
}

func (m *Methods) Get(name string) (Method, bool) {
	method, ok := m.methods[name]
	return method, ok
}

func (m *Methods) ABI(contract string) ABI {
	abi := ABI{
		Contract: contract,
		Methods:  make([]MethodSpec, 0, len(m.order)),
	}
	for _, name := range m.order {
		abi.Methods = append(abi.Methods, MethodSpec{
			Name: name,
			Kind: m.methods[name].Kind(),
		})
	}
	return abi
}

// ChangeMethods returns the ABI of the Change contract.
func ChangeMethods() []Method {
	return []Method{
		{
			Name:        GetNumMethod,
			Permissions: state.Read,
			Handler: func(c change.Counter) ([]byte, error) {
				return codec.Serialize(c.GetNum())
			},
		},
		{
			Name:        AddMethod,
			Permissions: state.All,
			Handler: func(c change.Counter) ([]byte, error) {
				c.Add()
				return nil, nil
			},
		},
		{
			Name:        ChangeMethod,
			Permissions: state.All,
			Handler: func(c change.Counter) ([]byte, error) {
				c.Change()
				return nil, nil
			},
		},
		{
			Name:        ResetMethod,
			Permissions: state.All,
			Handler: func(c change.Counter) ([]byte, error) {
				c.Reset()
				return nil, nil
			},
		},
	}
}
