// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"fmt"

	"github.com/ava-labs/changeback/codec"
	"github.com/ava-labs/changeback/runtime"
)

// Reply is the outcome of a contract call as shown to the user.
type Reply struct {
	Method string      `json:"method"`
	Output codec.Bytes `json:"output,omitempty"`
	Value  int32       `json:"value"`
	Logs   []string    `json:"logs"`
	Height uint64      `json:"height"`
}

// Backend executes contract calls, either against a node or a local database.
type Backend interface {
	ABI(ctx context.Context) (runtime.ABI, error)
	// Call invokes [method] signed by [actor], which may be empty.
	Call(ctx context.Context, actor string, method string) (*Reply, error)
	Close() error
}

type Handler struct {
	backend Backend
	// actor signs every call of the handler.
	actor string
}

func New(backend Backend, actor string) *Handler {
	return &Handler{backend: backend, actor: actor}
}

func (h *Handler) Close() error {
	return h.backend.Close()
}

// Method returns the ABI entry of [name] and checks that it is of [kind].
func (h *Handler) Method(ctx context.Context, name string, kind string) (runtime.MethodSpec, error) {
	abi, err := h.backend.ABI(ctx)
	if err != nil {
		return runtime.MethodSpec{}, err
	}
	spec, ok := abi.FindMethod(name)
	if !ok {
		return runtime.MethodSpec{}, fmt.Errorf("%w: %s", runtime.ErrUnknownMethod, name)
	}
	if spec.Kind != kind {
		return runtime.MethodSpec{}, fmt.Errorf("%w: %s is a %s method", ErrWrongKind, name, spec.Kind)
	}
	return spec, nil
}

// Methods lists the names of the methods of [kind].
func (h *Handler) Methods(ctx context.Context, kind string) ([]string, error) {
	abi, err := h.backend.ABI(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range abi.Methods {
		if m.Kind == kind {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

func (h *Handler) ABI(ctx context.Context) (runtime.ABI, error) {
	return h.backend.ABI(ctx)
}

// View invokes the read-only method [name].
func (h *Handler) View(ctx context.Context, name string) (*Reply, error) {
	if _, err := h.Method(ctx, name, runtime.ViewKind); err != nil {
		return nil, err
	}
	return h.backend.Call(ctx, h.actor, name)
}

// Call invokes the state-changing method [name].
func (h *Handler) Call(ctx context.Context, name string) (*Reply, error) {
	if _, err := h.Method(ctx, name, runtime.CallKind); err != nil {
		return nil, err
	}
	return h.backend.Call(ctx, h.actor, name)
}
