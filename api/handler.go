// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"net/http"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/changeback/runtime"
)

// Name of the JSON-RPC service.
const Name = "changeback"

type Handler struct {
	// Path the handler is served at, relative to the API base URL.
	Path    string
	Handler http.Handler
}

type HandlerFactory[T any] interface {
	New(t T) (Handler, error)
}

// Node is what the APIs need from a running node.
type Node interface {
	Logger() logging.Logger
	Tracer() trace.Tracer
	ABI() runtime.ABI
	// Call invokes [method] on the deployed contract on behalf of [actor],
	// which may be empty.
	Call(ctx context.Context, actor string, method string) (*runtime.Result, error)
}
