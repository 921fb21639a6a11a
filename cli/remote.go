// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/changeback/api/jsonrpc"
	"github.com/ava-labs/changeback/runtime"
)

var _ Backend = (*Remote)(nil)

// Remote calls the contract hosted by the node at an endpoint.
type Remote struct {
	cli *jsonrpc.JSONRPCClient
}

func NewRemote(uri string) *Remote {
	return &Remote{cli: jsonrpc.NewJSONRPCClient(uri)}
}

func (r *Remote) Ping(ctx context.Context) (bool, error) {
	return r.cli.Ping(ctx)
}

func (r *Remote) ABI(ctx context.Context) (runtime.ABI, error) {
	return r.cli.GetABI(ctx)
}

func (r *Remote) Call(ctx context.Context, actor string, method string) (*Reply, error) {
	reply, err := r.cli.Call(ctx, actor, method)
	if err != nil {
		return nil, err
	}
	return &Reply{
		Method: method,
		Output: reply.Output,
		Value:  reply.Value,
		Logs:   reply.Logs,
		Height: reply.Height,
	}, nil
}

func (*Remote) Close() error {
	return nil
}
