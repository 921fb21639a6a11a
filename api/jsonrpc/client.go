// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"strings"

	"github.com/ava-labs/changeback/api"
	"github.com/ava-labs/changeback/requester"
	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/server"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester

	abi *runtime.ABI
}

// NewJSONRPCClient returns a client for the node at [uri], e.g.
// http://127.0.0.1:9650.
func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += server.BaseURL + Endpoint
	req := requester.New(uri, api.Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

// GetABI returns the ABI of the deployed contract. The ABI never changes
// while a node runs, so it is cached after the first request.
func (cli *JSONRPCClient) GetABI(ctx context.Context) (runtime.ABI, error) {
	if cli.abi != nil {
		return *cli.abi, nil
	}
	resp := new(GetABIReply)
	err := cli.requester.SendRequest(
		ctx,
		"getABI",
		nil,
		resp,
	)
	if err != nil {
		return runtime.ABI{}, err
	}
	cli.abi = &resp.ABI
	return resp.ABI, nil
}

func (cli *JSONRPCClient) GetNum(ctx context.Context) (int32, error) {
	resp := new(GetNumReply)
	err := cli.requester.SendRequest(
		ctx,
		"getNum",
		nil,
		resp,
	)
	return resp.Value, err
}

func (cli *JSONRPCClient) send(ctx context.Context, method string, args interface{}) (*CallReply, error) {
	resp := new(CallReply)
	if err := cli.requester.SendRequest(ctx, method, args, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (cli *JSONRPCClient) Add(ctx context.Context, actor string) (*CallReply, error) {
	return cli.send(ctx, "add", &ActorArgs{Actor: actor})
}

func (cli *JSONRPCClient) Change(ctx context.Context, actor string) (*CallReply, error) {
	return cli.send(ctx, "change", &ActorArgs{Actor: actor})
}

func (cli *JSONRPCClient) Reset(ctx context.Context, actor string) (*CallReply, error) {
	return cli.send(ctx, "reset", &ActorArgs{Actor: actor})
}

// Call invokes [method] by name. [actor] may be empty.
func (cli *JSONRPCClient) Call(ctx context.Context, actor string, method string) (*CallReply, error) {
	return cli.send(ctx, "call", &CallArgs{Method: method, Actor: actor})
}
