// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"net/http"

	"github.com/ava-labs/changeback/api"
	"github.com/ava-labs/changeback/codec"
	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/server"
)

const Endpoint = "/changeback"

var _ api.HandlerFactory[api.Node] = (*JSONRPCServerFactory)(nil)

type JSONRPCServerFactory struct{}

func (JSONRPCServerFactory) New(node api.Node) (api.Handler, error) {
	handler, err := server.NewJSONRPCHandler(api.Name, NewJSONRPCServer(node))
	if err != nil {
		return api.Handler{}, err
	}
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

type JSONRPCServer struct {
	node api.Node
}

func NewJSONRPCServer(node api.Node) *JSONRPCServer {
	return &JSONRPCServer{node}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.node.Logger().Info("ping")
	reply.Success = true
	return nil
}

type GetABIReply struct {
	ABI runtime.ABI `json:"abi"`
}

func (j *JSONRPCServer) GetABI(_ *http.Request, _ *struct{}, reply *GetABIReply) error {
	reply.ABI = j.node.ABI()
	return nil
}

type GetNumReply struct {
	Value int32 `json:"value"`
}

func (j *JSONRPCServer) GetNum(req *http.Request, _ *struct{}, reply *GetNumReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.GetNum")
	defer span.End()

	result, err := j.node.Call(ctx, "", runtime.GetNumMethod)
	if err != nil {
		return err
	}
	value, err := codec.Deserialize[int32](result.Output)
	if err != nil {
		return err
	}
	reply.Value = *value
	return nil
}

type ActorArgs struct {
	// Actor is the account signing the call. Optional.
	Actor string `json:"actor"`
}

type CallArgs struct {
	Method string `json:"method"`
	Actor  string `json:"actor"`
}

type CallReply struct {
	// Output is the Borsh-encoded return value, empty for methods without one.
	Output codec.Bytes `json:"output"`
	Value  int32       `json:"value"`
	Logs   []string    `json:"logs"`
	Height uint64      `json:"height"`
}

func (j *JSONRPCServer) call(ctx context.Context, actor string, method string, reply *CallReply) error {
	result, err := j.node.Call(ctx, actor, method)
	if err != nil {
		return err
	}
	reply.Output = result.Output
	reply.Value = result.Value
	reply.Logs = result.Logs
	reply.Height = result.Height
	return nil
}

func (j *JSONRPCServer) Add(req *http.Request, args *ActorArgs, reply *CallReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Add")
	defer span.End()

	return j.call(ctx, args.Actor, runtime.AddMethod, reply)
}

func (j *JSONRPCServer) Change(req *http.Request, args *ActorArgs, reply *CallReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Change")
	defer span.End()

	return j.call(ctx, args.Actor, runtime.ChangeMethod, reply)
}

func (j *JSONRPCServer) Reset(req *http.Request, args *ActorArgs, reply *CallReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Reset")
	defer span.End()

	return j.call(ctx, args.Actor, runtime.ResetMethod, reply)
}

// Call invokes any exported method by name.
func (j *JSONRPCServer) Call(req *http.Request, args *CallArgs, reply *CallReply) error {
	ctx, span := j.node.Tracer().Start(req.Context(), "JSONRPCServer.Call")
	defer span.End()

	return j.call(ctx, args.Actor, args.Method, reply)
}
