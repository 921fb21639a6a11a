// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/changeback/api"
	"github.com/ava-labs/changeback/api/jsonrpc"
	"github.com/ava-labs/changeback/config"
	"github.com/ava-labs/changeback/pebble"
	"github.com/ava-labs/changeback/pubsub"
	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/server"
	"github.com/ava-labs/changeback/state"
	"github.com/ava-labs/changeback/storage"

	ctrace "github.com/ava-labs/changeback/trace"
)

const (
	MetricsEndpoint   = "metrics"
	WebSocketEndpoint = "ws"
)

var _ api.Node = (*Node)(nil)

// Node hosts the Change contract on a single account and serves it over
// JSON-RPC.
type Node struct {
	config *config.Config
	log    logging.Logger
	tracer trace.Tracer

	gatherer metrics.MultiGatherer
	db       *pebble.Database

	runtime     *runtime.Runtime
	abi         runtime.ABI
	callContext runtime.CallContext

	pubsub *pubsub.Server
	server server.Server
}

func New(cfg *config.Config, log logging.Logger) (*Node, error) {
	tracer, err := ctrace.New(&cfg.Trace)
	if err != nil {
		return nil, err
	}

	gatherer := metrics.NewPrefixGatherer()
	db, err := storage.New(cfg.Pebble, cfg.DataDir, storage.State, gatherer, log)
	if err != nil {
		_ = tracer.Close()
		return nil, err
	}

	n := &Node{
		config:   cfg,
		log:      log,
		tracer:   tracer,
		gatherer: gatherer,
		db:       db,
	}
	if err := n.initialize(); err != nil {
		_ = n.Close()
		return nil, err
	}
	return n, nil
}

func (n *Node) initialize() error {
	registry := prometheus.NewRegistry()
	rt, err := runtime.New(&n.config.Runtime, n.log, n.tracer, registry)
	if err != nil {
		return err
	}
	if err := n.gatherer.Register("runtime", registry); err != nil {
		return err
	}
	n.runtime = rt
	n.abi = rt.ABI(n.config.ContractAccount)
	n.callContext = rt.WithDefaults(runtime.CallInfo{
		State:    state.NewDatabase(n.db),
		Contract: n.config.ContractAccount,
	})
	n.pubsub = pubsub.New(n.log, n.config.WebSocket)
	rt.AddCommitHook(n.publishReceipt)

	listener, err := net.Listen("tcp", n.config.HTTPAddress())
	if err != nil {
		return err
	}
	n.server = server.New(
		n.log,
		listener,
		n.config.HTTP,
		n.config.AllowedOrigins,
		n.config.AllowedHosts,
		n.config.ShutdownTimeout,
	)

	handler, err := jsonrpc.JSONRPCServerFactory{}.New(n)
	if err != nil {
		_ = listener.Close()
		return err
	}
	errs := wrappers.Errs{}
	errs.Add(
		n.server.AddRoute(handler.Handler, strings.TrimPrefix(handler.Path, "/"), ""),
		n.server.AddRoute(n.pubsub, WebSocketEndpoint, ""),
		n.server.AddRoute(promhttp.HandlerFor(n.gatherer, promhttp.HandlerOpts{}), MetricsEndpoint, ""),
	)
	if errs.Err != nil {
		_ = listener.Close()
	}
	return errs.Err
}

func (n *Node) Logger() logging.Logger {
	return n.log
}

func (n *Node) Tracer() trace.Tracer {
	return n.tracer
}

func (n *Node) ABI() runtime.ABI {
	return n.abi
}

// URI is the base URI clients reach the node at.
func (n *Node) URI() string {
	return fmt.Sprintf("http://%s", n.server.Addr())
}

// Call invokes [method] on the contract on behalf of [actor], which may be
// empty.
func (n *Node) Call(ctx context.Context, actor string, method string) (*runtime.Result, error) {
	return n.callContext.WithActor(actor).Call(ctx, method)
}

// publishReceipt is registered as a commit hook, so receipts reach
// subscribers in height order.
func (n *Node) publishReceipt(callInfo *runtime.CallInfo, result *runtime.Result) {
	if err := n.pubsub.PublishReceipt(&pubsub.Receipt{
		Contract: callInfo.Contract,
		Actor:    callInfo.Actor,
		Method:   callInfo.FunctionName,
		Value:    result.Value,
		Logs:     result.Logs,
		Height:   result.Height,
	}); err != nil {
		n.log.Warn("failed to publish receipt",
			zap.String("method", callInfo.FunctionName),
			zap.Error(err),
		)
	}
}

// Run serves the APIs until [ctx] is cancelled or the server fails.
func (n *Node) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n.log.Info("serving",
			zap.String("uri", n.URI()),
			zap.String("contract", n.config.ContractAccount),
		)
		if err := n.server.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		n.pubsub.Close()
		return n.server.Shutdown()
	})
	return g.Wait()
}

// Close releases the database and the tracer. It must be called after [Run]
// returns.
func (n *Node) Close() error {
	errs := wrappers.Errs{}
	errs.Add(
		n.db.Close(),
		n.tracer.Close(),
	)
	return errs.Err
}
