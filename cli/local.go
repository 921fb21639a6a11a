// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/changeback/pebble"
	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/state"
	"github.com/ava-labs/changeback/storage"
	"github.com/ava-labs/changeback/trace"
)

var _ Backend = (*Local)(nil)

// Local executes calls directly against the database in a data directory. A
// node must not be running on the same directory.
type Local struct {
	db          *pebble.Database
	runtime     *runtime.Runtime
	contract    string
	callContext runtime.CallContext
}

func NewLocal(dataDir string, contract string, log logging.Logger) (*Local, error) {
	db, err := storage.New(pebble.NewDefaultConfig(), dataDir, storage.State, metrics.NewPrefixGatherer(), log)
	if err != nil {
		return nil, err
	}
	rt, err := runtime.New(runtime.NewConfig(), log, trace.Noop(), prometheus.NewRegistry())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Local{
		db:       db,
		runtime:  rt,
		contract: contract,
		callContext: rt.WithDefaults(runtime.CallInfo{
			State:    state.NewDatabase(db),
			Contract: contract,
		}),
	}, nil
}

func (l *Local) ABI(context.Context) (runtime.ABI, error) {
	return l.runtime.ABI(l.contract), nil
}

func (l *Local) Call(ctx context.Context, actor string, method string) (*Reply, error) {
	result, err := l.callContext.WithActor(actor).Call(ctx, method)
	if err != nil {
		return nil, err
	}
	return &Reply{
		Method: method,
		Output: result.Output,
		Value:  result.Value,
		Logs:   result.Logs,
		Height: result.Height,
	}, nil
}

func (l *Local) Close() error {
	return l.db.Close()
}
