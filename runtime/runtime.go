// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/changeback/contracts/change"
	"github.com/ava-labs/changeback/state"
	"github.com/ava-labs/changeback/storage"
)

// CallInfo describes a single invocation.
type CallInfo struct {
	// State is the root state the contract account lives in.
	State state.Mutable
	// Contract is the account the contract is deployed on.
	Contract string
	// Actor is the account that signed the call, if any. It is logged and
	// handed to commit hooks but grants no permissions.
	Actor        string
	FunctionName string
}

// CommitHook observes every committed state-changing call. Hooks run while
// the runtime still serialises calls, so they see results in height order and
// must not block or call back into the runtime.
type CommitHook func(callInfo *CallInfo, result *Result)

// Result is the outcome of a successful invocation.
//
// Output is the Borsh-encoded return value, nil for methods without one.
// Value is the counter after the invocation. Height counts successful
// state-changing invocations since the runtime started; view calls report
// the current height.
type Result struct {
	Output []byte
	Logs   []string
	Value  int32
	Height uint64
}

// Runtime dispatches invocations to the Change contract. Invocations are
// executed one at a time and either commit all of their writes or none.
type Runtime struct {
	log     logging.Logger
	tracer  trace.Tracer
	cfg     *Config
	methods *Methods
	metrics *metrics

	lock   sync.Mutex
	height atomic.Uint64
	hooks  []CommitHook
}

func New(
	cfg *Config,
	log logging.Logger,
	tracer trace.Tracer,
	registerer prometheus.Registerer,
) (*Runtime, error) {
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	methods := NewMethods()
	for _, method := range ChangeMethods() {
		if err := methods.Register(method); err != nil {
			return nil, err
		}
	}
	return &Runtime{
		log:     log,
		tracer:  tracer,
		cfg:     cfg,
		methods: methods,
		metrics: metrics,
	}, nil
}

func (r *Runtime) ABI(contract string) ABI {
	return r.methods.ABI(contract)
}

func (r *Runtime) Height() uint64 {
	return r.height.Load()
}

// AddCommitHook registers [hook] for every later state-changing call.
func (r *Runtime) AddCommitHook(hook CommitHook) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.hooks = append(r.hooks, hook)
}

func (r *Runtime) WithDefaults(callInfo CallInfo) CallContext {
	return CallContext{r: r, defaultCallInfo: callInfo}
}

func (r *Runtime) CallContract(ctx context.Context, callInfo *CallInfo) (*Result, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	ctx, span := r.tracer.Start(ctx, "Runtime.CallContract", oteltrace.WithAttributes(
		attribute.String("contract", callInfo.Contract),
		attribute.String("function", callInfo.FunctionName),
	))
	defer span.End()

	method, ok := r.methods.Get(callInfo.FunctionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, callInfo.FunctionName)
	}

	start := time.Now()
	result, err := r.call(ctx, method, callInfo)
	r.metrics.callTime.Observe(float64(time.Since(start)))
	r.metrics.calls.WithLabelValues(method.Name).Inc()
	if err != nil {
		r.metrics.failures.WithLabelValues(method.Name).Inc()
		r.log.Debug("contract call failed",
			zap.String("contract", callInfo.Contract),
			zap.String("actor", callInfo.Actor),
			zap.String("function", method.Name),
			zap.Error(err),
		)
		return nil, err
	}
	r.metrics.logs.Add(float64(len(result.Logs)))
	r.log.Debug("contract call succeeded",
		zap.String("contract", callInfo.Contract),
		zap.String("actor", callInfo.Actor),
		zap.String("function", method.Name),
		zap.Int32("value", result.Value),
		zap.Uint64("height", result.Height),
	)
	if !method.ReadOnly() {
		for _, hook := range r.hooks {
			hook(callInfo, result)
		}
	}
	return result, nil
}

func (r *Runtime) call(ctx context.Context, method Method, callInfo *CallInfo) (*Result, error) {
	if callInfo.State == nil {
		return nil, ErrMissingState
	}
	if err := storage.VerifyAccount(callInfo.Contract); err != nil {
		return nil, err
	}
	if len(callInfo.Actor) > 0 {
		if err := storage.VerifyAccount(callInfo.Actor); err != nil {
			return nil, fmt.Errorf("actor: %w", err)
		}
	}

	accountState := storage.AccountState(callInfo.Contract, callInfo.State)
	recorder := state.NewRecorder(accountState)
	record, _, err := storage.GetChange(ctx, recorder)
	if err != nil {
		return nil, err
	}

	sink := newLogSink(r.cfg, r.log, callInfo.Contract)
	output, err := invoke(method, change.New(record, sink))
	if err != nil {
		return nil, err
	}
	if err := sink.Err(); err != nil {
		return nil, err
	}

	if !method.ReadOnly() {
		if err := storage.PutChange(ctx, recorder, record); err != nil {
			return nil, err
		}
	}
	if required := recorder.GetStateKeys().Union(); !method.Permissions.Has(required) {
		return nil, fmt.Errorf("%w: %s requires %s but is limited to %s",
			ErrPermissionDenied, method.Name, required, method.Permissions)
	}
	if err := recorder.Commit(ctx, accountState); err != nil {
		return nil, err
	}

	height := r.height.Load()
	if !method.ReadOnly() {
		height = r.height.Inc()
	}
	return &Result{
		Output: output,
		Logs:   sink.Logs(),
		Value:  record.Val,
		Height: height,
	}, nil
}

func invoke(method Method, counter change.Counter) (output []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrContractPanic, method.Name, r)
		}
	}()
	return method.Handler(counter)
}
