// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/changeback/codec"
	"github.com/ava-labs/changeback/contracts/change"
	"github.com/ava-labs/changeback/state"
	"github.com/ava-labs/changeback/storage"
	"github.com/ava-labs/changeback/trace"
)

const testContract = "change.testnet"

func newTestRuntime(t *testing.T, cfg *Config) (*Runtime, state.Mutable) {
	r, err := New(cfg, logging.NoLog{}, trace.Noop(), prometheus.NewRegistry())
	require.NoError(t, err)
	return r, state.NewDatabase(memdb.New())
}

func getNum(t *testing.T, callContext CallContext) int32 {
	require := require.New(t)

	result, err := callContext.Call(context.Background(), GetNumMethod)
	require.NoError(err)
	value, err := codec.Deserialize[int32](result.Output)
	require.NoError(err)
	require.Equal(result.Value, *value)
	return *value
}

func TestCallFlows(t *testing.T) {
	tests := []struct {
		name     string
		calls    []string
		expected int32
	}{
		{
			name:     "fresh",
			expected: 0,
		},
		{
			name:     "add",
			calls:    []string{AddMethod},
			expected: 1000,
		},
		{
			name:     "change",
			calls:    []string{ChangeMethod},
			expected: -10,
		},
		{
			name:     "add then reset",
			calls:    []string{AddMethod, ResetMethod},
			expected: 0,
		},
		{
			name:     "add then change",
			calls:    []string{AddMethod, ChangeMethod},
			expected: 990,
		},
		{
			name:     "reset twice",
			calls:    []string{AddMethod, ResetMethod, ResetMethod},
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			r, mu := newTestRuntime(t, NewConfig())
			callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})
			for _, call := range tt.calls {
				_, err := callContext.Call(ctx, call)
				require.NoError(err)
			}
			require.Equal(tt.expected, getNum(t, callContext))
			require.Equal(uint64(len(tt.calls)), r.Height())
		})
	}
}

func TestCallResultLogs(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})

	result, err := callContext.Call(ctx, AddMethod)
	require.NoError(err)
	require.Nil(result.Output)
	require.Equal(int32(1000), result.Value)
	require.Equal(uint64(1), result.Height)
	require.Equal([]string{"Added money to 1000", change.OverflowWarning}, result.Logs)

	result, err = callContext.Call(ctx, ChangeMethod)
	require.NoError(err)
	require.Equal([]string{"Value after change 990", change.OverflowWarning}, result.Logs)

	result, err = callContext.Call(ctx, ResetMethod)
	require.NoError(err)
	require.Equal([]string{change.ResetMessage}, result.Logs)

	result, err = callContext.Call(ctx, GetNumMethod)
	require.NoError(err)
	require.Empty(result.Logs)
	require.Equal(uint64(3), result.Height)
}

func TestCallPersistsBorshRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})

	_, err := callContext.Call(ctx, ChangeMethod)
	require.NoError(err)

	raw, err := storage.AccountState(testContract, mu).GetValue(ctx, []byte(storage.StateKey))
	require.NoError(err)
	require.Equal([]byte{0xf6, 0xff, 0xff, 0xff}, raw)
}

func TestViewDoesNotCreateRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})
	require.Zero(getNum(t, callContext))

	_, exists, err := storage.GetChange(ctx, storage.AccountState(testContract, mu))
	require.NoError(err)
	require.False(exists)
}

func TestContractsAreIsolated(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	first := r.WithDefaults(CallInfo{State: mu, Contract: testContract})
	second := r.WithDefaults(CallInfo{State: mu, Contract: "change2.testnet"})

	_, err := first.Call(ctx, AddMethod)
	require.NoError(err)
	_, err = second.Call(ctx, ChangeMethod)
	require.NoError(err)

	require.Equal(int32(1000), getNum(t, first))
	require.Equal(int32(-10), getNum(t, second))
}

func TestOverflowWraps(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})
	require.NoError(storage.PutChange(ctx, storage.AccountState(testContract, mu), &change.Change{Val: math.MaxInt32}))

	result, err := callContext.Call(ctx, AddMethod)
	require.NoError(err)
	require.Equal(int32(math.MinInt32+999), result.Value)
}

func TestUnknownMethod(t *testing.T) {
	require := require.New(t)

	r, mu := newTestRuntime(t, NewConfig())
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})
	_, err := callContext.Call(context.Background(), "withdraw")
	require.ErrorIs(err, ErrUnknownMethod)
}

func TestMissingState(t *testing.T) {
	require := require.New(t)

	r, _ := newTestRuntime(t, NewConfig())
	_, err := r.CallContract(context.Background(), &CallInfo{
		Contract:     testContract,
		FunctionName: AddMethod,
	})
	require.ErrorIs(err, ErrMissingState)
}

func TestInvalidAccount(t *testing.T) {
	require := require.New(t)

	r, mu := newTestRuntime(t, NewConfig())
	_, err := r.CallContract(context.Background(), &CallInfo{
		State:        mu,
		FunctionName: AddMethod,
	})
	require.ErrorIs(err, storage.ErrInvalidAccount)
}

func TestLogLimitLeavesStateUntouched(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig().SetMaxLogs(1))
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})

	_, err := callContext.Call(ctx, AddMethod)
	require.ErrorIs(err, ErrLogLimitExceeded)
	require.Zero(getNum(t, callContext))
	require.Zero(r.Height())

	// a single log line still fits
	result, err := callContext.Call(ctx, ResetMethod)
	require.NoError(err)
	require.Equal([]string{change.ResetMessage}, result.Logs)
}

func TestPermissionDenied(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	// bump may overwrite an existing record but never allocate one
	require.NoError(r.methods.Register(Method{
		Name:        "bump",
		Permissions: state.Write,
		Handler: func(c change.Counter) ([]byte, error) {
			c.Add()
			return nil, nil
		},
	}))
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})

	_, err := callContext.Call(ctx, "bump")
	require.ErrorIs(err, ErrPermissionDenied)
	require.Zero(getNum(t, callContext))

	_, err = callContext.Call(ctx, ChangeMethod)
	require.NoError(err)
	result, err := callContext.Call(ctx, "bump")
	require.NoError(err)
	require.Equal(int32(990), result.Value)
}

func TestContractPanic(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	require.NoError(r.methods.Register(Method{
		Name:        "explode",
		Permissions: state.All,
		Handler: func(c change.Counter) ([]byte, error) {
			c.Add()
			panic("boom")
		},
	}))
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract})

	_, err := callContext.Call(ctx, "explode")
	require.ErrorIs(err, ErrContractPanic)
	require.Zero(getNum(t, callContext))
}

func TestMetrics(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	r, err := New(NewConfig(), logging.NoLog{}, trace.Noop(), registry)
	require.NoError(err)
	callContext := r.WithDefaults(CallInfo{
		State:    state.NewDatabase(memdb.New()),
		Contract: testContract,
	})

	_, err = callContext.Call(ctx, AddMethod)
	require.NoError(err)
	_, err = callContext.Call(ctx, AddMethod)
	require.NoError(err)
	_, err = callContext.Call(ctx, "withdraw")
	require.Error(err)

	require.Equal(float64(2), testutil.ToFloat64(r.metrics.calls.WithLabelValues(AddMethod)))
	require.Equal(float64(0), testutil.ToFloat64(r.metrics.failures.WithLabelValues(AddMethod)))
	require.Equal(float64(4), testutil.ToFloat64(r.metrics.logs))

	_, err = New(NewConfig(), logging.NoLog{}, trace.Noop(), registry)
	require.Error(err)
}

func TestInvalidActor(t *testing.T) {
	require := require.New(t)

	r, mu := newTestRuntime(t, NewConfig())
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract}).
		WithActor(strings.Repeat("a", storage.MaxAccountLen+1))
	_, err := callContext.Call(context.Background(), AddMethod)
	require.ErrorIs(err, storage.ErrInvalidAccount)
	require.Zero(r.Height())
}

func TestCommitHooksSeeHeightOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	r, mu := newTestRuntime(t, NewConfig())
	var (
		heights []uint64
		actors  []string
	)
	r.AddCommitHook(func(callInfo *CallInfo, result *Result) {
		heights = append(heights, result.Height)
		actors = append(actors, callInfo.Actor)
	})
	callContext := r.WithDefaults(CallInfo{State: mu, Contract: testContract}).
		WithActor("alice.testnet")

	const calls = 50
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := callContext.Call(ctx, ChangeMethod)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(err)
	}

	// views and failed calls are not committed
	require.Equal(int32(-10*calls), getNum(t, callContext))
	_, err := callContext.Call(ctx, "withdraw")
	require.Error(err)

	require.Len(heights, calls)
	for i, height := range heights {
		require.Equal(uint64(i+1), height)
		require.Equal("alice.testnet", actors[i])
	}
}
