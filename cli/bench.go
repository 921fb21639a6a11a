// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/neilotoole/errgroup"
	"go.uber.org/atomic"

	"github.com/ava-labs/changeback/runtime"
)

type BenchResult struct {
	Calls    int           `json:"calls"`
	Failures uint64        `json:"failures"`
	Duration time.Duration `json:"duration"`
	// Last is a reply of one of the final successful calls.
	Last *Reply `json:"last"`
}

// Bench issues [count] calls of [method] from [concurrency] workers. Failed
// calls are counted and do not stop the run.
func (h *Handler) Bench(ctx context.Context, method string, count int, concurrency int) (*BenchResult, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}
	if concurrency <= 0 {
		return nil, ErrInvalidWorkers
	}
	abi, err := h.backend.ABI(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := abi.FindMethod(method); !ok {
		return nil, fmt.Errorf("%w: %s", runtime.ErrUnknownMethod, method)
	}

	var (
		failures atomic.Uint64
		last     atomic.Pointer[Reply]
		start    = time.Now()
	)
	g, gctx := errgroup.WithContextN(ctx, concurrency, count)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			reply, err := h.backend.Call(gctx, h.actor, method)
			if err != nil {
				failures.Inc()
				return nil
			}
			last.Store(reply)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &BenchResult{
		Calls:    count,
		Failures: failures.Load(),
		Duration: time.Since(start),
		Last:     last.Load(),
	}, nil
}
