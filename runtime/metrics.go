// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const methodLabel = "method"

type metrics struct {
	calls    *prometheus.CounterVec
	failures *prometheus.CounterVec
	logs     prometheus.Counter
	callTime metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	callTime, err := metric.NewAverager(
		"runtime_call_time",
		"time spent executing a contract call",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "calls",
			Help:      "number of contract calls",
		}, []string{methodLabel}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "failures",
			Help:      "number of contract calls that failed",
		}, []string{methodLabel}),
		logs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "runtime",
			Name:      "logs",
			Help:      "number of log lines emitted by contracts",
		}),
		callTime: callTime,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.calls),
		r.Register(m.failures),
		r.Register(m.logs),
	)
	return m, errs.Err
}
