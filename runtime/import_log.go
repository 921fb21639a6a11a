// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/changeback/contracts/change"
)

var _ change.Emitter = (*logSink)(nil)

// logSink collects the log lines of one invocation. Once a limit is exceeded
// every later line is dropped and the invocation fails.
type logSink struct {
	log      logging.Logger
	contract string

	maxLogs     int
	maxLogBytes int

	logs []string
	size int
	err  error
}

func newLogSink(cfg *Config, log logging.Logger, contract string) *logSink {
	return &logSink{
		log:         log,
		contract:    contract,
		maxLogs:     cfg.MaxLogs,
		maxLogBytes: cfg.MaxLogBytes,
	}
}

func (s *logSink) Emit(message string) {
	if s.err != nil {
		return
	}
	if len(s.logs) >= s.maxLogs {
		s.err = fmt.Errorf("%w: %d", ErrLogLimitExceeded, s.maxLogs)
		return
	}
	if s.size+len(message) > s.maxLogBytes {
		s.err = fmt.Errorf("%w: %d bytes", ErrLogLengthExceeded, s.maxLogBytes)
		return
	}
	s.logs = append(s.logs, message)
	s.size += len(message)
	s.log.Debug("contract log",
		zap.String("contract", s.contract),
		zap.String("message", message),
	)
}

func (s *logSink) Logs() []string {
	return s.logs
}

func (s *logSink) Err() error {
	return s.err
}
