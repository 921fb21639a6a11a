// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ava-labs/changeback/config"
	"github.com/ava-labs/changeback/consts"
)

// NewLogger writes to stdout and, when a log directory is configured, to a
// rotating JSON log file.
func NewLogger(cfg *config.Config) (logging.Logger, error) {
	format, err := logging.ToFormat(cfg.LogFormat, os.Stdout.Fd())
	if err != nil {
		return nil, err
	}
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(cfg.LogDisplayLevel, os.Stdout, format.ConsoleEncoder()),
	}
	if len(cfg.LogDir) > 0 {
		if err := os.MkdirAll(cfg.LogDir, 0o750); err != nil {
			return nil, err
		}
		file := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.LogDir, consts.Name+".log"),
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxFiles,
			MaxAge:     cfg.LogMaxAge,
			Compress:   cfg.LogCompress,
		}
		cores = append(cores, logging.NewWrappedCore(cfg.LogLevel, file, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(consts.Name, cores...), nil
}
