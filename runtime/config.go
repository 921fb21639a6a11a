// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "github.com/ava-labs/avalanchego/utils/units"

const (
	// Defaults match the log limits of the NEAR runtime.
	defaultMaxLogs     = 100
	defaultMaxLogBytes = 16 * units.KiB
)

type Config struct {
	// MaxLogs is the maximum number of log lines a single invocation may emit.
	MaxLogs int `json:"maxLogs"`
	// MaxLogBytes is the maximum total length of the log lines of a single
	// invocation.
	MaxLogBytes int `json:"maxLogBytes"`
}

func NewConfig() *Config {
	return &Config{
		MaxLogs:     defaultMaxLogs,
		MaxLogBytes: defaultMaxLogBytes,
	}
}

func (c *Config) SetMaxLogs(maxLogs int) *Config {
	c.MaxLogs = maxLogs
	return c
}

func (c *Config) SetMaxLogBytes(maxLogBytes int) *Config {
	c.MaxLogBytes = maxLogBytes
	return c
}
