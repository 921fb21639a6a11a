// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/changeback/consts"
	"github.com/ava-labs/changeback/pebble"
	"github.com/ava-labs/changeback/pubsub"
	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/server"
	"github.com/ava-labs/changeback/storage"
	"github.com/ava-labs/changeback/trace"
)

const (
	DefaultHTTPHost = "127.0.0.1"
	DefaultHTTPPort = 9650
)

type Config struct {
	// Logging
	LogLevel        logging.Level `json:"logLevel"`
	LogDisplayLevel logging.Level `json:"logDisplayLevel"`
	// One of auto, plain, colors or json.
	LogFormat string `json:"logFormat"`
	// Empty disables the rotating log file.
	LogDir      string `json:"logDir"`
	LogMaxSize  int    `json:"logMaxSize"` // MB
	LogMaxFiles int    `json:"logMaxFiles"`
	LogMaxAge   int    `json:"logMaxAge"` // days
	LogCompress bool   `json:"logCompress"`

	// Storage
	DataDir string        `json:"dataDir"`
	Pebble  pebble.Config `json:"pebble"`

	// API
	HTTPHost        string              `json:"httpHost"`
	HTTPPort        uint16              `json:"httpPort"`
	HTTP            server.HTTPConfig   `json:"http"`
	AllowedOrigins  []string            `json:"allowedOrigins"`
	AllowedHosts    []string            `json:"allowedHosts"`
	ShutdownTimeout time.Duration       `json:"shutdownTimeout"`
	WebSocket       pubsub.ServerConfig `json:"webSocket"`

	// Contract
	ContractAccount string         `json:"contractAccount"`
	Runtime         runtime.Config `json:"runtime"`

	Trace trace.Config `json:"trace"`
}

func New(b []byte) (*Config, error) {
	c := &Config{
		LogLevel:        logging.Info,
		LogDisplayLevel: logging.Info,
		LogFormat:       "auto",
		LogMaxSize:      8,
		LogMaxFiles:     7,
		LogMaxAge:       0,
		DataDir:         defaultDataDir(),
		Pebble:          pebble.NewDefaultConfig(),
		HTTPHost:        DefaultHTTPHost,
		HTTPPort:        DefaultHTTPPort,
		HTTP:            server.NewDefaultHTTPConfig(),
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: 10 * time.Second,
		WebSocket:       pubsub.NewDefaultServerConfig(),
		ContractAccount: consts.DefaultAccount,
		Runtime:         *runtime.NewConfig(),
		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 1,
			Endpoint:        trace.DefaultEndpoint,
			AppName:         consts.Name,
			Agent:           consts.Name,
			Version:         consts.Version.String(),
		},
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Verify() error {
	if err := storage.VerifyAccount(c.ContractAccount); err != nil {
		return err
	}
	if c.Runtime.MaxLogs <= 0 || c.Runtime.MaxLogBytes <= 0 {
		return fmt.Errorf("%w: log limits must be positive", ErrInvalidConfig)
	}
	if len(c.DataDir) == 0 {
		return fmt.Errorf("%w: missing data directory", ErrInvalidConfig)
	}
	if c.WebSocket.PingPeriod >= c.WebSocket.PongWait {
		return fmt.Errorf("%w: ping period must be less than pong wait", ErrInvalidConfig)
	}
	return nil
}

// HTTPAddress is the address the API listens on.
func (c *Config) HTTPAddress() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(int(c.HTTPPort)))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + consts.Name
	}
	return home + string(os.PathSeparator) + "." + consts.Name
}
