// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/changeback/config"
	"github.com/ava-labs/changeback/consts"
	"github.com/ava-labs/changeback/node"
	"github.com/ava-labs/changeback/utils"
)

var rootCmd = &cobra.Command{
	Use:          consts.Name,
	Short:        "Host the Change counter contract",
	Long:         `Runs a node hosting the Change contract on a single account and serves it over JSON-RPC.`,
	Version:      consts.Version.String(),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().String("config", "", "Path to the JSON node config (defaults are used when unset)")
}

func run(cmd *cobra.Command, _ []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	var rawConfig []byte
	if configPath != "" {
		rawConfig, err = os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("cannot open config file (%s): %w", configPath, err)
		}
	}
	cfg, err := config.New(rawConfig)
	if err != nil {
		return fmt.Errorf("cannot read config file: %w", err)
	}

	log, err := node.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Stop()

	n, err := node.New(cfg, log)
	if err != nil {
		log.Error("failed to start node", zap.Error(err))
		return err
	}
	utils.Outf("{{green}}%s %s serving{{/}} %s {{yellow}}contract:{{/}} %s\n", consts.Name, consts.Version, n.URI(), cfg.ContractAccount)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	runErr := n.Run(ctx)
	if err := n.Close(); err != nil {
		log.Error("failed to close node", zap.Error(err))
	}
	if runErr != nil {
		return runErr
	}
	log.Info("shut down")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.Outf("{{red}}%s exited with error:{{/}} %v\n", consts.Name, err)
		os.Exit(1)
	}
}
