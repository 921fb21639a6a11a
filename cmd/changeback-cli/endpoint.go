// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/changeback/cli"
	"github.com/ava-labs/changeback/utils"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Manage endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := getConfigValue(cmd, "endpoint", true)
		if err != nil {
			return err
		}
		isJSON, err := isJSONOutputRequested(cmd)
		if err != nil {
			return err
		}
		if isJSON {
			return cli.PrintJSON(os.Stdout, map[string]string{"endpoint": endpoint})
		}
		utils.Outf("{{cyan}}endpoint:{{/}} %s\n", endpoint)
		return nil
	},
}

var endpointSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the endpoint URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := cmd.Flags().GetString("endpoint")
		if err != nil {
			return err
		}
		if endpoint == "" {
			return errors.New("--endpoint is required")
		}
		if err := setConfigValue("endpoint", endpoint); err != nil {
			return fmt.Errorf("failed to save endpoint: %w", err)
		}
		utils.Outf("{{green}}endpoint set to:{{/}} %s\n", endpoint)
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the endpoint responds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := getConfigValue(cmd, "endpoint", true)
		if err != nil {
			return err
		}
		ok, err := cli.NewRemote(endpoint).Ping(context.Background())
		if err != nil {
			return fmt.Errorf("failed to ping %s: %w", endpoint, err)
		}
		isJSON, err := isJSONOutputRequested(cmd)
		if err != nil {
			return err
		}
		if isJSON {
			return cli.PrintJSON(os.Stdout, map[string]bool{"success": ok})
		}
		utils.Outf("{{green}}ping succeeded:{{/}} %t\n", ok)
		return nil
	},
}

func init() {
	endpointCmd.AddCommand(endpointSetCmd)
	rootCmd.AddCommand(endpointCmd, pingCmd)
}
