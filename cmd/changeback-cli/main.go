// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/changeback/consts"
)

var rootCmd = &cobra.Command{
	Use:   "changeback-cli",
	Short: "CLI for the Change counter contract",
	Long:  `A CLI application for viewing and calling the Change contract, on a node or directly on a local data directory.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("endpoint", "", "Override the default endpoint")
	rootCmd.PersistentFlags().String("local", "", "Execute against the data directory of a stopped node instead of an endpoint")
	rootCmd.PersistentFlags().String("account", consts.DefaultAccount, "Account the contract is deployed on (with --local)")
	rootCmd.PersistentFlags().String("actor", "", "Account signing the calls")
}

func main() {
	Execute()
}
