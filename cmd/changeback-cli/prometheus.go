// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/changeback/cli"
	"github.com/ava-labs/changeback/node"
	"github.com/ava-labs/changeback/server"
)

var prometheusCmd = &cobra.Command{
	Use:   "prometheus",
	Short: "Generate a prometheus config scraping the endpoint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		endpoint, err := getConfigValue(cmd, "endpoint", true)
		if err != nil {
			return err
		}
		baseURI, err := cmd.Flags().GetString("prometheus-base-uri")
		if err != nil {
			return err
		}
		file, err := cmd.Flags().GetString("prometheus-file")
		if err != nil {
			return err
		}
		openBrowser, err := cmd.Flags().GetBool("open-browser")
		if err != nil {
			return err
		}
		return cli.GeneratePrometheus(
			baseURI,
			[]string{endpoint},
			server.BaseURL+"/"+node.MetricsEndpoint,
			file,
			openBrowser,
		)
	},
}

func init() {
	prometheusCmd.Flags().String("prometheus-base-uri", "http://localhost:9090", "Prometheus base URI")
	prometheusCmd.Flags().String("prometheus-file", "/tmp/prometheus.yaml", "Prometheus config file")
	prometheusCmd.Flags().Bool("open-browser", true, "Open the dashboard in a browser")
	rootCmd.AddCommand(prometheusCmd)
}
