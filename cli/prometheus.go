// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pkg/browser"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/changeback/utils"
)

const fsModeWrite = 0o600

// Panels plotted on the generated dashboard.
var Panels = []string{
	"increase(runtime_runtime_calls[5s])/5",
	"increase(runtime_runtime_failures[5s])/5",
	"increase(runtime_runtime_logs[5s])/5",
	"increase(runtime_runtime_call_time_sum[5s])/increase(runtime_runtime_call_time_count[5s])/1000000",
	"statedb_disk_space_usage",
}

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusConfig struct {
	Global struct {
		ScrapeInterval     string `yaml:"scrape_interval"`
		EvaluationInterval string `yaml:"evaluation_interval"`
	} `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

// NewPrometheusConfig returns a scrape config for the nodes at [uris].
func NewPrometheusConfig(uris []string, metricsPath string) (*PrometheusConfig, error) {
	endpoints := make([]string, len(uris))
	for i, uri := range uris {
		host, err := utils.GetHost(uri)
		if err != nil {
			return nil, err
		}
		port, err := utils.GetPort(uri)
		if err != nil {
			return nil, err
		}
		endpoints[i] = fmt.Sprintf("%s:%s", host, port)
	}

	var prometheusConfig PrometheusConfig
	prometheusConfig.Global.ScrapeInterval = "1s"
	prometheusConfig.Global.EvaluationInterval = "1s"
	prometheusConfig.ScrapeConfigs = []*PrometheusScrapeConfig{
		{
			JobName: "prometheus",
			StaticConfigs: []*PrometheusStaticConfig{
				{
					Targets: endpoints,
				},
			},
			MetricsPath: metricsPath,
		},
	}
	return &prometheusConfig, nil
}

// DashboardURL links to a prometheus graph page with one panel per expression.
func DashboardURL(baseURI string, panels []string) string {
	// We must manually encode the params because prometheus skips any panels
	// that are not numerically sorted and `url.params` only sorts
	// lexicographically.
	dashboard := baseURI + "/graph"
	for i, panel := range panels {
		appendChar := "&"
		if i == 0 {
			appendChar = "?"
		}
		dashboard = fmt.Sprintf("%s%sg%d.expr=%s&g%d.tab=0&g%d.step_input=1&g%d.range_input=5m", dashboard, appendChar, i, url.QueryEscape(panel), i, i, i)
	}
	return dashboard
}

// GeneratePrometheus writes the scrape config of [uris] to [prometheusFile] and
// either prints or opens the dashboard served by the prometheus at [baseURI].
func GeneratePrometheus(baseURI string, uris []string, metricsPath string, prometheusFile string, openBrowser bool) error {
	prometheusConfig, err := NewPrometheusConfig(uris, metricsPath)
	if err != nil {
		return err
	}
	yamlData, err := yaml.Marshal(prometheusConfig)
	if err != nil {
		return err
	}
	if err := os.WriteFile(prometheusFile, yamlData, fsModeWrite); err != nil {
		return err
	}
	utils.Outf("{{green}}prometheus config written:{{/}} %s\n", prometheusFile)

	dashboard := DashboardURL(baseURI, Panels)
	if !openBrowser {
		utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)
		utils.Outf("{{green}}prometheus cmd:{{/}} prometheus --config.file=%s\n", prometheusFile)
		return nil
	}
	utils.Outf("{{cyan}}opening dashboard{{/}}\n")
	return browser.OpenURL(dashboard)
}
