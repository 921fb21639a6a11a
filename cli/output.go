// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/utils"
)

// PrintJSON writes [v] to [w] as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func PrintReply(reply *Reply) {
	for _, log := range reply.Logs {
		utils.Outf("{{yellow}}log:{{/}} %s\n", log)
	}
	if len(reply.Output) > 0 {
		utils.Outf("{{cyan}}output:{{/}} 0x%s\n", reply.Output)
	}
	utils.Outf("{{green}}%s{{/}} value=%d height=%d\n", reply.Method, reply.Value, reply.Height)
}

func PrintABI(abi runtime.ABI) {
	utils.Outf("{{cyan}}contract:{{/}} %s\n", abi.Contract)
	for _, m := range abi.Methods {
		utils.Outf("  {{bold}}%s{{/}} (%s)\n", m.Name, m.Kind)
	}
}

func PrintBench(method string, result *BenchResult) {
	utils.Outf(
		"{{green}}%s:{{/}} %d calls, {{red}}%d failed{{/}} in %s\n",
		method,
		result.Calls,
		result.Failures,
		result.Duration,
	)
	if result.Last != nil {
		utils.Outf("{{cyan}}last value:{{/}} %d\n", result.Last.Value)
	}
}
