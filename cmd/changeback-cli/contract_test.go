// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/changeback/cli"
	"github.com/ava-labs/changeback/consts"
	"github.com/ava-labs/changeback/runtime"
)

var errUnexpectedPrompt = errors.New("unexpected confirmation prompt")

func newLocalHandler(t *testing.T, dataDir string) *cli.Handler {
	local, err := cli.NewLocal(dataDir, consts.DefaultAccount, logging.NoLog{})
	require.NoError(t, err)
	return cli.New(local, "")
}

// seed leaves the counter of [dataDir] at 1000.
func seed(t *testing.T, dataDir string) {
	h := newLocalHandler(t, dataDir)
	_, err := h.Call(context.Background(), runtime.AddMethod)
	require.NoError(t, err)
	require.NoError(t, h.Close())
}

func localValue(t *testing.T, dataDir string) int32 {
	h := newLocalHandler(t, dataDir)
	defer h.Close()

	reply, err := h.View(context.Background(), runtime.GetNumMethod)
	require.NoError(t, err)
	return reply.Value
}

// execute runs the CLI with [args], answering confirmations with [answer].
func execute(t *testing.T, answer func(string) (bool, error), args ...string) error {
	original := confirm
	confirm = answer
	t.Cleanup(func() {
		confirm = original
		for _, cmd := range []string{"call", "bench"} {
			c, _, err := rootCmd.Find([]string{cmd})
			require.NoError(t, err)
			require.NoError(t, c.Flags().Set("yes", "false"))
		}
	})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestDestructiveCallsNeedConfirmation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "call",
			args: []string{"call", runtime.ResetMethod},
		},
		{
			name: "bench",
			args: []string{"bench", runtime.ResetMethod, "--count", "1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			dataDir := t.TempDir()
			seed(t, dataDir)

			var asked []string
			decline := func(label string) (bool, error) {
				asked = append(asked, label)
				return false, nil
			}
			require.NoError(execute(t, decline, append(tt.args, "--local", dataDir)...))
			require.Equal([]string{"reset the counter to zero"}, asked)
			require.Equal(int32(1000), localValue(t, dataDir))
		})
	}
}

func TestDestructiveCallsWithYes(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "call",
			args: []string{"call", runtime.ResetMethod, "--yes"},
		},
		{
			name: "bench",
			args: []string{"bench", runtime.ResetMethod, "--count", "1", "-y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			dataDir := t.TempDir()
			seed(t, dataDir)

			unexpected := func(string) (bool, error) {
				return false, errUnexpectedPrompt
			}
			require.NoError(execute(t, unexpected, append(tt.args, "--local", dataDir)...))
			require.Zero(localValue(t, dataDir))
		})
	}
}

func TestBenchSkipsConfirmationForAdd(t *testing.T) {
	require := require.New(t)
	dataDir := t.TempDir()

	unexpected := func(string) (bool, error) {
		return false, errUnexpectedPrompt
	}
	require.NoError(execute(t, unexpected, "bench", runtime.AddMethod, "--count", "3", "--local", dataDir))
	require.Equal(int32(3000), localValue(t, dataDir))
}
