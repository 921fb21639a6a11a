// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"bytes"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
}

func (*bufferCloser) Close() error {
	return nil
}

func TestLoggerForwards(t *testing.T) {
	require := require.New(t)

	out := &bufferCloser{}
	log := logging.NewLogger("", logging.NewWrappedCore(logging.Verbo, out, logging.Plain.ConsoleEncoder()))
	l := &logger{log: log}

	l.Infof("replaying WAL %06d", 2)
	require.Contains(out.String(), "replaying WAL 000002")

	l.Errorf("background error: %s", "disk full")
	require.Contains(out.String(), "background error: disk full")

	require.PanicsWithValue("corrupt manifest", func() {
		l.Fatalf("corrupt %s", "manifest")
	})
	require.Contains(out.String(), "corrupt manifest")
}

func TestLoggerDebugOnlyForInfo(t *testing.T) {
	require := require.New(t)

	out := &bufferCloser{}
	log := logging.NewLogger("", logging.NewWrappedCore(logging.Info, out, logging.Plain.ConsoleEncoder()))
	l := &logger{log: log}

	// pebble's progress messages stay out of the default console output
	l.Infof("replaying WAL %06d", 2)
	require.Empty(out.String())
}
