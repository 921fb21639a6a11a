// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	p, err := InitSubDirectory(root, "statedb")
	require.NoError(err)
	require.Equal(filepath.Join(root, "statedb"), p)
	require.DirExists(p)

	// idempotent
	_, err = InitSubDirectory(root, "statedb")
	require.NoError(err)
}

func TestGetHostPort(t *testing.T) {
	require := require.New(t)

	host, err := GetHost("http://127.0.0.1:9650/ext/changeback")
	require.NoError(err)
	require.Equal("127.0.0.1", host)

	port, err := GetPort("http://127.0.0.1:9650/ext/changeback")
	require.NoError(err)
	require.Equal("9650", port)

	_, err = GetHost("http://localhost/ext")
	require.Error(err)
}
