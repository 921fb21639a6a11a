// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, string) {
	server := New(logging.NoLog{}, NewDefaultServerConfig())
	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		server.Close()
		httpServer.Close()
	})
	return server, "ws" + strings.TrimPrefix(httpServer.URL, "http")
}

func waitForSubscribers(t *testing.T, server *Server, n int) {
	require.Eventually(t, func() bool {
		return server.Subscribers() == n
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServerPublishReceipt(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	server, uri := newTestServer(t)
	first, err := NewClient(ctx, uri)
	require.NoError(err)
	defer first.Close()
	second, err := NewClient(ctx, uri)
	require.NoError(err)
	defer second.Close()
	waitForSubscribers(t, server, 2)

	receipt := &Receipt{
		Contract: "change.testnet",
		Method:   "add",
		Value:    1000,
		Logs:     []string{"Added money to 1000", "Make sure you don't overflow, my friend."},
		Height:   1,
	}
	require.NoError(server.PublishReceipt(receipt))

	for _, client := range []*Client{first, second} {
		got, err := client.ListenForReceipt()
		require.NoError(err)
		require.Equal(receipt, got)
	}
}

func TestServerRemovesClosedSubscribers(t *testing.T) {
	require := require.New(t)

	server, uri := newTestServer(t)
	client, err := NewClient(context.Background(), uri)
	require.NoError(err)
	waitForSubscribers(t, server, 1)

	require.NoError(client.Close())
	waitForSubscribers(t, server, 0)

	// publishing without subscribers is a no-op
	server.Publish([]byte("{}"))
}

func TestServerCloseDisconnects(t *testing.T) {
	require := require.New(t)

	server, uri := newTestServer(t)
	client, err := NewClient(context.Background(), uri)
	require.NoError(err)
	defer client.Close()
	waitForSubscribers(t, server, 1)

	server.Close()
	require.Zero(server.Subscribers())
	_, err = client.ListenForReceipt()
	require.Error(err)
}

func TestConnectionDropsWhenFull(t *testing.T) {
	require := require.New(t)

	conn := &Connection{send: make(chan []byte, 1)}
	conn.active.Store(true)
	require.True(conn.Send([]byte("a")))
	require.False(conn.Send([]byte("b")))

	conn.deactivate()
	require.False(conn.Send([]byte("c")))
	// deactivate is idempotent
	conn.deactivate()
}

func TestUnmarshalReceiptInvalid(t *testing.T) {
	_, err := UnmarshalReceipt([]byte("not json"))
	require.Error(t, err)
}
