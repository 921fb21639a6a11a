// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
)

// Client receives the receipts published by a [Server].
type Client struct {
	conn *websocket.Conn
	rl   sync.Mutex
	cl   sync.Once
}

// NewClient dials into the server at [uri], e.g. ws://127.0.0.1:9650/ext/ws.
func NewClient(ctx context.Context, uri string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, uri, nil)
	if err != nil {
		return nil, err
	}
	// not using resp for now
	resp.Body.Close()
	return &Client{conn: conn}, nil
}

// ListenForReceipt blocks until the next receipt arrives.
func (c *Client) ListenForReceipt() (*Receipt, error) {
	c.rl.Lock()
	defer c.rl.Unlock()

	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return UnmarshalReceipt(msg)
}

func (c *Client) Close() error {
	var err error
	c.cl.Do(func() {
		err = c.conn.Close()
	})
	return err
}
