// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Server maintains the set of subscribers and broadcasts receipts to them.
// It is mounted on an existing router through [Server.ServeHTTP].
//
// Subscribers only receive messages; anything they send is discarded.
type Server struct {
	log      logging.Logger
	config   ServerConfig
	upgrader websocket.Upgrader

	conns *Connections
}

func New(log logging.Logger, config ServerConfig) *Server {
	return &Server{
		log:    log,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		conns: NewConnections(),
	}
}

// ServeHTTP upgrades the request and starts the read and write pumps of the
// new subscriber.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("failed to upgrade",
			zap.Error(err),
		)
		return
	}
	conn := &Connection{
		s:    s,
		conn: wsConn,
		send: make(chan []byte, s.config.MaxPendingMessages),
	}
	conn.active.Store(true)
	s.conns.Add(conn)

	go conn.writePump()
	go conn.readPump()
}

// Publish sends [msg] to every subscriber. Subscribers with too many pending
// messages miss it.
func (s *Server) Publish(msg []byte) {
	for _, conn := range s.conns.Conns() {
		if !conn.Send(msg) {
			s.log.Verbo("dropping message to subscriber due to too many pending messages")
		}
	}
}

// PublishReceipt encodes [receipt] and sends it to every subscriber.
func (s *Server) PublishReceipt(receipt *Receipt) error {
	msg, err := receipt.Marshal()
	if err != nil {
		return err
	}
	s.Publish(msg)
	return nil
}

// Subscribers returns the number of connected subscribers.
func (s *Server) Subscribers() int {
	return s.conns.Len()
}

// Close disconnects every subscriber.
func (s *Server) Close() {
	for _, conn := range s.conns.Conns() {
		s.removeConnection(conn)
		conn.deactivate()
	}
}

func (s *Server) removeConnection(conn *Connection) {
	s.conns.Remove(conn)
}
