// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package change

var (
	_ Emitter = (*Messages)(nil)
	_ Emitter = NoEmit{}
)

// Messages is an [Emitter] that keeps every message in order.
type Messages []string

func (m *Messages) Emit(message string) {
	*m = append(*m, message)
}

// NoEmit drops every message.
type NoEmit struct{}

func (NoEmit) Emit(string) {}
