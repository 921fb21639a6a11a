// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package change implements the Change contract: a single signed 32-bit
// counter that can be added to, changed (subtracted from) and reset.
//
// The contract is host-agnostic. Persistence, dispatch and the log sink are
// provided by the runtime that loads a [Change] record, binds it to an
// [Emitter] with [New] and calls one [Counter] method per invocation.
package change

import "fmt"

const (
	// AddAmount is added to the value by [Contract.Add].
	AddAmount int32 = 1000
	// ChangeAmount is subtracted from the value by [Contract.Change].
	ChangeAmount int32 = 10

	OverflowWarning = "Make sure you don't overflow, my friend."
	ResetMessage    = "Reset Change to zero"
)

var _ Counter = (*Contract)(nil)

// Counter is the invocation surface of the contract.
type Counter interface {
	// GetNum returns the current value. It never mutates state.
	GetNum() int32
	Add()
	Change()
	Reset()
}

// Emitter receives the diagnostic messages a contract produces.
type Emitter interface {
	Emit(message string)
}

// Change is the persisted record of the contract. The zero value is the state
// of a freshly deployed contract.
type Change struct {
	Val int32
}

// Contract binds a [Change] record to the [Emitter] of the current
// invocation.
type Contract struct {
	state   *Change
	emitter Emitter
}

// New returns a contract operating in place on [state].
func New(state *Change, emitter Emitter) *Contract {
	return &Contract{
		state:   state,
		emitter: emitter,
	}
}

// State returns the record the contract mutates.
func (c *Contract) State() *Change {
	return c.state
}

func (c *Contract) GetNum() int32 {
	return c.state.Val
}

// Add increases the value by [AddAmount].
//
// Overflow wraps around using two's complement arithmetic; the only
// mitigation is the warning emitted after every change.
func (c *Contract) Add() {
	c.state.Val += AddAmount
	c.emitter.Emit(fmt.Sprintf("Added money to %d", c.state.Val))
	c.afterCounterChange()
}

// Change decreases the value by [ChangeAmount]. Underflow wraps around.
func (c *Contract) Change() {
	c.state.Val -= ChangeAmount
	c.emitter.Emit(fmt.Sprintf("Value after change %d", c.state.Val))
	c.afterCounterChange()
}

func (c *Contract) Reset() {
	c.state.Val = 0
	c.emitter.Emit(ResetMessage)
}

func (c *Contract) afterCounterChange() {
	c.emitter.Emit(OverflowWarning)
}
