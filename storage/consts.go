// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

const (
	// State is the namespace of the contract state database.
	State = "statedb"

	// Global directory of accounts with deployed contracts
	contractPrefix = 0x0

	// State space associated with an account
	accountStatePrefix = 0x1

	// StateKey is the key the contract record is persisted under inside the
	// state space of its account.
	StateKey = "STATE"

	// MaxAccountLen bounds account names, matching NEAR account ids.
	MaxAccountLen = 64
)
