// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/version"

const (
	Name = "changeback"

	// DefaultAccount is the account the Change contract is deployed on when
	// none is configured.
	DefaultAccount = "change.testnet"

	Int32Len = 4
)

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
