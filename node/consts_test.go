// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import "time"

const (
	defaultWait = 5 * time.Second
	defaultTick = 10 * time.Millisecond
)
