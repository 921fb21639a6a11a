// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrWrongKind      = errors.New("wrong method kind")
	ErrInvalidCount   = errors.New("count must be positive")
	ErrInvalidWorkers = errors.New("concurrency must be positive")
)
