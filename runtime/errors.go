// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "errors"

var (
	ErrUnknownMethod     = errors.New("unknown method")
	ErrDuplicateMethod   = errors.New("duplicate method")
	ErrInvalidMethod     = errors.New("invalid method")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrLogLimitExceeded  = errors.New("number of logs exceeds limit")
	ErrLogLengthExceeded = errors.New("total log length exceeds limit")
	ErrContractPanic     = errors.New("contract panicked")
	ErrMissingState      = errors.New("missing state")
)
