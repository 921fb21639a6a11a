// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/changeback/codec"
	"github.com/ava-labs/changeback/consts"
	"github.com/ava-labs/changeback/contracts/change"
	"github.com/ava-labs/changeback/state"
)

// recordLen is the Borsh size of [change.Change]: one little-endian int32.
const recordLen = consts.Int32Len

var (
	ErrInvalidAccount = errors.New("invalid account")
	ErrCorruptRecord  = errors.New("corrupt contract record")
)

// VerifyAccount checks that [account] can own a contract.
func VerifyAccount(account string) error {
	if len(account) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidAccount)
	}
	if len(account) > MaxAccountLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidAccount, len(account), MaxAccountLen)
	}
	return nil
}

// AccountStatePrefix is the prefix of the state space of [account]:
// [contractPrefix] + [len(account)] + [account] + [accountStatePrefix]
func AccountStatePrefix(account string) (k []byte) {
	k = make([]byte, 1+2+len(account)+1)
	k[0] = contractPrefix
	binary.BigEndian.PutUint16(k[1:], uint16(len(account)))
	copy(k[3:], account)
	k[len(k)-1] = accountStatePrefix
	return
}

// AccountState returns the state space of the contract deployed on [account].
func AccountState(account string, mu state.Mutable) state.Mutable {
	return state.NewPrefixed(AccountStatePrefix(account), mu)
}

// GetChange reads the contract record from a contract state space. A contract
// that was never written to reads as the zero record.
func GetChange(
	ctx context.Context,
	im state.Immutable,
) (
	*change.Change,
	bool, // exists
	error,
) {
	v, err := im.GetValue(ctx, []byte(StateKey))
	if errors.Is(err, database.ErrNotFound) {
		return &change.Change{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(v) != recordLen {
		return nil, false, fmt.Errorf("%w: expected %d bytes but found %d", ErrCorruptRecord, recordLen, len(v))
	}
	record, err := codec.Deserialize[change.Change](v)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return record, true, nil
}

// PutChange persists [record] into a contract state space.
func PutChange(
	ctx context.Context,
	mu state.Mutable,
	record *change.Change,
) error {
	v, err := codec.Serialize(*record)
	if err != nil {
		return err
	}
	return mu.Insert(ctx, []byte(StateKey), v)
}
