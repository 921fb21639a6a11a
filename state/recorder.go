// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"
)

var _ Mutable = (*Recorder)(nil)

// The Recorder wraps an [Immutable] state, records what keys are accessed and
// what permissions are required, and buffers every write until [Recorder.Commit].
type Recorder struct {
	// State is the underlying [Immutable] object
	state     Immutable
	stateKeys map[string][]byte

	changedValues map[string][]byte
	// order in which keys were first changed, so commits are deterministic
	changedOrder []string
	keys         Keys
}

func NewRecorder(db Immutable) *Recorder {
	return &Recorder{
		state:         db,
		changedValues: map[string][]byte{},
		stateKeys:     map[string][]byte{},
		keys:          Keys{},
	}
}

func (r *Recorder) checkState(ctx context.Context, key []byte) ([]byte, error) {
	if val, has := r.stateKeys[string(key)]; has {
		return val, nil
	}
	value, err := r.state.GetValue(ctx, key)
	if err == nil {
		// no error, key found.
		r.stateKeys[string(key)] = value
		return value, nil
	}

	if errors.Is(err, database.ErrNotFound) {
		r.stateKeys[string(key)] = nil
		err = nil
	}
	return nil, err
}

func (r *Recorder) setChanged(key string, value []byte) {
	if _, ok := r.changedValues[key]; !ok {
		r.changedOrder = append(r.changedOrder, key)
	}
	r.changedValues[key] = value
}

func (r *Recorder) Insert(ctx context.Context, key []byte, value []byte) error {
	stringKey := string(key)

	stateKeyVal, err := r.checkState(ctx, key)
	if err != nil {
		return err
	}

	if stateKeyVal != nil {
		// underlying storage already has that key.
		r.keys.Add(stringKey, Write)
	} else {
		// underlying storage doesn't have that key.
		r.keys.Add(stringKey, Allocate|Write)
	}

	r.setChanged(stringKey, value)
	return nil
}

func (r *Recorder) Remove(_ context.Context, key []byte) error {
	stringKey := string(key)
	r.keys.Add(stringKey, Write)
	r.setChanged(stringKey, nil)
	return nil
}

func (r *Recorder) GetValue(ctx context.Context, key []byte) (value []byte, err error) {
	stringKey := string(key)

	stateKeyVal, err := r.checkState(ctx, key)
	if err != nil {
		return nil, err
	}
	r.keys.Add(stringKey, Read)
	if value, ok := r.changedValues[stringKey]; ok {
		if value == nil { // value was removed.
			return nil, database.ErrNotFound
		}
		return value, nil
	}
	if stateKeyVal == nil { // no such key exist.
		return nil, database.ErrNotFound
	}
	return stateKeyVal, nil
}

func (r *Recorder) GetStateKeys() Keys {
	return r.keys
}

// Commit writes the buffered changes to [mu] in the order they were first
// made. The recorder must not be used afterwards.
func (r *Recorder) Commit(ctx context.Context, mu Mutable) error {
	for _, key := range r.changedOrder {
		value := r.changedValues[key]
		if value == nil {
			if err := mu.Remove(ctx, []byte(key)); err != nil {
				return err
			}
			continue
		}
		if err := mu.Insert(ctx, []byte(key), value); err != nil {
			return err
		}
	}
	return nil
}
