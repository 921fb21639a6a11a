// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"reflect"

	"github.com/near/borsh-go"
)

// Serialize encodes [value] with Borsh. A nil value encodes to nil.
func Serialize[T any](value T) ([]byte, error) {
	if isNil(value) {
		return nil, nil
	}
	return borsh.Serialize(value)
}

// Deserialize decodes Borsh [data] into a new T.
func Deserialize[T any](data []byte) (*T, error) {
	result := new(T)
	if err := borsh.Deserialize(result, data); err != nil {
		return nil, err
	}
	return result, nil
}

func isNil[T any](t T) bool {
	v := reflect.ValueOf(t)
	if !v.IsValid() {
		return true
	}
	kind := v.Kind()
	// Must be one of these types to be nillable
	return (kind == reflect.Ptr ||
		kind == reflect.Interface ||
		kind == reflect.Slice ||
		kind == reflect.Map ||
		kind == reflect.Chan ||
		kind == reflect.Func) &&
		v.IsNil()
}
