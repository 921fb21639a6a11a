// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package change

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_emitter.go . Emitter
