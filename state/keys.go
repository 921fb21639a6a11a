// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "strings"

const (
	Read     Permissions = 1
	Allocate             = 1<<1 | Read
	Write                = 1<<2 | Read

	None Permissions = 0
	All              = Read | Allocate | Write
)

// Keys maps a state key to the permissions an invocation required on it.
// Use [Keys.Add] so that repeated accesses widen rather than replace the
// recorded permissions.
type Keys map[string]Permissions

// All acceptable permission options
type Permissions byte

func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Union returns the union of the permissions required on every key.
func (k Keys) Union() Permissions {
	var p Permissions
	for _, perm := range k {
		p |= perm
	}
	return p
}

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

func (p Permissions) String() string {
	if p == None {
		return "none"
	}
	var names []string
	if p.Has(Read) {
		names = append(names, "read")
	}
	if p.Has(Allocate) {
		names = append(names, "allocate")
	}
	if p.Has(Write) {
		names = append(names, "write")
	}
	return strings.Join(names, "|")
}
