// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import "context"

// CallContext fills the unset fields of every [CallInfo] it dispatches with
// its defaults.
type CallContext struct {
	r               *Runtime
	defaultCallInfo CallInfo
}

func (c CallContext) createCallInfo(callInfo *CallInfo) *CallInfo {
	newCallInfo := *callInfo
	if newCallInfo.State == nil {
		newCallInfo.State = c.defaultCallInfo.State
	}
	if len(newCallInfo.Contract) == 0 {
		newCallInfo.Contract = c.defaultCallInfo.Contract
	}
	if len(newCallInfo.Actor) == 0 {
		newCallInfo.Actor = c.defaultCallInfo.Actor
	}
	if len(newCallInfo.FunctionName) == 0 {
		newCallInfo.FunctionName = c.defaultCallInfo.FunctionName
	}
	return &newCallInfo
}

func (c CallContext) CallContract(ctx context.Context, info *CallInfo) (*Result, error) {
	return c.r.CallContract(ctx, c.createCallInfo(info))
}

// Call invokes [function] with the defaults of [c].
func (c CallContext) Call(ctx context.Context, function string) (*Result, error) {
	return c.CallContract(ctx, &CallInfo{FunctionName: function})
}

// WithActor returns a context whose calls are signed by [account].
func (c CallContext) WithActor(account string) CallContext {
	c.defaultCallInfo.Actor = account
	return c
}
