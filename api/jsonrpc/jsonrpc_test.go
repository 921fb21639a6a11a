// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc_test

import (
	"context"
	"strings"

	"github.com/ava-labs/changeback/codec"
	"github.com/ava-labs/changeback/contracts/change"
	"github.com/ava-labs/changeback/runtime"
	"github.com/ava-labs/changeback/storage"

	ginkgo "github.com/onsi/ginkgo/v2"
	gomega "github.com/onsi/gomega"
)

const actor = "alice.testnet"

var _ = ginkgo.Describe("[Ping]", func() {
	ginkgo.It("responds", func() {
		ok, err := cli.Ping(context.Background())
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(ok).Should(gomega.BeTrue())
	})
})

var _ = ginkgo.Describe("[ABI]", func() {
	ginkgo.It("lists view and call methods", func() {
		abi, err := cli.GetABI(context.Background())
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(abi.Contract).Should(gomega.Equal(contract))
		gomega.Expect(abi.Methods).Should(gomega.Equal([]runtime.MethodSpec{
			{Name: runtime.GetNumMethod, Kind: runtime.ViewKind},
			{Name: runtime.AddMethod, Kind: runtime.CallKind},
			{Name: runtime.ChangeMethod, Kind: runtime.CallKind},
			{Name: runtime.ResetMethod, Kind: runtime.CallKind},
		}))
	})
})

var _ = ginkgo.Describe("[Counter]", func() {
	ctx := context.Background()

	ginkgo.It("starts at zero", func() {
		value, err := cli.GetNum(ctx)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(value).Should(gomega.BeZero())
	})

	ginkgo.It("adds and changes", func() {
		reply, err := cli.Add(ctx, actor)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(reply.Value).Should(gomega.Equal(int32(1000)))
		gomega.Expect(reply.Logs).Should(gomega.Equal([]string{
			"Added money to 1000",
			change.OverflowWarning,
		}))
		gomega.Expect(reply.Height).Should(gomega.Equal(uint64(1)))

		reply, err = cli.Change(ctx, actor)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(reply.Value).Should(gomega.Equal(int32(990)))
		gomega.Expect(reply.Logs).Should(gomega.HaveLen(2))

		value, err := cli.GetNum(ctx)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(value).Should(gomega.Equal(int32(990)))
	})

	ginkgo.It("resets", func() {
		_, err := cli.Change(ctx, actor)
		gomega.Expect(err).Should(gomega.Succeed())

		reply, err := cli.Reset(ctx, actor)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(reply.Value).Should(gomega.BeZero())
		gomega.Expect(reply.Logs).Should(gomega.Equal([]string{change.ResetMessage}))
	})
})

var _ = ginkgo.Describe("[Call]", func() {
	ctx := context.Background()

	ginkgo.It("dispatches by name", func() {
		_, err := cli.Call(ctx, actor, runtime.ChangeMethod)
		gomega.Expect(err).Should(gomega.Succeed())

		reply, err := cli.Call(ctx, "", runtime.GetNumMethod)
		gomega.Expect(err).Should(gomega.Succeed())
		value, err := codec.Deserialize[int32](reply.Output)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(*value).Should(gomega.Equal(int32(-10)))
		gomega.Expect(reply.Logs).Should(gomega.BeEmpty())
	})

	ginkgo.It("rejects unknown methods", func() {
		_, err := cli.Call(ctx, actor, "withdraw")
		gomega.Expect(err).Should(gomega.HaveOccurred())
		gomega.Expect(err.Error()).Should(gomega.ContainSubstring(runtime.ErrUnknownMethod.Error()))
	})
})

var _ = ginkgo.Describe("[Actor]", func() {
	ctx := context.Background()

	ginkgo.It("forwards the signer", func() {
		_, err := cli.Add(ctx, actor)
		gomega.Expect(err).Should(gomega.Succeed())
		_, err = cli.Call(ctx, "bob.testnet", runtime.ResetMethod)
		gomega.Expect(err).Should(gomega.Succeed())
		_, err = cli.GetNum(ctx)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(node.actors).Should(gomega.Equal([]string{actor, "bob.testnet", ""}))
	})

	ginkgo.It("rejects an invalid signer", func() {
		_, err := cli.Add(ctx, strings.Repeat("a", storage.MaxAccountLen+1))
		gomega.Expect(err).Should(gomega.HaveOccurred())

		value, err := cli.GetNum(ctx)
		gomega.Expect(err).Should(gomega.Succeed())
		gomega.Expect(value).Should(gomega.BeZero())
	})
})
