// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/changeback/cli"
	"github.com/ava-labs/changeback/cli/prompt"
	"github.com/ava-labs/changeback/runtime"
)

var abiCmd = &cobra.Command{
	Use:   "abi",
	Short: "List the methods of the contract",
	RunE: func(cmd *cobra.Command, _ []string) error {
		h, err := newHandler(cmd)
		if err != nil {
			return err
		}
		defer h.Close()

		abi, err := h.ABI(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get abi: %w", err)
		}
		isJSON, err := isJSONOutputRequested(cmd)
		if err != nil {
			return err
		}
		if isJSON {
			return cli.PrintJSON(os.Stdout, abi)
		}
		cli.PrintABI(abi)
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [method]",
	Short: "Invoke a read-only method",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		h, err := newHandler(cmd)
		if err != nil {
			return err
		}
		defer h.Close()

		method, err := methodFromArgs(ctx, h, args, runtime.ViewKind)
		if err != nil {
			return err
		}
		reply, err := h.View(ctx, method)
		if err != nil {
			return fmt.Errorf("failed to view %s: %w", method, err)
		}
		return printReply(cmd, reply)
	},
}

var callCmd = &cobra.Command{
	Use:   "call [method]",
	Short: "Invoke a state-changing method",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		h, err := newHandler(cmd)
		if err != nil {
			return err
		}
		defer h.Close()

		method, err := methodFromArgs(ctx, h, args, runtime.CallKind)
		if err != nil {
			return err
		}
		cont, err := confirmDestructive(cmd, method)
		if err != nil || !cont {
			return err
		}
		reply, err := h.Call(ctx, method)
		if err != nil {
			return fmt.Errorf("failed to call %s: %w", method, err)
		}
		return printReply(cmd, reply)
	},
}

var benchCmd = &cobra.Command{
	Use:   "bench [method]",
	Short: "Issue many concurrent calls of a method",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		h, err := newHandler(cmd)
		if err != nil {
			return err
		}
		defer h.Close()

		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return err
		}
		if count == 0 {
			count, err = prompt.Int("number of calls", 1_000_000)
			if err != nil {
				return err
			}
		}
		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return err
		}
		cont, err := confirmDestructive(cmd, args[0])
		if err != nil || !cont {
			return err
		}
		result, err := h.Bench(ctx, args[0], count, concurrency)
		if err != nil {
			return err
		}
		isJSON, err := isJSONOutputRequested(cmd)
		if err != nil {
			return err
		}
		if isJSON {
			return cli.PrintJSON(os.Stdout, result)
		}
		cli.PrintBench(args[0], result)
		return nil
	},
}

// confirm asks the user before a destructive call.
var confirm = prompt.Continue

// destructive maps the methods that discard state to their confirmation
// question.
var destructive = map[string]string{
	runtime.ResetMethod: "reset the counter to zero",
}

// confirmDestructive returns whether [method] may run. Destructive methods
// need --yes or an explicit confirmation.
func confirmDestructive(cmd *cobra.Command, method string) (bool, error) {
	label, ok := destructive[method]
	if !ok {
		return true, nil
	}
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return false, err
	}
	if yes {
		return true, nil
	}
	return confirm(label)
}

// methodFromArgs returns the method named in [args], or asks for one of the
// methods of [kind].
func methodFromArgs(ctx context.Context, h *cli.Handler, args []string, kind string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	methods, err := h.Methods(ctx, kind)
	if err != nil {
		return "", err
	}
	if len(methods) == 0 {
		return "", fmt.Errorf("contract has no %s methods", kind)
	}
	index, err := prompt.Choice("select method", methods)
	if err != nil {
		return "", err
	}
	return methods[index], nil
}

func init() {
	callCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation of destructive calls")
	benchCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation of destructive calls")
	benchCmd.Flags().Int("count", 0, "Number of calls (prompted when unset)")
	benchCmd.Flags().Int("concurrency", 4, "Number of concurrent calls")
	rootCmd.AddCommand(abiCmd, viewCmd, callCmd, benchCmd)
}
