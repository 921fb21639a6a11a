// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/changeback/utils"
)

var (
	ErrInputEmpty      = errors.New("input is empty")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrIndexOutOfRange = errors.New("index out-of-range")
)

func parseInt(input string, maxValue int) (int, error) {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return 0, ErrInputEmpty
	}
	amount, err := strconv.Atoi(input)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%d must be > 0", amount)
	}
	if amount > maxValue {
		return 0, fmt.Errorf("%d must be <= %d", amount, maxValue)
	}
	return amount, nil
}

func Int(label string, maxValue int) (int, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parseInt(input, maxValue)
			return err
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return parseInt(rawAmount, maxValue)
}

func parseChoice(input string, maxChoice int) (int, error) {
	if len(input) == 0 {
		return -1, ErrInputEmpty
	}
	index, err := strconv.Atoi(input)
	if err != nil {
		return -1, err
	}
	if index >= maxChoice || index < 0 {
		return -1, ErrIndexOutOfRange
	}
	return index, nil
}

// Choice asks for one of [options] by index.
func Choice(label string, options []string) (int, error) {
	if len(options) == 1 {
		utils.Outf("{{yellow}}%s:{{/}} %s [auto-selected]\n", label, options[0])
		return 0, nil
	}
	for i, option := range options {
		utils.Outf("%d) {{cyan}}%s{{/}}\n", i, option)
	}
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			_, err := parseChoice(input, len(options))
			return err
		},
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return parseChoice(rawIndex, len(options))
}

func parseContinue(input string) (bool, error) {
	if len(input) == 0 {
		return false, ErrInputEmpty
	}
	switch strings.ToLower(input) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	default:
		return false, ErrInvalidChoice
	}
}

func Continue(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label: label + " (y/n)",
		Validate: func(input string) error {
			_, err := parseContinue(input)
			return err
		},
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	cont, err := parseContinue(rawContinue)
	if err != nil {
		return false, err
	}
	if !cont {
		utils.Outf("{{red}}exiting...{{/}}\n")
	}
	return cont, nil
}
