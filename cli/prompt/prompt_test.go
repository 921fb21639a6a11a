// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		hasErr   bool
	}{
		{input: "10", expected: 10},
		{input: " 7 ", expected: 7},
		{input: "", hasErr: true},
		{input: "0", hasErr: true},
		{input: "101", hasErr: true},
		{input: "ten", hasErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require := require.New(t)

			v, err := parseInt(tt.input, 100)
			if tt.hasErr {
				require.Error(err)
				return
			}
			require.NoError(err)
			require.Equal(tt.expected, v)
		})
	}
}

func TestParseChoice(t *testing.T) {
	require := require.New(t)

	i, err := parseChoice("2", 3)
	require.NoError(err)
	require.Equal(2, i)

	_, err = parseChoice("3", 3)
	require.ErrorIs(err, ErrIndexOutOfRange)
	_, err = parseChoice("", 3)
	require.ErrorIs(err, ErrInputEmpty)
}

func TestParseContinue(t *testing.T) {
	require := require.New(t)

	cont, err := parseContinue("Y")
	require.NoError(err)
	require.True(cont)

	cont, err = parseContinue("n")
	require.NoError(err)
	require.False(cont)

	_, err = parseContinue("maybe")
	require.ErrorIs(err, ErrInvalidChoice)
}
