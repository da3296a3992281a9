package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/etnz/returns"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptMonths(t *testing.T) {
	tests := []struct {
		input      string
		start, end string
		wantErr    bool
	}{
		{input: "2022-01\n2022-06\n", start: "2022-01", end: "2022-06"},
		{input: " 2022-01 \n\n", start: "2022-01", end: ""},
		{input: "2022-01\n", start: "2022-01", end: ""},
		{input: "2022-01", start: "2022-01", end: ""},
		{input: "\n2022-06\n", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		var out strings.Builder
		start, end, err := promptMonths(strings.NewReader(tt.input), &out)
		if tt.wantErr {
			assert.Error(t, err, "promptMonths(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "promptMonths(%q)", tt.input)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
		assert.Equal(t, "Starting month (YYYY-MM): Ending month (YYYY-MM): ", out.String())
	}
}

func TestParseMonths(t *testing.T) {
	start, end, err := parseMonths("2022-01", "")
	require.NoError(t, err)
	assert.Equal(t, returns.MustParseMonth("2022-01"), start)
	assert.Nil(t, end)

	start, end, err = parseMonths("202203", "2022-05")
	require.NoError(t, err)
	assert.Equal(t, returns.MustParseMonth("2022-03"), start)
	require.NotNil(t, end)
	assert.Equal(t, returns.MustParseMonth("2022-05"), *end)

	_, _, err = parseMonths("2022-13", "")
	assert.Error(t, err)
	_, _, err = parseMonths("2022-01", "june")
	assert.Error(t, err)
}

func TestMonthWindow(t *testing.T) {
	w, err := monthWindow("", "")
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = monthWindow("2022-02", "2022-03")
	require.NoError(t, err)
	assert.Equal(t, "2022-02-01..2022-03-31", w.String())

	_, err = monthWindow("2022-03", "2022-02")
	assert.ErrorIs(t, err, returns.ErrInvalidRange)
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, subcommands.ExitSuccess, exitStatus("testing", nil))
	assert.Equal(t, subcommands.ExitUsageError, exitStatus("testing", returns.ErrInvalidRange))
	assert.Equal(t, subcommands.ExitFailure, exitStatus("testing", returns.ErrMissingData))
	assert.Equal(t, subcommands.ExitFailure, exitStatus("testing", errors.New("boom")))
}
