package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Success(map[string]string{"result": "<ok>"}, nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Contains(t, buf.String(), "<ok>", "HTML must not be escaped")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Error("ENGINE_PROTOCOL", "engine sent garbage", map[string]string{"op": "flush"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ENGINE_PROTOCOL", resp.Error.Code)
	assert.Equal(t, "engine sent garbage", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("ignored", func(w io.Writer) {
		fmt.Fprintln(w, "custom text")
	}))
	assert.Equal(t, "custom text\n", buf.String())

	buf.Reset()
	require.NoError(t, formatter.Success("plain", nil))
	assert.Equal(t, "plain\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("EMPTY_TOKEN", "token 1 is empty", nil))
	assert.Equal(t, "Error [EMPTY_TOKEN]: token 1 is empty\n", buf.String())
}

func TestExitError(t *testing.T) {
	inner := errors.New("disk full")

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"plain error", inner, ExitFailure, "disk full"},
		{"exit error", NewExitError(ExitCommandError, "bad path"), ExitCommandError, "bad path"},
		{"wrapped", WrapExitError(ExitFailure, "write failed", inner), ExitFailure, "write failed: disk full"},
		{"nested", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "x")), ExitCommandError, "outer: x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetExitCode(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.message, tt.err.Error())
			}
		})
	}

	assert.ErrorIs(t, WrapExitError(ExitFailure, "write failed", inner), inner)
}

func TestIsReported(t *testing.T) {
	inner := errors.New("bad event")

	assert.False(t, IsReported(nil))
	assert.False(t, IsReported(inner))
	assert.False(t, IsReported(WrapExitError(ExitFailure, "analysis failed", inner)))

	reported := ReportedExitError(ExitFailure, "analysis failed", inner)
	assert.True(t, IsReported(reported))
	assert.True(t, IsReported(fmt.Errorf("outer: %w", reported)))
	assert.Equal(t, ExitFailure, GetExitCode(reported))
	assert.ErrorIs(t, reported, inner)
}
