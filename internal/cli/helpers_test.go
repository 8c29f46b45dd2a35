package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morf/internal/journal"
)

const testLexicon = "../lexicon/testdata/et.cue"

// execute runs cmd with args and stdin, returning what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// decodeResponse parses a JSON CLI response, decoding data into v.
func decodeResponse(t *testing.T, out string, v any) CLIResponse {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), "output: %s", out)
	if v != nil && raw.Data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}
}

// recordRuns analyzes each sentence into a fresh database and returns its
// path. Run ids are run-1, run-2, ...
func recordRuns(t *testing.T, sentences ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "morf.db")

	ids := make([]string, len(sentences))
	for i := range ids {
		ids[i] = "run-" + string(rune('1'+i))
	}
	opts := &AnalyzeOptions{
		RootOptions: &RootOptions{Format: "text"},
		IDGenerator: journal.NewFixedGenerator(ids...),
	}
	_, err := execute(t, newAnalyzeCommand(opts), strings.Join(sentences, "\n"),
		"--lexicon", testLexicon, "--db", dbPath)
	require.NoError(t, err)
	return dbPath
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return GetExitCode(err)
}
