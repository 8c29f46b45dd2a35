package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morf/internal/store"
)

func TestShowListsRuns(t *testing.T) {
	dbPath := recordRuns(t, "ma tahaks laulda", "New York City")

	out, err := execute(t, NewShowCommand(&RootOptions{Format: "json"}), "", "--db", dbPath)
	require.NoError(t, err)

	var runs []store.RunSummary
	decodeResponse(t, out, &runs)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "ma tahaks laulda", runs[0].Sentence)
	assert.Equal(t, 3, runs[0].WordCount)
	assert.Equal(t, store.OutcomeOK, runs[1].Outcome)
}

func TestShowEmpty(t *testing.T) {
	dbPath := recordRuns(t)

	out, err := execute(t, NewShowCommand(&RootOptions{Format: "text"}), "", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "no runs recorded\n", out)
}

func TestShowRun(t *testing.T) {
	dbPath := recordRuns(t, "ma tahaks laulda", "New York City")

	out, err := execute(t, NewShowCommand(&RootOptions{Format: "text"}), "", "--db", dbPath, "--run", "run-1")
	require.NoError(t, err)
	assert.Contains(t, out, "run:      run-1\n")
	assert.Contains(t, out, "sentence: ma tahaks laulda\n")
	assert.Contains(t, out, "events:   6\n")
	assert.Contains(t, out, "    laul+da //_V_ da// laulma\n")
}

func TestShowLatestJSON(t *testing.T) {
	dbPath := recordRuns(t, "ma tahaks laulda", "New York City")

	out, err := execute(t, NewShowCommand(&RootOptions{Format: "json"}), "", "--db", dbPath, "--run", "latest")
	require.NoError(t, err)

	var view RunView
	decodeResponse(t, out, &view)
	assert.Equal(t, "run-2", view.ID)
	assert.Equal(t, int64(2), view.Seq)
	assert.Equal(t, []string{"New", "York", "City"}, view.Tokens)
	require.Len(t, view.Events, 4, "one block and three index events")
	assert.JSONEq(t, `{"event":"index","ordinal":0}`, string(view.Events[1]))
	require.Len(t, view.Words, 1)
	assert.Equal(t, "New York City", view.Words[0].Text)
}

func TestShowUnknownRun(t *testing.T) {
	dbPath := recordRuns(t, "maja")

	_, err := execute(t, NewShowCommand(&RootOptions{Format: "text"}), "", "--db", dbPath, "--run", "nope")
	assert.Equal(t, ExitCommandError, exitCode(t, err))
	assert.ErrorIs(t, err, store.ErrNotFound)
}
