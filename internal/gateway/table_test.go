package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morf/internal/lexicon"
	"github.com/roach88/morf/internal/morph"
)

const testLexicon = `
lexicon: {
	language: "et"
	words: {
		maja: [
			{root: "maja", ending: "0", pos: "S", form: "sg g, "},
			{root: "maja", ending: "0", pos: "S", form: "sg n, "},
		]
		kuni: [{root: "kuni", ending: "0", pos: "K"}]
		new: [{root: "new", ending: "0", pos: "T"}]
		jne: [{root: "jne", ending: "0", pos: "Y", form: "?"}]
	}
	phrases: {
		"kuni siiani": [{root: "kuni_siiani", ending: "0", pos: "D"}]
		"New York": [{root: "New_York", ending: "0", pos: "H", form: "sg n"}]
		"New York City": [{root: "New_York_City", ending: "0", pos: "H", form: "sg n"}]
	}
}
`

func newTestTable(t *testing.T) *Table {
	t.Helper()
	lex, err := lexicon.CompileString(testLexicon)
	require.NoError(t, err)
	return NewTable(lex)
}

func submitAll(t *testing.T, gw Gateway, words ...string) {
	t.Helper()
	for i, w := range words {
		require.NoError(t, gw.Submit(w, i))
	}
}

func TestTable_SingleWords(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	submitAll(t, gw, "Maja", "xyz")

	assert.Equal(t, []morph.Event{
		block(morph.RawAnalysis{Root: "maja", Ending: "0", PartOfSpeech: "S", Form: "sg g, "}),
		index(0),
		block(),
		index(1),
	}, drain(t, gw))
}

func TestTable_MaximumDepthKeepsAllCandidates(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState, FlagMaximumDepth)))
	submitAll(t, gw, "maja")

	events := drain(t, gw)
	require.Len(t, events, 2)
	assert.Len(t, events[0].(morph.AnalysisBlockEvent).Candidates, 2)
}

func TestTable_CompoundRecognition(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(analyzeFlags))
	submitAll(t, gw, "kuni", "siiani", "maja")

	events := drain(t, gw)
	require.Len(t, events, 5)
	assert.Equal(t, "kuni_siiani", events[0].(morph.AnalysisBlockEvent).Candidates[0].Root)
	assert.Equal(t, index(0), events[1])
	assert.Equal(t, index(1), events[2])
	assert.Equal(t, "maja", events[3].(morph.AnalysisBlockEvent).Candidates[0].Root)
	assert.Equal(t, index(2), events[4])
}

func TestTable_LongestPhraseWins(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(analyzeFlags))
	submitAll(t, gw, "new", "york", "city", "maja")

	events := drain(t, gw)
	require.Len(t, events, 6)
	assert.Equal(t, "New_York_City", events[0].(morph.AnalysisBlockEvent).Candidates[0].Root)
	assert.Equal(t, []morph.Event{index(0), index(1), index(2)}, events[1:4])
}

func TestTable_NoCompoundRecognition(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	submitAll(t, gw, "kuni", "siiani")

	events := drain(t, gw)
	require.Len(t, events, 4)
	assert.Equal(t, "kuni", events[0].(morph.AnalysisBlockEvent).Candidates[0].Root)
	assert.Equal(t, block(), events[2])
}

func TestTable_AbbreviationsNeedExpansionFlag(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	submitAll(t, gw, "jne")
	assert.Equal(t, block(), drain(t, gw)[0])

	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState, FlagAbbreviationExpansion)))
	submitAll(t, gw, "jne")
	assert.Equal(t, "Y", drain(t, gw)[0].(morph.AnalysisBlockEvent).Candidates[0].PartOfSpeech)
}

func TestTable_GuessUnknownWords(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState, FlagGuessUnknownWords)))
	submitAll(t, gw, "Tallinn", "Kõrvits", "xyz")

	events := drain(t, gw)
	require.Len(t, events, 6)
	assert.Equal(t, morph.RawAnalysis{Root: "?Tallinn", Ending: "0", PartOfSpeech: "H", Form: "sg n"},
		events[0].(morph.AnalysisBlockEvent).Candidates[0])
	assert.Equal(t, "H", events[2].(morph.AnalysisBlockEvent).Candidates[0].PartOfSpeech)
	assert.Equal(t, morph.RawAnalysis{Root: "?xyz", Ending: "0", PartOfSpeech: "S", Form: "sg n"},
		events[4].(morph.AnalysisBlockEvent).Candidates[0])
}

func TestTable_ClearPriorStateDropsQueuedWords(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	submitAll(t, gw, "maja", "maja")

	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	assert.Empty(t, drain(t, gw))
}

func TestTable_CandidatesAreCopies(t *testing.T) {
	gw := newTestTable(t)
	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	submitAll(t, gw, "maja")

	first := drain(t, gw)[0].(morph.AnalysisBlockEvent)
	first.Candidates[0].Root = "mutated"

	require.NoError(t, gw.Configure(NewFlags(FlagClearPriorState)))
	submitAll(t, gw, "maja")
	assert.Equal(t, "maja", drain(t, gw)[0].(morph.AnalysisBlockEvent).Candidates[0].Root)
}

func TestTable_UnknownFlag(t *testing.T) {
	gw := newTestTable(t)
	assert.True(t, IsConfigurationError(gw.Configure(NewFlags("bogus"))))
}
