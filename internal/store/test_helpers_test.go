package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/morf/internal/morph"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun builds a successful run for "ma laulan" with one recorded
// engine stream and its compiled result.
func createTestRun(id string, seq int64) *Run {
	return &Run{
		ID:           id,
		Seq:          seq,
		Tokens:       []string{"ma", "laulan"},
		SentenceHash: "sentence-hash",
		Flags:        []string{"clear-prior-state", "enable-compound-recognition"},
		CleanRoot:    true,
		MaxEvents:    24,
		Events: []morph.Event{
			morph.AnalysisBlockEvent{Candidates: []morph.RawAnalysis{
				{Root: "mina", Ending: "0", PartOfSpeech: "P", Form: "sg n, "},
			}},
			morph.IndexEvent{Ordinal: 0},
			morph.AnalysisBlockEvent{Candidates: []morph.RawAnalysis{
				{Root: "laul", Ending: "n", PartOfSpeech: "V", Form: "n"},
			}},
			morph.IndexEvent{Ordinal: 1},
		},
		Outcome:    OutcomeOK,
		ResultHash: "result-hash",
		Words: []morph.WordAnalysis{
			{Text: "ma", Analyses: []morph.Analysis{{
				Root: "mina", RootTokens: []string{"mina"}, Ending: "0",
				PartOfSpeech: "P", Form: "sg n", Lemma: "mina",
			}}},
			{Text: "laulan", Analyses: []morph.Analysis{{
				Root: "laul", RootTokens: []string{"laul"}, Ending: "n",
				PartOfSpeech: "V", Form: "n", Lemma: "laulma",
			}}},
		},
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
