package store

import "github.com/roach88/morf/internal/morph"

// OutcomeOK is the outcome of a run that produced a result.
// Failed runs carry the analyzer's error code instead.
const OutcomeOK = "ok"

// Run is one recorded sentence analysis.
type Run struct {
	ID  string
	Seq int64

	// Input.
	Tokens       []string
	SentenceHash string
	Flags        []string
	CleanRoot    bool
	Heuristics   bool
	MaxEvents    int

	// Events is the engine's result stream exactly as received.
	Events []morph.Event

	// Output.
	Outcome      string
	ErrorMessage string
	ResultHash   string
	Words        []morph.WordAnalysis
}

// OK reports whether the run produced a result.
func (r *Run) OK() bool {
	return r.Outcome == OutcomeOK
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"`
	Sentence   string `json:"sentence"`
	Outcome    string `json:"outcome"`
	ResultHash string `json:"result_hash,omitempty"`
	WordCount  int    `json:"word_count"`
}

// Hit is one analysis matched by Search.
type Hit struct {
	RunID    string         `json:"run_id"`
	Seq      int64          `json:"seq"`
	Position int            `json:"position"`
	Text     string         `json:"text"`
	Index    int            `json:"index"`
	Analysis morph.Analysis `json:"analysis"`
}
