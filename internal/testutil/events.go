package testutil

import (
	"github.com/roach88/morf/internal/morph"
)

// Raw builds an engine candidate with a null ending.
func Raw(root, pos, form string) morph.RawAnalysis {
	return morph.RawAnalysis{Root: root, Ending: "0", PartOfSpeech: pos, Form: form}
}

// Block builds an analysis block. No candidates means an empty block.
func Block(candidates ...morph.RawAnalysis) morph.AnalysisBlockEvent {
	if candidates == nil {
		candidates = []morph.RawAnalysis{}
	}
	return morph.AnalysisBlockEvent{Candidates: candidates}
}

// Index builds an index event.
func Index(ordinal int) morph.IndexEvent {
	return morph.IndexEvent{Ordinal: ordinal}
}

// Events collects events into a slice.
func Events(events ...morph.Event) []morph.Event {
	return events
}

// OneToOne builds the stream of an engine that analyzed every token on its
// own: one single-candidate block and one index event per token. The
// candidate root is the token itself.
func OneToOne(tokens ...string) []morph.Event {
	events := make([]morph.Event, 0, 2*len(tokens))
	for i, tok := range tokens {
		events = append(events, Block(Raw(tok, "S", "sg n")), Index(i))
	}
	return events
}
