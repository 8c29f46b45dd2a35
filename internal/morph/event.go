package morph

// Event is a single item of the engine's result stream.
//
// This is a sealed interface - only IndexEvent and AnalysisBlockEvent
// implement it. Consumers switch on the concrete type and treat any other
// value as a protocol violation.
type Event interface {
	eventNode()
}

// IndexEvent reports which submission ordinal the current analysis block
// applies to. Several index events after one block mean the engine read the
// corresponding tokens as one multi-token unit.
type IndexEvent struct {
	Ordinal int
}

func (IndexEvent) eventNode() {}

// AnalysisBlockEvent carries the candidates for the next indexed unit.
// An empty block is valid: the engine knows no reading for the token.
type AnalysisBlockEvent struct {
	Candidates []RawAnalysis
}

func (AnalysisBlockEvent) eventNode() {}

// Event kind names used by the wire format and the store.
const (
	EventKindIndex    = "index"
	EventKindAnalysis = "analysis"
)

// EventKind returns the kind name of ev, or "" for unknown variants.
// Nil pointers count as unknown.
func EventKind(ev Event) string {
	switch e := ev.(type) {
	case IndexEvent:
		return EventKindIndex
	case *IndexEvent:
		if e != nil {
			return EventKindIndex
		}
	case AnalysisBlockEvent:
		return EventKindAnalysis
	case *AnalysisBlockEvent:
		if e != nil {
			return EventKindAnalysis
		}
	}
	return ""
}
