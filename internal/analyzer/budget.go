package analyzer

import "fmt"

// DefaultMaxEvents returns the event budget for a sentence of n tokens.
// A well-formed stream has at most two events per token.
func DefaultMaxEvents(n int) int {
	return 4*n + 16
}

// eventBudget bounds the number of events one Analyze call consumes, so a
// misbehaving engine cannot keep the reconciler busy forever.
type eventBudget struct {
	limit int
	used  int
}

func newEventBudget(limit int) *eventBudget {
	return &eventBudget{limit: limit}
}

// Spend accounts for one event.
func (b *eventBudget) Spend() error {
	b.used++
	if b.used > b.limit {
		return &ReconciliationError{
			Code:     ErrCodeEventBudgetExceeded,
			Message:  fmt.Sprintf("engine emitted more than %d events", b.limit),
			Ordinal:  -1,
			Position: -1,
			Anchor:   noPosition,
		}
	}
	return nil
}

// Used returns the number of events consumed.
func (b *eventBudget) Used() int {
	return b.used
}
