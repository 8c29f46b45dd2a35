package testutil

// FixedRunID returns the same run id every time.
//
// Scenario runs use it so that golden output does not depend on UUIDv7
// timestamps. Safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a generator for id, or "test-run-default" if empty.
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed id.
func (g *FixedRunID) Generate() string {
	return g.id
}
