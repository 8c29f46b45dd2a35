package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/store"
)

// Snapshot is the canonical JSON form of a run, as stored in golden files.
func Snapshot(name string, run *store.Run) ([]byte, error) {
	flags := run.Flags
	if flags == nil {
		flags = []string{}
	}
	words := run.Words
	if words == nil {
		words = []morph.WordAnalysis{}
	}
	return morph.MarshalCanonical(map[string]any{
		"scenario":    name,
		"run_id":      run.ID,
		"seq":         run.Seq,
		"outcome":     run.Outcome,
		"flags":       flags,
		"words":       words,
		"result_hash": run.ResultHash,
	})
}

// RunWithGolden executes a scenario and compares the run snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result.Run)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
