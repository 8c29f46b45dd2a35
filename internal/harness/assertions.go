package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/journal"
	"github.com/roach88/morf/internal/store"
)

// AssertionError is returned when an assertion fails.
// It carries the run's words to help debug the failure.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Run      *store.Run
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Run != nil {
		fmt.Fprintf(&buf, "\nRun %s (outcome %s):\n", e.Run.ID, e.Run.Outcome)
		for i, w := range e.Run.Words {
			lemmas := make([]string, len(w.Analyses))
			for j, a := range w.Analyses {
				lemmas[j] = a.Lemma
			}
			fmt.Fprintf(&buf, "  [%d] %q %v\n", i, w.Text, lemmas)
		}
	}
	return buf.String()
}

// evaluateAssertions records every failed assertion on result.
func evaluateAssertions(ctx context.Context, j *journal.Journal, result *Result, assertions []Assertion) {
	asserted := false
	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertOutcome:
			asserted = true
			err = assertOutcome(result.Run, a)
		case AssertWordCount:
			err = assertWordCount(result.Run, a)
		case AssertWord:
			err = assertWord(result.Run, a)
		case AssertFlag:
			err = assertFlag(result.Run, a)
		case AssertCalls:
			err = assertCalls(result, a)
		case AssertReplay:
			err = assertReplay(ctx, j, result)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}

		if err != nil {
			result.AddError(fmt.Sprintf("assertion[%d]: %v", i, err))
		}
	}

	if !asserted && !result.Run.OK() {
		result.AddError(fmt.Sprintf("unexpected outcome %s: %s", result.Run.Outcome, result.Run.ErrorMessage))
	}
}

func assertOutcome(run *store.Run, a Assertion) error {
	if run.Outcome == a.Code {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutcome,
		Expected: a.Code,
		Actual:   fmt.Sprintf("%s (%s)", run.Outcome, run.ErrorMessage),
		Run:      run,
	}
}

func assertWordCount(run *store.Run, a Assertion) error {
	if len(run.Words) == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertWordCount,
		Expected: fmt.Sprintf("%d words", *a.Count),
		Actual:   fmt.Sprintf("%d words", len(run.Words)),
		Run:      run,
	}
}

func assertWord(run *store.Run, a Assertion) error {
	if a.Position >= len(run.Words) {
		return &AssertionError{
			Type:     AssertWord,
			Expected: fmt.Sprintf("word at position %d", a.Position),
			Actual:   fmt.Sprintf("%d words", len(run.Words)),
			Run:      run,
		}
	}
	w := run.Words[a.Position]

	if a.Text != "" && w.Text != a.Text {
		return &AssertionError{
			Type:     AssertWord,
			Expected: fmt.Sprintf("text %q at position %d", a.Text, a.Position),
			Actual:   fmt.Sprintf("text %q", w.Text),
			Run:      run,
		}
	}

	if a.Count != nil && len(w.Analyses) != *a.Count {
		return &AssertionError{
			Type:     AssertWord,
			Expected: fmt.Sprintf("%d analyses at position %d", *a.Count, a.Position),
			Actual:   fmt.Sprintf("%d analyses", len(w.Analyses)),
			Run:      run,
		}
	}

	if a.Lemmas != nil {
		lemmas := make([]string, len(w.Analyses))
		for i, an := range w.Analyses {
			lemmas[i] = an.Lemma
		}
		if !slices.Equal(lemmas, a.Lemmas) {
			return &AssertionError{
				Type:     AssertWord,
				Expected: fmt.Sprintf("lemmas %v at position %d", a.Lemmas, a.Position),
				Actual:   fmt.Sprintf("lemmas %v", lemmas),
				Run:      run,
			}
		}
	}
	return nil
}

func assertFlag(run *store.Run, a Assertion) error {
	present := slices.Contains(run.Flags, a.Flag)
	if present != a.Absent {
		return nil
	}
	want := "applied"
	if a.Absent {
		want = "not applied"
	}
	return &AssertionError{
		Type:     AssertFlag,
		Expected: fmt.Sprintf("flag %s %s", a.Flag, want),
		Actual:   fmt.Sprintf("flags %v", run.Flags),
	}
}

func assertCalls(result *Result, a Assertion) error {
	got := result.Calls[gateway.Op(a.Op)]
	if got == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCalls,
		Expected: fmt.Sprintf("%d %s calls", *a.Count, a.Op),
		Actual:   fmt.Sprintf("%d %s calls", got, a.Op),
	}
}

func assertReplay(ctx context.Context, j *journal.Journal, result *Result) error {
	stored, err := j.Store().ReadRun(ctx, result.Run.ID)
	if err != nil {
		return err
	}
	res, err := j.Replay(ctx, stored)
	if err != nil {
		return err
	}
	result.Replay = res
	if res.Match || res.Skipped {
		return nil
	}
	return &AssertionError{
		Type:     AssertReplay,
		Expected: fmt.Sprintf("outcome %s hash %s", res.OriginalOutcome, res.OriginalHash),
		Actual:   fmt.Sprintf("outcome %s hash %s", res.ReplayOutcome, res.ReplayHash),
		Run:      result.Run,
	}
}
