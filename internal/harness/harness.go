package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/journal"
	"github.com/roach88/morf/internal/lexicon"
	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/store"
	"github.com/roach88/morf/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool

	// Run is the recorded analysis run.
	Run *store.Run

	// Calls counts engine operations by op.
	Calls map[gateway.Op]int

	// Replay is set once a replay assertion ran.
	Replay *journal.ReplayResult

	// Errors contains assertion failure messages.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Calls:  map[gateway.Op]int{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Run executes a scenario against a fresh in-memory store and returns the
// result. A failing analysis is not an error: its outcome is recorded and
// checked by the assertions. Errors are reserved for scenarios that cannot
// be set up.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, testutil.DiscardLogger())
}

// RunContext is Run with an explicit context and logger.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	j, err := journal.New(ctx, st,
		journal.WithClock(testutil.NewDeterministicClock()),
		journal.WithIDGenerator(testutil.NewFixedRunID(scenario.RunID)),
		journal.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	gw, err := newGateway(scenario)
	if err != nil {
		return nil, err
	}
	counter := &callCounter{inner: gw, calls: map[gateway.Op]int{}}

	run, analyzeErr := j.Analyze(ctx, counter, scenario.Settings(), scenario.Sentence)
	if run == nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, analyzeErr)
	}
	if analyzeErr != nil && run.OK() {
		// The analysis passed but recording it failed.
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, analyzeErr)
	}
	logger.Debug("scenario analyzed", "scenario", scenario.Name, "outcome", run.Outcome)

	result := NewResult()
	result.Run = run
	result.Calls = counter.calls

	evaluateAssertions(ctx, j, result, scenario.Assertions)
	return result, nil
}

// newGateway builds the engine the scenario runs against.
func newGateway(s *Scenario) (gateway.Gateway, error) {
	if s.Lexicon != "" {
		lex, err := lexicon.Load(s.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		return gateway.NewTable(lex), nil
	}

	events := make([]morph.Event, len(s.Events))
	for i, step := range s.Events {
		events[i] = step.Event
	}

	var opts []gateway.ScriptedOption
	if len(s.Engine.RejectFlags) > 0 {
		flags := gateway.ParseFlags(s.Engine.RejectFlags)
		opts = append(opts, gateway.WithRejectedFlags(flags...))
	}
	if s.Engine.FlushError != "" {
		opts = append(opts, gateway.WithFlushError(errors.New(s.Engine.FlushError)))
	}
	return gateway.NewScripted(events, opts...), nil
}

// callCounter counts operations on any gateway.
type callCounter struct {
	inner gateway.Gateway
	calls map[gateway.Op]int
}

func (c *callCounter) Configure(flags gateway.Flags) error {
	c.calls[gateway.OpConfigure]++
	return c.inner.Configure(flags)
}

func (c *callCounter) Submit(word string, ordinal int) error {
	c.calls[gateway.OpSubmit]++
	return c.inner.Submit(word, ordinal)
}

func (c *callCounter) Flush() (morph.Event, bool, error) {
	c.calls[gateway.OpFlush]++
	return c.inner.Flush()
}
