package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/morf/internal/analyzer"
	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/store"
)

// Journal analyzes sentences and records every run in a store.
// Not safe for concurrent use.
type Journal struct {
	store  *store.Store
	clock  Sequencer
	ids    IDGenerator
	logger *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock overrides the run sequencer. Default: a Clock resumed from the
// store's highest seq.
func WithClock(c Sequencer) Option {
	return func(j *Journal) {
		j.clock = c
	}
}

// WithIDGenerator overrides run id generation. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(j *Journal) {
		j.ids = g
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) {
		j.logger = l
	}
}

// New creates a journal over st.
func New(ctx context.Context, st *store.Store, opts ...Option) (*Journal, error) {
	j := &Journal{
		store:  st,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.clock == nil {
		seq, err := st.MaxSeq(ctx)
		if err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		j.clock = NewClockAt(seq)
	}
	return j, nil
}

// Store returns the underlying store.
func (j *Journal) Store() *store.Store {
	return j.store
}

// Analyze runs one analysis over gw and records it, successful or not.
//
// The returned run is nil only if the run could not be assembled. The error
// is the analysis error if there was one; a store failure is joined to it.
func (j *Journal) Analyze(ctx context.Context, gw gateway.Gateway, settings analyzer.Settings, sentence []string) (*store.Run, error) {
	recorder := gateway.NewRecorder(gw)
	a := analyzer.New(recorder, append(settings.Options(), analyzer.WithLogger(j.logger))...)

	words, analyzeErr := a.Analyze(ctx, sentence)

	run, err := j.newRun(a, recorder.Recording(), settings, sentence, words, analyzeErr)
	if err != nil {
		return nil, errors.Join(analyzeErr, err)
	}

	// The run is recorded even when ctx was canceled mid-analysis.
	if err := j.store.WriteRun(context.WithoutCancel(ctx), run); err != nil {
		return run, errors.Join(analyzeErr, fmt.Errorf("journal: %w", err))
	}

	j.logger.Debug("run recorded",
		"run", run.ID,
		"seq", run.Seq,
		"outcome", run.Outcome,
		"events", len(run.Events))
	return run, analyzeErr
}

func (j *Journal) newRun(a *analyzer.Analyzer, rec gateway.Recording, settings analyzer.Settings, sentence []string, words []morph.WordAnalysis, analyzeErr error) (*store.Run, error) {
	tokens := append([]string{}, sentence...)
	sentenceHash, err := morph.SentenceHash(tokens)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}

	// Configure never ran for empty input or an empty token.
	flags := rec.Flags
	if len(flags) == 0 {
		flags = a.Flags()
	}

	run := &store.Run{
		ID:           j.ids.Generate(),
		Seq:          j.clock.Next(),
		Tokens:       tokens,
		SentenceHash: sentenceHash,
		Flags:        flags.Strings(),
		CleanRoot:    settings.CleanRoot,
		Heuristics:   settings.Heuristics,
		MaxEvents:    settings.MaxEvents,
		Events:       rec.Events,
		Words:        []morph.WordAnalysis{},
	}
	if run.Events == nil {
		run.Events = []morph.Event{}
	}

	if analyzeErr != nil {
		run.Outcome = analyzer.ErrorCode(analyzeErr)
		run.ErrorMessage = analyzeErr.Error()
		return run, nil
	}

	run.Outcome = store.OutcomeOK
	run.Words = words
	if run.ResultHash, err = morph.ResultHash(words); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return run, nil
}
