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

// ReplayResult compares a replayed run with its recording.
type ReplayResult struct {
	RunID string
	// Match is true when outcome and result hash both agree.
	Match bool
	// Skipped is true for canceled runs, which have no reproducible outcome.
	Skipped bool

	OriginalOutcome string
	ReplayOutcome   string
	OriginalHash    string
	ReplayHash      string

	Words []morph.WordAnalysis
}

// Replay re-runs a recorded analysis against its recorded event stream.
// The engine is not needed. Nothing is written to the store.
func (j *Journal) Replay(ctx context.Context, run *store.Run) (*ReplayResult, error) {
	return Replay(ctx, run, j.logger)
}

// ReplayByID loads a run and replays it.
func (j *Journal) ReplayByID(ctx context.Context, id string) (*ReplayResult, error) {
	run, err := j.store.ReadRun(ctx, id)
	if err != nil {
		return nil, err
	}
	return j.Replay(ctx, run)
}

// Replay is the store-free form of Journal.Replay.
func Replay(ctx context.Context, run *store.Run, logger *slog.Logger) (*ReplayResult, error) {
	res := &ReplayResult{
		RunID:           run.ID,
		OriginalOutcome: run.Outcome,
		OriginalHash:    run.ResultHash,
	}
	if run.Outcome == analyzer.CodeCanceled {
		res.Skipped = true
		return res, nil
	}

	gw := gateway.NewScripted(scriptEvents(run), scriptOptions(run)...)
	settings := analyzer.Settings{
		CleanRoot:  run.CleanRoot,
		Heuristics: run.Heuristics,
		MaxEvents:  run.MaxEvents,
	}
	opts := settings.Options()
	if logger != nil {
		opts = append(opts, analyzer.WithLogger(logger))
	}

	words, err := analyzer.New(gw, opts...).Analyze(ctx, run.Tokens)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("replay %s: %w", run.ID, err)
		}
		res.ReplayOutcome = analyzer.ErrorCode(err)
	} else {
		res.ReplayOutcome = store.OutcomeOK
		res.Words = words
		if res.ReplayHash, err = morph.ResultHash(words); err != nil {
			return nil, fmt.Errorf("replay %s: %w", run.ID, err)
		}
	}

	res.Match = res.ReplayOutcome == res.OriginalOutcome && res.ReplayHash == res.OriginalHash
	return res, nil
}

// scriptEvents returns the recorded stream. An unknown event ends the stream
// it was flushed in but is never stored, so it is put back here.
func scriptEvents(run *store.Run) []morph.Event {
	if run.Outcome != string(analyzer.ErrCodeUnknownEvent) {
		return run.Events
	}
	events := make([]morph.Event, 0, len(run.Events)+1)
	events = append(events, run.Events...)
	return append(events, nil)
}

// scriptOptions reproduces the gateway failures a run recorded.
func scriptOptions(run *store.Run) []gateway.ScriptedOption {
	switch run.Outcome {
	case analyzer.CodeConfiguration:
		flags := make([]gateway.Flag, 0, len(run.Flags))
		for _, f := range run.Flags {
			flags = append(flags, gateway.Flag(f))
		}
		return []gateway.ScriptedOption{gateway.WithRejectedFlags(flags...)}
	case analyzer.CodeProtocol:
		return []gateway.ScriptedOption{gateway.WithFlushError(errors.New(run.ErrorMessage))}
	default:
		return nil
	}
}
