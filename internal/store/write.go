package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/roach88/morf/internal/morph"
)

// WriteRun stores a run with its tokens, events and result in one transaction.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - writing the same run
// twice leaves the first copy in place.
func (s *Store) WriteRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return fmt.Errorf("write run: missing id")
	}

	flagsJSON, err := marshalStrings(run.Flags)
	if err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run %s: begin: %w", run.ID, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, sentence, sentence_hash, flags, clean_root, heuristics, max_events, outcome, error_message, result_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Seq,
		strings.Join(run.Tokens, " "),
		run.SentenceHash,
		flagsJSON,
		boolToInt(run.CleanRoot),
		boolToInt(run.Heuristics),
		run.MaxEvents,
		run.Outcome,
		run.ErrorMessage,
		run.ResultHash,
	)
	if err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	if err := writeTokens(ctx, tx, run); err != nil {
		return err
	}
	if err := writeEvents(ctx, tx, run); err != nil {
		return err
	}
	if err := writeWords(ctx, tx, run); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run %s: commit: %w", run.ID, err)
	}
	return nil
}

func writeTokens(ctx context.Context, tx *sql.Tx, run *Run) error {
	for i, tok := range run.Tokens {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tokens (run_id, idx, text) VALUES (?, ?, ?)`,
			run.ID, i, tok,
		); err != nil {
			return fmt.Errorf("write token %d: %w", i, err)
		}
	}
	return nil
}

func writeEvents(ctx context.Context, tx *sql.Tx, run *Run) error {
	for i, ev := range run.Events {
		var (
			kind       string
			ordinal    sql.NullInt64
			candidates sql.NullString
		)
		switch e := ev.(type) {
		case *morph.IndexEvent:
			if e == nil {
				return fmt.Errorf("write event %d: nil %T", i, ev)
			}
			ev = *e
		case *morph.AnalysisBlockEvent:
			if e == nil {
				return fmt.Errorf("write event %d: nil %T", i, ev)
			}
			ev = *e
		}
		switch e := ev.(type) {
		case morph.IndexEvent:
			kind = morph.EventKindIndex
			ordinal = sql.NullInt64{Int64: int64(e.Ordinal), Valid: true}
		case morph.AnalysisBlockEvent:
			kind = morph.EventKindAnalysis
			data, err := marshalCandidates(e.Candidates)
			if err != nil {
				return fmt.Errorf("write event %d: %w", i, err)
			}
			candidates = sql.NullString{String: data, Valid: true}
		default:
			return fmt.Errorf("write event %d: unsupported event %T", i, ev)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (run_id, idx, kind, ordinal, candidates) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, kind, ordinal, candidates,
		); err != nil {
			return fmt.Errorf("write event %d: %w", i, err)
		}
	}
	return nil
}

func writeWords(ctx context.Context, tx *sql.Tx, run *Run) error {
	for pos, w := range run.Words {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO words (run_id, position, text) VALUES (?, ?, ?)`,
			run.ID, pos, w.Text,
		); err != nil {
			return fmt.Errorf("write word %d: %w", pos, err)
		}

		for idx, a := range w.Analyses {
			tokens, err := marshalStrings(a.RootTokens)
			if err != nil {
				return fmt.Errorf("write analysis %d/%d: %w", pos, idx, err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO analyses
				(run_id, position, idx, root, root_tokens, ending, clitic, part_of_speech, form, lemma)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				run.ID, pos, idx,
				a.Root, tokens, a.Ending, a.Clitic, a.PartOfSpeech, a.Form, a.Lemma,
			); err != nil {
				return fmt.Errorf("write analysis %d/%d: %w", pos, idx, err)
			}
		}
	}
	return nil
}
