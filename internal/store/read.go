package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/morf/internal/morph"
)

// MaxSeq returns the highest seq in the store, or 0 if it is empty.
func (s *Store) MaxSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("max seq: %w", err)
	}
	return seq.Int64, nil
}

// ReadRun returns the run with the given id, including its tokens, events
// and words. Returns ErrNotFound if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{ID: id}
	var (
		flagsJSON  string
		cleanRoot  int
		heuristics int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT seq, sentence_hash, flags, clean_root, heuristics, max_events, outcome, error_message, result_hash
		FROM runs
		WHERE id = ?
	`, id).Scan(
		&run.Seq,
		&run.SentenceHash,
		&flagsJSON,
		&cleanRoot,
		&heuristics,
		&run.MaxEvents,
		&run.Outcome,
		&run.ErrorMessage,
		&run.ResultHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", id, err)
	}

	run.CleanRoot = cleanRoot != 0
	run.Heuristics = heuristics != 0
	if run.Flags, err = unmarshalStrings(flagsJSON); err != nil {
		return nil, fmt.Errorf("read run %s: flags: %w", id, err)
	}
	if run.Tokens, err = s.readTokens(ctx, id); err != nil {
		return nil, err
	}
	if run.Events, err = s.readEvents(ctx, id); err != nil {
		return nil, err
	}
	if run.Words, err = s.readWords(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

// LatestRun returns the run with the highest seq.
// Returns ErrNotFound if the store is empty.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest run: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return s.ReadRun(ctx, id)
}

// ListRuns returns a summary of every run ordered by seq.
// Returns an empty slice (not nil) for an empty store.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seq, r.sentence, r.outcome, r.result_hash,
		       (SELECT COUNT(*) FROM words w WHERE w.run_id = r.id)
		FROM runs r
		ORDER BY r.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		if err := rows.Scan(&sum.ID, &sum.Seq, &sum.Sentence, &sum.Outcome, &sum.ResultHash, &sum.WordCount); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func (s *Store) readTokens(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM tokens WHERE run_id = ? ORDER BY idx ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		out = append(out, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tokens: %w", err)
	}
	return out, nil
}

func (s *Store) readEvents(ctx context.Context, runID string) ([]morph.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, ordinal, candidates FROM events WHERE run_id = ? ORDER BY idx ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := []morph.Event{}
	for rows.Next() {
		var (
			kind       string
			ordinal    sql.NullInt64
			candidates sql.NullString
		)
		if err := rows.Scan(&kind, &ordinal, &candidates); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		switch kind {
		case morph.EventKindIndex:
			out = append(out, morph.IndexEvent{Ordinal: int(ordinal.Int64)})
		case morph.EventKindAnalysis:
			c, err := unmarshalCandidates(candidates.String)
			if err != nil {
				return nil, err
			}
			out = append(out, morph.AnalysisBlockEvent{Candidates: c})
		default:
			return nil, fmt.Errorf("unknown event kind %q", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func (s *Store) readWords(ctx context.Context, runID string) ([]morph.WordAnalysis, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM words WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}

	words := []morph.WordAnalysis{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, morph.WordAnalysis{Text: text, Analyses: []morph.Analysis{}})
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	// Single connection: the word cursor must be closed before this query.
	arows, err := s.db.QueryContext(ctx, `
		SELECT position, root, root_tokens, ending, clitic, part_of_speech, form, lemma
		FROM analyses
		WHERE run_id = ?
		ORDER BY position ASC, idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var pos int
		a, err := scanAnalysis(arows, &pos)
		if err != nil {
			return nil, err
		}
		if pos < 0 || pos >= len(words) {
			return nil, fmt.Errorf("analysis for missing word %d", pos)
		}
		words[pos].Analyses = append(words[pos].Analyses, a)
	}
	if err := arows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return words, nil
}

// scanAnalysis reads an analysis row whose first column is the word position.
func scanAnalysis(rows *sql.Rows, pos *int) (morph.Analysis, error) {
	var (
		a          morph.Analysis
		tokensJSON string
	)
	if err := rows.Scan(pos, &a.Root, &tokensJSON, &a.Ending, &a.Clitic, &a.PartOfSpeech, &a.Form, &a.Lemma); err != nil {
		return morph.Analysis{}, fmt.Errorf("scan analysis: %w", err)
	}
	tokens, err := unmarshalStrings(tokensJSON)
	if err != nil {
		return morph.Analysis{}, fmt.Errorf("scan analysis: root tokens: %w", err)
	}
	a.RootTokens = tokens
	return a, nil
}
