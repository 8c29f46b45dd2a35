package store

import (
	"context"
	"fmt"

	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/query"
)

// Search returns the stored analyses matching q, ordered by run seq, word
// position and analysis index. Returns an empty slice (not nil) when nothing
// matches.
func (s *Store) Search(ctx context.Context, q query.Search) ([]Hit, error) {
	sqlText, params, err := query.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlText, params...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	hits := []Hit{}
	for rows.Next() {
		var (
			h          Hit
			a          morph.Analysis
			tokensJSON string
		)
		if err := rows.Scan(
			&h.RunID, &h.Seq, &h.Position, &h.Text, &h.Index,
			&a.Root, &tokensJSON, &a.Ending, &a.Clitic, &a.PartOfSpeech, &a.Form, &a.Lemma,
		); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		if a.RootTokens, err = unmarshalStrings(tokensJSON); err != nil {
			return nil, fmt.Errorf("scan hit: root tokens: %w", err)
		}
		h.Analysis = a
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hits: %w", err)
	}
	return hits, nil
}
