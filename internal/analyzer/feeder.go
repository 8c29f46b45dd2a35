package analyzer

import (
	"fmt"

	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/morph"
)

// Feed configures gw with flags and submits one record per token, tagged
// with its position as ordinal. An empty sentence yields an empty list and
// gw is not touched.
func Feed(gw gateway.Gateway, flags gateway.Flags, sentence []string) (morph.WordList, error) {
	words := make(morph.WordList, 0, len(sentence))
	if len(sentence) == 0 {
		return words, nil
	}

	for i, token := range sentence {
		if token == "" {
			return nil, fmt.Errorf("token %d: %w", i, ErrEmptyToken)
		}
	}

	if err := gw.Configure(flags); err != nil {
		return nil, fmt.Errorf("configure: %w", err)
	}

	for i, token := range sentence {
		if err := gw.Submit(token, i); err != nil {
			return nil, fmt.Errorf("submit %q: %w", token, err)
		}
		words = append(words, &morph.WordRecord{Text: token, Ordinal: i})
	}

	return words, nil
}
