package analyzer

import (
	"github.com/roach88/morf/internal/morph"
)

// Compile projects reconciled records into results, one per record, in
// order. Records without a block get an empty (non-nil) analysis list.
func Compile(words morph.WordList) []morph.WordAnalysis {
	out := make([]morph.WordAnalysis, 0, len(words))
	for _, w := range words {
		analyses := w.Analyses
		if analyses == nil {
			analyses = []morph.Analysis{}
		}
		out = append(out, morph.WordAnalysis{Text: w.Text, Analyses: analyses})
	}
	return out
}
