package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/morf/internal/morph"
)

func TestCompile(t *testing.T) {
	maja := morph.NewAnalysis(rawMaja, true)
	words := morph.WordList{
		{Text: "maja", Analyses: []morph.Analysis{maja}, Resolved: true},
		{Text: "xyz"},
	}

	got := Compile(words)
	assert.Equal(t, []morph.WordAnalysis{
		{Text: "maja", Analyses: []morph.Analysis{maja}},
		{Text: "xyz", Analyses: []morph.Analysis{}},
	}, got)
}

func TestCompile_Empty(t *testing.T) {
	got := Compile(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
