package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morf/internal/morph"
)

func TestLoadFile(t *testing.T) {
	lex, err := Load(filepath.Join("testdata", "et.cue"))
	require.NoError(t, err)

	assert.Equal(t, "et", lex.Language)
	assert.Equal(t, 3, lex.MaxPhraseLen())

	maja, ok := lex.Lookup("Maja")
	require.True(t, ok)
	require.Len(t, maja, 2)
	assert.Equal(t, "sg g, ", maja[0].Form)
	assert.Equal(t, "sg n, ", maja[1].Form)

	laulda, ok := lex.Lookup("laulda")
	require.True(t, ok)
	assert.Equal(t, morph.RawAnalysis{Root: "l<aul", Ending: "da", PartOfSpeech: "V", Form: "da"}, laulda[0])

	phrase, ok := lex.LookupPhrase([]string{"new", "YORK"})
	require.True(t, ok)
	assert.Equal(t, "New_York", phrase[0].Root)

	_, ok = lex.LookupPhrase([]string{"kuni"})
	assert.False(t, ok)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	src := `package et

lexicon: {
	language: "et"
	words: kass: [{root: "kass", ending: "0", pos: "S", form: "sg n"}]
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexicon.cue"), []byte(src), 0o644))

	lex, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"kass"}, lex.Words())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load lexicon")
}

func TestCompileNormalizesKeys(t *testing.T) {
	// Decomposed "U" + combining diaeresis, capitalized.
	lex, err := CompileString(`lexicon: words: "U\u0308likool": [{root: "x", pos: "S"}]`)
	require.NoError(t, err)

	_, ok := lex.Lookup("\u00fclikool")
	assert.True(t, ok)
	assert.Equal(t, []string{"\u00fclikool"}, lex.Words())
}

func TestCompileMergesCaseVariantsInOrder(t *testing.T) {
	src := `lexicon: {
	words: {
		tallinn: [{root: "tallinn", pos: "S"}]
		Tallinn: [{root: "Tallinn", pos: "H"}]
	}
	phrases: {
		"new york": [{root: "new_york", pos: "S"}]
		"New York": [{root: "New_York", pos: "H"}]
	}
}`
	for i := 0; i < 20; i++ {
		lex, err := CompileString(src)
		require.NoError(t, err)

		got, ok := lex.Lookup("TALLINN")
		require.True(t, ok)
		require.Len(t, got, 2)
		assert.Equal(t, "Tallinn", got[0].Root)
		assert.Equal(t, "tallinn", got[1].Root)

		phrase, ok := lex.LookupPhrase([]string{"new", "york"})
		require.True(t, ok)
		require.Len(t, phrase, 2)
		assert.Equal(t, "New_York", phrase[0].Root)
		assert.Equal(t, "new_york", phrase[1].Root)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		msg   string
	}{
		{
			name:  "missing lexicon",
			src:   `other: 1`,
			field: "lexicon",
			msg:   "required",
		},
		{
			name:  "empty lexicon",
			src:   `lexicon: language: "et"`,
			field: "words",
			msg:   "at least one word",
		},
		{
			name:  "missing root",
			src:   `lexicon: words: maja: [{pos: "S"}]`,
			field: "words.maja.root",
			msg:   "root is required",
		},
		{
			name:  "empty pos",
			src:   `lexicon: words: maja: [{root: "maja", pos: ""}]`,
			field: "words.maja.pos",
			msg:   "must not be empty",
		},
		{
			name:  "single word phrase",
			src:   `lexicon: phrases: maja: [{root: "maja", pos: "S"}]`,
			field: "phrases",
			msg:   "needs at least 2 words",
		},
		{
			name:  "multi word entry",
			src:   `lexicon: words: "suur maja": [{root: "maja", pos: "S"}]`,
			field: "words",
			msg:   "must be a single word",
		},
		{
			name:  "candidates not a list",
			src:   `lexicon: words: maja: {root: "maja", pos: "S"}`,
			field: "words.maja",
			msg:   "list of candidates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileString(tt.src)
			require.Error(t, err)

			var compileErr *CompileError
			require.True(t, errors.As(err, &compileErr), "got %T: %v", err, err)
			assert.Equal(t, tt.field, compileErr.Field)
			assert.Contains(t, compileErr.Message, tt.msg)
		})
	}
}

func TestCompileCUEError(t *testing.T) {
	_, err := CompileString(`lexicon: words: maja: [{root: 1, pos: "S"}]`)
	require.Error(t, err)
}

func TestCompileErrorFormat(t *testing.T) {
	err := &CompileError{Field: "words", Message: "bad"}
	assert.Equal(t, "words: bad", err.Error())
}

func TestNewRejectsShortPhrase(t *testing.T) {
	_, err := New("et", nil, map[string][]morph.RawAnalysis{"kuni": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two words")
}

func TestPhraseKey(t *testing.T) {
	assert.Equal(t, "new york", PhraseKey([]string{"New", "York"}))
}
