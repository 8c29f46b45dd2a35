package lexicon

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/morf/internal/morph"
)

// Lexicon is a compiled word and phrase table. Read-only after construction,
// safe for concurrent lookups.
type Lexicon struct {
	Language string

	words     map[string][]morph.RawAnalysis
	phrases   map[string][]morph.RawAnalysis
	maxPhrase int
}

// Key normalizes a surface form for lookup.
func Key(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// PhraseKey builds the lookup key of a word sequence.
func PhraseKey(words []string) string {
	keys := make([]string, len(words))
	for i, w := range words {
		keys[i] = Key(w)
	}
	return strings.Join(keys, " ")
}

// New builds a Lexicon from word and phrase tables. Phrase keys are split on
// whitespace and must contain at least two words. Forms that share a key
// merge their candidates in byte order of the source form.
func New(language string, words, phrases map[string][]morph.RawAnalysis) (*Lexicon, error) {
	lex := &Lexicon{
		Language: language,
		words:    make(map[string][]morph.RawAnalysis, len(words)),
		phrases:  make(map[string][]morph.RawAnalysis, len(phrases)),
	}

	for _, form := range sortedKeys(words) {
		key := Key(form)
		if key == "" {
			return nil, fmt.Errorf("word %q: empty form", form)
		}
		lex.words[key] = append(lex.words[key], words[form]...)
	}

	for _, phrase := range sortedKeys(phrases) {
		candidates := phrases[phrase]
		parts := strings.Fields(phrase)
		if len(parts) < 2 {
			return nil, fmt.Errorf("phrase %q: needs at least two words", phrase)
		}
		key := PhraseKey(parts)
		lex.phrases[key] = append(lex.phrases[key], candidates...)
		if len(parts) > lex.maxPhrase {
			lex.maxPhrase = len(parts)
		}
	}

	return lex, nil
}

// Lookup returns the candidates for a single word.
func (l *Lexicon) Lookup(word string) ([]morph.RawAnalysis, bool) {
	candidates, ok := l.words[Key(word)]
	return candidates, ok
}

// LookupPhrase returns the candidates for a multi-word unit.
func (l *Lexicon) LookupPhrase(words []string) ([]morph.RawAnalysis, bool) {
	if len(words) < 2 {
		return nil, false
	}
	candidates, ok := l.phrases[PhraseKey(words)]
	return candidates, ok
}

// MaxPhraseLen returns the word count of the longest phrase (0 if none).
func (l *Lexicon) MaxPhraseLen() int {
	return l.maxPhrase
}

// Words returns the normalized word keys in sorted order.
func (l *Lexicon) Words() []string {
	return sortedKeys(l.words)
}

// Phrases returns the normalized phrase keys in sorted order.
func (l *Lexicon) Phrases() []string {
	return sortedKeys(l.phrases)
}

func sortedKeys(m map[string][]morph.RawAnalysis) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
