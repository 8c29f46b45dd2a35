package gateway

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/morf/internal/lexicon"
	"github.com/roach88/morf/internal/morph"
)

// Tags the table engine treats specially.
const (
	abbreviationTag = "Y"
	properNounTag   = "H"
	nounTag         = "S"
)

type queuedWord struct {
	text    string
	ordinal int
}

// Table is an offline Gateway answering from a compiled lexicon.
//
// Words are tagged lazily, one unit per drained queue: with
// FlagCompoundRecognition the longest phrase starting at the next word wins
// and is reported as one analysis block followed by an index event per
// member word. Unknown words get an empty block, or a guessed noun reading
// with FlagGuessUnknownWords.
type Table struct {
	lex     *lexicon.Lexicon
	flags   Flags
	words   []queuedWord
	next    int
	pending *eventQueue
}

// NewTable creates a table engine over lex.
func NewTable(lex *lexicon.Lexicon) *Table {
	return &Table{
		lex:     lex,
		pending: newEventQueue(),
	}
}

func (t *Table) Configure(flags Flags) error {
	if err := flags.Validate(); err != nil {
		return err
	}
	if flags.Has(FlagClearPriorState) {
		t.words = nil
		t.next = 0
		t.pending.Reset()
	}
	t.flags = append(Flags(nil), flags...)
	return nil
}

func (t *Table) Submit(word string, ordinal int) error {
	t.words = append(t.words, queuedWord{text: word, ordinal: ordinal})
	return nil
}

func (t *Table) Flush() (morph.Event, bool, error) {
	if t.pending.Len() == 0 {
		if t.next >= len(t.words) {
			return nil, false, nil
		}
		t.tagNext()
	}
	ev, ok := t.pending.TryDequeue()
	return ev, ok, nil
}

// tagNext queues the events of the unit starting at t.next.
func (t *Table) tagNext() {
	if t.flags.Has(FlagCompoundRecognition) {
		if n, candidates := t.matchPhrase(); n > 0 {
			t.pending.Enqueue(morph.AnalysisBlockEvent{Candidates: t.limit(candidates)})
			for _, w := range t.words[t.next : t.next+n] {
				t.pending.Enqueue(morph.IndexEvent{Ordinal: w.ordinal})
			}
			t.next += n
			return
		}
	}

	w := t.words[t.next]
	t.pending.Enqueue(
		morph.AnalysisBlockEvent{Candidates: t.lookup(w.text)},
		morph.IndexEvent{Ordinal: w.ordinal},
	)
	t.next++
}

// matchPhrase finds the longest phrase starting at t.next.
func (t *Table) matchPhrase() (int, []morph.RawAnalysis) {
	longest := min(t.lex.MaxPhraseLen(), len(t.words)-t.next)
	for n := longest; n >= 2; n-- {
		texts := make([]string, n)
		for i := range texts {
			texts[i] = t.words[t.next+i].text
		}
		if candidates, ok := t.lex.LookupPhrase(texts); ok {
			return n, candidates
		}
	}
	return 0, nil
}

func (t *Table) lookup(word string) []morph.RawAnalysis {
	candidates, ok := t.lex.Lookup(word)
	if !ok {
		if t.flags.Has(FlagGuessUnknownWords) {
			return []morph.RawAnalysis{guess(word)}
		}
		return []morph.RawAnalysis{}
	}

	if !t.flags.Has(FlagAbbreviationExpansion) {
		kept := make([]morph.RawAnalysis, 0, len(candidates))
		for _, c := range candidates {
			if c.PartOfSpeech != abbreviationTag {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	return t.limit(candidates)
}

// limit copies candidates, keeping only the first one unless
// FlagMaximumDepth is set.
func (t *Table) limit(candidates []morph.RawAnalysis) []morph.RawAnalysis {
	if !t.flags.Has(FlagMaximumDepth) && len(candidates) > 1 {
		candidates = candidates[:1]
	}
	return append([]morph.RawAnalysis{}, candidates...)
}

// guess builds the reading for an unknown word: a proper noun if it is
// capitalized, a common noun otherwise. The root carries the guess marker.
func guess(word string) morph.RawAnalysis {
	word = norm.NFC.String(word)
	pos := nounTag
	if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
		pos = properNounTag
	} else {
		word = lexicon.Key(word)
	}
	return morph.RawAnalysis{
		Root:         "?" + word,
		Ending:       "0",
		PartOfSpeech: pos,
		Form:         "sg n",
	}
}
