package morph

// RawAnalysis is one candidate tuple exactly as the tagging engine emits it.
// Form may still carry trailing separators (", ").
type RawAnalysis struct {
	Root         string `json:"root" yaml:"root"`
	Ending       string `json:"ending" yaml:"ending"`
	Clitic       string `json:"clitic" yaml:"clitic"`
	PartOfSpeech string `json:"partofspeech" yaml:"pos"`
	Form         string `json:"form" yaml:"form"`
}

// Analysis is a single morphological reading of a word.
type Analysis struct {
	// Root is the lemma root. Either the raw engine root or the cleaned root,
	// depending on how the Analysis was built.
	Root string `json:"root"`
	// RootTokens are the compound parts of the root with engine markers removed.
	RootTokens []string `json:"root_tokens"`
	// Ending is the grammatical ending ("0" for a null ending).
	Ending string `json:"ending"`
	// Clitic is the attached particle, if any.
	Clitic string `json:"clitic"`
	// PartOfSpeech is the engine's part-of-speech tag, e.g. "S" or "V".
	PartOfSpeech string `json:"partofspeech"`
	// Form is the inflectional form with trailing separators trimmed.
	Form string `json:"form"`
	// Lemma is the dictionary form derived from RootTokens.
	Lemma string `json:"lemma"`
}

// NewAnalysis builds an Analysis from a raw engine tuple.
// The form is trimmed; root tokens and lemma are derived from the raw root.
// If cleanRoot is true, Root holds the marker-free root instead of the raw one.
func NewAnalysis(raw RawAnalysis, cleanRoot bool) Analysis {
	tokens := RootTokens(raw.Root)
	lemma := Lemma(tokens, raw.PartOfSpeech)

	root := raw.Root
	if cleanRoot {
		root = joinTokens(tokens)
	}

	return Analysis{
		Root:         root,
		RootTokens:   tokens,
		Ending:       raw.Ending,
		Clitic:       raw.Clitic,
		PartOfSpeech: raw.PartOfSpeech,
		Form:         TrimForm(raw.Form),
		Lemma:        lemma,
	}
}

// WordRecord is one word being reconciled.
type WordRecord struct {
	// Text is the surface text. Grows when continuation tokens are merged in.
	Text string
	// Ordinal is the submission ordinal assigned by the Token Feeder.
	Ordinal int
	// Analyses is the analysis block assigned by the engine (nil until resolved).
	Analyses []Analysis
	// Resolved reports whether an analysis block has been assigned.
	Resolved bool
}

// WordList is the ordered sentence under reconciliation.
// It only ever shrinks (merges remove records).
type WordList []*WordRecord

// Len returns the number of records.
func (l WordList) Len() int {
	return len(l)
}

// Remove deletes the record at position i, preserving order.
func (l WordList) Remove(i int) WordList {
	copy(l[i:], l[i+1:])
	l[len(l)-1] = nil
	return l[:len(l)-1]
}

// WordAnalysis is the compiled result for one (possibly merged) word.
type WordAnalysis struct {
	Text     string     `json:"text"`
	Analyses []Analysis `json:"analyses"`
}
