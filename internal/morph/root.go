package morph

import "strings"

// rootMarkers are annotation characters the engine puts inside roots:
// '?' guessed, '<' stress, '=' derivation, '+' and ']' morpheme boundaries.
// '_' separates compound parts.
var rootMarkers = strings.NewReplacer(
	"?", "",
	"<", "",
	"=", "",
	"+", "",
	"]", "",
)

// isMarker reports whether s is exactly one marker character.
func isMarker(s string) bool {
	switch s {
	case "?", "<", "=", "+", "]", "_":
		return true
	}
	return false
}

// RootTokens splits an engine root into its compound parts.
//
//	RootTokens("all_+maa_raud]_tee_jaam?") // [all maa raud tee jaam]
//	RootTokens("edasta=tud")               // [edastatud]
//	RootTokens("_")                        // [_]
func RootTokens(root string) []string {
	if isMarker(root) {
		return []string{root}
	}
	return strings.Split(rootMarkers.Replace(root), "_")
}

// verbInfinitive is appended to verb lemmas.
const verbInfinitive = "ma"

// verbTag is the engine's part-of-speech tag for verbs.
const verbTag = "V"

// Lemma joins root tokens into a dictionary form. Verbs get the
// infinitive suffix, so "l<aul" (V) becomes "laulma".
func Lemma(tokens []string, partOfSpeech string) string {
	lemma := joinTokens(tokens)
	if partOfSpeech == verbTag {
		lemma += verbInfinitive
	}
	return lemma
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, "")
}
