package morph

import "strings"

// formSeparators are stripped from the end of an engine form field.
const formSeparators = ", "

// TrimForm removes trailing commas and spaces from an engine form string,
// e.g. "sg n, " becomes "sg n". TrimForm(TrimForm(s)) == TrimForm(s).
func TrimForm(s string) string {
	return strings.TrimRight(s, formSeparators)
}
