package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/morf/internal/morph"
)

// CompileError represents a lexicon error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Load reads a lexicon from a .cue file or from a directory of .cue files.
func Load(path string) (*Lexicon, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	ctx := cuecontext.New()

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		v := ctx.CompileBytes(data, cue.Filename(path))
		return Compile(v.LookupPath(cue.ParsePath("lexicon")))
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: path})
	if len(instances) == 0 {
		return nil, fmt.Errorf("load lexicon: no CUE instances in %s", filepath.Clean(path))
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("load lexicon: %w", formatCUEError(inst.Err))
	}
	v := ctx.BuildInstance(inst)
	return Compile(v.LookupPath(cue.ParsePath("lexicon")))
}

// CompileString compiles CUE source holding a top-level lexicon struct.
func CompileString(src string) (*Lexicon, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	return Compile(v.LookupPath(cue.ParsePath("lexicon")))
}

// Compile parses a CUE value (the lexicon struct itself) into a Lexicon.
func Compile(v cue.Value) (*Lexicon, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "lexicon", Message: "lexicon is required"}
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	language := ""
	if langVal := v.LookupPath(cue.ParsePath("language")); langVal.Exists() {
		s, err := langVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		language = s
	}

	words, err := parseTable(v, "words", 1)
	if err != nil {
		return nil, err
	}
	phrases, err := parseTable(v, "phrases", 2)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 && len(phrases) == 0 {
		return nil, &CompileError{
			Field:   "words",
			Message: "at least one word or phrase is required",
			Pos:     v.Pos(),
		}
	}

	return New(language, words, phrases)
}

// parseTable reads a struct of form -> candidate list. minWords is the
// required number of whitespace-separated words in each key.
func parseTable(v cue.Value, field string, minWords int) (map[string][]morph.RawAnalysis, error) {
	table := make(map[string][]morph.RawAnalysis)

	tableVal := v.LookupPath(cue.ParsePath(field))
	if !tableVal.Exists() {
		return table, nil
	}

	iter, err := tableVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		form := iter.Selector().Unquoted()
		n := len(strings.Fields(form))
		switch {
		case minWords == 1 && n != 1:
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("%q must be a single word", form),
				Pos:     iter.Value().Pos(),
			}
		case n < minWords:
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("%q needs at least %d words", form, minWords),
				Pos:     iter.Value().Pos(),
			}
		}

		candidates, err := parseCandidates(iter.Value(), field+"."+form)
		if err != nil {
			return nil, err
		}
		table[form] = candidates
	}

	return table, nil
}

func parseCandidates(v cue.Value, field string) ([]morph.RawAnalysis, error) {
	list, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: "must be a list of candidates",
			Pos:     v.Pos(),
		}
	}

	candidates := []morph.RawAnalysis{}
	for list.Next() {
		c, err := parseCandidate(list.Value(), field)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func parseCandidate(v cue.Value, field string) (morph.RawAnalysis, error) {
	var raw morph.RawAnalysis

	fields := []struct {
		name     string
		dst      *string
		required bool
	}{
		{"root", &raw.Root, true},
		{"ending", &raw.Ending, false},
		{"clitic", &raw.Clitic, false},
		{"pos", &raw.PartOfSpeech, true},
		{"form", &raw.Form, false},
	}

	for _, f := range fields {
		fv := v.LookupPath(cue.ParsePath(f.name))
		if !fv.Exists() {
			if f.required {
				return raw, &CompileError{
					Field:   field + "." + f.name,
					Message: f.name + " is required",
					Pos:     v.Pos(),
				}
			}
			continue
		}
		s, err := fv.String()
		if err != nil {
			return raw, formatCUEError(err)
		}
		if f.required && s == "" {
			return raw, &CompileError{
				Field:   field + "." + f.name,
				Message: f.name + " must not be empty",
				Pos:     fv.Pos(),
			}
		}
		*f.dst = s
	}

	return raw, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
