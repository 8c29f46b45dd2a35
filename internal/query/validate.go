package query

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a filter.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid filter: " + strings.Join(e.Problems, "; ")
}

// Validate checks that every field is known and every And is non-empty.
// Validate is a pure function with no side effects.
func Validate(p Predicate) error {
	v := &validator{}
	v.predicate(p)
	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) predicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
		v.addf("nil predicate")
	case Equals:
		v.field(pred.Field)
	case *Equals:
		v.field(pred.Field)
	case Prefix:
		v.field(pred.Field)
		if pred.Value == "" {
			v.addf("empty prefix for %q", pred.Field)
		}
	case *Prefix:
		v.predicate(*pred)
	case And:
		if len(pred.Predicates) == 0 {
			v.addf("empty And")
		}
		for _, sub := range pred.Predicates {
			v.predicate(sub)
		}
	case *And:
		v.predicate(*pred)
	default:
		v.addf("unsupported predicate %T", p)
	}
}

func (v *validator) field(f Field) {
	if _, ok := columns[f]; !ok {
		v.addf("unknown field %q", f)
	}
}
