package query

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Columns is the select list of every compiled search, in scan order.
var Columns = []string{
	"r.id",
	"r.seq",
	"w.position",
	"w.text",
	"a.idx",
	"a.root",
	"a.root_tokens",
	"a.ending",
	"a.clitic",
	"a.part_of_speech",
	"a.form",
	"a.lemma",
}

// orderBy is mandatory on every search.
const orderBy = "r.seq ASC, w.position ASC, a.idx ASC"

// Compile converts a search to parameterized SQL.
func Compile(s Search) (string, []any, error) {
	var where []string
	var params []any

	if s.Filter != nil {
		if err := Validate(s.Filter); err != nil {
			return "", nil, err
		}
		sql, p, err := compilePredicate(s.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		where = append(where, sql)
		params = append(params, p...)
	}

	if s.RunID != "" {
		where = append(where, "r.id = ?")
		params = append(params, s.RunID)
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(Columns, ", "))
	b.WriteString(" FROM analyses a")
	b.WriteString(" JOIN words w ON w.run_id = a.run_id AND w.position = a.position")
	b.WriteString(" JOIN runs r ON r.id = a.run_id")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy)
	if s.Limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, s.Limit)
	}

	return b.String(), params, nil
}

func compilePredicate(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case Equals:
		return columns[pred.Field] + " = ?", []any{pred.Value}, nil
	case *Equals:
		return compilePredicate(*pred)
	case Prefix:
		// substr counts characters, matching utf8.RuneCountInString.
		col := columns[pred.Field]
		return fmt.Sprintf("substr(%s, 1, ?) = ?", col),
			[]any{utf8.RuneCountInString(pred.Value), pred.Value}, nil
	case *Prefix:
		return compilePredicate(*pred)
	case And:
		parts := make([]string, 0, len(pred.Predicates))
		var params []any
		for _, sub := range pred.Predicates {
			sql, p, err := compilePredicate(sub)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, sql)
			params = append(params, p...)
		}
		return "(" + strings.Join(parts, " AND ") + ")", params, nil
	case *And:
		return compilePredicate(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}
