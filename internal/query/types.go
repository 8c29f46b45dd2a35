package query

// Field names a searchable attribute of a stored analysis.
type Field string

const (
	FieldRoot         Field = "root"
	FieldLemma        Field = "lemma"
	FieldPartOfSpeech Field = "part_of_speech"
	FieldForm         Field = "form"
	FieldEnding       Field = "ending"
	FieldClitic       Field = "clitic"
	FieldText         Field = "text"
)

// columns maps fields to their qualified SQL columns.
var columns = map[Field]string{
	FieldRoot:         "a.root",
	FieldLemma:        "a.lemma",
	FieldPartOfSpeech: "a.part_of_speech",
	FieldForm:         "a.form",
	FieldEnding:       "a.ending",
	FieldClitic:       "a.clitic",
	FieldText:         "w.text",
}

// Predicate is a filter condition.
//
// This is a sealed interface - only Equals, Prefix and And implement it.
type Predicate interface {
	predicateNode()
}

// Equals matches rows whose field equals Value exactly.
type Equals struct {
	Field Field
	Value string
}

func (Equals) predicateNode() {}

// Prefix matches rows whose field starts with Value (case-sensitive).
type Prefix struct {
	Field Field
	Value string
}

func (Prefix) predicateNode() {}

// And matches rows satisfying every predicate.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Search is a complete query over the analyses table.
type Search struct {
	// Filter restricts results. nil matches every analysis.
	Filter Predicate
	// RunID restricts results to one run when non-empty.
	RunID string
	// Limit caps the number of rows. 0 means no limit.
	Limit int
}
