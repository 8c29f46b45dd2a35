// Package query defines the search filter over stored analyses and compiles
// it to parameterized SQLite.
//
// Filters are built from a sealed predicate set:
//
//	query.And{Predicates: []query.Predicate{
//		query.Equals{Field: query.FieldPartOfSpeech, Value: "V"},
//		query.Prefix{Field: query.FieldLemma, Value: "laul"},
//	}}
//
// Every compiled query orders by run seq, word position and analysis index,
// so results are identical across runs of the same store. Values are always
// bound as parameters.
package query
