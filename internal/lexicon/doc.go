// Package lexicon compiles CUE lexicon files into the in-memory tables used
// by the table gateway.
//
// A lexicon lists per-word candidate analyses and multi-word phrases:
//
//	lexicon: {
//		language: "et"
//		words: {
//			maja: [{root: "maja", ending: "0", pos: "S", form: "sg n"}]
//		}
//		phrases: {
//			"kuni siiani": [{root: "kuni_siiani", ending: "0", pos: "D"}]
//		}
//	}
//
// Keys are NFC normalized and lowercased, so lookups are case-insensitive.
package lexicon
