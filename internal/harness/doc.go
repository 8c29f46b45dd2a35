// Package harness runs analysis scenarios as executable contract tests.
//
// A scenario names a sentence, the engine that answers it and what the
// result must look like. The engine is either a scripted event stream or a
// CUE lexicon served by the table engine.
//
// # Scenario Format
//
//	name: new_york_merge
//	description: "Two tokens read as one unit merge into one word"
//	sentence: [New, York, on, suur]
//	events:
//	  - analysis:
//	      - {root: New_York, ending: "0", pos: H, form: "sg n"}
//	  - index: 0
//	  - index: 1
//	  - analysis: []
//	  - index: 2
//	engine:
//	  reject_flags: [use-maximum-depth-analysis]
//	  flush_error: "engine exited"
//	options:
//	  clean_root: true
//	  heuristics: true
//	assertions:
//	  - type: outcome
//	    code: ok
//	  - type: word_count
//	    count: 3
//	  - type: word
//	    position: 0
//	    text: "New York"
//	    lemmas: [NewYork]
//
// Use lexicon: path/to/lexicon.cue instead of events to run against the
// table engine. Paths are relative to the scenario file.
//
// # Assertion Types
//
//   - outcome: the run outcome ("ok" or an error code) equals code
//   - word_count: the result has exactly count words
//   - word: the word at position has text, and optionally the given lemmas
//     (one per analysis, in order) or count analyses
//   - flag: flag was applied (absent: true inverts the check)
//   - calls: the engine saw exactly count calls of op
//   - replay: replaying the recorded run reproduces its outcome and hash
//
// # Golden Files
//
// RunWithGolden compares the canonical run snapshot with
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
