// Package morph provides the value types shared by every morf package.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import morph; morph imports nothing internal.
//
// Key design constraints:
//   - Analysis is an immutable value once constructed (NewAnalysis)
//   - WordRecord identity is its position inside a WordList
//   - Event is a sealed sum type: IndexEvent | AnalysisBlockEvent
//   - Canonical JSON (sorted keys, NFC strings) is the only encoding used
//     for content-addressed hashes
package morph
