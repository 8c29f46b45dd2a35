package gateway

import (
	"sort"
)

// Flag is one engine option.
type Flag string

const (
	// FlagClearPriorState drops anything left over from a previous sentence.
	FlagClearPriorState Flag = "clear-prior-state"
	// FlagCompoundRecognition lets the engine read several tokens as one unit.
	FlagCompoundRecognition Flag = "enable-compound-recognition"
	// FlagAbbreviationExpansion enables analysis of abbreviations.
	FlagAbbreviationExpansion Flag = "enable-abbreviation-expansion"
	// FlagMaximumDepth reports every candidate instead of the first one.
	FlagMaximumDepth Flag = "use-maximum-depth-analysis"
	// FlagGuessUnknownWords lets the engine guess analyses for unknown words.
	FlagGuessUnknownWords Flag = "guess-unknown-words"
)

var knownFlags = map[Flag]bool{
	FlagClearPriorState:       true,
	FlagCompoundRecognition:   true,
	FlagAbbreviationExpansion: true,
	FlagMaximumDepth:          true,
	FlagGuessUnknownWords:     true,
}

// Known reports whether f is a recognized engine option.
func (f Flag) Known() bool {
	return knownFlags[f]
}

// KnownFlags returns every recognized flag in sorted order.
func KnownFlags() Flags {
	flags := make([]Flag, 0, len(knownFlags))
	for f := range knownFlags {
		flags = append(flags, f)
	}
	return NewFlags(flags...)
}

// Flags is a sorted, duplicate-free flag set.
type Flags []Flag

// NewFlags builds a flag set. Input order and duplicates do not matter.
func NewFlags(flags ...Flag) Flags {
	set := make(Flags, 0, len(flags))
	seen := make(map[Flag]bool, len(flags))
	for _, f := range flags {
		if seen[f] {
			continue
		}
		seen[f] = true
		set = append(set, f)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// ParseFlags converts wire names into a flag set.
func ParseFlags(names []string) Flags {
	flags := make([]Flag, len(names))
	for i, n := range names {
		flags[i] = Flag(n)
	}
	return NewFlags(flags...)
}

// Has reports whether f is in the set.
func (fs Flags) Has(f Flag) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

// Unknown returns the unrecognized flags in the set.
func (fs Flags) Unknown() Flags {
	var unknown Flags
	for _, f := range fs {
		if !f.Known() {
			unknown = append(unknown, f)
		}
	}
	return unknown
}

// Strings returns the flag names.
func (fs Flags) Strings() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}

// Validate returns a ConfigurationError if the set holds unknown flags.
func (fs Flags) Validate() error {
	if unknown := fs.Unknown(); len(unknown) > 0 {
		return &ConfigurationError{Flags: fs, Unknown: unknown}
	}
	return nil
}
