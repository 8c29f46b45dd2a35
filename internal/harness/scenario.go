package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/morf/internal/analyzer"
	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/morph"
)

// Scenario defines one analysis contract test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Sentence is the token sequence to analyze.
	Sentence []string `yaml:"sentence"`

	// Lexicon is a CUE lexicon served by the table engine.
	// Mutually exclusive with Events.
	Lexicon string `yaml:"lexicon,omitempty"`

	// Events is the scripted engine stream.
	Events []EventStep `yaml:"events,omitempty"`

	// Engine injects engine failures into the scripted stream.
	Engine EngineBehavior `yaml:"engine,omitempty"`

	// Options are the analyzer settings. Defaults to analyzer.DefaultSettings.
	Options *analyzer.Settings `yaml:"options,omitempty"`

	// Assertions validate the recorded run.
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run id. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// EngineBehavior configures scripted engine failures.
type EngineBehavior struct {
	// RejectFlags makes Configure fail if any of these flags is requested.
	RejectFlags []string `yaml:"reject_flags,omitempty"`

	// FlushError makes Flush fail once the events are exhausted.
	FlushError string `yaml:"flush_error,omitempty"`
}

// EventStep is one scripted engine event: exactly one of analysis or index.
type EventStep struct {
	Event morph.Event
}

// UnmarshalYAML decodes {analysis: [...]} or {index: n}.
func (s *EventStep) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: event must have exactly one of analysis or index", node.Line)
	}
	key, value := node.Content[0], node.Content[1]

	switch key.Value {
	case morph.EventKindAnalysis:
		candidates := []morph.RawAnalysis{}
		if err := value.Decode(&candidates); err != nil {
			return fmt.Errorf("line %d: analysis: %w", value.Line, err)
		}
		s.Event = morph.AnalysisBlockEvent{Candidates: candidates}
	case morph.EventKindIndex:
		var ordinal int
		if err := value.Decode(&ordinal); err != nil {
			return fmt.Errorf("line %d: index: %w", value.Line, err)
		}
		s.Event = morph.IndexEvent{Ordinal: ordinal}
	default:
		return fmt.Errorf("line %d: unknown event %q", key.Line, key.Value)
	}
	return nil
}

// Assertion validates the recorded run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Code is the expected outcome (outcome).
	Code string `yaml:"code,omitempty"`

	// Count is the expected number of words, analyses or calls.
	Count *int `yaml:"count,omitempty"`

	// Position selects the word (word).
	Position int `yaml:"position,omitempty"`

	// Text is the expected word text (word).
	Text string `yaml:"text,omitempty"`

	// Lemmas are the expected lemmas of the word's analyses (word).
	Lemmas []string `yaml:"lemmas,omitempty"`

	// Flag is the flag to look for (flag).
	Flag string `yaml:"flag,omitempty"`

	// Absent inverts the flag check (flag).
	Absent bool `yaml:"absent,omitempty"`

	// Op is the engine operation to count (calls).
	Op string `yaml:"op,omitempty"`
}

// Assertion type constants.
const (
	AssertOutcome   = "outcome"
	AssertWordCount = "word_count"
	AssertWord      = "word"
	AssertFlag      = "flag"
	AssertCalls     = "calls"
	AssertReplay    = "replay"
)

// LoadScenario reads and parses a scenario YAML file. A relative lexicon
// path is resolved against the scenario file's directory.
//
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Lexicon != "" && !filepath.IsAbs(scenario.Lexicon) {
		scenario.Lexicon = filepath.Join(filepath.Dir(path), scenario.Lexicon)
	}
	if scenario.Lexicon != "" {
		if _, err := os.Stat(scenario.Lexicon); err != nil {
			return nil, fmt.Errorf("invalid scenario: lexicon not found: %s", scenario.Lexicon)
		}
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML without touching the filesystem.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Settings returns the analyzer settings the scenario runs with.
func (s *Scenario) Settings() analyzer.Settings {
	if s.Options == nil {
		return analyzer.DefaultSettings()
	}
	return *s.Options
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Lexicon != "" && len(s.Events) > 0 {
		return fmt.Errorf("lexicon and events are mutually exclusive")
	}
	if s.Lexicon != "" && (len(s.Engine.RejectFlags) > 0 || s.Engine.FlushError != "") {
		return fmt.Errorf("engine behavior requires scripted events")
	}
	if unknown := gateway.ParseFlags(s.Engine.RejectFlags).Unknown(); len(unknown) > 0 {
		return fmt.Errorf("engine.reject_flags: unknown flags %v", unknown.Strings())
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertOutcome:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: outcome requires code", index)
		}
	case AssertWordCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: word_count requires count", index)
		}
	case AssertWord:
		if a.Position < 0 {
			return fmt.Errorf("assertions[%d]: word position must be >= 0", index)
		}
	case AssertFlag:
		if !gateway.Flag(a.Flag).Known() {
			return fmt.Errorf("assertions[%d]: unknown flag %q", index, a.Flag)
		}
	case AssertCalls:
		switch gateway.Op(a.Op) {
		case gateway.OpConfigure, gateway.OpSubmit, gateway.OpFlush:
		default:
			return fmt.Errorf("assertions[%d]: unknown op %q", index, a.Op)
		}
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: calls requires count", index)
		}
	case AssertReplay:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
