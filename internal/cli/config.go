package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine kinds accepted in the config file.
const (
	EngineTable   = "table"
	EngineProcess = "process"
)

// Config is the optional YAML config file. Command-line flags override it.
//
//	engine:
//	  kind: table
//	  lexicon: ./et.cue
//	analysis:
//	  clean_root: true
//	  heuristics: true
//	database: ./morf.db
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Database string         `yaml:"database"`
}

// EngineConfig selects the engine.
type EngineConfig struct {
	Kind    string   `yaml:"kind"`
	Lexicon string   `yaml:"lexicon"`
	Command []string `yaml:"command"`
}

// AnalysisConfig holds analyzer settings. nil fields keep the defaults.
type AnalysisConfig struct {
	CleanRoot  *bool `yaml:"clean_root"`
	Heuristics *bool `yaml:"heuristics"`
	MaxEvents  *int  `yaml:"max_events"`
	Workers    *int  `yaml:"workers"`
}

// LoadConfig reads a config file, rejecting unknown fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Engine.Kind {
	case "":
		if c.Engine.Lexicon != "" && len(c.Engine.Command) > 0 {
			return fmt.Errorf("engine: lexicon and command are mutually exclusive")
		}
	case EngineTable:
		if c.Engine.Lexicon == "" {
			return fmt.Errorf("engine: kind table requires lexicon")
		}
	case EngineProcess:
		if len(c.Engine.Command) == 0 {
			return fmt.Errorf("engine: kind process requires command")
		}
	default:
		return fmt.Errorf("engine: unknown kind %q", c.Engine.Kind)
	}
	if w := c.Analysis.Workers; w != nil && *w < 1 {
		return fmt.Errorf("analysis: workers must be >= 1")
	}
	return nil
}
