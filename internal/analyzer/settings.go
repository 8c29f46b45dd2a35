package analyzer

// Settings is the serializable form of an Analyzer's options.
// The journal stores it with every run so a replay applies the same options.
type Settings struct {
	CleanRoot  bool `yaml:"clean_root"`
	Heuristics bool `yaml:"heuristics"`
	MaxEvents  int  `yaml:"max_events"`
}

// DefaultSettings matches the defaults of New.
func DefaultSettings() Settings {
	return Settings{CleanRoot: true, Heuristics: true}
}

// Options converts s to analyzer options.
func (s Settings) Options() []Option {
	return []Option{
		WithCleanRoot(s.CleanRoot),
		WithHeuristics(s.Heuristics),
		WithMaxEvents(s.MaxEvents),
	}
}

// Settings returns the analyzer's current options.
func (a *Analyzer) Settings() Settings {
	return Settings{
		CleanRoot:  a.cleanRoot,
		Heuristics: a.heuristics,
		MaxEvents:  a.maxEvents,
	}
}
