package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/analyzer"
	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/lexicon"
)

// EngineOptions selects the engine for commands that analyze.
type EngineOptions struct {
	Lexicon string // CUE lexicon served by the table engine
	Command string // external engine command line, split on whitespace
}

func (o *EngineOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Lexicon, "lexicon", "", "CUE lexicon for the built-in table engine")
	cmd.Flags().StringVar(&o.Command, "engine", "", "external engine command speaking the JSON lines protocol")
}

// resolve fills unset options from the config file.
func (o *EngineOptions) resolve(cfg EngineConfig) {
	if o.Lexicon != "" || o.Command != "" {
		return
	}
	switch {
	case cfg.Lexicon != "":
		o.Lexicon = cfg.Lexicon
	case len(cfg.Command) > 0:
		o.Command = strings.Join(cfg.Command, " ")
	}
}

// factory returns a constructor for independent gateways over the selected
// engine. The lexicon is compiled once and shared.
func (o *EngineOptions) factory(ctx context.Context, logger *slog.Logger) (analyzer.GatewayFactory, error) {
	switch {
	case o.Lexicon != "" && o.Command != "":
		return nil, NewExitError(ExitCommandError, "--lexicon and --engine are mutually exclusive")
	case o.Lexicon != "":
		lex, err := lexicon.Load(o.Lexicon)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load lexicon", err)
		}
		logger.Debug("lexicon loaded",
			"path", o.Lexicon,
			"words", len(lex.Words()),
			"phrases", len(lex.Phrases()))
		return func() (gateway.Gateway, error) {
			return gateway.NewTable(lex), nil
		}, nil
	case o.Command != "":
		argv := strings.Fields(o.Command)
		return func() (gateway.Gateway, error) {
			p, err := gateway.Start(ctx, argv, gateway.WithLogger(logger))
			if err != nil {
				return nil, fmt.Errorf("start engine: %w", err)
			}
			return p, nil
		}, nil
	default:
		return nil, NewExitError(ExitCommandError, "no engine: use --lexicon, --engine or a config file")
	}
}

// SettingsOptions holds the analyzer flags shared by analyze.
type SettingsOptions struct {
	NoCleanRoot  bool
	NoHeuristics bool
	MaxEvents    int
}

func (o *SettingsOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.NoCleanRoot, "no-clean-root", false, "keep the engine's annotated roots")
	cmd.Flags().BoolVar(&o.NoHeuristics, "no-heuristics", false, "do not let the engine guess unknown words")
	cmd.Flags().IntVar(&o.MaxEvents, "max-events", 0, "event budget per sentence (0 = 4n+16)")
}

// settings merges the config file with flags; changed flags win.
func (o *SettingsOptions) settings(cmd *cobra.Command, cfg AnalysisConfig) analyzer.Settings {
	s := analyzer.DefaultSettings()
	if cfg.CleanRoot != nil {
		s.CleanRoot = *cfg.CleanRoot
	}
	if cfg.Heuristics != nil {
		s.Heuristics = *cfg.Heuristics
	}
	if cfg.MaxEvents != nil {
		s.MaxEvents = *cfg.MaxEvents
	}

	if cmd.Flags().Changed("no-clean-root") {
		s.CleanRoot = !o.NoCleanRoot
	}
	if cmd.Flags().Changed("no-heuristics") {
		s.Heuristics = !o.NoHeuristics
	}
	if cmd.Flags().Changed("max-events") {
		s.MaxEvents = o.MaxEvents
	}
	return s
}
