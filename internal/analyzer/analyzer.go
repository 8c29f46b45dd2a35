package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/morph"
)

// Analyzer drives one gateway. Not safe for concurrent use.
type Analyzer struct {
	gw         gateway.Gateway
	cleanRoot  bool
	heuristics bool
	maxEvents  int // 0 means DefaultMaxEvents per sentence
	logger     *slog.Logger
}

// Option allows configuration of analyzer parameters.
type Option func(*Analyzer)

// WithCleanRoot selects between cleaned roots (default) and the engine's
// annotated roots in Analysis.Root.
func WithCleanRoot(clean bool) Option {
	return func(a *Analyzer) {
		a.cleanRoot = clean
	}
}

// WithHeuristics lets the engine guess analyses for unknown words.
// Default: true.
func WithHeuristics(enabled bool) Option {
	return func(a *Analyzer) {
		a.heuristics = enabled
	}
}

// WithMaxEvents caps the events consumed per call.
//
// Default: DefaultMaxEvents(len(sentence)). Values <= 0 restore the default.
func WithMaxEvents(n int) Option {
	return func(a *Analyzer) {
		a.maxEvents = n
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates an Analyzer over gw.
func New(gw gateway.Gateway, opts ...Option) *Analyzer {
	a := &Analyzer{
		gw:         gw,
		cleanRoot:  true,
		heuristics: true,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Flags returns the flag set applied at the start of every call.
func (a *Analyzer) Flags() gateway.Flags {
	flags := []gateway.Flag{
		gateway.FlagClearPriorState,
		gateway.FlagCompoundRecognition,
		gateway.FlagAbbreviationExpansion,
		gateway.FlagMaximumDepth,
	}
	if a.heuristics {
		flags = append(flags, gateway.FlagGuessUnknownWords)
	}
	return gateway.NewFlags(flags...)
}

// Analyze returns one WordAnalysis per word the engine recognized, in
// sentence order. Tokens the engine read as one unit come back as a single
// entry with space-joined text.
//
// An empty sentence returns an empty slice without touching the gateway.
// ctx is checked between flushes; a gateway call in progress is not
// interrupted.
func (a *Analyzer) Analyze(ctx context.Context, sentence []string) ([]morph.WordAnalysis, error) {
	if len(sentence) == 0 {
		return []morph.WordAnalysis{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	words, err := Feed(a.gw, a.Flags(), sentence)
	if err != nil {
		return nil, err
	}

	opts := []ReconcilerOption{ReconcileLogger(a.logger)}
	if !a.cleanRoot {
		opts = append(opts, KeepRawRoots())
	}
	rec := NewReconciler(words, opts...)

	limit := a.maxEvents
	if limit <= 0 {
		limit = DefaultMaxEvents(len(sentence))
	}
	budget := newEventBudget(limit)

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}

		ev, ok, err := a.gw.Flush()
		if err != nil {
			return nil, fmt.Errorf("flush: %w", err)
		}
		if !ok {
			break
		}

		if err := budget.Spend(); err != nil {
			return nil, fmt.Errorf("reconcile: %w", err)
		}
		if err := rec.Apply(ev); err != nil {
			a.logger.Debug("reconciliation failed",
				"event", morph.EventKind(ev),
				"events", budget.Used(),
				"error", err)
			return nil, fmt.Errorf("reconcile: %w", err)
		}
	}

	if n := rec.Unresolved(); n > 0 {
		a.logger.Warn("words left without analysis block",
			"count", n,
			"tokens", len(sentence))
	}

	result := Compile(rec.Words())
	a.logger.Debug("sentence analyzed",
		"tokens", len(sentence),
		"words", len(result),
		"merged", rec.Deleted(),
		"events", budget.Used())
	return result, nil
}

// AnalyzeText splits text on whitespace and analyzes the tokens.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) ([]morph.WordAnalysis, error) {
	return a.Analyze(ctx, strings.Fields(text))
}
