package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/analyzer"
	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/journal"
	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/store"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	EngineOptions
	SettingsOptions
	Database string
	Text     bool
	Workers  int

	// IDGenerator overrides run id generation (for testing).
	IDGenerator journal.IDGenerator
}

// SentenceResult is the analysis of one input sentence.
type SentenceResult struct {
	Tokens []string             `json:"tokens"`
	RunID  string               `json:"run_id,omitempty"`
	Words  []morph.WordAnalysis `json:"words"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	return newAnalyzeCommand(&AnalyzeOptions{RootOptions: rootOpts})
}

func newAnalyzeCommand(opts *AnalyzeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [tokens...]",
		Short: "Analyze a tokenized sentence",
		Long: `Analyze tokens with a morphological engine.

Each argument is one token. With no arguments, sentences are read from
stdin, one per line, split on whitespace. With --text the arguments are
joined and split on whitespace too.

With --db every sentence is recorded as a run that can later be replayed,
shown and searched.

Exit codes:
  0 - All sentences analyzed
  1 - An analysis failed
  2 - Command error (no engine, unreadable lexicon, etc.)

Examples:
  morf analyze --lexicon ./et.cue ma tahaks laulda
  morf analyze --engine "vmetajson --json-lines" --db ./morf.db < sentences.txt
  morf analyze --lexicon ./et.cue --text "New York on suur" --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args, cmd)
		},
	}

	opts.EngineOptions.bind(cmd)
	opts.SettingsOptions.bind(cmd)
	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite database")
	cmd.Flags().BoolVar(&opts.Text, "text", false, "split arguments on whitespace")
	cmd.Flags().IntVar(&opts.Workers, "workers", analyzer.DefaultWorkers, "parallel engines when not recording")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, args []string, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := slog.Default()
	cfg := opts.Config

	opts.EngineOptions.resolve(cfg.Engine)
	settings := opts.SettingsOptions.settings(cmd, cfg.Analysis)
	if opts.Database == "" {
		opts.Database = cfg.Database
	}
	if !cmd.Flags().Changed("workers") && cfg.Analysis.Workers != nil {
		opts.Workers = *cfg.Analysis.Workers
	}

	sentences, err := readSentences(args, opts.Text, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	factory, err := opts.EngineOptions.factory(ctx, logger)
	if err != nil {
		return err
	}

	var results []SentenceResult
	if opts.Database != "" {
		results, err = analyzeJournaled(ctx, opts, factory, settings, sentences, logger)
	} else {
		results, err = analyzeBatch(ctx, opts, factory, settings, sentences, logger)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		_ = out.Error(analyzer.ErrorCode(err), err.Error(), nil)
		return ReportedExitError(ExitFailure, "analysis failed", err)
	}

	return out.Success(results, func(w io.Writer) {
		writeSentencesText(w, results)
	})
}

func analyzeBatch(ctx context.Context, opts *AnalyzeOptions, factory analyzer.GatewayFactory, settings analyzer.Settings, sentences [][]string, logger *slog.Logger) ([]SentenceResult, error) {
	words, err := analyzer.AnalyzeBatch(ctx, factory, sentences, analyzer.BatchOptions{
		Workers: opts.Workers,
		Options: append(settings.Options(), analyzer.WithLogger(logger)),
	})
	if err != nil {
		return nil, err
	}

	results := make([]SentenceResult, len(sentences))
	for i := range sentences {
		results[i] = SentenceResult{Tokens: sentences[i], Words: words[i]}
	}
	return results, nil
}

// analyzeJournaled records each sentence as a run. Runs are sequential so
// seq order matches input order.
func analyzeJournaled(ctx context.Context, opts *AnalyzeOptions, factory analyzer.GatewayFactory, settings analyzer.Settings, sentences [][]string, logger *slog.Logger) ([]SentenceResult, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	jopts := []journal.Option{journal.WithLogger(logger)}
	if opts.IDGenerator != nil {
		jopts = append(jopts, journal.WithIDGenerator(opts.IDGenerator))
	}
	j, err := journal.New(ctx, st, jopts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open journal", err)
	}

	gw, err := factory()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to start engine", err)
	}
	defer closeGateway(gw, logger)

	results := make([]SentenceResult, 0, len(sentences))
	for i, sentence := range sentences {
		run, err := j.Analyze(ctx, gw, settings, sentence)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i, err)
		}
		logger.Debug("run recorded", "run_id", run.ID, "seq", run.Seq)
		results = append(results, SentenceResult{Tokens: run.Tokens, RunID: run.ID, Words: run.Words})
	}
	return results, nil
}

func closeGateway(gw gateway.Gateway, logger *slog.Logger) {
	if c, ok := gw.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("engine close failed", "error", err)
		}
	}
}

// readSentences returns the args as one sentence, or one sentence per
// non-blank stdin line.
func readSentences(args []string, text bool, stdin io.Reader) ([][]string, error) {
	if len(args) > 0 {
		if text {
			return [][]string{strings.Fields(strings.Join(args, " "))}, nil
		}
		return [][]string{args}, nil
	}

	var sentences [][]string
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if tokens := strings.Fields(scanner.Text()); len(tokens) > 0 {
			sentences = append(sentences, tokens)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func writeSentencesText(w io.Writer, results []SentenceResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if r.RunID != "" {
			fmt.Fprintf(w, "# run %s\n", r.RunID)
		}
		writeWordsText(w, r.Words)
	}
}

func writeWordsText(w io.Writer, words []morph.WordAnalysis) {
	for _, word := range words {
		fmt.Fprintln(w, word.Text)
		if len(word.Analyses) == 0 {
			fmt.Fprintln(w, "    ####")
			continue
		}
		for _, a := range word.Analyses {
			fmt.Fprintf(w, "    %s+%s%s //_%s_ %s// %s\n",
				a.Root, a.Ending, clitic(a.Clitic), a.PartOfSpeech, a.Form, a.Lemma)
		}
	}
}

func clitic(c string) string {
	if c == "" {
		return ""
	}
	return "+" + c
}
