package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/lexicon"
)

// ValidateResult summarizes a compiled lexicon.
type ValidateResult struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Words    int    `json:"words"`
	Phrases  int    `json:"phrases"`
	MaxWords int    `json:"max_phrase_words"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <lexicon>",
		Short: "Compile a CUE lexicon and report problems",
		Long: `Compile a CUE lexicon file or directory and report its size, or the
first problem found with its source position.

Exit codes:
  0 - Lexicon is valid
  1 - Lexicon has errors
  2 - Command error (path not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "lexicon not found", err)
	}

	lex, err := lexicon.Load(path)
	if err != nil {
		var details any
		var ce *lexicon.CompileError
		if errors.As(err, &ce) {
			details = map[string]string{"field": ce.Field}
		}
		_ = out.Error("LEXICON_INVALID", err.Error(), details)
		return ReportedExitError(ExitFailure, "invalid lexicon", err)
	}

	result := ValidateResult{
		Path:     path,
		Language: lex.Language,
		Words:    len(lex.Words()),
		Phrases:  len(lex.Phrases()),
		MaxWords: lex.MaxPhraseLen(),
	}
	return out.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s: %d words, %d phrases", path, result.Words, result.Phrases)
		if result.Language != "" {
			fmt.Fprintf(w, " (%s)", result.Language)
		}
		fmt.Fprintln(w)
	})
}
