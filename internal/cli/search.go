package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/query"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database string
	RunID    string
	Limit    int
	Fields   map[query.Field]*string
}

// searchFlags maps flag names to the fields they filter.
var searchFlags = []struct {
	name  string
	field query.Field
	usage string
}{
	{"root", query.FieldRoot, "analysis root"},
	{"lemma", query.FieldLemma, "lemma"},
	{"pos", query.FieldPartOfSpeech, "part of speech tag"},
	{"form", query.FieldForm, "grammatical form"},
	{"ending", query.FieldEnding, "ending"},
	{"clitic", query.FieldClitic, "clitic"},
	{"text", query.FieldText, "surface text of the word"},
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts, Fields: map[query.Field]*string{}}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find recorded analyses by field",
		Long: `Search analyses of successful runs. Every given field must match. A
value ending in '*' matches as a prefix.

Examples:
  morf search --db ./morf.db --lemma laulma
  morf search --db ./morf.db --pos V --form "ma*"
  morf search --db ./morf.db --run latest --text "New York"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "database with recorded runs")
	cmd.Flags().StringVar(&opts.RunID, "run", "", `restrict to one run id, or "latest"`)
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of hits (0 = no limit)")
	for _, f := range searchFlags {
		opts.Fields[f.field] = cmd.Flags().String(f.name, "", f.usage)
	}

	return cmd
}

// filter builds the predicate for the fields that were set.
func (o *SearchOptions) filter(cmd *cobra.Command) query.Predicate {
	var preds []query.Predicate
	for _, f := range searchFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		preds = append(preds, fieldPredicate(f.field, *o.Fields[f.field]))
	}
	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return query.And{Predicates: preds}
	}
}

func fieldPredicate(field query.Field, value string) query.Predicate {
	if prefix, ok := strings.CutSuffix(value, "*"); ok {
		return query.Prefix{Field: field, Value: prefix}
	}
	return query.Equals{Field: field, Value: value}
}

func runSearch(opts *SearchOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if opts.Database == "" {
		opts.Database = opts.Config.Database
	}
	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must not be negative")
	}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	runID := opts.RunID
	if runID == "latest" {
		run, err := st.LatestRun(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read latest run", err)
		}
		runID = run.ID
	}

	hits, err := st.Search(ctx, query.Search{
		Filter: opts.filter(cmd),
		RunID:  runID,
		Limit:  opts.Limit,
	})
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		return WrapExitError(ExitCommandError, "invalid search", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "search failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(hits, func(w io.Writer) {
		if len(hits) == 0 {
			fmt.Fprintln(w, "no matches")
			return
		}
		for _, h := range hits {
			a := h.Analysis
			fmt.Fprintf(w, "%s #%d  %s  %s+%s%s //_%s_ %s// %s\n",
				h.RunID, h.Position, h.Text,
				a.Root, a.Ending, clitic(a.Clitic), a.PartOfSpeech, a.Form, a.Lemma)
		}
	})
}
