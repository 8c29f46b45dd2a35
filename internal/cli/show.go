package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/gateway"
	"github.com/roach88/morf/internal/morph"
	"github.com/roach88/morf/internal/store"
)

// RunView is the JSON form of a recorded run. Events use the engine wire
// format.
type RunView struct {
	ID           string               `json:"id"`
	Seq          int64                `json:"seq"`
	Tokens       []string             `json:"tokens"`
	SentenceHash string               `json:"sentence_hash"`
	Flags        []string             `json:"flags"`
	CleanRoot    bool                 `json:"clean_root"`
	Heuristics   bool                 `json:"heuristics"`
	MaxEvents    int                  `json:"max_events,omitempty"`
	Events       []json.RawMessage    `json:"events"`
	Outcome      string               `json:"outcome"`
	ErrorMessage string               `json:"error,omitempty"`
	ResultHash   string               `json:"result_hash,omitempty"`
	Words        []morph.WordAnalysis `json:"words"`
}

func newRunView(run *store.Run) (RunView, error) {
	events := make([]json.RawMessage, 0, len(run.Events))
	for _, ev := range run.Events {
		data, err := gateway.MarshalEvent(ev)
		if err != nil {
			return RunView{}, err
		}
		events = append(events, data)
	}
	return RunView{
		ID:           run.ID,
		Seq:          run.Seq,
		Tokens:       run.Tokens,
		SentenceHash: run.SentenceHash,
		Flags:        run.Flags,
		CleanRoot:    run.CleanRoot,
		Heuristics:   run.Heuristics,
		MaxEvents:    run.MaxEvents,
		Events:       events,
		Outcome:      run.Outcome,
		ErrorMessage: run.ErrorMessage,
		ResultHash:   run.ResultHash,
		Words:        run.Words,
	}, nil
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List recorded runs or show one in full",
		Long: `Without --run, list every recorded run in seq order. With --run, print
the run's tokens, flags, outcome and analyses. "--run latest" selects the
most recent run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "database with recorded runs")
	cmd.Flags().StringVar(&opts.RunID, "run", "", `run id, or "latest"`)

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if opts.Database == "" {
		opts.Database = opts.Config.Database
	}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.RunID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		return out.Success(runs, func(w io.Writer) {
			writeRunListText(w, runs)
		})
	}

	var run *store.Run
	if opts.RunID == "latest" {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.ReadRun(ctx, opts.RunID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("run %s not found", opts.RunID), err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	view, err := newRunView(run)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to encode run", err)
	}
	return out.Success(view, func(w io.Writer) {
		writeRunText(w, run)
	})
}

func writeRunListText(w io.Writer, runs []store.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%4d  %s  %-24s %d words  %s\n",
			r.Seq, r.ID, r.Outcome, r.WordCount, r.Sentence)
	}
}

func writeRunText(w io.Writer, run *store.Run) {
	fmt.Fprintf(w, "run:      %s\n", run.ID)
	fmt.Fprintf(w, "seq:      %d\n", run.Seq)
	fmt.Fprintf(w, "sentence: %s\n", strings.Join(run.Tokens, " "))
	fmt.Fprintf(w, "flags:    %s\n", strings.Join(run.Flags, ","))
	fmt.Fprintf(w, "events:   %d\n", len(run.Events))
	if !run.OK() {
		fmt.Fprintf(w, "outcome:  %s: %s\n", run.Outcome, run.ErrorMessage)
		return
	}
	fmt.Fprintf(w, "outcome:  %s %s\n", run.Outcome, shortHash(run.ResultHash))
	writeWordsText(w, run.Words)
}
