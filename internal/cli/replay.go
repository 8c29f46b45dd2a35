package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// ReplayReport is the result of replaying one or more runs.
type ReplayReport struct {
	Runs     []ReplayRun `json:"runs"`
	Total    int         `json:"total"`
	Matched  int         `json:"matched"`
	Skipped  int         `json:"skipped"`
	AllMatch bool        `json:"all_match"`
}

// ReplayRun is one line of a replay report.
type ReplayRun struct {
	RunID           string `json:"run_id"`
	Match           bool   `json:"match"`
	Skipped         bool   `json:"skipped,omitempty"`
	OriginalOutcome string `json:"original_outcome"`
	ReplayOutcome   string `json:"replay_outcome,omitempty"`
	OriginalHash    string `json:"original_hash,omitempty"`
	ReplayHash      string `json:"replay_hash,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run recorded analyses and verify determinism",
		Long: `Replay recorded runs against their recorded engine events and check
that each reproduces the same outcome and result hash. No engine is needed.

Exit codes:
  0 - Every replayed run matched
  1 - At least one run diverged
  2 - Command error (database not found, unknown run, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "database with recorded runs")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay a single run (default: all runs)")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := slog.Default()
	if opts.Database == "" {
		opts.Database = opts.Config.Database
	}

	st, err := openExistingStore(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	j, err := journal.New(ctx, st, journal.WithLogger(logger))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}

	var ids []string
	if opts.RunID != "" {
		ids = []string{opts.RunID}
	} else {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		for _, r := range runs {
			ids = append(ids, r.ID)
		}
	}

	report := ReplayReport{Runs: make([]ReplayRun, 0, len(ids)), AllMatch: true}
	for _, id := range ids {
		res, err := j.ReplayByID(ctx, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay %s", id), err)
		}
		report.Runs = append(report.Runs, ReplayRun{
			RunID:           res.RunID,
			Match:           res.Match,
			Skipped:         res.Skipped,
			OriginalOutcome: res.OriginalOutcome,
			ReplayOutcome:   res.ReplayOutcome,
			OriginalHash:    res.OriginalHash,
			ReplayHash:      res.ReplayHash,
		})
		report.Total++
		switch {
		case res.Skipped:
			report.Skipped++
		case res.Match:
			report.Matched++
		default:
			report.AllMatch = false
			logger.Warn("replay diverged",
				"run", res.RunID,
				"original_outcome", res.OriginalOutcome,
				"replay_outcome", res.ReplayOutcome)
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := out.Success(report, func(w io.Writer) {
		writeReplayText(w, report)
	}); err != nil {
		return err
	}
	if !report.AllMatch {
		return NewExitError(ExitFailure, "replay diverged")
	}
	return nil
}

func writeReplayText(w io.Writer, report ReplayReport) {
	for _, r := range report.Runs {
		switch {
		case r.Skipped:
			fmt.Fprintf(w, "- %s skipped (%s)\n", r.RunID, r.OriginalOutcome)
		case r.Match:
			fmt.Fprintf(w, "✓ %s %s\n", r.RunID, r.OriginalOutcome)
		default:
			fmt.Fprintf(w, "✗ %s %s -> %s\n", r.RunID, r.OriginalOutcome, r.ReplayOutcome)
			if r.OriginalHash != r.ReplayHash {
				fmt.Fprintf(w, "    hash %s -> %s\n", shortHash(r.OriginalHash), shortHash(r.ReplayHash))
			}
		}
	}
	fmt.Fprintf(w, "\n%d runs: %d matched, %d skipped, %d diverged\n",
		report.Total, report.Matched, report.Skipped, report.Total-report.Matched-report.Skipped)
}

func shortHash(h string) string {
	if h == "" {
		return "-"
	}
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
