package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/morf/internal/gateway"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	EngineOptions
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an engine over the JSON lines protocol",
		Long: `Serve an engine on stdin/stdout using the JSON lines protocol that
--engine expects. Useful to run the table engine out of process:

  morf analyze --engine "morf serve --lexicon ./et.cue" ma tahaks laulda

Requests:  {"op":"configure","flags":[...]}  {"op":"submit","word":"w","ordinal":0}  {"op":"flush"}
Responses: {"ok":true}  {"error":"..."}  {"event":"analysis","candidates":[...]}
           {"event":"index","ordinal":0}  {"event":"end"}`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	opts.EngineOptions.bind(cmd)
	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	logger := slog.Default()
	opts.EngineOptions.resolve(opts.Config.Engine)

	factory, err := opts.EngineOptions.factory(cmd.Context(), logger)
	if err != nil {
		return err
	}
	gw, err := factory()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start engine", err)
	}
	defer closeGateway(gw, logger)

	logger.Debug("serving engine", "lexicon", opts.Lexicon, "command", opts.Command)
	if err := gateway.Serve(gw, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return WrapExitError(ExitFailure, "serve failed", err)
	}
	return nil
}
