package main

import (
	"context"
	"io"
	"log"

	"github.com/spf13/cobra"

	"dialogo/internal/config"
	"dialogo/internal/script"
	"dialogo/internal/trace"
	"dialogo/pkg/modal"
)

type replayOptions struct {
	verbose bool
	events  bool
}

func newReplayCmd(a *app) *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay <file|->",
		Short: "Run a script headless and print every published snapshot as JSON",
		Long: `Runs each line of the script against a fresh controller and writes one
JSON object per published snapshot to stdout.

Script lines are "<op> [content]" where op is open, navigate, back, close,
hide or show. Content is decoded as JSON when it parses, otherwise it is
taken as text. Blank lines and lines starting with # are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := readScript(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return replay(cmd.Context(), a.cfg, steps, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each operation to stderr")
	cmd.Flags().BoolVar(&opts.events, "events", false, "print full events (seq, timestamp, state) instead of bare snapshots")
	return cmd
}

// replay applies steps to a controller holding raw content. Every step
// publishes exactly one snapshot, so all of them are kept.
func replay(ctx context.Context, cfg config.Config, steps []script.Step, out, errOut io.Writer, opts replayOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := trace.NewProvider(ctx, trace.ProviderConfig{
		Endpoint:    cfg.Trace.Endpoint,
		ServiceName: cfg.Trace.ServiceName,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		return err
	}
	defer provider.Shutdown(context.Background())

	modalOpts := []modal.Option{modal.WithTracer(provider.Tracer())}
	if opts.verbose {
		modalOpts = append(modalOpts, modal.WithLogger(log.New(errOut, "", log.LstdFlags)))
	}
	ctrl := modal.New[any](modalOpts...)

	capacity := len(steps)
	if capacity == 0 {
		capacity = 1
	}
	rec := trace.NewRecorder[any](capacity)
	defer rec.Attach(ctrl)()

	script.Run(ctrl, steps, script.Identity)
	return rec.WriteJSONLines(out, !opts.events)
}
