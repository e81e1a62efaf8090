package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dialogo/internal/demo"
	"dialogo/internal/script"
	"dialogo/internal/trace"
	"dialogo/internal/ui"
	"dialogo/pkg/modal"
)

func newRunCmd(a *app) *cobra.Command {
	var scriptPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the terminal wizard demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), scriptPath)
		},
	}
	addScriptFlag(cmd.Flags(), &scriptPath)
	return cmd
}

// runTUI wires the controller, tracing and the renderer, then blocks until
// the program exits.
func (a *app) runTUI(ctx context.Context, scriptPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("run needs a terminal on stdout; use 'dialogo replay' for headless output")
	}
	cfg := a.cfg

	// The renderer owns the terminal; logs go to a file or nowhere.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "dialogo")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	provider, err := trace.NewProvider(ctx, trace.ProviderConfig{
		Endpoint:    cfg.Trace.Endpoint,
		ServiceName: cfg.Trace.ServiceName,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("dialogo: trace shutdown: %v", err)
		}
	}()

	ctrl := modal.New[ui.View](
		modal.WithLogger(log.Default()),
		modal.WithTracer(provider.Tracer()),
	)
	rec := trace.NewRecorder[ui.View](cfg.Trace.MaxEvents)
	defer rec.Attach(ctrl)()

	if scriptPath != "" {
		steps, err := readScript(scriptPath, os.Stdin)
		if err != nil {
			return err
		}
		script.Run(ctrl, steps, ui.ContentView)
	}

	host := ui.NewHost(ctrl, demo.NewPage(ctrl),
		ui.WithWidth(cfg.UI.Width),
		ui.WithEscape(cfg.UI.Escape),
		ui.WithBorderColor(cfg.UI.BorderColor),
	)
	defer host.Close()

	log.Printf("dialogo: controller %s started", ctrl.ID())
	p := tea.NewProgram(host, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Printf("dialogo: %d snapshots published", rec.Total())
	return nil
}
