package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dialogo/internal/config"
	"dialogo/internal/script"
)

// app carries state shared by the subcommands.
type app struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var scriptPath string

	root := &cobra.Command{
		Use:   "dialogo",
		Short: "Modal dialog state engine with a terminal renderer",
		Long: `dialogo - a modal dialog controller with view history.

Without a subcommand it starts the terminal demo, same as "dialogo run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), scriptPath)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/dialogo/config.toml)")
	addScriptFlag(root.Flags(), &scriptPath)

	root.AddCommand(newRunCmd(a), newReplayCmd(a))
	return root
}

// readScript parses the script at path, or stdin when path is "-".
func readScript(path string, stdin io.Reader) ([]script.Step, error) {
	if path == "-" {
		return script.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	steps, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// addScriptFlag registers --script on commands that start the UI.
func addScriptFlag(fs *pflag.FlagSet, p *string) {
	fs.StringVarP(p, "script", "s", "", "script to play before the UI starts ('-' for stdin)")
}
