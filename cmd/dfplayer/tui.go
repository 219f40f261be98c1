package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/tui"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive controller",
	Long: `Launch a full-screen controller for the module.

The status panel shows what the module has reported: playback state,
volume, equalizer, mode, devices online and the last finished track.
Single keys drive playback; ':' opens a prompt for any command.

Use --log-file together with --log-level so log output does not disturb
the screen.`,
	Example: `  dfplayer tui
  dfplayer tui --port kitchen`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	name, err := resolvePort()
	if err != nil {
		return err
	}
	l, err := openLink(name)
	if err != nil {
		return err
	}
	defer l.Close()

	prog := tea.NewProgram(tui.NewModel(l, registry.DisplayName(name)), tea.WithAltScreen())
	l.Attach(tui.Forward(prog), player.WithDiagnostics(tui.ForwardDrops(prog)))

	if err := applyDefaultVolume(l); err != nil {
		logging.Warn("Failed to apply default volume", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		err := l.Run(ctx)
		runErr <- err
		// The port went away; leave the screen
		prog.Quit()
	}()

	_, err = prog.Run()
	cancel()
	return errors.Join(err, <-runErr)
}
