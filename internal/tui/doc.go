// Package tui implements the interactive DFPlayer controller using Bubble Tea.
//
// The screen has three parts: a status panel built from the events the
// module reports, a scrolling event log, and a footer with key help. Single
// keys map to the common commands; ":" opens a prompt that accepts any
// command from the player command table, e.g. ": track 12".
//
// # Components
//
//   - bubbles/viewport: scrolling event log
//   - bubbles/textinput: command prompt with command-name suggestions
//   - bubbles/spinner: shown while commands are in flight
//   - bubbles/help + bubbles/key: context-aware key help
//
// # Wiring
//
// Events reach the model through a tea.Program, never by mutating it:
//
//	model := tui.NewModel(l, l.Name())
//	prog := tea.NewProgram(model, tea.WithAltScreen())
//	l.Attach(tui.Forward(prog), player.WithDiagnostics(tui.ForwardDrops(prog)))
//	go l.Run(ctx)
//	_, err := prog.Run()
//
// Commands run in tea.Cmd goroutines through the Controller, which
// serializes access to the player. Module state the device does not report
// on its own (play/pause, volume steps) is updated when the command is
// accepted and corrected by the next query response.
package tui
