// Package ui provides terminal output components for the dfplayer CLI.
//
// These components follow a "print and move on" pattern: they render
// styled output with Lipgloss but never take over the terminal. The
// interactive controller lives in the tui package.
//
// # Components
//
//   - Header: command banner showing the operation and its parameters
//   - Printer: one line per event, frame or dropped frame received from the module
//   - Result: success/failure boxes for one-shot commands
//   - Confirm: typed confirmation before destructive operations
//
// # Example
//
//	fmt.Println(ui.NewHeader("Monitor", "dfplayer monitor", map[string]string{
//	    "Port": "/dev/ttyUSB0",
//	}))
//
//	printer := ui.NewPrinter(os.Stdout)
//	l.Attach(printer, player.WithDiagnostics(printer.PrintDrop))
//
// # Color
//
// Printer styles its output only when stdout is a terminal, so monitor
// output redirected to a file contains plain text.
//
// # Logging Integration
//
// This package expects logging to be controlled via the DFPLAYER_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set DFPLAYER_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output on stderr.
package ui
