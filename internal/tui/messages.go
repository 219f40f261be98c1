package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/dfplayer/internal/protocol"
)

// EventMsg carries an event received from the module
type EventMsg struct {
	Event protocol.Event
	At    time.Time
}

// DropMsg reports a frame the parser discarded
type DropMsg struct {
	Result protocol.ParseResult
}

// commandResultMsg reports the outcome of a command sent to the module
type commandResultMsg struct {
	name string
	args []string
	err  error
}

// refreshMsg asks the model to query the module state
type refreshMsg struct{}

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Forward returns an event handler that delivers events to s. Send blocks
// until the program reads the message, so events are never dropped.
func Forward(s Sender) protocol.EventHandler {
	return protocol.EventHandlerFunc(func(e protocol.Event) {
		s.Send(EventMsg{Event: e, At: time.Now()})
	})
}

// ForwardDrops returns a diagnostics hook that reports discarded frames to s.
// Noise between frames is not reported.
func ForwardDrops(s Sender) func(protocol.ParseResult) {
	return func(r protocol.ParseResult) {
		if r.Drop == protocol.DropNone || r.Drop == protocol.DropNoise {
			return
		}
		s.Send(DropMsg{Result: r})
	}
}
