// Package player drives a DFPlayer Mini over an abstract transmit function.
//
// A Player owns one receive state machine and an event handler. Incoming
// bytes are fed through ConsumeByte (or Write), and every valid frame is
// decoded and dispatched synchronously. Outbound commands build one frame
// each and hand it to the Transmitter.
//
// A Player has no internal locking. Callers must serialize ConsumeByte and
// command calls; internal/link does this for a serial port.
package player

import (
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/protocol"
	"go.uber.org/zap"
)

// Transmitter sends one encoded frame to the module
type Transmitter interface {
	Transmit(frame []byte) error
}

// TransmitFunc adapts a function to Transmitter
type TransmitFunc func(frame []byte) error

// Transmit calls f(frame)
func (f TransmitFunc) Transmit(frame []byte) error { return f(frame) }

// Option configures a Player
type Option func(*Player)

// WithDiagnostics installs a hook that sees every parse step that either
// completed a frame or discarded input. Frames are still dropped silently
// as far as the event handler is concerned.
func WithDiagnostics(fn func(protocol.ParseResult)) Option {
	return func(p *Player) {
		p.diag = fn
	}
}

// WrapTransmitter decorates the transmitter passed to New, e.g. to count
// outbound frames. It has no effect when New is given a nil transmitter.
func WrapTransmitter(wrap func(Transmitter) Transmitter) Option {
	return func(p *Player) {
		if p.tx != nil {
			p.tx = wrap(p.tx)
		}
	}
}

// Player is one driver instance bound to one module
type Player struct {
	parser  protocol.Parser
	handler protocol.EventHandler
	tx      Transmitter
	diag    func(protocol.ParseResult)
}

// New creates a Player. handler may be nil to ignore events, tx may be nil
// for receive-only use (outbound calls then fail with ErrNoTransmitter).
func New(handler protocol.EventHandler, tx Transmitter, opts ...Option) *Player {
	p := &Player{
		handler: handler,
		tx:      tx,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ConsumeByte advances the receive state machine by one byte and dispatches
// the event if a valid frame completed.
func (p *Player) ConsumeByte(c byte) {
	res := p.parser.Parse(c)

	if p.diag != nil && (res.Drop != protocol.DropNone || res.Frame != nil) {
		p.diag(res)
	}

	switch res.Drop {
	case protocol.DropNone, protocol.DropNoise:
	default:
		logging.Debug("Frame dropped",
			zap.Stringer("reason", res.Drop),
			zap.Uint16("expected", res.Expected),
			zap.Uint16("calculated", res.Calculated),
		)
	}

	if res.Frame == nil {
		return
	}

	b := res.Frame.Bytes()
	logging.LogFrame("received", protocol.CommandName(res.Frame.Command), b[:])
	protocol.Dispatch(p.handler, *res.Frame)
}

// Write feeds received bytes through ConsumeByte. It never fails, so a
// Player can be the destination of io.Copy.
func (p *Player) Write(data []byte) (int, error) {
	for _, c := range data {
		p.ConsumeByte(c)
	}
	return len(data), nil
}

// State returns the receive state machine position
func (p *Player) State() protocol.State {
	return p.parser.State()
}

// send builds one frame with feedback requested and transmits it
func (p *Player) send(command, param1, param2 byte) error {
	if p.tx == nil {
		return ErrNoTransmitter
	}

	frame := protocol.BuildFrame(command, param1, param2)
	logging.LogFrame("sent", protocol.CommandName(command), frame[:])

	if err := p.tx.Transmit(frame[:]); err != nil {
		return &TransmitError{Command: command, Err: err}
	}
	return nil
}

func (p *Player) send16(command byte, value uint16) error {
	return p.send(command, byte(value>>8), byte(value))
}
