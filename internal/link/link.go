// Package link connects a Player to a serial port.
//
// A Link owns the port and the Player bound to it. Run feeds received bytes
// to the Player; Do runs commands against it. Both take the same lock, so
// the Player never sees concurrent calls.
//
// Event handlers run on the Run goroutine while that lock is held. They must
// not call Do; hand the event off to another goroutine instead.
package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

const (
	// DefaultBaudRate is the module's fixed line speed
	DefaultBaudRate = 9600

	// readTimeout bounds each read so Run notices cancellation
	readTimeout = 100 * time.Millisecond

	readBufSize = 64
)

// ErrClosed is returned by Transmit and Do after Close
var ErrClosed = errors.New("link closed")

// Port is the subset of serial.Port a Link needs
type Port interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

// Config selects the serial port to open
type Config struct {
	Name     string // e.g. /dev/ttyUSB0 or COM3
	BaudRate int    // Defaults to DefaultBaudRate
}

// Link is an open serial connection to one module
type Link struct {
	name string
	port Port

	mu     sync.Mutex // serializes Player access
	player *player.Player

	writeMu sync.Mutex
	closed  bool
}

// Open opens a serial port at 8N1 and wraps it in a Link
func Open(cfg Config) (*Link, error) {
	if cfg.Name == "" {
		return nil, errors.New("serial port is required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Name, mode)
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", cfg.Name, err)
	}

	logging.Info("Serial port opened",
		zap.String("port", cfg.Name),
		zap.Int("baud", cfg.BaudRate),
	)
	return New(port, cfg.Name), nil
}

// New wraps an already open port
func New(port Port, name string) *Link {
	return &Link{
		name: name,
		port: port,
	}
}

// ListPorts returns the serial ports present on the system
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}
	return ports, nil
}

// Name returns the port name the link was opened with
func (l *Link) Name() string {
	return l.name
}

// Attach binds a new Player to the link, transmitting through it. It
// replaces any previously attached Player.
func (l *Link) Attach(handler protocol.EventHandler, opts ...player.Option) *player.Player {
	p := player.New(handler, l, opts...)
	l.mu.Lock()
	l.player = p
	l.mu.Unlock()
	return p
}

// Transmit writes one frame to the port
func (l *Link) Transmit(frame []byte) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if l.closed {
		return ErrClosed
	}
	n, err := l.port.Write(frame)
	if err != nil {
		return fmt.Errorf("writing to %s: %w", l.name, err)
	}
	if n != len(frame) {
		return fmt.Errorf("writing to %s: %w (%d of %d bytes)", l.name, io.ErrShortWrite, n, len(frame))
	}
	return nil
}

// Do runs fn with exclusive access to the attached Player
func (l *Link) Do(fn func(p *player.Player) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.player == nil {
		return errors.New("no player attached")
	}
	return fn(l.player)
}

// Run reads from the port until ctx is cancelled or the port is closed,
// feeding every byte to the attached Player. It returns nil on a clean
// shutdown.
func (l *Link) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.player == nil {
		l.player = player.New(nil, l)
	}
	l.mu.Unlock()

	if err := l.port.SetReadTimeout(readTimeout); err != nil {
		return fmt.Errorf("setting read timeout on %s: %w", l.name, err)
	}

	buf := make([]byte, readBufSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := l.port.Read(buf)
		if err != nil {
			if l.isClosed() || isPortClosed(err) {
				logging.Info("Serial port closed", zap.String("port", l.name))
				return nil
			}
			return fmt.Errorf("reading from %s: %w", l.name, err)
		}
		if n == 0 {
			// Read timeout
			continue
		}

		logging.LogRawBytes("Serial read", buf[:n])
		l.mu.Lock()
		_, _ = l.player.Write(buf[:n])
		l.mu.Unlock()
	}
}

// Close closes the port. A running Run returns shortly after.
func (l *Link) Close() error {
	l.writeMu.Lock()
	if l.closed {
		l.writeMu.Unlock()
		return nil
	}
	l.closed = true
	l.writeMu.Unlock()

	return l.port.Close()
}

func (l *Link) isClosed() bool {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.closed
}

func isPortClosed(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var portErr *serial.PortError
	return errors.As(err, &portErr) && portErr.Code() == serial.PortClosed
}
