package player

import (
	"errors"
	"fmt"

	"github.com/muurk/dfplayer/internal/protocol"
)

var (
	// ErrNoTransmitter is returned by every outbound call on a Player that
	// was created without a Transmitter
	ErrNoTransmitter = errors.New("no transmitter configured")

	// ErrVolumeOutOfRange is returned by SetVolume for values above MaxVolume
	ErrVolumeOutOfRange = fmt.Errorf("volume out of range (0-%d)", MaxVolume)

	// ErrUnsupportedDevice is returned by per-device queries for devices the
	// module cannot report on
	ErrUnsupportedDevice = errors.New("unsupported device (expected tf, udisk or flash)")

	// ErrUnknownCommand is returned by Execute for names not in Commands
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArguments is returned by Execute when arguments do not match the
	// command's usage
	ErrBadArguments = errors.New("bad arguments")
)

// TransmitError wraps a transport failure for one outbound frame
type TransmitError struct {
	Command byte
	Err     error
}

// Error implements the error interface
func (e *TransmitError) Error() string {
	return fmt.Sprintf("transmit %s (0x%02x): %v", protocol.CommandName(e.Command), e.Command, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransmitError) Unwrap() error {
	return e.Err
}
