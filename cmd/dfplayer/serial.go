package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/muurk/dfplayer/internal/link"
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/player"
)

// resolvePort returns the serial port to use, from --port or the config file
func resolvePort() (string, error) {
	name := portName
	if name == "" {
		name = registry.Serial.Port
	}
	if name == "" {
		return "", errors.New("no serial port given (use --port or set serial.port with 'dfplayer config set-port --default')")
	}
	return registry.ResolvePort(name), nil
}

// openLink opens the serial port and records it in the registry
func openLink(name string) (*link.Link, error) {
	l, err := link.Open(link.Config{Name: name, BaudRate: baudRate})
	if err != nil {
		return nil, err
	}

	registry.TouchPort(name)
	if err := persistRegistry(); err != nil {
		logging.Warn("Failed to record port in config", zap.Error(err))
	}
	return l, nil
}

// persistRegistry saves the registry only when a config file already
// exists, so opening a port never creates one.
func persistRegistry() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return saveRegistry()
}

// applyDefaultVolume sends the configured volume for the port, if any
func applyDefaultVolume(l *link.Link) error {
	meta := registry.GetPort(l.Name())
	if meta == nil || meta.DefaultVolume == nil {
		return nil
	}
	volume := *meta.DefaultVolume
	logging.Info("Applying default volume", zap.String("port", l.Name()), zap.Uint8("volume", volume))
	return l.Do(func(p *player.Player) error {
		return p.SetVolume(volume)
	})
}

// signalContext is cancelled on interrupt or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
