// Package config provides user configuration management for the dfplayer tools.
//
// This package manages a YAML configuration file holding the default serial
// port, logging options, bridge settings, and per-port metadata such as a
// nickname and the volume to apply after opening. Command-line flags always
// take precedence over values from this file.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/dfplayer/config.yaml or $HOME/.config/dfplayer/config.yaml
//   - macOS: $HOME/.config/dfplayer/config.yaml
//   - Windows: %LOCALAPPDATA%\dfplayer\config.yaml
//
// # Example File
//
//	version: 1
//	serial:
//	    port: /dev/ttyUSB0
//	    baud_rate: 9600
//	logging:
//	    level: info
//	    file:
//	        filename: /var/log/dfplayer.log
//	        max_size_mb: 10
//	bridge:
//	    listen_addr: :8090
//	    advertise: true
//	    instance_name: kitchen
//	ports:
//	    /dev/ttyUSB0:
//	        nickname: Kitchen speaker
//	        default_volume: 18
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    return err
//	}
//	registry.SetPortNickname("/dev/ttyUSB0", "Kitchen speaker")
//	if err := registry.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File writes are protected by a mutex and go through a temporary file.
package config
