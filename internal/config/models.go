package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/muurk/dfplayer/internal/logging"
)

// Defaults applied to missing sections
const (
	DefaultBaudRate      = 9600
	DefaultListenAddr    = ":8090"
	DefaultInstanceName  = "dfplayer"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	maxVolume            = 30
)

// Registry represents the entire user configuration file.
type Registry struct {
	Version int                  `yaml:"version"`
	Serial  *SerialConfig        `yaml:"serial,omitempty"`
	Logging *LoggingConfig       `yaml:"logging,omitempty"`
	Bridge  *BridgeConfig        `yaml:"bridge,omitempty"`
	Ports   map[string]*PortMeta `yaml:"ports,omitempty"` // Keyed by serial port name
}

// SerialConfig selects the default serial port
type SerialConfig struct {
	Port     string `yaml:"port,omitempty"` // e.g. /dev/ttyUSB0
	BaudRate int    `yaml:"baud_rate"`
}

// LoggingConfig mirrors logging.Config
type LoggingConfig struct {
	Level  string         `yaml:"level,omitempty"`
	Format string         `yaml:"format,omitempty"` // console or json
	File   *LogFileConfig `yaml:"file,omitempty"`
}

// LogFileConfig configures lumberjack rotation
type LogFileConfig struct {
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// BridgeConfig configures the websocket bridge
type BridgeConfig struct {
	ListenAddr   string `yaml:"listen_addr"`
	Advertise    bool   `yaml:"advertise"`     // Announce over mDNS
	InstanceName string `yaml:"instance_name"` // mDNS instance name
}

// PortMeta is user-defined metadata for one serial port
type PortMeta struct {
	Nickname      string    `yaml:"nickname,omitempty"`
	LastSeen      time.Time `yaml:"last_seen,omitempty"`
	DefaultVolume *uint8    `yaml:"default_volume,omitempty"` // Applied after the port is opened
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	r := &Registry{Version: 1}
	r.applyDefaults()
	return r
}

// applyDefaults fills in missing sections and zero values
func (r *Registry) applyDefaults() {
	if r.Serial == nil {
		r.Serial = &SerialConfig{}
	}
	if r.Serial.BaudRate == 0 {
		r.Serial.BaudRate = DefaultBaudRate
	}
	if r.Logging == nil {
		r.Logging = &LoggingConfig{}
	}
	if r.Bridge == nil {
		r.Bridge = &BridgeConfig{}
	}
	if r.Bridge.ListenAddr == "" {
		r.Bridge.ListenAddr = DefaultListenAddr
	}
	if r.Bridge.InstanceName == "" {
		r.Bridge.InstanceName = DefaultInstanceName
	}
	if r.Ports == nil {
		r.Ports = make(map[string]*PortMeta)
	}
}

// Validate checks values that would otherwise fail later
func (r *Registry) Validate() error {
	if r.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", r.Version)
	}
	if r.Serial != nil && r.Serial.BaudRate < 0 {
		return fmt.Errorf("invalid baud rate: %d", r.Serial.BaudRate)
	}
	for name, meta := range r.Ports {
		if meta != nil && meta.DefaultVolume != nil && *meta.DefaultVolume > maxVolume {
			return fmt.Errorf("port %s: default volume %d out of range (0-%d)", name, *meta.DefaultVolume, maxVolume)
		}
	}
	return nil
}

// GetPort retrieves port metadata by name.
// Returns nil if the port doesn't exist in the registry.
func (r *Registry) GetPort(name string) *PortMeta {
	return r.Ports[name]
}

// EnsurePort ensures a port entry exists in the registry and returns it.
func (r *Registry) EnsurePort(name string) *PortMeta {
	if r.Ports == nil {
		r.Ports = make(map[string]*PortMeta)
	}

	if meta, exists := r.Ports[name]; exists && meta != nil {
		return meta
	}

	meta := &PortMeta{}
	r.Ports[name] = meta
	return meta
}

// ResolvePort maps a port nickname to the port name. Names that match no
// nickname are returned unchanged. Nicknames compare case-insensitively.
func (r *Registry) ResolvePort(name string) string {
	if _, ok := r.Ports[name]; ok {
		return name
	}
	ports := make([]string, 0, len(r.Ports))
	for port := range r.Ports {
		ports = append(ports, port)
	}
	sort.Strings(ports)
	for _, port := range ports {
		if meta := r.Ports[port]; meta != nil && meta.Nickname != "" && strings.EqualFold(meta.Nickname, name) {
			return port
		}
	}
	return name
}

// DisplayName returns "nickname (port)" when the port has a nickname
func (r *Registry) DisplayName(port string) string {
	if meta := r.GetPort(port); meta != nil && meta.Nickname != "" {
		return meta.Nickname + " (" + port + ")"
	}
	return port
}

// TouchPort records that a port was just opened
func (r *Registry) TouchPort(name string) {
	r.EnsurePort(name).LastSeen = time.Now()
}

// SetPortNickname sets a user-friendly nickname for a port.
func (r *Registry) SetPortNickname(name, nickname string) {
	r.EnsurePort(name).Nickname = nickname
}

// SetDefaultVolume sets the volume applied when the port is opened
func (r *Registry) SetDefaultVolume(name string, volume uint8) error {
	if volume > maxVolume {
		return fmt.Errorf("default volume %d out of range (0-%d)", volume, maxVolume)
	}
	r.EnsurePort(name).DefaultVolume = &volume
	return nil
}

// LoggingOptions converts the logging section for logging.InitializeWithConfig
func (r *Registry) LoggingOptions() logging.Config {
	if r.Logging == nil {
		return logging.Config{}
	}
	cfg := logging.Config{
		Level:  r.Logging.Level,
		Format: r.Logging.Format,
	}
	if f := r.Logging.File; f != nil && f.Filename != "" {
		cfg.File = logging.FileConfig{
			Filename:   f.Filename,
			MaxSizeMB:  f.MaxSizeMB,
			MaxBackups: f.MaxBackups,
			MaxAgeDays: f.MaxAgeDays,
			Compress:   f.Compress,
		}
		if cfg.File.MaxSizeMB == 0 {
			cfg.File.MaxSizeMB = DefaultLogMaxSizeMB
		}
		if cfg.File.MaxBackups == 0 {
			cfg.File.MaxBackups = DefaultLogMaxBackups
		}
	}
	return cfg
}
