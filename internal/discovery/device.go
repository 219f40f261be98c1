package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Bridge represents a dfplayer bridge discovered on the network
type Bridge struct {
	// Instance is the advertised instance name (e.g., "kitchen")
	Instance string

	// Hostname is the mDNS hostname (e.g., "pi.local.")
	Hostname string

	// IP is the IPv4 address, or IPv6 when no IPv4 address was advertised
	IP string

	// Port is the bridge HTTP port
	Port int

	// Metadata contains the TXT record data
	// Common fields: "serial=/dev/ttyUSB0", "version=v1.2.0"
	Metadata map[string]string

	// DiscoveredAt is when the bridge was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the bridge
func (b *Bridge) String() string {
	return fmt.Sprintf("DFPlayer bridge %s (%s) at %s", b.Instance, b.Hostname, b.hostPort())
}

// WebSocketURL returns the event and command endpoint
func (b *Bridge) WebSocketURL() string {
	return fmt.Sprintf("ws://%s/ws", b.hostPort())
}

// MetricsURL returns the Prometheus endpoint
func (b *Bridge) MetricsURL() string {
	return fmt.Sprintf("http://%s/metrics", b.hostPort())
}

// SerialPort returns the serial port the bridge is attached to, if advertised
func (b *Bridge) SerialPort() string {
	return b.GetMetadata(TxtSerial)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Bridge) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}

func (b *Bridge) hostPort() string {
	return net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
}
