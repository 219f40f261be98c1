package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/dfplayer/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type bridges advertise
	ServiceType = "_dfplayer._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for bridge discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is assumed when an entry carries no port
	DefaultPort = 8090
)

// TXT record keys
const (
	TxtSerial  = "serial"
	TxtVersion = "version"
)

// Scanner handles mDNS bridge discovery
type Scanner struct {
	// Timeout is the maximum time to wait for bridge discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForBridges discovers all bridges on the local network until the
// timeout expires or ctx is cancelled
func (s *Scanner) ScanForBridges(ctx context.Context) ([]*Bridge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu      sync.Mutex
		bridges = make([]*Bridge, 0)
	)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if b := s.parseServiceEntry(entry); b != nil {
				mu.Lock()
				bridges = append(bridges, b)
				mu.Unlock()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]*Bridge(nil), bridges...), nil
}

// WaitForBridge waits for a bridge with the given instance name
func (s *Scanner) WaitForBridge(ctx context.Context, instance string) (*Bridge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Bridge, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			b := s.parseServiceEntry(entry)
			if b != nil && strings.EqualFold(b.Instance, instance) {
				found <- b
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case b := <-found:
		return b, nil
	case <-ctx.Done():
		select {
		case b := <-found:
			return b, nil
		default:
		}
		return nil, fmt.Errorf("bridge %q not found within timeout", instance)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Bridge.
// Returns nil if the entry has no usable address.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Bridge {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Bridge{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// Advertisement is a registered mDNS service
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise announces a bridge on the local network until Shutdown
func Advertise(instance string, port int, serialPort, version string) (*Advertisement, error) {
	txt := TxtRecords(serialPort, version)
	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising bridge",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the advertisement
func (a *Advertisement) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

// TxtRecords builds the TXT records for an advertisement, skipping empty
// values
func TxtRecords(serialPort, version string) []string {
	var txt []string
	if serialPort != "" {
		txt = append(txt, TxtSerial+"="+serialPort)
	}
	if version != "" {
		txt = append(txt, TxtVersion+"="+version)
	}
	return txt
}
