package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/dfplayer/internal/discovery"
)

// Discover command flags
var (
	scanTimeout time.Duration
	scanJSON    bool
)

func init() {
	discoverCmd.Flags().DurationVar(&scanTimeout, "timeout", discovery.DefaultScanTimeout, "Scan timeout")
	discoverCmd.Flags().BoolVar(&scanJSON, "json", false, "Print bridges as JSON")

	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find bridges on the local network",
	Long: `Browse for bridges started with 'dfplayer bridge --advertise' using
mDNS/DNS-SD and print their addresses and serial ports.`,
	Example: `  # Scan for 5 seconds (default)
  dfplayer discover

  # Longer scan, JSON output
  dfplayer discover --timeout 15s --json`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

// bridgeInfo is the JSON form of a discovered bridge
type bridgeInfo struct {
	Instance  string `json:"instance"`
	Hostname  string `json:"hostname"`
	IP        string `json:"ip"`
	Port      int    `json:"port"`
	Serial    string `json:"serial,omitempty"`
	Version   string `json:"version,omitempty"`
	WebSocket string `json:"websocket"`
	Metrics   string `json:"metrics"`
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	if !scanJSON {
		fmt.Printf("Scanning for DFPlayer bridges (timeout: %s)...\n\n", scanTimeout)
	}

	scanner := discovery.NewScanner()
	scanner.Timeout = scanTimeout
	bridges, err := scanner.ScanForBridges(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanJSON {
		infos := make([]bridgeInfo, 0, len(bridges))
		for _, b := range bridges {
			infos = append(infos, bridgeInfo{
				Instance:  b.Instance,
				Hostname:  b.Hostname,
				IP:        b.IP,
				Port:      b.Port,
				Serial:    b.SerialPort(),
				Version:   b.GetMetadata(discovery.TxtVersion),
				WebSocket: b.WebSocketURL(),
				Metrics:   b.MetricsURL(),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	if len(bridges) == 0 {
		fmt.Println("No bridges found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start the bridge with --advertise (or set bridge.advertise in its config)")
		fmt.Println("  - Check that both machines are on the same network segment")
		fmt.Println("  - Allow UDP port 5353 (mDNS) through the firewall")
		fmt.Println("  - Try increasing --timeout")
		return nil
	}

	fmt.Printf("Found %d bridge(s):\n\n", len(bridges))
	for i, b := range bridges {
		fmt.Printf("%d. %s\n", i+1, b.Instance)
		fmt.Printf("   Host:      %s\n", b.Hostname)
		fmt.Printf("   WebSocket: %s\n", b.WebSocketURL())
		fmt.Printf("   Metrics:   %s\n", b.MetricsURL())
		if serial := b.SerialPort(); serial != "" {
			fmt.Printf("   Serial:    %s\n", serial)
		}
		if v := b.GetMetadata(discovery.TxtVersion); v != "" {
			fmt.Printf("   Version:   %s\n", v)
		}
		fmt.Println()
	}
	return nil
}
