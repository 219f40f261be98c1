package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/dfplayer/internal/bridge"
	"github.com/muurk/dfplayer/internal/link"
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/muurk/dfplayer/internal/ui"
)

// Monitor command flags
var (
	listPorts  bool
	showDrops  bool
	showFrames bool
	jsonOutput bool
)

func init() {
	monitorCmd.Flags().BoolVar(&listPorts, "list-ports", false, "List available serial ports and exit")
	monitorCmd.Flags().BoolVar(&showDrops, "drops", false, "Show frames discarded by the parser")
	monitorCmd.Flags().BoolVar(&showFrames, "frames", false, "Show the raw bytes of every valid frame")
	monitorCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print events as JSON lines")

	rootCmd.AddCommand(monitorCmd)
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print events reported by the module",
	Long: `Open the serial port and print every event the module reports until
interrupted: track finished, device inserted or removed, errors, and the
responses to queries sent by other tools.

The configured default volume for the port is applied on start.`,
	Example: `  # Watch the default port
  dfplayer monitor

  # Watch a specific port and include discarded frames
  dfplayer monitor --port /dev/ttyUSB1 --drops

  # JSON lines for scripting
  dfplayer monitor --json | jq .

  # Which ports exist?
  dfplayer monitor --list-ports`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if listPorts {
		return printPorts(os.Stdout)
	}

	name, err := resolvePort()
	if err != nil {
		return err
	}
	l, err := openLink(name)
	if err != nil {
		return err
	}
	defer l.Close()

	printer := ui.NewPrinter(os.Stdout)
	printer.ShowDrops = showDrops

	var handler protocol.EventHandler = printer
	if jsonOutput {
		handler = jsonLines(os.Stdout)
	}
	l.Attach(handler, player.WithDiagnostics(func(r protocol.ParseResult) {
		printer.PrintDrop(r)
		if showFrames && r.Frame != nil {
			b := r.Frame.Bytes()
			printer.PrintFrame("rx", b[:])
		}
	}))

	if ui.IsTerminal() && !jsonOutput {
		fmt.Println(ui.NewHeader("Monitor", "dfplayer monitor", map[string]string{
			"Port": registry.DisplayName(name),
			"Baud": strconv.Itoa(baudRate),
		}))
		fmt.Println()
	}

	if err := applyDefaultVolume(l); err != nil {
		logging.Warn("Failed to apply default volume", zap.Error(err))
	}

	ctx, stop := signalContext()
	defer stop()
	return l.Run(ctx)
}

// jsonLines prints each event in the bridge envelope, one per line
func jsonLines(w io.Writer) protocol.EventHandler {
	return protocol.EventHandlerFunc(func(e protocol.Event) {
		data, err := bridge.EncodeEvent(e)
		if err != nil {
			logging.Error("Failed to encode event", zap.Stringer("event", e), zap.Error(err))
			return
		}
		fmt.Fprintln(w, string(data))
	})
}

// printPorts lists serial ports, marking the configured default
func printPorts(w io.Writer) error {
	ports, err := link.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(w, "No serial ports found.")
		return nil
	}
	for _, port := range ports {
		marker := " "
		if port == registry.Serial.Port {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, registry.DisplayName(port))
	}
	return nil
}
