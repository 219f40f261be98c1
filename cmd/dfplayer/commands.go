package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/muurk/dfplayer/internal/ui"
)

// Command flags
var (
	sendWait    time.Duration
	decodeQuiet bool
)

func init() {
	sendCmd.Flags().DurationVar(&sendWait, "wait", 500*time.Millisecond, "How long to print events after sending (0 to exit immediately)")
	decodeCmd.Flags().BoolVar(&decodeQuiet, "quiet", false, "Print events only, without frames, drops or the summary")

	sendCmd.Long += commandList()
	encodeCmd.Long += commandList()

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <command> [args...]",
	Short: "Send one command to the module",
	Long: `Open the serial port, send one command, and print the events that
arrive within --wait. Query commands report their answer this way.

Commands:
`,
	Example: `  dfplayer send play
  dfplayer send volume 20
  dfplayer send track 12
  dfplayer send get-volume --wait 1s
  dfplayer send files tf`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: player.Names(),
	RunE:      runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	name, err := resolvePort()
	if err != nil {
		return err
	}
	l, err := openLink(name)
	if err != nil {
		reportSend(os.Stdout, ui.IsTerminal(), name, args, err)
		return err
	}
	defer l.Close()

	l.Attach(ui.NewPrinter(os.Stdout))

	ctx, stop := signalContext()
	defer stop()

	runErr := make(chan error, 1)
	go func() {
		runErr <- l.Run(ctx)
	}()

	err = l.Do(func(p *player.Player) error {
		return player.Execute(p, args[0], args[1:]...)
	})
	reportSend(os.Stdout, ui.IsTerminal(), registry.DisplayName(name), args, err)
	if err != nil {
		stop()
		<-runErr
		return err
	}

	if sendWait > 0 {
		select {
		case <-time.After(sendWait):
		case <-ctx.Done():
		}
	}
	stop()
	return <-runErr
}

// reportSend prints the result box for a send on an interactive terminal.
// Failures carry the serial troubleshooting checks.
func reportSend(w io.Writer, tty bool, port string, args []string, err error) {
	if !tty {
		return
	}
	fmt.Fprintln(w, ui.NewCommandResult(port, args[0], args[1:], err))
}

var encodeCmd = &cobra.Command{
	Use:   "encode <command> [args...]",
	Short: "Print the frame bytes for a command",
	Long: `Print the frame a command would put on the wire, as hex. No serial
port is opened.

Commands:
`,
	Example: `  dfplayer encode volume 20
  7e ff 06 06 01 00 14 fe e0 ef`,
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: player.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, err := encodeCommand(args[0], args[1:])
		if err != nil {
			return err
		}
		for _, frame := range frames {
			fmt.Println(ui.FormatHex(frame))
		}
		return nil
	},
}

// encodeCommand runs a command against a Player that records instead of
// transmitting
func encodeCommand(name string, args []string) ([][]byte, error) {
	var frames [][]byte
	p := player.New(nil, player.TransmitFunc(func(frame []byte) error {
		frames = append(frames, append([]byte(nil), frame...))
		return nil
	}))
	if err := player.Execute(p, name, args...); err != nil {
		return nil, err
	}
	return frames, nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>...",
	Short: "Decode captured bytes into events",
	Long: `Run captured bytes through the receive state machine and print the
events, frames and discarded input found in them. Bytes may be separated by
spaces, colons, commas or dashes, and may carry a 0x prefix.`,
	Example: `  dfplayer decode 7e ff 06 3d 00 00 05 fe b9 ef
  dfplayer decode 7eff063f000001febbef
  dfplayer decode "0x7e,0xff,0x06,0x41,0x00,0x00,0x00,0xfe,0xba,0xef"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseHex(args)
		if err != nil {
			return err
		}
		stats := decodeStream(data, ui.NewPrinter(os.Stdout), !decodeQuiet)
		if !decodeQuiet {
			fmt.Println(stats)
		}
		return nil
	},
}

// decodeStats summarizes one decode run
type decodeStats struct {
	Bytes   int
	Frames  int
	Dropped int
	Noise   int
	State   protocol.State
}

func (s decodeStats) String() string {
	line := fmt.Sprintf("%d bytes: %d frames, %d dropped, %d noise bytes", s.Bytes, s.Frames, s.Dropped, s.Noise)
	if s.State != protocol.StateStart {
		line += fmt.Sprintf(" (incomplete frame at end, state %s)", s.State)
	}
	return line
}

// decodeStream feeds data through a receive-only Player, printing events
// and, when verbose, frames and drops
func decodeStream(data []byte, printer *ui.Printer, verbose bool) decodeStats {
	printer.ShowDrops = verbose
	stats := decodeStats{Bytes: len(data)}

	p := player.New(printer, nil, player.WithDiagnostics(func(r protocol.ParseResult) {
		switch {
		case r.Frame != nil:
			stats.Frames++
			if verbose {
				b := r.Frame.Bytes()
				printer.PrintFrame("rx", b[:])
			}
		case r.Drop == protocol.DropNoise:
			stats.Noise++
		case r.Drop != protocol.DropNone:
			stats.Dropped++
			printer.PrintDrop(r)
		}
	}))
	_, _ = p.Write(data)

	stats.State = p.State()
	return stats
}

// parseHex joins hex arguments into bytes
func parseHex(args []string) ([]byte, error) {
	var sb strings.Builder
	for _, arg := range args {
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ' ' || r == ':' || r == ',' || r == '-' || r == '\t'
		})
		for _, field := range fields {
			field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			sb.WriteString(field)
		}
	}

	data, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no bytes to decode")
	}
	return data, nil
}

// commandList renders the command table for help text
func commandList() string {
	var sb strings.Builder
	for _, c := range player.Commands {
		fmt.Fprintf(&sb, "  %-52s %s\n", c.Usage(), c.Help)
	}
	return sb.String()
}
