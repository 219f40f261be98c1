package main

import (
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/dfplayer/internal/bridge"
	"github.com/muurk/dfplayer/internal/discovery"
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/metrics"
	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/muurk/dfplayer/internal/ui"
	"github.com/muurk/dfplayer/internal/version"
)

// Bridge command flags
var (
	listenAddr   string
	advertise    bool
	instanceName string
)

func init() {
	bridgeCmd.Flags().StringVar(&listenAddr, "listen", "", "HTTP listen address (default from config, :8090)")
	bridgeCmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the bridge over mDNS")
	bridgeCmd.Flags().StringVar(&instanceName, "name", "", "mDNS instance name (default from config, dfplayer)")

	rootCmd.AddCommand(bridgeCmd)
}

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Serve the module to websocket clients",
	Long: `Open the serial port and share it over HTTP:

  /ws       websocket: events are pushed as JSON, commands are accepted as
            {"id": "1", "command": "volume", "args": ["20"]}
  /metrics  Prometheus metrics (frames, drops, events, transmissions)
  /healthz  liveness check

With --advertise the bridge is announced as _dfplayer._tcp so that
'dfplayer discover' can find it.`,
	Example: `  # Serve the default port on :8090
  dfplayer bridge

  # Serve and announce on the LAN
  dfplayer bridge --port /dev/ttyUSB0 --listen :9000 --advertise --name kitchen`,
	Args: cobra.NoArgs,
	RunE: runBridge,
}

func runBridge(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("listen") {
		listenAddr = registry.Bridge.ListenAddr
	}
	if !flags.Changed("advertise") {
		advertise = registry.Bridge.Advertise
	}
	if !flags.Changed("name") {
		instanceName = registry.Bridge.InstanceName
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

	reg := metrics.NewRegistry()
	m := metrics.NewAppMetrics(reg)
	srv := bridge.New(bridge.Config{Addr: listenAddr}, l, reg, m)

	l.Attach(protocol.MultiHandler{srv.Hub(), m},
		player.WithDiagnostics(m.ObserveParse),
		player.WrapTransmitter(m.Transmitter),
	)

	addr, err := srv.Listen()
	if err != nil {
		return err
	}

	if advertise {
		port := 0
		if tcp, ok := addr.(*net.TCPAddr); ok {
			port = tcp.Port
		}
		ad, err := discovery.Advertise(instanceName, port, name, version.Version)
		if err != nil {
			logging.Warn("mDNS advertisement failed, continuing without it", zap.Error(err))
		} else {
			defer ad.Shutdown()
		}
	}

	if ui.IsTerminal() {
		params := map[string]string{
			"Port":      registry.DisplayName(name),
			"Listen":    addr.String(),
			"WebSocket": fmt.Sprintf("ws://%s/ws", addr),
		}
		if advertise {
			params["mDNS"] = instanceName + "." + discovery.ServiceType
		}
		fmt.Println(ui.NewHeader("Bridge", "dfplayer bridge", params))
	}

	if err := applyDefaultVolume(l); err != nil {
		logging.Warn("Failed to apply default volume", zap.Error(err))
	}

	ctx, stop := signalContext()
	defer stop()

	// Whichever side stops first takes the other down
	errs := make(chan error, 2)
	go func() { errs <- l.Run(ctx) }()
	go func() { errs <- srv.Serve(ctx) }()

	first := <-errs
	stop()
	second := <-errs
	return errors.Join(first, second)
}
