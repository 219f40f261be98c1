// Package metrics exposes Prometheus counters for the serial link and the
// bridge.
package metrics

import (
	"net/http"

	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dfplayer"

// NewRegistry creates a registry with the Go and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler returns the HTTP handler serving reg
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// AppMetrics holds the driver's own metrics
type AppMetrics struct {
	FramesTotal   *prometheus.CounterVec // labels: result=ok|<drop reason>
	EventsTotal   *prometheus.CounterVec // labels: kind
	TxFramesTotal *prometheus.CounterVec // labels: command
	TxErrorsTotal *prometheus.CounterVec // labels: command
	BridgeClients prometheus.Gauge
}

// NewAppMetrics registers and returns the driver metrics
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		FramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Received parse outcomes: completed frames and discarded input by reason.",
		}, []string{"result"}),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Decoded events by kind.",
		}, []string{"kind"}),
		TxFramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_frames_total",
			Help:      "Frames transmitted by command.",
		}, []string{"command"}),
		TxErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_errors_total",
			Help:      "Failed transmissions by command.",
		}, []string{"command"}),
		BridgeClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bridge_clients",
			Help:      "Connected websocket clients.",
		}),
	}
	reg.MustRegister(m.FramesTotal, m.EventsTotal, m.TxFramesTotal, m.TxErrorsTotal, m.BridgeClients)
	return m
}

// ObserveParse counts one parse step. Pass it to player.WithDiagnostics.
func (m *AppMetrics) ObserveParse(r protocol.ParseResult) {
	switch {
	case r.Frame != nil:
		m.FramesTotal.WithLabelValues("ok").Inc()
	case r.Drop != protocol.DropNone:
		m.FramesTotal.WithLabelValues(r.Drop.String()).Inc()
	}
}

// HandleEvent counts decoded events by kind
func (m *AppMetrics) HandleEvent(e protocol.Event) {
	m.EventsTotal.WithLabelValues(string(e.Kind())).Inc()
}

// Transmitter wraps tx, counting frames and failures by command
func (m *AppMetrics) Transmitter(tx player.Transmitter) player.Transmitter {
	return player.TransmitFunc(func(frame []byte) error {
		command := "unknown"
		if len(frame) == protocol.FrameSize {
			command = protocol.CommandName(frame[3])
		}
		if err := tx.Transmit(frame); err != nil {
			m.TxErrorsTotal.WithLabelValues(command).Inc()
			return err
		}
		m.TxFramesTotal.WithLabelValues(command).Inc()
		return nil
	})
}
