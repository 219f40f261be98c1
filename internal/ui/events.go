package ui

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/dfplayer/internal/protocol"
)

// Printer writes one line per received event, frame or drop. Lines are
// styled when color is enabled and plain otherwise, so output piped to a
// file stays grep-friendly. A Printer is safe for concurrent use.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	now   func() time.Time

	// ShowDrops includes discarded frames in the output
	ShowDrops bool
}

// NewPrinter creates a printer for w. Color is enabled only when stdout is
// a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:     w,
		color: IsTerminal(),
		now:   time.Now,
	}
}

// SetColor forces styled output on or off
func (p *Printer) SetColor(enabled bool) *Printer {
	p.color = enabled
	return p
}

// HandleEvent prints the event. It satisfies protocol.EventHandler.
func (p *Printer) HandleEvent(e protocol.Event) {
	p.PrintEvent(e)
}

// PrintEvent writes a single event line
func (p *Printer) PrintEvent(e protocol.Event) {
	kind := string(e.Kind())
	line := p.render(TimestampStyle, p.timestamp()) + " " +
		p.render(EventKindStyle.Foreground(eventColor(e)), padRight(kind, 16)) + " " +
		p.render(ResultValueStyle, DescribeEvent(e))
	p.writeLine(line)
}

// PrintDrop writes a discarded frame. Stray noise bytes are never printed.
func (p *Printer) PrintDrop(r protocol.ParseResult) {
	if !p.ShowDrops || r.Drop == protocol.DropNone || r.Drop == protocol.DropNoise {
		return
	}

	detail := "reason=" + r.Drop.String()
	if r.Drop == protocol.DropChecksum {
		detail += fmt.Sprintf(" expected=0x%04x calculated=0x%04x", r.Expected, r.Calculated)
	}
	line := p.render(TimestampStyle, p.timestamp()) + " " +
		p.render(lipgloss.NewStyle().Foreground(WarningColor), DropMarker+" dropped") + " " +
		p.render(TroubleshootingItemStyle, detail)
	p.writeLine(line)
}

// PrintFrame writes raw frame bytes with a direction tag ("tx" or "rx")
func (p *Printer) PrintFrame(direction string, frame []byte) {
	name := ""
	if len(frame) > 3 {
		name = protocol.CommandName(frame[3])
	}
	line := p.render(TimestampStyle, p.timestamp()) + " " +
		p.render(HeaderParamKeyStyle.UnsetPaddingLeft(), padRight(direction, 2)) + " " +
		p.render(HexStyle, FormatHex(frame)) + " " +
		p.render(ResultValueStyle, name)
	p.writeLine(line)
}

// FormatHex formats bytes as space separated lowercase hex pairs
func FormatHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	s := hex.EncodeToString(b)
	var sb strings.Builder
	sb.Grow(len(s) + len(b))
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s[i : i+2])
	}
	return sb.String()
}

func (p *Printer) timestamp() string {
	return p.now().Format("15:04:05.000")
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

func (p *Printer) writeLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, strings.TrimRight(line, " "))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

// eventColor picks the highlight for an event kind
func eventColor(e protocol.Event) lipgloss.Color {
	switch ev := e.(type) {
	case protocol.ErrorEvent:
		return ErrorColor
	case protocol.DeviceStateEvent:
		if ev.Inserted {
			return SuccessColor
		}
		return WarningColor
	case protocol.InitializedEvent, protocol.TrackFinishedEvent:
		return SuccessColor
	case protocol.ReplyEvent:
		return MutedColor
	default:
		return InfoColor
	}
}

// DescribeEvent renders the event fields in key=value form
func DescribeEvent(e protocol.Event) string {
	switch ev := e.(type) {
	case protocol.InitializedEvent:
		return "devices=" + ev.DevicesOnline.String()
	case protocol.TrackFinishedEvent:
		return fmt.Sprintf("track=%d device=%s", ev.Track, ev.Device)
	case protocol.DeviceStateEvent:
		state := "removed"
		if ev.Inserted {
			state = "inserted"
		}
		return fmt.Sprintf("device=%s %s", ev.Device, state)
	case protocol.ErrorEvent:
		return fmt.Sprintf("code=%d %s", uint16(ev.Code), ev.Code)
	case protocol.ReplyEvent:
		return "ack"
	case protocol.StatusEvent:
		if ev.Playing {
			return "playing"
		}
		return "stopped"
	case protocol.VolumeEvent:
		return fmt.Sprintf("volume=%d", ev.Volume)
	case protocol.EqualizerEvent:
		return "mode=" + ev.Mode.String()
	case protocol.PlaybackModeEvent:
		return "mode=" + ev.Mode.String()
	case protocol.FileCountEvent:
		return fmt.Sprintf("device=%s count=%d", ev.Device, ev.Count)
	case protocol.CurrentTrackEvent:
		return fmt.Sprintf("device=%s track=%d", ev.Device, ev.Track)
	default:
		return e.String()
	}
}
