package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/muurk/dfplayer/internal/ui"
)

const (
	// maxLogLines bounds the event log kept in memory
	maxLogLines = 500

	// queryInterval spaces consecutive queries so the module answers each one
	queryInterval = 100 * time.Millisecond
)

// refreshQueries are sent on startup and when the user asks for a refresh
var refreshQueries = []string{"status", "get-volume", "get-eq", "get-mode"}

// Controller runs operations against the attached player
type Controller interface {
	Do(fn func(p *player.Player) error) error
}

// Model is the interactive controller screen: a status panel fed by module
// events, a scrolling event log, and a command prompt.
type Model struct {
	ctrl Controller
	Port string

	State PlayerState
	Drops int

	// UI state
	Width  int
	Height int

	Pending     int
	LastErr     error
	CommandMode bool

	log      []string
	Viewport viewport.Model
	Input    textinput.Model
	Spinner  spinner.Model
	Help     help.Model
	Keys     keyMap
	CmdKeys  commandKeyMap
}

// NewModel creates the controller screen for the player behind ctrl
func NewModel(ctrl Controller, port string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ti := textinput.New()
	ti.Prompt = PromptStyle.Render(": ")
	ti.Placeholder = "volume 20"
	ti.CharLimit = 64
	ti.ShowSuggestions = true
	ti.SetSuggestions(player.Names())

	return Model{
		ctrl:     ctrl,
		Port:     port,
		Viewport: viewport.New(MinTerminalWidth-4, MinLogHeight),
		Input:    ti,
		Spinner:  s,
		Help:     help.New(),
		Keys:     newKeyMap(),
		CmdKeys:  newCommandKeyMap(),
	}
}

// Init queries the module state
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg{} }
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		m.resizeLog()
		return m, nil

	case EventMsg:
		m.State.Apply(msg.Event)
		m.appendLog(msg.At, string(msg.Event.Kind()), ui.DescribeEvent(msg.Event))
		return m, nil

	case DropMsg:
		m.Drops++
		return m, nil

	case commandResultMsg:
		if m.Pending > 0 {
			m.Pending--
		}
		line := strings.TrimSpace(msg.name + " " + strings.Join(msg.args, " "))
		if msg.err != nil {
			m.LastErr = msg.err
			m.appendLog(time.Now(), "failed", ErrorStyle.Render(line+": "+msg.err.Error()))
			return m, nil
		}
		m.LastErr = nil
		m.State.ApplyCommand(msg.name, msg.args)
		m.appendLog(time.Now(), "sent", line)
		return m, nil

	case refreshMsg:
		return m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.CommandMode {
			return m.updateCommandMode(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey maps a key press to a module command
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.resizeLog()
		return m, nil

	case key.Matches(msg, m.Keys.PlayPause):
		if m.State.Playing != nil && *m.State.Playing {
			return m.send("pause")
		}
		return m.send("play")

	case key.Matches(msg, m.Keys.Next):
		return m.send("next")

	case key.Matches(msg, m.Keys.Previous):
		return m.send("previous")

	case key.Matches(msg, m.Keys.VolumeUp):
		return m.send("volume-up")

	case key.Matches(msg, m.Keys.VolumeDown):
		return m.send("volume-down")

	case key.Matches(msg, m.Keys.Equalizer):
		return m.send("eq", m.State.NextEqualizer().String())

	case key.Matches(msg, m.Keys.Mode):
		return m.send("mode", m.State.NextMode().String())

	case key.Matches(msg, m.Keys.Refresh):
		return m.refresh()

	case key.Matches(msg, m.Keys.Command):
		m.CommandMode = true
		m.Input.Reset()
		return m, m.Input.Focus()
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// updateCommandMode handles input while the command prompt is open
func (m Model) updateCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.CmdKeys.Cancel):
		m.CommandMode = false
		m.Input.Blur()
		return m, nil

	case key.Matches(msg, m.CmdKeys.Submit):
		fields := strings.Fields(m.Input.Value())
		m.CommandMode = false
		m.Input.Blur()
		if len(fields) == 0 {
			return m, nil
		}
		return m.send(fields[0], fields[1:]...)
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// send runs a named command in the background
func (m Model) send(name string, args ...string) (tea.Model, tea.Cmd) {
	m.Pending++
	return m, tea.Batch(m.runCommand(0, name, args...), m.Spinner.Tick)
}

// refresh sends the state queries one after another
func (m Model) refresh() (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, len(refreshQueries))
	for i, name := range refreshQueries {
		cmds[i] = m.runCommand(queryInterval, name)
	}
	m.Pending += len(cmds)
	return m, tea.Batch(tea.Sequence(cmds...), m.Spinner.Tick)
}

// runCommand executes the command through the controller. A non-zero delay
// is waited out after sending, before the result is reported.
func (m Model) runCommand(delay time.Duration, name string, args ...string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.Do(func(p *player.Player) error {
			return player.Execute(p, name, args...)
		})
		if delay > 0 {
			time.Sleep(delay)
		}
		return commandResultMsg{name: name, args: args, err: err}
	}
}

// appendLog adds a line to the event log and scrolls to it
func (m *Model) appendLog(at time.Time, kind, detail string) {
	line := fmt.Sprintf("%s %-14s %s", TimestampStyle.Render(at.Format("15:04:05")), kind, detail)
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
	m.Viewport.SetContent(strings.Join(m.log, "\n"))
	m.Viewport.GotoBottom()
}

// resizeLog fits the event log into the space the other sections leave
func (m *Model) resizeLog() {
	width := m.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	used := lipgloss.Height(m.renderStatus()) + lipgloss.Height(m.renderHelp()) + 8
	height := m.Height - used
	if height < MinLogHeight {
		height = MinLogHeight
	}
	m.Viewport.Width = width - 6
	m.Viewport.Height = height
}

// View renders the screen
func (m Model) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("Events"))
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderPromptLine())

	return RenderApplicationContainer(m.Port, b.String(), m.renderHelp(), m.Width, m.Height)
}

func (m Model) renderHelp() string {
	if m.CommandMode {
		return m.Help.View(m.CmdKeys)
	}
	return m.Help.View(m.Keys)
}

// renderPromptLine shows the command prompt, the pending spinner or the last error
func (m Model) renderPromptLine() string {
	switch {
	case m.CommandMode:
		return m.Input.View()
	case m.Pending > 0:
		return m.Spinner.View() + " sending..."
	case m.LastErr != nil:
		return ErrorStyle.Render("✗ " + m.LastErr.Error())
	default:
		return ""
	}
}

// renderStatus renders the module state panel
func (m Model) renderStatus() string {
	s := m.State

	playback := UnknownStyle.Render("unknown")
	if s.Playing != nil {
		if *s.Playing {
			playback = PlayingStyle.Render("▶ playing")
		} else {
			playback = ValueStyle.Render("■ stopped")
		}
	}

	volume := UnknownStyle.Render("unknown")
	if s.Volume != nil {
		volume = ValueStyle.Render(fmt.Sprintf("%d/%d ", *s.Volume, player.MaxVolume)) + volumeBar(*s.Volume)
	}

	eq := UnknownStyle.Render("unknown")
	if s.Equalizer != nil {
		eq = ValueStyle.Render(s.Equalizer.String())
	}

	mode := UnknownStyle.Render("unknown")
	if s.Mode != nil {
		mode = ValueStyle.Render(s.Mode.String())
	}

	devices := UnknownStyle.Render("none")
	if s.Online != 0 {
		devices = ValueStyle.Render(s.Online.String())
	}

	track := UnknownStyle.Render("unknown")
	if s.Current != nil {
		track = ValueStyle.Render(fmt.Sprintf("%d on %s", s.Current.Track, s.Current.Device))
	}

	finished := UnknownStyle.Render("-")
	if s.LastFinished != nil {
		finished = ValueStyle.Render(fmt.Sprintf("%d on %s", s.LastFinished.Track, s.LastFinished.Device))
	}

	var files []string
	for _, d := range []protocol.Device{protocol.DeviceUDisk, protocol.DeviceTFCard, protocol.DeviceFlash} {
		if n, ok := s.FileCounts[d]; ok {
			files = append(files, fmt.Sprintf("%s=%d", d, n))
		}
	}
	fileCount := UnknownStyle.Render("-")
	if len(files) > 0 {
		fileCount = ValueStyle.Render(strings.Join(files, " "))
	}

	lastError := UnknownStyle.Render("-")
	if s.LastError != nil {
		lastError = ErrorStyle.Render(s.LastError.String())
	}

	row := func(label, value string) string {
		return LabelStyle.Render(label) + value
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		row("Playback", playback),
		row("Volume", volume),
		row("Equalizer", eq),
		row("Mode", mode),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		row("Devices", devices),
		row("Track", track),
		row("Finished", finished),
		row("Files", fileCount),
		row("Last error", lastError),
	)
	if m.Drops > 0 {
		right = lipgloss.JoinVertical(lipgloss.Left, right,
			row("Dropped", WarningStyle.Render(fmt.Sprintf("%d frames", m.Drops))))
	}

	return PanelStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

// volumeBar renders the volume as a bar of MaxVolume/2 cells
func volumeBar(v uint8) string {
	const cells = player.MaxVolume / 2
	filled := int(v) / 2
	if filled > cells {
		filled = cells
	}
	return PlayingStyle.Render(strings.Repeat("█", filled)) +
		TimestampStyle.Render(strings.Repeat("░", cells-filled))
}
