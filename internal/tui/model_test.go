package tui

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
)

type fakeController struct {
	mu     sync.Mutex
	frames [][]byte
	err    error
}

func (f *fakeController) Do(fn func(p *player.Player) error) error {
	if f.err != nil {
		return f.err
	}
	p := player.New(nil, player.TransmitFunc(func(b []byte) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.frames = append(f.frames, append([]byte(nil), b...))
		return nil
	}))
	return fn(p)
}

func (f *fakeController) sent() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

type fakeSender struct {
	msgs []tea.Msg
}

func (s *fakeSender) Send(msg tea.Msg) { s.msgs = append(s.msgs, msg) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update applies msg and runs any command results back through the model
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, res := range commandResults(cmd) {
		next, _ = m.Update(res)
		m = next.(Model)
	}
	return m
}

// press applies msg without running the returned command
func press(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// commandResults executes cmd and collects command outcomes, skipping
// spinner ticks
func commandResults(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, commandResults(c)...)
		}
		return out
	case commandResultMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

func newTestModel(ctrl Controller) Model {
	next, _ := NewModel(ctrl, "/dev/ttyUSB0").Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func frame(cmd, p1, p2 byte) []byte {
	b := protocol.BuildFrame(cmd, p1, p2)
	return b[:]
}

func TestPlayerState_Apply(t *testing.T) {
	var s PlayerState

	s.Apply(protocol.InitializedEvent{DevicesOnline: protocol.DeviceTFCard})
	s.Apply(protocol.DeviceStateEvent{Device: protocol.DeviceUDisk, Inserted: true})
	s.Apply(protocol.FileCountEvent{Device: protocol.DeviceUDisk, Count: 12})
	s.Apply(protocol.VolumeEvent{Volume: 20})
	s.Apply(protocol.StatusEvent{Playing: true})
	s.Apply(protocol.EqualizerEvent{Mode: protocol.EqualizerJazz})
	s.Apply(protocol.PlaybackModeEvent{Mode: protocol.PlaybackRandom})
	s.Apply(protocol.TrackFinishedEvent{Track: 5, Device: protocol.DeviceTFCard})
	s.Apply(protocol.CurrentTrackEvent{Track: 6, Device: protocol.DeviceTFCard})
	s.Apply(protocol.ErrorEvent{Code: protocol.ErrorBusy})

	assert.Equal(t, protocol.DeviceUDisk|protocol.DeviceTFCard, s.Online)
	assert.Equal(t, uint16(12), s.FileCounts[protocol.DeviceUDisk])
	require.NotNil(t, s.Volume)
	assert.Equal(t, uint8(20), *s.Volume)
	require.NotNil(t, s.Playing)
	assert.True(t, *s.Playing)
	assert.Equal(t, protocol.EqualizerJazz, *s.Equalizer)
	assert.Equal(t, protocol.PlaybackRandom, *s.Mode)
	assert.Equal(t, uint16(5), s.LastFinished.Track)
	assert.Equal(t, uint16(6), s.Current.Track)
	assert.Equal(t, protocol.ErrorBusy, *s.LastError)

	s.Apply(protocol.DeviceStateEvent{Device: protocol.DeviceUDisk, Inserted: false})
	assert.Equal(t, protocol.DeviceTFCard, s.Online)
	assert.NotContains(t, s.FileCounts, protocol.DeviceUDisk)
}

func TestPlayerState_ApplyCommand(t *testing.T) {
	var s PlayerState

	s.ApplyCommand("volume-up", nil)
	assert.Nil(t, s.Volume, "unknown volume stays unknown")

	s.ApplyCommand("volume", []string{"30"})
	require.NotNil(t, s.Volume)
	s.ApplyCommand("volume-up", nil)
	assert.Equal(t, uint8(30), *s.Volume, "clamped at maximum")
	s.ApplyCommand("volume-down", nil)
	assert.Equal(t, uint8(29), *s.Volume)

	s.ApplyCommand("pause", nil)
	assert.False(t, *s.Playing)
	s.ApplyCommand("play", nil)
	assert.True(t, *s.Playing)

	s.ApplyCommand("eq", []string{"bass"})
	assert.Equal(t, protocol.EqualizerBass, *s.Equalizer)
	assert.Equal(t, protocol.EqualizerNormal, s.NextEqualizer(), "wraps around")

	s.ApplyCommand("mode", []string{"single-repeat"})
	assert.Equal(t, protocol.PlaybackRandom, s.NextMode())
}

func TestPlayerState_NextDefaults(t *testing.T) {
	var s PlayerState
	assert.Equal(t, protocol.EqualizerPop, s.NextEqualizer())
	assert.Equal(t, protocol.PlaybackFolderRepeat, s.NextMode())
}

func TestModel_KeysSendCommands(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want []byte
	}{
		{"play", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, frame(protocol.CmdPlay, 0, 0)},
		{"next", runes("n"), frame(protocol.CmdNextTrack, 0, 0)},
		{"previous", runes("b"), frame(protocol.CmdPreviousTrack, 0, 0)},
		{"volume up", runes("+"), frame(protocol.CmdVolumeUp, 0, 0)},
		{"volume down", runes("-"), frame(protocol.CmdVolumeDown, 0, 0)},
		{"equalizer", runes("e"), frame(protocol.CmdSetEqualizer, 0, byte(protocol.EqualizerPop))},
		{"mode", runes("m"), frame(protocol.CmdSetPlaybackMode, 0, byte(protocol.PlaybackFolderRepeat))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{}
			m := update(t, newTestModel(ctrl), tt.key)

			require.Len(t, ctrl.sent(), 1)
			assert.Equal(t, tt.want, ctrl.sent()[0])
			assert.Zero(t, m.Pending)
			assert.NoError(t, m.LastErr)
		})
	}
}

func TestModel_PlayPauseToggles(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(ctrl)
	m = update(t, m, EventMsg{Event: protocol.StatusEvent{Playing: true}, At: time.Now()})

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	require.Len(t, ctrl.sent(), 1)
	assert.Equal(t, frame(protocol.CmdPause, 0, 0), ctrl.sent()[0])
	assert.False(t, *m.State.Playing)
}

func TestModel_CommandPrompt(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(ctrl)

	m = press(m, runes(":"))
	require.True(t, m.CommandMode)

	m = press(m, runes("volume 20"))
	assert.Equal(t, "volume 20", m.Input.Value())
	assert.Empty(t, ctrl.sent(), "typing does not send")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.CommandMode)
	require.Len(t, ctrl.sent(), 1)
	assert.Equal(t, frame(protocol.CmdSetVolume, 0, 20), ctrl.sent()[0])
	require.NotNil(t, m.State.Volume)
	assert.Equal(t, uint8(20), *m.State.Volume)
}

func TestModel_CommandPromptCancel(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(ctrl)

	m = press(m, runes(":"))
	m = press(m, runes("reset"))
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.CommandMode)
	assert.Empty(t, ctrl.sent())
}

func TestModel_CommandErrors(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(ctrl)

	m = press(m, runes(":"))
	m = press(m, runes("volume 31"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, m.LastErr, player.ErrVolumeOutOfRange)
	assert.Empty(t, ctrl.sent())
	assert.Contains(t, m.View(), "volume out of range")

	ctrl.err = errors.New("port closed")
	m = update(t, m, runes("n"))
	assert.EqualError(t, m.LastErr, "port closed")
}

func TestModel_Refresh(t *testing.T) {
	ctrl := &fakeController{}
	m := newTestModel(ctrl)

	next, cmd := m.Update(refreshMsg{})
	m = next.(Model)

	assert.Equal(t, len(refreshQueries), m.Pending)
	assert.NotNil(t, cmd)

	for _, name := range refreshQueries {
		msg := m.runCommand(0, name)()
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	assert.Zero(t, m.Pending)
	assert.Equal(t, [][]byte{
		frame(protocol.CmdQueryStatus, 0, 0),
		frame(protocol.CmdQueryVolume, 0, 0),
		frame(protocol.CmdQueryEqualizer, 0, 0),
		frame(protocol.CmdQueryPlaybackMode, 0, 0),
	}, ctrl.sent())
}

func TestModel_EventsRendered(t *testing.T) {
	m := newTestModel(&fakeController{})

	m = update(t, m, EventMsg{Event: protocol.VolumeEvent{Volume: 12}, At: time.Now()})
	m = update(t, m, EventMsg{Event: protocol.TrackFinishedEvent{Track: 7, Device: protocol.DeviceTFCard}, At: time.Now()})
	m = update(t, m, DropMsg{Result: protocol.ParseResult{Drop: protocol.DropChecksum}})

	view := m.View()
	assert.Contains(t, view, "12/30")
	assert.Contains(t, view, "7 on tf")
	assert.Contains(t, view, "track_finished")
	assert.Contains(t, view, "1 frames")
	assert.Equal(t, 2, len(m.log))
}

func TestModel_LogBounded(t *testing.T) {
	m := newTestModel(&fakeController{})
	for i := 0; i < maxLogLines+10; i++ {
		m = update(t, m, EventMsg{Event: protocol.ReplyEvent{}, At: time.Now()})
	}
	assert.Len(t, m.log, maxLogLines)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&fakeController{})
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := NewModel(&fakeController{}, "/dev/ttyUSB0")
	assert.Equal(t, "Initializing...", m.View())

	m = newTestModel(&fakeController{})
	assert.True(t, strings.Contains(m.View(), AppName))
}

func TestForward(t *testing.T) {
	s := &fakeSender{}

	Forward(s).HandleEvent(protocol.ReplyEvent{})
	drops := ForwardDrops(s)
	drops(protocol.ParseResult{Drop: protocol.DropNoise})
	drops(protocol.ParseResult{Drop: protocol.DropLength})

	require.Len(t, s.msgs, 2)
	ev, ok := s.msgs[0].(EventMsg)
	require.True(t, ok)
	assert.Equal(t, protocol.ReplyEvent{}, ev.Event)
	assert.False(t, ev.At.IsZero())
	assert.Equal(t, DropMsg{Result: protocol.ParseResult{Drop: protocol.DropLength}}, s.msgs[1])
}
