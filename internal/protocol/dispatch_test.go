package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers_Routing(t *testing.T) {
	var got []string
	h := &Handlers{
		OnInitialize: func(d Device) { got = append(got, "init "+d.String()) },
		OnTrackFinished: func(track uint16, d Device) {
			got = append(got, "finished "+d.String())
		},
		OnVolume: func(v uint8) { got = append(got, "volume") },
		OnReply:  func() { got = append(got, "reply") },
	}

	frames := []Frame{
		{Command: EvtInitialized, Params: [2]byte{0, 2}},
		{Command: EvtTFCardFinished, Params: [2]byte{0, 1}},
		{Command: CmdQueryVolume, Params: [2]byte{0, 10}},
		{Command: EvtReply},
		// No callbacks registered for these
		{Command: EvtError, Params: [2]byte{0, 1}},
		{Command: CmdQueryStatus, Params: [2]byte{1, 0}},
		{Command: CmdQueryTFCardFiles, Params: [2]byte{0, 4}},
	}
	for _, f := range frames {
		require.NotNil(t, Dispatch(h, f))
	}

	assert.Equal(t, []string{"init tf", "finished tf", "volume", "reply"}, got)
}

func TestHandlers_ZeroValue(t *testing.T) {
	var h Handlers
	for code := 0; code <= 0xff; code++ {
		assert.NotPanics(t, func() {
			Dispatch(&h, Frame{Command: byte(code)})
		})
	}
}

func TestDispatch_Unknown(t *testing.T) {
	called := false
	h := EventHandlerFunc(func(Event) { called = true })

	assert.Nil(t, Dispatch(h, Frame{Command: CmdQueryVersion}))
	assert.Nil(t, Dispatch(h, Frame{Command: 0x00}))
	assert.False(t, called)
}

func TestDispatch_NilHandler(t *testing.T) {
	e := Dispatch(nil, Frame{Command: EvtError, Params: [2]byte{0, 0}})
	assert.Equal(t, ErrorEvent{Code: ErrorBusy}, e)
}

func TestMultiHandler(t *testing.T) {
	var a, b []Event
	m := MultiHandler{
		EventHandlerFunc(func(e Event) { a = append(a, e) }),
		nil,
		EventHandlerFunc(func(e Event) { b = append(b, e) }),
	}

	Dispatch(m, Frame{Command: CmdQueryEqualizer, Params: [2]byte{2, 0}})

	want := []Event{EqualizerEvent{Mode: EqualizerRock}}
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)
}

func TestHandlers_QueryResponses(t *testing.T) {
	var (
		playing bool
		eq      Equalizer
		mode    PlaybackMode
		count   uint16
		track   uint16
		dev     Device
		code    ErrorCode
		state   bool
	)
	h := &Handlers{
		OnStatus:       func(p bool) { playing = p },
		OnEqualizer:    func(m Equalizer) { eq = m },
		OnPlaybackMode: func(m PlaybackMode) { mode = m },
		OnFileCount:    func(d Device, c uint16) { count = c },
		OnCurrentTrack: func(d Device, tr uint16) { dev, track = d, tr },
		OnError:        func(c ErrorCode) { code = c },
		OnDeviceState:  func(d Device, inserted bool) { state = inserted },
	}

	Dispatch(h, Frame{Command: CmdQueryStatus, Params: [2]byte{1, 0}})
	Dispatch(h, Frame{Command: CmdQueryEqualizer, Params: [2]byte{5, 0}})
	Dispatch(h, Frame{Command: CmdQueryPlaybackMode, Params: [2]byte{1, 0}})
	Dispatch(h, Frame{Command: CmdQueryUDiskFiles, Params: [2]byte{0, 12}})
	Dispatch(h, Frame{Command: CmdQueryFlashTrack, Params: [2]byte{0, 3}})
	Dispatch(h, Frame{Command: EvtError, Params: [2]byte{0, 1}})
	Dispatch(h, Frame{Command: EvtDeviceInserted, Params: [2]byte{0, 2}})

	assert.True(t, playing)
	assert.Equal(t, EqualizerBass, eq)
	assert.Equal(t, PlaybackFolderRepeat, mode)
	assert.Equal(t, uint16(12), count)
	assert.Equal(t, DeviceFlash, dev)
	assert.Equal(t, uint16(3), track)
	assert.Equal(t, ErrorFrameNotReceived, code)
	assert.True(t, state)
}
