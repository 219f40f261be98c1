package player

import (
	"testing"

	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_Encoding(t *testing.T) {
	tests := []struct {
		name    string
		call    func(p *Player) error
		command byte
		params  [2]byte
	}{
		{"play", (*Player).Play, protocol.CmdPlay, [2]byte{0, 0}},
		{"pause", (*Player).Pause, protocol.CmdPause, [2]byte{0, 0}},
		{"next", (*Player).NextTrack, protocol.CmdNextTrack, [2]byte{0, 0}},
		{"previous", (*Player).PreviousTrack, protocol.CmdPreviousTrack, [2]byte{0, 0}},
		{"track", func(p *Player) error { return p.SetTrack(2999) }, protocol.CmdSetTrack, [2]byte{0x0b, 0xb7}},
		{"folder", func(p *Player) error { return p.SetFolder(7) }, protocol.CmdSetFolder, [2]byte{0, 7}},
		{"source tf", func(p *Player) error { return p.SetPlaybackSource(protocol.DeviceTFCard) }, protocol.CmdSetPlaybackSource, [2]byte{0, 2}},
		{"repeat on", func(p *Player) error { return p.EnableRepeat(true) }, protocol.CmdRepeat, [2]byte{0, 1}},
		{"repeat off", func(p *Player) error { return p.EnableRepeat(false) }, protocol.CmdRepeat, [2]byte{0, 0}},
		{"equalizer", func(p *Player) error { return p.SetEqualizer(protocol.EqualizerBass) }, protocol.CmdSetEqualizer, [2]byte{0, 5}},
		{"playback mode", func(p *Player) error { return p.SetPlaybackMode(protocol.PlaybackRandom) }, protocol.CmdSetPlaybackMode, [2]byte{0, 3}},
		{"volume up", (*Player).VolumeUp, protocol.CmdVolumeUp, [2]byte{0, 0}},
		{"volume down", (*Player).VolumeDown, protocol.CmdVolumeDown, [2]byte{0, 0}},
		{"volume 30", func(p *Player) error { return p.SetVolume(30) }, protocol.CmdSetVolume, [2]byte{0, 30}},
		{"volume 0", func(p *Player) error { return p.SetVolume(0) }, protocol.CmdSetVolume, [2]byte{0, 0}},
		{"standby", func(p *Player) error { return p.SetStandby(true) }, protocol.CmdStandby, [2]byte{0, 0}},
		{"normal", func(p *Player) error { return p.SetStandby(false) }, protocol.CmdNormal, [2]byte{0, 0}},
		{"reset", (*Player).Reset, protocol.CmdReset, [2]byte{0, 0}},
		{"query status", (*Player).QueryStatus, protocol.CmdQueryStatus, [2]byte{0, 0}},
		{"query volume", (*Player).QueryVolume, protocol.CmdQueryVolume, [2]byte{0, 0}},
		{"query equalizer", (*Player).QueryEqualizer, protocol.CmdQueryEqualizer, [2]byte{0, 0}},
		{"query mode", (*Player).QueryPlaybackMode, protocol.CmdQueryPlaybackMode, [2]byte{0, 0}},
		{"files tf", func(p *Player) error { return p.QueryFileCount(protocol.DeviceTFCard) }, protocol.CmdQueryTFCardFiles, [2]byte{0, 0}},
		{"files udisk", func(p *Player) error { return p.QueryFileCount(protocol.DeviceUDisk) }, protocol.CmdQueryUDiskFiles, [2]byte{0, 0}},
		{"files flash", func(p *Player) error { return p.QueryFileCount(protocol.DeviceFlash) }, protocol.CmdQueryFlashFiles, [2]byte{0, 0}},
		{"track tf", func(p *Player) error { return p.QueryCurrentTrack(protocol.DeviceTFCard) }, protocol.CmdQueryTFCardTrack, [2]byte{0, 0}},
		{"track udisk", func(p *Player) error { return p.QueryCurrentTrack(protocol.DeviceUDisk) }, protocol.CmdQueryUDiskTrack, [2]byte{0, 0}},
		{"track flash", func(p *Player) error { return p.QueryCurrentTrack(protocol.DeviceFlash) }, protocol.CmdQueryFlashTrack, [2]byte{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			p := New(nil, rec)

			require.NoError(t, tt.call(p))

			require.Len(t, rec.frames, 1)
			assert.Len(t, rec.frames[0], protocol.FrameSize)
			f := rec.last(t)
			assert.Equal(t, tt.command, f.Command)
			assert.Equal(t, byte(protocol.FeedbackRequest), f.Feedback)
			assert.Equal(t, tt.params, f.Params)
		})
	}
}

func TestSetVolume_OutOfRange(t *testing.T) {
	rec := &recorder{}
	p := New(nil, rec)

	err := p.SetVolume(31)

	assert.ErrorIs(t, err, ErrVolumeOutOfRange)
	assert.Empty(t, rec.frames)
}

func TestSetTrack_OutOfRangeStillSent(t *testing.T) {
	rec := &recorder{}
	p := New(nil, rec)

	require.NoError(t, p.SetTrack(3000))
	assert.Equal(t, uint16(3000), rec.last(t).Param16())

	require.NoError(t, p.SetFolder(11))
	assert.Equal(t, [2]byte{0, 11}, rec.last(t).Params)
}

func TestQuery_UnsupportedDevice(t *testing.T) {
	rec := &recorder{}
	p := New(nil, rec)

	for _, d := range []protocol.Device{protocol.DevicePC, 0, protocol.DeviceTFCard | protocol.DeviceUDisk} {
		assert.ErrorIs(t, p.QueryFileCount(d), ErrUnsupportedDevice, d.String())
		assert.ErrorIs(t, p.QueryCurrentTrack(d), ErrUnsupportedDevice, d.String())
	}
	assert.Empty(t, rec.frames)
}
