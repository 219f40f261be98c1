package player

import (
	"fmt"
	"testing"

	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		command byte
		params  [2]byte
	}{
		{name: "play", command: protocol.CmdPlay},
		{name: "PLAY", command: protocol.CmdPlay},
		{name: "track", args: []string{"42"}, command: protocol.CmdSetTrack, params: [2]byte{0, 42}},
		{name: "track", args: []string{"0x0bb7"}, command: protocol.CmdSetTrack, params: [2]byte{0x0b, 0xb7}},
		{name: "volume", args: []string{"20"}, command: protocol.CmdSetVolume, params: [2]byte{0, 20}},
		{name: "volume", args: []string{"31"}, wantErr: ErrVolumeOutOfRange},
		{name: "volume", args: []string{"300"}, wantErr: ErrBadArguments},
		{name: "volume", wantErr: ErrBadArguments},
		{name: "eq", args: []string{"jazz"}, command: protocol.CmdSetEqualizer, params: [2]byte{0, 3}},
		{name: "eq", args: []string{"loud"}, wantErr: ErrBadArguments},
		{name: "mode", args: []string{"single-repeat"}, command: protocol.CmdSetPlaybackMode, params: [2]byte{0, 2}},
		{name: "folder", args: []string{"0"}, command: protocol.CmdSetFolder},
		{name: "folder", args: []string{"10"}, command: protocol.CmdSetFolder, params: [2]byte{0, 10}},
		{name: "source", args: []string{"flash"}, command: protocol.CmdSetPlaybackSource, params: [2]byte{0, 8}},
		{name: "repeat", args: []string{"off"}, command: protocol.CmdRepeat},
		{name: "repeat", args: []string{"maybe"}, wantErr: ErrBadArguments},
		{name: "standby", args: []string{"on"}, command: protocol.CmdStandby},
		{name: "files", args: []string{"udisk"}, command: protocol.CmdQueryUDiskFiles},
		{name: "files", args: []string{"pc"}, wantErr: ErrUnsupportedDevice},
		{name: "current", args: []string{"sd"}, command: protocol.CmdQueryTFCardTrack},
		{name: "play", args: []string{"extra"}, wantErr: ErrBadArguments},
		{name: "rewind", wantErr: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			p := New(nil, rec)

			err := Execute(p, tt.name, tt.args...)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, rec.frames)
				return
			}
			require.NoError(t, err)
			f := rec.last(t)
			assert.Equal(t, tt.command, f.Command)
			assert.Equal(t, tt.params, f.Params)
		})
	}
}

func TestCommands_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range Names() {
		assert.False(t, seen[name], "duplicate command %q", name)
		seen[name] = true
		c, ok := Lookup(name)
		require.True(t, ok)
		assert.NotEmpty(t, c.Help)
		assert.NotNil(t, c.Run)
	}
	assert.Len(t, seen, len(Commands))
}

func TestCommand_Usage(t *testing.T) {
	c, ok := Lookup("volume")
	require.True(t, ok)
	assert.Equal(t, "volume <0-30>", c.Usage())

	c, ok = Lookup("play")
	require.True(t, ok)
	assert.Equal(t, "play", c.Usage())
}

func TestLookup_FolderUsageMatchesBound(t *testing.T) {
	cmd, ok := Lookup("folder")
	require.True(t, ok)
	assert.Equal(t, fmt.Sprintf("<0-%d>", MaxFolder), cmd.Args)
}
