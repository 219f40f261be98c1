package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
	"github.com/muurk/dfplayer/internal/ui"
)

func TestParseHex(t *testing.T) {
	want := []byte{0x7e, 0xff, 0x06, 0x3f, 0x00, 0x00, 0x01, 0xfe, 0xbb, 0xef}

	tests := []struct {
		name string
		args []string
	}{
		{"separate args", []string{"7e", "ff", "06", "3f", "00", "00", "01", "fe", "bb", "ef"}},
		{"one run", []string{"7eff063f000001febbef"}},
		{"colons", []string{"7e:ff:06:3f:00:00:01:fe:bb:ef"}},
		{"prefixed and commas", []string{"0x7e,0xff,0x06,0x3f,0x00,0x00,0x01,0xfe,0xbb,0xef"}},
		{"upper case", []string{"7E FF 06 3F 00 00 01 FE BB EF"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHex(tt.args)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := parseHex([]string{"7e f"})
	assert.Error(t, err, "odd length")
	_, err = parseHex([]string{"zz"})
	assert.Error(t, err)
	_, err = parseHex([]string{" , "})
	assert.Error(t, err, "empty input")
}

func TestEncodeCommand(t *testing.T) {
	frames, err := encodeCommand("volume", []string{"20"})
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "7e ff 06 06 01 00 14 fe e0 ef", ui.FormatHex(frames[0]))

	frames, err = encodeCommand("track", []string{"0xbb7"})
	require.NoError(t, err)
	assert.Equal(t, "7e ff 06 03 01 0b b7 fe 35 ef", ui.FormatHex(frames[0]))

	_, err = encodeCommand("volume", []string{"31"})
	assert.ErrorIs(t, err, player.ErrVolumeOutOfRange)

	_, err = encodeCommand("shuffle", nil)
	assert.ErrorIs(t, err, player.ErrUnknownCommand)
}

func TestDecodeStream(t *testing.T) {
	data, err := parseHex([]string{
		"00 12",                         // noise
		"7e ff 06 3d 00 00 05 fe b9 ef", // tf finished 5
		"7e ff 06 3c 00 00 05 fe 00 ef", // bad checksum
		"7e ff 06 43 00 00 14 fe a4 ef", // volume 20
		"7e ff 06",                      // cut short
	})
	require.NoError(t, err)

	var out bytes.Buffer
	stats := decodeStream(data, ui.NewPrinter(&out).SetColor(false), true)

	assert.Equal(t, decodeStats{
		Bytes:   len(data),
		Frames:  2,
		Dropped: 1,
		Noise:   2,
		State:   protocol.StateCommand,
	}, stats)
	assert.Equal(t, "35 bytes: 2 frames, 1 dropped, 2 noise bytes (incomplete frame at end, state command)", stats.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "rx 7e ff 06 3d")
	assert.Contains(t, lines[1], "track=5 device=tf")
	assert.Contains(t, lines[2], "reason=checksum")
	assert.Contains(t, lines[3], "rx 7e ff 06 43")
	assert.Contains(t, lines[4], "volume=20")
}

func TestDecodeStream_Quiet(t *testing.T) {
	data, err := parseHex([]string{"7e ff 06 3d 00 00 05 fe b9 ef 7e ff 06 3c 00 00 05 fe 00 ef"})
	require.NoError(t, err)

	var out bytes.Buffer
	stats := decodeStream(data, ui.NewPrinter(&out).SetColor(false), false)

	assert.Equal(t, 1, stats.Frames)
	assert.Equal(t, 1, stats.Dropped)
	assert.Equal(t, 1, strings.Count(out.String(), "\n"), "only the event is printed")
}

func TestCommandList(t *testing.T) {
	list := commandList()
	for _, name := range player.Names() {
		assert.Contains(t, list, "  "+name)
	}
	assert.Contains(t, list, "volume <0-30>")
}

func TestReportSend(t *testing.T) {
	tests := []struct {
		name     string
		tty      bool
		err      error
		contains []string
	}{
		{
			name:     "success",
			tty:      true,
			contains: []string{"Command sent", "volume", "20"},
		},
		{
			name:     "failure shows troubleshooting",
			tty:      true,
			err:      errors.New("port busy"),
			contains: []string{"FAILED", "busy", "dialout"},
		},
		{
			name: "silent without a terminal",
			err:  errors.New("port busy"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportSend(&buf, tt.tty, "/dev/ttyUSB0", []string{"volume", "20"}, tt.err)

			if len(tt.contains) == 0 {
				assert.Empty(t, buf.String())
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
