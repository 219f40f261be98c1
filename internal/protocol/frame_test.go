package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty",
			data: nil,
			want: 0,
		},
		{
			name: "initialize event data bytes",
			data: []byte{0xff, 0x06, 0x3f, 0x00, 0x00, 0x01},
			want: 0xfebb,
		},
		{
			name: "play command data bytes",
			data: []byte{0xff, 0x06, 0x0d, 0x01, 0x00, 0x00},
			want: 0xfeed,
		},
		{
			name: "wraps modulo 2^16",
			data: bytes.Repeat([]byte{0xff}, 300),
			want: uint16(0x10000 - (300*0xff)%0x10000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%04x, want 0x%04x", got, tt.want)
			}
		})
	}
}

func TestBuildFrame(t *testing.T) {
	tests := []struct {
		name    string
		command byte
		param1  byte
		param2  byte
		want    []byte
	}{
		{
			name:    "play",
			command: CmdPlay,
			want:    []byte{0x7e, 0xff, 0x06, 0x0d, 0x01, 0x00, 0x00, 0xfe, 0xed, 0xef},
		},
		{
			name:    "set volume 30",
			command: CmdSetVolume,
			param2:  30,
			want:    []byte{0x7e, 0xff, 0x06, 0x06, 0x01, 0x00, 0x1e, 0xfe, 0xd6, 0xef},
		},
		{
			name:    "set track 2999",
			command: CmdSetTrack,
			param1:  0x0b,
			param2:  0xb7,
			want:    []byte{0x7e, 0xff, 0x06, 0x03, 0x01, 0x0b, 0xb7, 0xfe, 0x35, 0xef},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFrame(tt.command, tt.param1, tt.param2)
			if !bytes.Equal(got[:], tt.want) {
				t.Errorf("BuildFrame() = % x, want % x", got[:], tt.want)
			}
		})
	}
}

func TestBuildFrame_AllCommands(t *testing.T) {
	params := [][2]byte{{0, 0}, {0, 1}, {0x12, 0x34}, {0xff, 0xff}}

	for cmd := 0; cmd <= 0xff; cmd++ {
		for _, p := range params {
			frame := BuildFrame(byte(cmd), p[0], p[1])

			if len(frame) != FrameSize {
				t.Fatalf("frame size = %d, want %d", len(frame), FrameSize)
			}
			if frame[0] != StartByte || frame[1] != VersionByte || frame[2] != DataLength || frame[9] != EndByte {
				t.Fatalf("cmd 0x%02x: fixed bytes wrong: % x", cmd, frame[:])
			}
			if frame[4] != FeedbackRequest {
				t.Errorf("cmd 0x%02x: feedback = %d, want %d", cmd, frame[4], FeedbackRequest)
			}
			want := Checksum(frame[1:7])
			if got := binary.BigEndian.Uint16(frame[7:9]); got != want {
				t.Errorf("cmd 0x%02x: checksum = 0x%04x, want 0x%04x", cmd, got, want)
			}
		}
	}
}

func TestFrame_Param16(t *testing.T) {
	f := NewFrame(CmdSetTrack, 0x0bb7)

	if f.Params != [2]byte{0x0b, 0xb7} {
		t.Errorf("Params = % x, want 0b b7", f.Params)
	}
	if f.Param16() != 2999 {
		t.Errorf("Param16() = %d, want 2999", f.Param16())
	}
	if f.Feedback != FeedbackRequest {
		t.Errorf("Feedback = %d, want %d", f.Feedback, FeedbackRequest)
	}

	b := f.Bytes()
	want := BuildFrame(CmdSetTrack, 0x0b, 0xb7)
	if b != want {
		t.Errorf("Bytes() = % x, want % x", b[:], want[:])
	}
}

func TestDecodeFrame(t *testing.T) {
	valid := []byte{0x7e, 0xff, 0x06, 0x3f, 0x00, 0x00, 0x01, 0xfe, 0xbb, 0xef}

	corrupt := func(offset int, value byte) []byte {
		b := append([]byte(nil), valid...)
		b[offset] = value
		return b
	}

	tests := []struct {
		name     string
		data     []byte
		wantErr  bool
		wantKind FrameErrorKind
		want     Frame
	}{
		{
			name: "valid initialize",
			data: valid,
			want: Frame{Command: EvtInitialized, Feedback: 0, Params: [2]byte{0x00, 0x01}},
		},
		{
			name:     "too short",
			data:     valid[:9],
			wantErr:  true,
			wantKind: FrameErrSize,
		},
		{
			name:     "bad start",
			data:     corrupt(0, 0x00),
			wantErr:  true,
			wantKind: FrameErrStart,
		},
		{
			name:     "bad version",
			data:     corrupt(1, 0xfe),
			wantErr:  true,
			wantKind: FrameErrVersion,
		},
		{
			name:     "bad length",
			data:     corrupt(2, 0x07),
			wantErr:  true,
			wantKind: FrameErrLength,
		},
		{
			name:     "bad end",
			data:     corrupt(9, 0xee),
			wantErr:  true,
			wantKind: FrameErrEnd,
		},
		{
			name:     "bad checksum",
			data:     corrupt(8, 0x9a),
			wantErr:  true,
			wantKind: FrameErrChecksum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeFrame(tt.data)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeFrame() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var fe *FrameError
				if !errors.As(err, &fe) {
					t.Fatalf("error %v is not a *FrameError", err)
				}
				if fe.Kind != tt.wantKind {
					t.Errorf("Kind = %v, want %v", fe.Kind, tt.wantKind)
				}
				return
			}
			if got != tt.want {
				t.Errorf("DecodeFrame() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrameError_Error(t *testing.T) {
	tests := []struct {
		err  *FrameError
		want string
	}{
		{&FrameError{Kind: FrameErrSize, Got: 3, Want: 10}, "invalid frame size: 3 bytes (expected 10)"},
		{&FrameError{Kind: FrameErrVersion, Offset: 1, Got: 0xfe, Want: 0xff}, "invalid version at offset 1: 0xfe (expected 0xff)"},
		{&FrameError{Kind: FrameErrChecksum, Got: 0xfebb, Want: 0xff9a}, "checksum mismatch: calculated 0xfebb, frame carries 0xff9a"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandName(t *testing.T) {
	if got := CommandName(CmdPlay); got != "Play" {
		t.Errorf("CommandName(0x0d) = %q, want Play", got)
	}
	if got := CommandName(0x99); got != "Unknown(0x99)" {
		t.Errorf("CommandName(0x99) = %q, want Unknown(0x99)", got)
	}
}
