package protocol

import (
	"encoding/binary"
	"fmt"
)

// Frame layout constants
const (
	StartByte   = 0x7e
	VersionByte = 0xff
	DataLength  = 0x06 // version through parameter-low
	EndByte     = 0xef

	FrameSize = 10
)

// Feedback flag values (byte 4)
const (
	FeedbackNone    = 0x00
	FeedbackRequest = 0x01
)

// Frame is the decoded content of a 10-byte wire frame. The fixed markers
// and the checksum are implied.
type Frame struct {
	Command  byte
	Feedback byte
	Params   [2]byte // Params[0] is the high byte of a 16-bit value
}

// NewFrame creates a frame carrying a 16-bit parameter, high byte first
func NewFrame(command byte, value uint16) Frame {
	f := Frame{Command: command, Feedback: FeedbackRequest}
	binary.BigEndian.PutUint16(f.Params[:], value)
	return f
}

// Param16 returns both parameter bytes as a big-endian 16-bit value
func (f Frame) Param16() uint16 {
	return binary.BigEndian.Uint16(f.Params[:])
}

// Bytes encodes the frame, including markers and checksum
func (f Frame) Bytes() [FrameSize]byte {
	return encodeFrame(f.Command, f.Feedback, f.Params[0], f.Params[1])
}

// String returns a debug representation of the frame
func (f Frame) String() string {
	return fmt.Sprintf("Frame{cmd=%s (0x%02x), feedback=%d, params=%02x %02x}",
		CommandName(f.Command), f.Command, f.Feedback, f.Params[0], f.Params[1])
}

// BuildFrame builds an outbound frame with the feedback flag set, so the
// module acknowledges it with a reply.
//
// Frame structure:
//
//	[0]   0x7e      Start marker
//	[1]   0xff      Version
//	[2]   0x06      Data length
//	[3]   command   Command code
//	[4]   0x01      Feedback requested
//	[5]   param1    Parameter high byte
//	[6]   param2    Parameter low byte
//	[7-8] checksum  Negated sum of bytes 1-6 (big-endian)
//	[9]   0xef      End marker
func BuildFrame(command, param1, param2 byte) [FrameSize]byte {
	return encodeFrame(command, FeedbackRequest, param1, param2)
}

func encodeFrame(command, feedback, param1, param2 byte) [FrameSize]byte {
	var b [FrameSize]byte
	b[0] = StartByte
	b[1] = VersionByte
	b[2] = DataLength
	b[3] = command
	b[4] = feedback
	b[5] = param1
	b[6] = param2
	binary.BigEndian.PutUint16(b[7:9], Checksum(b[1:7]))
	b[9] = EndByte
	return b
}

// Checksum computes the protocol checksum: the two's-complement negation of
// the byte sum, modulo 2^16. The start marker is never included.
func Checksum(data []byte) uint16 {
	var sum uint16
	for _, c := range data {
		sum -= uint16(c)
	}
	return sum
}

// DecodeFrame decodes one complete 10-byte frame from a buffer. Unlike the
// Parser it reports why a frame is rejected.
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) != FrameSize {
		return Frame{}, &FrameError{Kind: FrameErrSize, Offset: len(data), Got: len(data), Want: FrameSize}
	}

	markers := []struct {
		offset int
		want   byte
		kind   FrameErrorKind
	}{
		{0, StartByte, FrameErrStart},
		{1, VersionByte, FrameErrVersion},
		{2, DataLength, FrameErrLength},
		{9, EndByte, FrameErrEnd},
	}
	for _, m := range markers {
		if data[m.offset] != m.want {
			return Frame{}, &FrameError{Kind: m.kind, Offset: m.offset, Got: int(data[m.offset]), Want: int(m.want)}
		}
	}

	want := binary.BigEndian.Uint16(data[7:9])
	if got := Checksum(data[1:7]); got != want {
		return Frame{}, &FrameError{Kind: FrameErrChecksum, Offset: 7, Got: int(got), Want: int(want)}
	}

	return Frame{
		Command:  data[3],
		Feedback: data[4],
		Params:   [2]byte{data[5], data[6]},
	}, nil
}
