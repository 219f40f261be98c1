package protocol

import "fmt"

// FrameErrorKind represents the part of a frame that failed validation
type FrameErrorKind int

const (
	// FrameErrSize indicates the buffer is not exactly one frame long
	FrameErrSize FrameErrorKind = iota
	// FrameErrStart indicates a wrong start marker
	FrameErrStart
	// FrameErrVersion indicates a wrong version byte
	FrameErrVersion
	// FrameErrLength indicates a wrong data length byte
	FrameErrLength
	// FrameErrEnd indicates a wrong end marker
	FrameErrEnd
	// FrameErrChecksum indicates the checksum does not match the data bytes
	FrameErrChecksum
)

// String returns a human-readable name for the error kind
func (k FrameErrorKind) String() string {
	switch k {
	case FrameErrSize:
		return "frame size"
	case FrameErrStart:
		return "start marker"
	case FrameErrVersion:
		return "version"
	case FrameErrLength:
		return "data length"
	case FrameErrEnd:
		return "end marker"
	case FrameErrChecksum:
		return "checksum"
	default:
		return fmt.Sprintf("FrameErrorKind(%d)", int(k))
	}
}

// FrameError describes why a buffer could not be decoded as a frame
type FrameError struct {
	Kind   FrameErrorKind
	Offset int // Byte offset of the offending field
	Got    int
	Want   int
}

// Error implements the error interface
func (e *FrameError) Error() string {
	switch e.Kind {
	case FrameErrSize:
		return fmt.Sprintf("invalid frame size: %d bytes (expected %d)", e.Got, e.Want)
	case FrameErrChecksum:
		return fmt.Sprintf("checksum mismatch: calculated 0x%04x, frame carries 0x%04x", e.Got, e.Want)
	default:
		return fmt.Sprintf("invalid %s at offset %d: 0x%02x (expected 0x%02x)", e.Kind, e.Offset, e.Got, e.Want)
	}
}
