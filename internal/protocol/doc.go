// Package protocol implements the DFPlayer Mini serial protocol.
//
// This package handles construction, incremental parsing, validation, and
// decoding of the fixed 10-byte frames exchanged with the module over a
// 9600 baud 8N1 serial link.
//
// # Frame Format
//
// Every frame, in both directions, has this structure:
//
//	offset: 0     1     2     3     4     5     6     7     8     9
//	byte:   0x7e  0xff  0x06  CMD   FBK   P1    P2    CKH   CKL   0xef
//
//   - CMD: command or event code
//   - FBK: 0x01 when the sender wants a reply (0x41), 0x00 otherwise
//   - P1, P2: parameter, big-endian when it carries a 16-bit value
//   - CKH, CKL: big-endian checksum, the negated 16-bit sum of bytes 1-6
//
// # Usage Example - Construction
//
//	frame := protocol.BuildFrame(protocol.CmdSetVolume, 0, 20)
//	_, err := port.Write(frame[:])
//
// # Usage Example - Parsing
//
//	var p protocol.Parser
//	for _, c := range received {
//	    res := p.Parse(c)
//	    if res.Frame != nil {
//	        protocol.Dispatch(handler, *res.Frame)
//	    }
//	}
//
// # Receive State Machine
//
// The Parser walks ten states, one per frame offset. The first three states
// match fixed bytes: garbage before a start marker is discarded one byte at
// a time, and a wrong version or length byte restarts the search, so a
// corrupt byte never desynchronizes the frame that follows it. Only bytes
// 1-6 are folded into the running checksum. A frame is delivered only if the
// end marker is present and the checksums agree; otherwise it is dropped
// silently and the ParseResult carries the DropReason.
//
// # Events
//
// Decode maps validated frames to typed events: track finished (one code per
// storage device), initialization, device inserted/removed, error reports,
// replies, and the responses to the six queries. Unknown codes decode to nil.
//
// # Thread Safety
//
// BuildFrame, Checksum, DecodeFrame and Decode are stateless and safe for
// concurrent use. A Parser holds per-stream state and must not be shared
// between goroutines without external locking.
package protocol
