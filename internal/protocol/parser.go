package protocol

import "fmt"

// State is the position of the receive state machine within a frame.
type State uint8

const (
	StateStart        State = iota // waiting for 0x7e, discarding noise
	StateVersion                   // waiting for 0xff
	StateLength                    // waiting for 0x06
	StateCommand                   // command byte
	StateFeedback                  // feedback flag
	StateParamHigh                 // parameter[0]
	StateParamLow                  // parameter[1]
	StateChecksumHigh              // checksum high byte
	StateChecksumLow               // checksum low byte
	StateEnd                       // waiting for 0xef
)

var stateNames = [...]string{
	StateStart:        "start",
	StateVersion:      "version",
	StateLength:       "length",
	StateCommand:      "command",
	StateFeedback:     "feedback",
	StateParamHigh:    "param-high",
	StateParamLow:     "param-low",
	StateChecksumHigh: "checksum-high",
	StateChecksumLow:  "checksum-low",
	StateEnd:          "end",
}

// String returns the state name
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// DropReason tells why a byte or a frame was discarded.
type DropReason uint8

const (
	// DropNone means nothing was discarded
	DropNone DropReason = iota
	// DropNoise means a byte arrived outside of any frame
	DropNoise
	// DropVersion means the version byte did not match
	DropVersion
	// DropLength means the data length byte did not match
	DropLength
	// DropEndMarker means a complete frame ended without 0xef
	DropEndMarker
	// DropChecksum means a complete frame failed checksum verification
	DropChecksum
)

// String returns a short label, suitable as a metric label value
func (r DropReason) String() string {
	switch r {
	case DropNone:
		return "none"
	case DropNoise:
		return "noise"
	case DropVersion:
		return "version"
	case DropLength:
		return "length"
	case DropEndMarker:
		return "end_marker"
	case DropChecksum:
		return "checksum"
	default:
		return fmt.Sprintf("DropReason(%d)", uint8(r))
	}
}

// ParseResult is the outcome of one parsing step.
type ParseResult struct {
	Frame *Frame     // Set when a valid frame completed on this byte
	Drop  DropReason // Set when this byte caused a discard

	// Checksums of the frame that completed on this byte (valid or not)
	Expected   uint16
	Calculated uint16
}

// Completed reports whether a frame reached its end marker position on this step
func (r ParseResult) Completed() bool {
	return r.Frame != nil || r.Drop == DropEndMarker || r.Drop == DropChecksum
}

// Parser incrementally assembles frames from a byte stream. The zero value
// is ready to use. A Parser is not safe for concurrent use.
type Parser struct {
	state    State
	expected uint16
	running  uint16
	frame    Frame
}

// State gets the current receive state.
func (p *Parser) State() State {
	return p.state
}

// Reset discards any partial frame.
func (p *Parser) Reset() {
	*p = Parser{}
}

// Parse consumes one byte.
func (p *Parser) Parse(c byte) (pr ParseResult) {
	switch p.state {
	case StateStart:
		if c != StartByte {
			pr.Drop = DropNoise
			return
		}
		p.state = StateVersion
	case StateVersion:
		if c != VersionByte {
			return p.drop(DropVersion)
		}
		p.fold(c, StateLength)
	case StateLength:
		if c != DataLength {
			return p.drop(DropLength)
		}
		p.fold(c, StateCommand)
	case StateCommand:
		p.frame.Command = c
		p.fold(c, StateFeedback)
	case StateFeedback:
		p.frame.Feedback = c
		p.fold(c, StateParamHigh)
	case StateParamHigh:
		p.frame.Params[0] = c
		p.fold(c, StateParamLow)
	case StateParamLow:
		p.frame.Params[1] = c
		p.fold(c, StateChecksumHigh)
	case StateChecksumHigh:
		p.expected = uint16(c) << 8
		p.state = StateChecksumLow
	case StateChecksumLow:
		p.expected |= uint16(c)
		p.state = StateEnd
	case StateEnd:
		pr.Expected, pr.Calculated = p.expected, p.running
		frame := p.frame
		switch {
		case c != EndByte:
			pr.Drop = DropEndMarker
		case p.running != p.expected:
			pr.Drop = DropChecksum
		default:
			pr.Frame = &frame
		}
		p.Reset()
	default:
		p.Reset()
	}
	return
}

// fold adds a data byte to the running checksum and advances.
func (p *Parser) fold(c byte, next State) {
	p.running -= uint16(c)
	p.state = next
}

func (p *Parser) drop(reason DropReason) ParseResult {
	p.Reset()
	return ParseResult{Drop: reason}
}
