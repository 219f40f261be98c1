package protocol

import (
	"fmt"
	"strings"
)

// Device is a bitmask of storage sources on the module
type Device uint16

// Storage device flags
const (
	DeviceUDisk  Device = 0x0001
	DeviceTFCard Device = 0x0002
	DevicePC     Device = 0x0004
	DeviceFlash  Device = 0x0008
)

var deviceNames = []struct {
	flag Device
	name string
}{
	{DeviceUDisk, "udisk"},
	{DeviceTFCard, "tf"},
	{DevicePC, "pc"},
	{DeviceFlash, "flash"},
}

// Devices splits the bitmask into individual device flags, lowest bit first.
// Unknown bits are ignored.
func (d Device) Devices() []Device {
	var out []Device
	for _, dn := range deviceNames {
		if d&dn.flag != 0 {
			out = append(out, dn.flag)
		}
	}
	return out
}

// String returns the device names joined by "|", e.g. "udisk|tf"
func (d Device) String() string {
	if d == 0 {
		return "none"
	}
	var names []string
	rest := d
	for _, dn := range deviceNames {
		if d&dn.flag != 0 {
			names = append(names, dn.name)
			rest &^= dn.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%04x", uint16(rest)))
	}
	return strings.Join(names, "|")
}

// ParseDevice parses a single device name as printed by Device.String
func ParseDevice(s string) (Device, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "u-disk", "usb":
		name = "udisk"
	case "tfcard", "tf-card", "sd":
		name = "tf"
	}
	for _, dn := range deviceNames {
		if dn.name == name {
			return dn.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown device %q (expected udisk, tf, pc or flash)", s)
}

// ErrorCode is an error reported by the module. Codes outside the known
// set are passed through unchanged.
type ErrorCode uint16

const (
	ErrorBusy              ErrorCode = 0
	ErrorFrameNotReceived  ErrorCode = 1
	ErrorVerificationError ErrorCode = 2
)

// String returns a human-readable name for the error code
func (e ErrorCode) String() string {
	switch e {
	case ErrorBusy:
		return "busy"
	case ErrorFrameNotReceived:
		return "frame data not received"
	case ErrorVerificationError:
		return "verification error"
	default:
		return fmt.Sprintf("ErrorCode(%d)", uint16(e))
	}
}

// Equalizer is an equalizer preset
type Equalizer uint8

const (
	EqualizerNormal Equalizer = iota
	EqualizerPop
	EqualizerRock
	EqualizerJazz
	EqualizerClassical
	EqualizerBass
)

var equalizerNames = [...]string{"normal", "pop", "rock", "jazz", "classical", "bass"}

func (e Equalizer) String() string {
	if int(e) < len(equalizerNames) {
		return equalizerNames[e]
	}
	return fmt.Sprintf("Equalizer(%d)", uint8(e))
}

// ParseEqualizer parses an equalizer preset name
func ParseEqualizer(s string) (Equalizer, error) {
	for i, name := range equalizerNames {
		if strings.EqualFold(name, s) {
			return Equalizer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown equalizer %q (expected one of %s)", s, strings.Join(equalizerNames[:], ", "))
}

// PlaybackMode is the module's repeat/shuffle mode
type PlaybackMode uint8

const (
	PlaybackRepeat PlaybackMode = iota
	PlaybackFolderRepeat
	PlaybackSingleRepeat
	PlaybackRandom
)

var playbackModeNames = [...]string{"repeat", "folder-repeat", "single-repeat", "random"}

func (m PlaybackMode) String() string {
	if int(m) < len(playbackModeNames) {
		return playbackModeNames[m]
	}
	return fmt.Sprintf("PlaybackMode(%d)", uint8(m))
}

// ParsePlaybackMode parses a playback mode name
func ParsePlaybackMode(s string) (PlaybackMode, error) {
	for i, name := range playbackModeNames {
		if strings.EqualFold(name, s) {
			return PlaybackMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown playback mode %q (expected one of %s)", s, strings.Join(playbackModeNames[:], ", "))
}

// EventKind names an event category
type EventKind string

const (
	KindInitialized   EventKind = "initialized"
	KindTrackFinished EventKind = "track_finished"
	KindDeviceState   EventKind = "device_state"
	KindError         EventKind = "error"
	KindReply         EventKind = "reply"
	KindStatus        EventKind = "status"
	KindVolume        EventKind = "volume"
	KindEqualizer     EventKind = "equalizer"
	KindPlaybackMode  EventKind = "playback_mode"
	KindFileCount     EventKind = "file_count"
	KindCurrentTrack  EventKind = "current_track"
)

// Event is a decoded message from the module
type Event interface {
	Kind() EventKind
	String() string
}

// InitializedEvent (0x3f) - module finished power-up
type InitializedEvent struct {
	DevicesOnline Device `json:"devices_online"`
}

func (e InitializedEvent) Kind() EventKind { return KindInitialized }

func (e InitializedEvent) String() string {
	return fmt.Sprintf("Initialized{devices_online=%s}", e.DevicesOnline)
}

// TrackFinishedEvent (0x3c-0x3e) - a track finished playing on a device
type TrackFinishedEvent struct {
	Track  uint16 `json:"track"`
	Device Device `json:"device"`
}

func (e TrackFinishedEvent) Kind() EventKind { return KindTrackFinished }

func (e TrackFinishedEvent) String() string {
	return fmt.Sprintf("TrackFinished{track=%d, device=%s}", e.Track, e.Device)
}

// DeviceStateEvent (0x3a/0x3b) - storage inserted or removed
type DeviceStateEvent struct {
	Device   Device `json:"device"`
	Inserted bool   `json:"inserted"`
}

func (e DeviceStateEvent) Kind() EventKind { return KindDeviceState }

func (e DeviceStateEvent) String() string {
	state := "removed"
	if e.Inserted {
		state = "inserted"
	}
	return fmt.Sprintf("DeviceState{device=%s, %s}", e.Device, state)
}

// ErrorEvent (0x40) - error report
type ErrorEvent struct {
	Code ErrorCode `json:"code"`
}

func (e ErrorEvent) Kind() EventKind { return KindError }

func (e ErrorEvent) String() string {
	return fmt.Sprintf("Error{code=%d, %s}", uint16(e.Code), e.Code)
}

// ReplyEvent (0x41) - acknowledgment of a command sent with feedback
type ReplyEvent struct{}

func (e ReplyEvent) Kind() EventKind { return KindReply }

func (e ReplyEvent) String() string { return "Reply{}" }

// StatusEvent (0x42) - response to a status query
type StatusEvent struct {
	Playing bool `json:"playing"`
}

func (e StatusEvent) Kind() EventKind { return KindStatus }

func (e StatusEvent) String() string {
	return fmt.Sprintf("Status{playing=%v}", e.Playing)
}

// VolumeEvent (0x43) - response to a volume query
type VolumeEvent struct {
	Volume uint8 `json:"volume"`
}

func (e VolumeEvent) Kind() EventKind { return KindVolume }

func (e VolumeEvent) String() string {
	return fmt.Sprintf("Volume{volume=%d}", e.Volume)
}

// EqualizerEvent (0x44) - response to an equalizer query
type EqualizerEvent struct {
	Mode Equalizer `json:"mode"`
}

func (e EqualizerEvent) Kind() EventKind { return KindEqualizer }

func (e EqualizerEvent) String() string {
	return fmt.Sprintf("Equalizer{mode=%s}", e.Mode)
}

// PlaybackModeEvent (0x45) - response to a playback mode query
type PlaybackModeEvent struct {
	Mode PlaybackMode `json:"mode"`
}

func (e PlaybackModeEvent) Kind() EventKind { return KindPlaybackMode }

func (e PlaybackModeEvent) String() string {
	return fmt.Sprintf("PlaybackMode{mode=%s}", e.Mode)
}

// FileCountEvent (0x47-0x49) - number of files on a device
type FileCountEvent struct {
	Device Device `json:"device"`
	Count  uint16 `json:"count"`
}

func (e FileCountEvent) Kind() EventKind { return KindFileCount }

func (e FileCountEvent) String() string {
	return fmt.Sprintf("FileCount{device=%s, count=%d}", e.Device, e.Count)
}

// CurrentTrackEvent (0x4b-0x4d) - track currently selected on a device
type CurrentTrackEvent struct {
	Device Device `json:"device"`
	Track  uint16 `json:"track"`
}

func (e CurrentTrackEvent) Kind() EventKind { return KindCurrentTrack }

func (e CurrentTrackEvent) String() string {
	return fmt.Sprintf("CurrentTrack{device=%s, track=%d}", e.Device, e.Track)
}

// Decode translates a validated frame into an event. It returns nil for
// command codes that carry no known event, including the version query.
func Decode(f Frame) Event {
	switch f.Command {
	case EvtUDiskFinished:
		return TrackFinishedEvent{Track: f.Param16(), Device: DeviceUDisk}
	case EvtTFCardFinished:
		return TrackFinishedEvent{Track: f.Param16(), Device: DeviceTFCard}
	case EvtFlashFinished:
		return TrackFinishedEvent{Track: f.Param16(), Device: DeviceFlash}
	case EvtInitialized:
		return InitializedEvent{DevicesOnline: Device(f.Param16())}
	case EvtDeviceInserted:
		return DeviceStateEvent{Device: Device(f.Param16()), Inserted: true}
	case EvtDeviceRemoved:
		return DeviceStateEvent{Device: Device(f.Param16()), Inserted: false}
	case EvtError:
		return ErrorEvent{Code: ErrorCode(f.Param16())}
	case EvtReply:
		return ReplyEvent{}
	case CmdQueryStatus:
		return StatusEvent{Playing: f.Params[0] != 0}
	case CmdQueryVolume:
		// The 16-bit value is narrowed to a byte, keeping the low byte
		return VolumeEvent{Volume: uint8(f.Param16())}
	case CmdQueryEqualizer:
		return EqualizerEvent{Mode: Equalizer(f.Params[0])}
	case CmdQueryPlaybackMode:
		return PlaybackModeEvent{Mode: PlaybackMode(f.Params[0])}
	case CmdQueryTFCardFiles, CmdQueryUDiskFiles, CmdQueryFlashFiles:
		return FileCountEvent{Device: queryDevice(f.Command), Count: f.Param16()}
	case CmdQueryTFCardTrack, CmdQueryUDiskTrack, CmdQueryFlashTrack:
		return CurrentTrackEvent{Device: queryDevice(f.Command), Track: f.Param16()}
	default:
		return nil
	}
}

// queryDevice resolves the device a per-device query response refers to
func queryDevice(command byte) Device {
	switch command {
	case CmdQueryTFCardFiles, CmdQueryTFCardTrack:
		return DeviceTFCard
	case CmdQueryUDiskFiles, CmdQueryUDiskTrack:
		return DeviceUDisk
	case CmdQueryFlashFiles, CmdQueryFlashTrack:
		return DeviceFlash
	default:
		return 0
	}
}
