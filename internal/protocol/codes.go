package protocol

import "fmt"

// Command codes sent from the host to the module
const (
	CmdNextTrack         = 0x01
	CmdPreviousTrack     = 0x02
	CmdSetTrack          = 0x03 // 0-2999
	CmdVolumeUp          = 0x04
	CmdVolumeDown        = 0x05
	CmdSetVolume         = 0x06 // 0-30
	CmdSetEqualizer      = 0x07
	CmdSetPlaybackMode   = 0x08
	CmdSetPlaybackSource = 0x09
	CmdStandby           = 0x0a
	CmdNormal            = 0x0b
	CmdReset             = 0x0c
	CmdPlay              = 0x0d
	CmdPause             = 0x0e
	CmdSetFolder         = 0x0f // 0-10
	CmdVolumeAdjust      = 0x10
	CmdRepeat            = 0x11 // 1=enable, 0=disable
	CmdQueryStatus       = 0x42
	CmdQueryVolume       = 0x43
	CmdQueryEqualizer    = 0x44
	CmdQueryPlaybackMode = 0x45
	CmdQueryVersion      = 0x46
	CmdQueryTFCardFiles  = 0x47
	CmdQueryUDiskFiles   = 0x48
	CmdQueryFlashFiles   = 0x49
	CmdQueryTFCardTrack  = 0x4b
	CmdQueryUDiskTrack   = 0x4c
	CmdQueryFlashTrack   = 0x4d
)

// Event codes sent unsolicited by the module. Query responses reuse the
// query command code.
const (
	EvtDeviceInserted = 0x3a
	EvtDeviceRemoved  = 0x3b
	EvtUDiskFinished  = 0x3c
	EvtTFCardFinished = 0x3d
	EvtFlashFinished  = 0x3e
	EvtInitialized    = 0x3f
	EvtError          = 0x40
	EvtReply          = 0x41
)

var commandNames = map[byte]string{
	CmdNextTrack:         "NextTrack",
	CmdPreviousTrack:     "PreviousTrack",
	CmdSetTrack:          "SetTrack",
	CmdVolumeUp:          "VolumeUp",
	CmdVolumeDown:        "VolumeDown",
	CmdSetVolume:         "SetVolume",
	CmdSetEqualizer:      "SetEqualizer",
	CmdSetPlaybackMode:   "SetPlaybackMode",
	CmdSetPlaybackSource: "SetPlaybackSource",
	CmdStandby:           "Standby",
	CmdNormal:            "Normal",
	CmdReset:             "Reset",
	CmdPlay:              "Play",
	CmdPause:             "Pause",
	CmdSetFolder:         "SetFolder",
	CmdVolumeAdjust:      "VolumeAdjust",
	CmdRepeat:            "Repeat",
	EvtDeviceInserted:    "DeviceInserted",
	EvtDeviceRemoved:     "DeviceRemoved",
	EvtUDiskFinished:     "UDiskFinished",
	EvtTFCardFinished:    "TFCardFinished",
	EvtFlashFinished:     "FlashFinished",
	EvtInitialized:       "Initialized",
	EvtError:             "Error",
	EvtReply:             "Reply",
	CmdQueryStatus:       "QueryStatus",
	CmdQueryVolume:       "QueryVolume",
	CmdQueryEqualizer:    "QueryEqualizer",
	CmdQueryPlaybackMode: "QueryPlaybackMode",
	CmdQueryVersion:      "QueryVersion",
	CmdQueryTFCardFiles:  "QueryTFCardFiles",
	CmdQueryUDiskFiles:   "QueryUDiskFiles",
	CmdQueryFlashFiles:   "QueryFlashFiles",
	CmdQueryTFCardTrack:  "QueryTFCardTrack",
	CmdQueryUDiskTrack:   "QueryUDiskTrack",
	CmdQueryFlashTrack:   "QueryFlashTrack",
}

// CommandName returns a human-readable name for a command code
func CommandName(code byte) string {
	if name, ok := commandNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02x)", code)
}
