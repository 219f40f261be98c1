package player

import (
	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/protocol"
	"go.uber.org/zap"
)

// Parameter limits accepted by the module
const (
	MaxVolume = 30
	MaxTrack  = 2999
	MaxFolder = 10
)

// Play resumes or starts playback
func (p *Player) Play() error {
	return p.send(protocol.CmdPlay, 0, 0)
}

// Pause pauses playback
func (p *Player) Pause() error {
	return p.send(protocol.CmdPause, 0, 0)
}

// NextTrack skips to the next track
func (p *Player) NextTrack() error {
	return p.send(protocol.CmdNextTrack, 0, 0)
}

// PreviousTrack skips to the previous track
func (p *Player) PreviousTrack() error {
	return p.send(protocol.CmdPreviousTrack, 0, 0)
}

// SetTrack selects a track by number. Numbers above MaxTrack are logged and
// sent anyway; the module decides what to do with them.
func (p *Player) SetTrack(track uint16) error {
	if track > MaxTrack {
		logging.Warn("Track number above supported range",
			zap.Uint16("track", track),
			zap.Int("max", MaxTrack),
		)
	}
	return p.send16(protocol.CmdSetTrack, track)
}

// SetFolder selects a folder. Numbers above MaxFolder are logged and sent
// anyway.
func (p *Player) SetFolder(folder uint8) error {
	if folder > MaxFolder {
		logging.Warn("Folder number above supported range",
			zap.Uint8("folder", folder),
			zap.Int("max", MaxFolder),
		)
	}
	return p.send(protocol.CmdSetFolder, 0, folder)
}

// SetPlaybackSource selects the storage device to play from
func (p *Player) SetPlaybackSource(device protocol.Device) error {
	return p.send16(protocol.CmdSetPlaybackSource, uint16(device))
}

// EnableRepeat turns repeat playback on or off
func (p *Player) EnableRepeat(enable bool) error {
	return p.send(protocol.CmdRepeat, 0, boolByte(enable))
}

// SetEqualizer selects an equalizer preset
func (p *Player) SetEqualizer(mode protocol.Equalizer) error {
	return p.send(protocol.CmdSetEqualizer, 0, byte(mode))
}

// SetPlaybackMode selects the repeat/shuffle mode
func (p *Player) SetPlaybackMode(mode protocol.PlaybackMode) error {
	return p.send(protocol.CmdSetPlaybackMode, 0, byte(mode))
}

// VolumeUp raises the volume by one step
func (p *Player) VolumeUp() error {
	return p.send(protocol.CmdVolumeUp, 0, 0)
}

// VolumeDown lowers the volume by one step
func (p *Player) VolumeDown() error {
	return p.send(protocol.CmdVolumeDown, 0, 0)
}

// SetVolume sets an absolute volume. Values above MaxVolume are rejected
// and nothing is sent.
func (p *Player) SetVolume(volume uint8) error {
	if volume > MaxVolume {
		logging.Debug("Volume rejected",
			zap.Uint8("volume", volume),
			zap.Int("max", MaxVolume),
		)
		return ErrVolumeOutOfRange
	}
	return p.send(protocol.CmdSetVolume, 0, volume)
}

// SetStandby puts the module into standby (true) or back to normal
// operation (false)
func (p *Player) SetStandby(enable bool) error {
	if enable {
		return p.send(protocol.CmdStandby, 0, 0)
	}
	return p.send(protocol.CmdNormal, 0, 0)
}

// Reset restarts the module. It reports Initialized when it comes back.
func (p *Player) Reset() error {
	return p.send(protocol.CmdReset, 0, 0)
}

// QueryStatus asks whether the module is playing
func (p *Player) QueryStatus() error {
	return p.send(protocol.CmdQueryStatus, 0, 0)
}

// QueryVolume asks for the current volume
func (p *Player) QueryVolume() error {
	return p.send(protocol.CmdQueryVolume, 0, 0)
}

// QueryEqualizer asks for the equalizer preset
func (p *Player) QueryEqualizer() error {
	return p.send(protocol.CmdQueryEqualizer, 0, 0)
}

// QueryPlaybackMode asks for the playback mode
func (p *Player) QueryPlaybackMode() error {
	return p.send(protocol.CmdQueryPlaybackMode, 0, 0)
}

// QueryFileCount asks how many files a device holds. Only the TF card,
// U-disk and flash can be queried.
func (p *Player) QueryFileCount(device protocol.Device) error {
	var cmd byte
	switch device {
	case protocol.DeviceTFCard:
		cmd = protocol.CmdQueryTFCardFiles
	case protocol.DeviceUDisk:
		cmd = protocol.CmdQueryUDiskFiles
	case protocol.DeviceFlash:
		cmd = protocol.CmdQueryFlashFiles
	default:
		return ErrUnsupportedDevice
	}
	return p.send(cmd, 0, 0)
}

// QueryCurrentTrack asks which track is selected on a device. Only the TF
// card, U-disk and flash can be queried.
func (p *Player) QueryCurrentTrack(device protocol.Device) error {
	var cmd byte
	switch device {
	case protocol.DeviceTFCard:
		cmd = protocol.CmdQueryTFCardTrack
	case protocol.DeviceUDisk:
		cmd = protocol.CmdQueryUDiskTrack
	case protocol.DeviceFlash:
		cmd = protocol.CmdQueryFlashTrack
	default:
		return ErrUnsupportedDevice
	}
	return p.send(cmd, 0, 0)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
