package tui

import (
	"strconv"

	"github.com/muurk/dfplayer/internal/player"
	"github.com/muurk/dfplayer/internal/protocol"
)

// PlayerState is what the controller knows about the module. Nil fields have
// not been reported yet.
type PlayerState struct {
	Online       protocol.Device
	Playing      *bool
	Volume       *uint8
	Equalizer    *protocol.Equalizer
	Mode         *protocol.PlaybackMode
	Current      *protocol.CurrentTrackEvent
	LastFinished *protocol.TrackFinishedEvent
	FileCounts   map[protocol.Device]uint16
	LastError    *protocol.ErrorCode
}

// Apply folds an event into the state
func (s *PlayerState) Apply(e protocol.Event) {
	switch ev := e.(type) {
	case protocol.InitializedEvent:
		s.Online = ev.DevicesOnline
	case protocol.DeviceStateEvent:
		if ev.Inserted {
			s.Online |= ev.Device
		} else {
			s.Online &^= ev.Device
			delete(s.FileCounts, ev.Device)
		}
	case protocol.TrackFinishedEvent:
		s.LastFinished = &ev
	case protocol.ErrorEvent:
		s.LastError = &ev.Code
	case protocol.StatusEvent:
		s.Playing = &ev.Playing
	case protocol.VolumeEvent:
		s.Volume = &ev.Volume
	case protocol.EqualizerEvent:
		s.Equalizer = &ev.Mode
	case protocol.PlaybackModeEvent:
		s.Mode = &ev.Mode
	case protocol.FileCountEvent:
		if s.FileCounts == nil {
			s.FileCounts = make(map[protocol.Device]uint16)
		}
		s.FileCounts[ev.Device] = ev.Count
	case protocol.CurrentTrackEvent:
		s.Current = &ev
	}
}

// ApplyCommand records the expected effect of a command the module accepted.
// The module does not report these changes on its own.
func (s *PlayerState) ApplyCommand(name string, args []string) {
	switch name {
	case "play":
		playing := true
		s.Playing = &playing
	case "pause":
		playing := false
		s.Playing = &playing
	case "volume":
		if len(args) == 1 {
			if n, err := strconv.ParseUint(args[0], 0, 8); err == nil && n <= player.MaxVolume {
				v := uint8(n)
				s.Volume = &v
			}
		}
	case "volume-up":
		if s.Volume != nil && *s.Volume < player.MaxVolume {
			v := *s.Volume + 1
			s.Volume = &v
		}
	case "volume-down":
		if s.Volume != nil && *s.Volume > 0 {
			v := *s.Volume - 1
			s.Volume = &v
		}
	case "eq":
		if len(args) == 1 {
			if eq, err := protocol.ParseEqualizer(args[0]); err == nil {
				s.Equalizer = &eq
			}
		}
	case "mode":
		if len(args) == 1 {
			if mode, err := protocol.ParsePlaybackMode(args[0]); err == nil {
				s.Mode = &mode
			}
		}
	}
}

// NextEqualizer returns the preset after the current one
func (s *PlayerState) NextEqualizer() protocol.Equalizer {
	if s.Equalizer == nil {
		return protocol.EqualizerPop
	}
	return (*s.Equalizer + 1) % (protocol.EqualizerBass + 1)
}

// NextMode returns the playback mode after the current one
func (s *PlayerState) NextMode() protocol.PlaybackMode {
	if s.Mode == nil {
		return protocol.PlaybackFolderRepeat
	}
	return (*s.Mode + 1) % (protocol.PlaybackRandom + 1)
}
