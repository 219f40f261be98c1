package protocol

// EventHandler receives decoded events. Implementations are called
// synchronously from the receive path and must not block.
type EventHandler interface {
	HandleEvent(e Event)
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc func(e Event)

// HandleEvent calls f(e)
func (f EventHandlerFunc) HandleEvent(e Event) { f(e) }

// Handlers routes each event category to an optional callback. Categories
// without a callback are dropped.
type Handlers struct {
	OnInitialize    func(devicesOnline Device)
	OnTrackFinished func(track uint16, device Device)
	OnDeviceState   func(device Device, inserted bool)
	OnError         func(code ErrorCode)
	OnReply         func()

	OnStatus       func(playing bool)
	OnVolume       func(volume uint8)
	OnEqualizer    func(mode Equalizer)
	OnPlaybackMode func(mode PlaybackMode)
	OnFileCount    func(device Device, count uint16)
	OnCurrentTrack func(device Device, track uint16)
}

// HandleEvent implements EventHandler
func (h *Handlers) HandleEvent(e Event) {
	switch ev := e.(type) {
	case InitializedEvent:
		if h.OnInitialize != nil {
			h.OnInitialize(ev.DevicesOnline)
		}
	case TrackFinishedEvent:
		if h.OnTrackFinished != nil {
			h.OnTrackFinished(ev.Track, ev.Device)
		}
	case DeviceStateEvent:
		if h.OnDeviceState != nil {
			h.OnDeviceState(ev.Device, ev.Inserted)
		}
	case ErrorEvent:
		if h.OnError != nil {
			h.OnError(ev.Code)
		}
	case ReplyEvent:
		if h.OnReply != nil {
			h.OnReply()
		}
	case StatusEvent:
		if h.OnStatus != nil {
			h.OnStatus(ev.Playing)
		}
	case VolumeEvent:
		if h.OnVolume != nil {
			h.OnVolume(ev.Volume)
		}
	case EqualizerEvent:
		if h.OnEqualizer != nil {
			h.OnEqualizer(ev.Mode)
		}
	case PlaybackModeEvent:
		if h.OnPlaybackMode != nil {
			h.OnPlaybackMode(ev.Mode)
		}
	case FileCountEvent:
		if h.OnFileCount != nil {
			h.OnFileCount(ev.Device, ev.Count)
		}
	case CurrentTrackEvent:
		if h.OnCurrentTrack != nil {
			h.OnCurrentTrack(ev.Device, ev.Track)
		}
	}
}

// MultiHandler fans an event out to several handlers in order
type MultiHandler []EventHandler

// HandleEvent implements EventHandler
func (m MultiHandler) HandleEvent(e Event) {
	for _, h := range m {
		if h != nil {
			h.HandleEvent(e)
		}
	}
}

// Dispatch decodes a validated frame and hands the event to h. It returns
// the event, or nil when the command code is not recognized.
func Dispatch(h EventHandler, f Frame) Event {
	e := Decode(f)
	if e == nil {
		return nil
	}
	if h != nil {
		h.HandleEvent(e)
	}
	return e
}
