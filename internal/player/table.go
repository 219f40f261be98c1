package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muurk/dfplayer/internal/protocol"
)

// Command is a named operation that can be invoked with string arguments,
// as typed on the command line or received over the bridge.
type Command struct {
	Name  string
	Args  string // Usage of the arguments, empty when none are taken
	Help  string
	Run   func(p *Player, args []string) error
	nargs int
}

// Usage returns the name followed by the argument usage
func (c Command) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// Commands lists every operation a Player supports, in display order
var Commands = []Command{
	{Name: "play", Help: "Start or resume playback", Run: noArgs((*Player).Play)},
	{Name: "pause", Help: "Pause playback", Run: noArgs((*Player).Pause)},
	{Name: "next", Help: "Skip to the next track", Run: noArgs((*Player).NextTrack)},
	{Name: "previous", Help: "Skip to the previous track", Run: noArgs((*Player).PreviousTrack)},
	{Name: "track", Args: "<0-2999>", Help: "Play a track by number", nargs: 1, Run: func(p *Player, args []string) error {
		n, err := parseUint(args[0], 16)
		if err != nil {
			return err
		}
		return p.SetTrack(uint16(n))
	}},
	{Name: "folder", Args: "<0-10>", Help: "Select a folder", nargs: 1, Run: func(p *Player, args []string) error {
		n, err := parseUint(args[0], 8)
		if err != nil {
			return err
		}
		return p.SetFolder(uint8(n))
	}},
	{Name: "source", Args: "<udisk|tf|pc|flash>", Help: "Select the playback device", nargs: 1, Run: func(p *Player, args []string) error {
		d, err := protocol.ParseDevice(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return p.SetPlaybackSource(d)
	}},
	{Name: "repeat", Args: "<on|off>", Help: "Enable or disable repeat playback", nargs: 1, Run: func(p *Player, args []string) error {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return p.EnableRepeat(on)
	}},
	{Name: "eq", Args: "<normal|pop|rock|jazz|classical|bass>", Help: "Select an equalizer preset", nargs: 1, Run: func(p *Player, args []string) error {
		eq, err := protocol.ParseEqualizer(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return p.SetEqualizer(eq)
	}},
	{Name: "mode", Args: "<repeat|folder-repeat|single-repeat|random>", Help: "Select the playback mode", nargs: 1, Run: func(p *Player, args []string) error {
		m, err := protocol.ParsePlaybackMode(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return p.SetPlaybackMode(m)
	}},
	{Name: "volume", Args: "<0-30>", Help: "Set the volume", nargs: 1, Run: func(p *Player, args []string) error {
		n, err := parseUint(args[0], 8)
		if err != nil {
			return err
		}
		return p.SetVolume(uint8(n))
	}},
	{Name: "volume-up", Help: "Raise the volume one step", Run: noArgs((*Player).VolumeUp)},
	{Name: "volume-down", Help: "Lower the volume one step", Run: noArgs((*Player).VolumeDown)},
	{Name: "standby", Args: "<on|off>", Help: "Enter or leave standby", nargs: 1, Run: func(p *Player, args []string) error {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return p.SetStandby(on)
	}},
	{Name: "reset", Help: "Restart the module", Run: noArgs((*Player).Reset)},
	{Name: "status", Help: "Query whether the module is playing", Run: noArgs((*Player).QueryStatus)},
	{Name: "get-volume", Help: "Query the volume", Run: noArgs((*Player).QueryVolume)},
	{Name: "get-eq", Help: "Query the equalizer preset", Run: noArgs((*Player).QueryEqualizer)},
	{Name: "get-mode", Help: "Query the playback mode", Run: noArgs((*Player).QueryPlaybackMode)},
	{Name: "files", Args: "<udisk|tf|flash>", Help: "Query the file count on a device", nargs: 1, Run: func(p *Player, args []string) error {
		d, err := protocol.ParseDevice(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return p.QueryFileCount(d)
	}},
	{Name: "current", Args: "<udisk|tf|flash>", Help: "Query the current track on a device", nargs: 1, Run: func(p *Player, args []string) error {
		d, err := protocol.ParseDevice(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadArguments, err)
		}
		return p.QueryCurrentTrack(d)
	}},
}

// Lookup finds a command by name, case-insensitively
func Lookup(name string) (Command, bool) {
	for _, c := range Commands {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Command{}, false
}

// Names returns all command names in display order
func Names() []string {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	return names
}

// Execute runs a named command against p
func Execute(p *Player, name string, args ...string) error {
	cmd, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if len(args) != cmd.nargs {
		return fmt.Errorf("%w: usage: %s", ErrBadArguments, cmd.Usage())
	}
	return cmd.Run(p, args)
}

func noArgs(fn func(*Player) error) func(*Player, []string) error {
	return func(p *Player, _ []string) error {
		return fn(p)
	}
}

func parseUint(s string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a valid %d-bit number", ErrBadArguments, s, bits)
	}
	return n, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1", "enable":
		return true, nil
	case "off", "false", "no", "0", "disable":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not on or off", ErrBadArguments, s)
	}
}
