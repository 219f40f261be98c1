package bridge

import (
	"encoding/json"

	"github.com/muurk/dfplayer/internal/protocol"
)

// KindResult tags the reply to a client request
const KindResult = "result"

// Envelope is every message the bridge sends to clients. Events carry the
// event kind; replies to requests carry KindResult.
type Envelope struct {
	Kind  string         `json:"kind"`
	Event protocol.Event `json:"event,omitempty"`

	ID    string `json:"id,omitempty"`
	OK    *bool  `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// Request is a command sent by a client, named as in player.Commands
type Request struct {
	ID      string   `json:"id,omitempty"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// EncodeEvent wraps an event in an envelope
func EncodeEvent(e protocol.Event) ([]byte, error) {
	return json.Marshal(Envelope{Kind: string(e.Kind()), Event: e})
}

// encodeResult builds the reply to a request
func encodeResult(id string, err error) ([]byte, error) {
	ok := err == nil
	env := Envelope{Kind: KindResult, ID: id, OK: &ok}
	if err != nil {
		env.Error = err.Error()
	}
	return json.Marshal(env)
}
