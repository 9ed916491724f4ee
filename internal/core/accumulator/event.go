// Package accumulator turns frames and multi-document bodies received from
// Watson into typed events.
package accumulator

import (
	"encoding/json"

	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

// EventKind identifies what an Event carries
type EventKind string

const (
	// EventConnected is raised once the websocket handshake completes
	EventConnected EventKind = "connected"
	// EventAudioData carries one binary frame of synthesized audio
	EventAudioData EventKind = "audio_data"
	// EventRecognition carries one JSON message from the service
	EventRecognition EventKind = "recognition"
	// EventError is the terminal event of a failed connection
	EventError EventKind = "error"
	// EventDisconnected is the terminal event of a clean close
	EventDisconnected EventKind = "disconnected"
)

func (k EventKind) String() string { return string(k) }

// Terminal reports whether k ends the event stream
func (k EventKind) Terminal() bool {
	return k == EventError || k == EventDisconnected
}

// Event is one notification delivered to a Callback. Seq is the arrival
// position of the frame that produced it and zero for lifecycle events.
type Event struct {
	Kind    EventKind
	Seq     uint64
	Data    []byte
	Message json.RawMessage
	Err     error
}

// Decode unmarshals the JSON message carried by a recognition event
func (e Event) Decode(v any) error {
	if len(e.Message) == 0 {
		return &sdkerrors.DecodeError{Position: int(e.Seq), Err: errEmptyMessage}
	}
	if err := json.Unmarshal(e.Message, v); err != nil {
		return &sdkerrors.DecodeError{Position: int(e.Seq), Err: err}
	}
	return nil
}

// Callback receives events in arrival order on the connection's receive
// goroutine. It must not block for long; use NewChannelDispatcher when
// handling may block.
type Callback func(Event)
