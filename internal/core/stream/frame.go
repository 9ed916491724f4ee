package stream

import "github.com/gorilla/websocket"

// State is the lifecycle state of a Connection
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// terminal reports whether no further traffic can happen in s
func (s State) terminal() bool {
	return s == StateClosed || s == StateError
}

// FrameKind distinguishes text and binary websocket messages
type FrameKind int

const (
	FrameText FrameKind = iota + 1
	FrameBinary
)

func (k FrameKind) String() string {
	if k == FrameBinary {
		return "binary"
	}
	return "text"
}

func (k FrameKind) messageType() int {
	if k == FrameBinary {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Frame is one websocket message. Seq is the 1-based arrival position of a
// received frame and zero for outbound frames.
type Frame struct {
	Kind    FrameKind
	Payload []byte
	Seq     uint64
}

// Listener receives everything a Connection observes. All calls happen on
// the connection's receive goroutine, except OnClose for a failed or
// cancelled handshake, which runs on the goroutine calling Connect.
// Methods may stop the connection with CloseAsync, never with Close.
type Listener interface {
	// OnOpen is called once after the handshake completes
	OnOpen()
	// OnFrame is called for each received frame in arrival order. A non-nil
	// error tears the connection down and becomes the terminal error.
	OnFrame(f Frame) error
	// OnClose is called exactly once. err is nil for a clean close.
	OnClose(err error)
}

type nopListener struct{}

func (nopListener) OnOpen()             {}
func (nopListener) OnFrame(Frame) error { return nil }
func (nopListener) OnClose(error)       {}
