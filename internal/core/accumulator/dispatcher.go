package accumulator

import (
	"encoding/json"
	"errors"

	"github.com/amoylab/watson/internal/core/stream"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/logger"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var errEmptyMessage = errors.New("empty message")

// Dispatcher adapts a Callback to stream.Listener. Binary frames become
// AudioData events and text frames RecognitionEvents. A malformed text
// frame or an in-band {"error": ...} message ends the connection with an
// Error event.
type Dispatcher struct {
	cb     Callback
	logger *zap.Logger
}

var _ stream.Listener = (*Dispatcher)(nil)

// NewDispatcher returns a Dispatcher delivering to cb
func NewDispatcher(cb Callback, l *zap.Logger) (*Dispatcher, error) {
	if cb == nil {
		return nil, sdkerrors.ErrArgumentNull("callback")
	}
	return &Dispatcher{cb: cb, logger: logger.OrNop(l).Named("accumulator")}, nil
}

// NewChannelDispatcher returns a Dispatcher together with the channel it
// delivers to. The channel is closed after the terminal event. A full
// channel stalls the receive loop until the reader catches up.
func NewChannelDispatcher(buffer int, l *zap.Logger) (*Dispatcher, <-chan Event) {
	ch := make(chan Event, buffer)
	d, _ := NewDispatcher(func(e Event) {
		ch <- e
		if e.Kind.Terminal() {
			close(ch)
		}
	}, l)
	return d, ch
}

func (d *Dispatcher) OnOpen() {
	d.cb(Event{Kind: EventConnected})
}

func (d *Dispatcher) OnFrame(f stream.Frame) error {
	if f.Kind == stream.FrameBinary {
		d.cb(Event{Kind: EventAudioData, Seq: f.Seq, Data: f.Payload})
		return nil
	}

	var msg json.RawMessage
	if err := json.Unmarshal(f.Payload, &msg); err != nil {
		return &sdkerrors.DecodeError{Position: int(f.Seq), Err: err}
	}
	if res := gjson.GetBytes(msg, "error"); res.Exists() {
		d.logger.Debug("service reported error", zap.Uint64("seq", f.Seq), zap.String("error", res.String()))
		return &sdkerrors.ServiceResponseError{
			Message: res.String(),
			Body:    msg,
		}
	}
	d.cb(Event{Kind: EventRecognition, Seq: f.Seq, Message: msg})
	return nil
}

func (d *Dispatcher) OnClose(err error) {
	if err != nil {
		d.cb(Event{Kind: EventError, Err: err})
		return
	}
	d.cb(Event{Kind: EventDisconnected})
}
