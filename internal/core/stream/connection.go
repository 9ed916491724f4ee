package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/amoylab/watson/internal/auth/impl"
	"github.com/amoylab/watson/internal/auth/types"
	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/rest"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/logger"
	"github.com/amoylab/watson/pkg/metrics"
	"github.com/amoylab/watson/pkg/trace"
	"github.com/amoylab/watson/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// closeGrace bounds how long Close waits for the server to answer the close frame
const closeGrace = 2 * time.Second

// Option configures a Connection
type Option func(*Connection)

func WithLogger(l *zap.Logger) Option {
	return func(c *Connection) { c.logger = logger.OrNop(l).Named("stream") }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Connection) { c.metrics = m }
}

func WithDialer(d *websocket.Dialer) Option {
	return func(c *Connection) { c.dialer = d }
}

func WithAuthenticator(a types.Authenticator) Option {
	return func(c *Connection) { c.auth = a }
}

func WithListener(l Listener) Option {
	return func(c *Connection) { c.listener = l }
}

// WithHeaders sets initial handshake headers
func WithHeaders(h map[string]string) Option {
	return func(c *Connection) { utils.SetHeaders(c.header, h) }
}

// FromClient shares credentials, default headers, logger and metrics of a
// REST client with connections opened against the same service
func FromClient(rc *rest.Client, d *websocket.Dialer) []Option {
	opts := []Option{
		WithLogger(rc.Logger()),
		WithMetrics(rc.Metrics()),
		WithAuthenticator(rc.Authenticator()),
		WithHeaders(rc.Headers()),
	}
	if d != nil {
		opts = append(opts, WithDialer(d))
	}
	return opts
}

// Connection is one full-duplex websocket session. Frames passed to Send
// before the handshake completes are queued and written first, in order,
// once the connection is open. A Connection is meant to be driven by a
// single owner; only Send and Close may be called from other goroutines.
type Connection struct {
	id       string
	url      string
	logger   *zap.Logger
	metrics  *metrics.Metrics
	dialer   *websocket.Dialer
	auth     types.Authenticator
	listener Listener

	mu         sync.Mutex
	state      State
	args       url.Values
	header     http.Header
	pending    []Frame
	ws         *websocket.Conn
	cancelDial context.CancelFunc
	failErr    error

	wake     chan struct{}
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	finish   sync.Once
}

// New creates an idle connection to path under baseURL. The base URL scheme
// is rewritten to its websocket equivalent.
func New(baseURL, path string, opts ...Option) (*Connection, error) {
	wsURL, err := StreamingURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Connection{
		id:       uuid.NewString(),
		url:      joinPath(wsURL, path),
		logger:   zap.NewNop(),
		dialer:   websocket.DefaultDialer,
		auth:     &impl.NoopAuthenticator{},
		listener: nopListener{},
		args:     make(url.Values),
		header:   make(http.Header),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("connection_id", c.id))
	return c, nil
}

func (c *Connection) ID() string { return c.id }

// URL returns the dial target including query arguments
func (c *Connection) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target()
}

func (c *Connection) target() string {
	if len(c.args) == 0 {
		return c.url
	}
	return c.url + "?" + c.args.Encode()
}

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Done is closed after the terminal event has been delivered
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// AddArgument sets a query argument. Arguments are fixed once Connect starts.
func (c *Connection) AddArgument(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return sdkerrors.ErrInvalidState("AddArgument", c.state.String())
	}
	c.args.Set(key, value)
	return nil
}

// AddHeader sets a handshake header. Headers are fixed once Connect starts.
func (c *Connection) AddHeader(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return sdkerrors.ErrInvalidState("AddHeader", c.state.String())
	}
	c.header.Set(key, value)
	return nil
}

// Send queues f for transmission. It never waits for network I/O.
func (c *Connection) Send(f Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle, StateConnecting:
		c.pending = append(c.pending, f)
	case StateOpen:
		if c.failErr != nil {
			return sdkerrors.ErrInvalidState("Send", StateError.String())
		}
		c.pending = append(c.pending, f)
		c.signal()
	default:
		return sdkerrors.ErrInvalidState("Send", c.state.String())
	}
	return nil
}

func (c *Connection) SendText(s string) error {
	return c.Send(Frame{Kind: FrameText, Payload: []byte(s)})
}

func (c *Connection) SendBinary(b []byte) error {
	return c.Send(Frame{Kind: FrameBinary, Payload: b})
}

// SendJSON marshals v and sends it as a text frame
func (c *Connection) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	return c.Send(Frame{Kind: FrameText, Payload: data})
}

// signal wakes the writer; c.mu must be held
func (c *Connection) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Connect performs the handshake and starts the send and receive
// goroutines. A handshake failure moves the connection to StateError and is
// both returned and delivered to the listener.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		state := c.state
		c.mu.Unlock()
		return sdkerrors.ErrInvalidState("Connect", state.String())
	}
	c.state = StateConnecting
	target := c.target()
	header := c.header.Clone()
	dialCtx, cancel := context.WithCancel(ctx)
	c.cancelDial = cancel
	c.mu.Unlock()
	defer cancel()

	scope := trace.Tracer(cnst.TraceStream).Start(dialCtx, cnst.SpanStreamConnect).
		WithAttrs(
			attribute.String(cnst.AttrConnectionID, c.id),
			attribute.String(cnst.AttrStreamURL, c.url),
		)
	defer scope.End()

	c.logger.Debug("connecting", zap.String("url", c.url))

	ws, err := c.dial(scope.Ctx, target, header)
	if err != nil {
		scope.Fail(err)
		c.metrics.ConnFailed()
		return c.abortConnect(err)
	}

	c.mu.Lock()
	if c.state != StateConnecting {
		// closed while the handshake was in flight
		c.state = StateClosed
		c.mu.Unlock()
		_ = ws.Close()
		c.deliverClose(nil)
		return sdkerrors.ErrInvalidState("Connect", StateClosed.String())
	}
	c.ws = ws
	c.state = StateOpen
	if len(c.pending) > 0 {
		c.signal()
	}
	c.mu.Unlock()

	c.metrics.ConnOpened()
	c.logger.Debug("connection open")

	go c.writeLoop(ws)
	go c.readLoop(ws)
	return nil
}

func (c *Connection) dial(ctx context.Context, target string, header http.Header) (*websocket.Conn, error) {
	if err := c.auth.Authenticate(ctx, header); err != nil {
		return nil, fmt.Errorf("authenticate handshake: %w", err)
	}
	ws, resp, err := c.dialer.DialContext(ctx, target, header)
	if err != nil {
		if errors.Is(err, websocket.ErrBadHandshake) && resp != nil {
			defer resp.Body.Close()
			return nil, rest.NewServiceError(resp)
		}
		return nil, &sdkerrors.TransportError{Op: "dial", Err: err}
	}
	return ws, nil
}

func (c *Connection) abortConnect(err error) error {
	c.mu.Lock()
	cancelled := c.state == StateClosing
	if cancelled {
		c.state = StateClosed
	} else {
		c.state = StateError
	}
	c.mu.Unlock()

	if cancelled {
		c.deliverClose(nil)
		return err
	}
	c.logger.Error("handshake failed", zap.Error(err))
	c.deliverClose(err)
	return err
}

// writeLoop is the only goroutine writing data frames to ws
func (c *Connection) writeLoop(ws *websocket.Conn) {
	for {
		select {
		case <-c.stop:
			return
		case <-c.wake:
		}

		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()

		for _, f := range batch {
			select {
			case <-c.stop:
				return
			default:
			}
			if err := ws.WriteMessage(f.Kind.messageType(), f.Payload); err != nil {
				c.fail(ws, &sdkerrors.TransportError{Op: "write", Err: err})
				return
			}
			c.metrics.Frame(metrics.DirectionSent, f.Kind.String())
		}
	}
}

func (c *Connection) readLoop(ws *websocket.Conn) {
	c.listener.OnOpen()

	var seq uint64
	for {
		mt, payload, err := ws.ReadMessage()
		if err != nil {
			c.terminate(ws, err)
			return
		}
		if !c.delivering() {
			continue
		}

		kind := FrameText
		if mt == websocket.BinaryMessage {
			kind = FrameBinary
		}
		seq++
		c.metrics.Frame(metrics.DirectionReceived, kind.String())

		if ferr := c.listener.OnFrame(Frame{Kind: kind, Payload: payload, Seq: seq}); ferr != nil {
			c.fail(ws, ferr)
		}
	}
}

// delivering reports whether received frames should still reach the listener
func (c *Connection) delivering() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateOpen && c.failErr == nil
}

// fail records the first fatal error and forces the socket shut; the
// receive loop then reports it as the terminal error.
func (c *Connection) fail(ws *websocket.Conn, err error) {
	c.mu.Lock()
	if c.failErr == nil {
		c.failErr = err
	}
	c.mu.Unlock()
	c.stopSending()
	_ = ws.Close()
}

func (c *Connection) terminate(ws *websocket.Conn, readErr error) {
	c.mu.Lock()
	var termErr error
	switch {
	case c.failErr != nil:
		termErr = c.failErr
	case c.state == StateClosing:
	case websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway):
	default:
		termErr = &sdkerrors.TransportError{Op: "read", Err: readErr}
	}
	outcome := "closed"
	if termErr != nil {
		c.state = StateError
		outcome = "error"
	} else {
		c.state = StateClosed
	}
	c.mu.Unlock()

	c.stopSending()
	_ = ws.Close()
	c.metrics.ConnClosed(outcome)
	if termErr != nil {
		c.logger.Error("connection failed", zap.Error(termErr))
	} else {
		c.logger.Debug("connection closed")
	}
	c.deliverClose(termErr)
}

func (c *Connection) stopSending() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Connection) deliverClose(err error) {
	c.finish.Do(func() {
		c.listener.OnClose(err)
		close(c.done)
	})
}

// Close stops sending, closes the socket and waits until the terminal event
// has been delivered. No frame reaches the listener after Close returns.
// Close must not be called from inside a Listener method; use CloseAsync
// there.
func (c *Connection) Close() error {
	ws := c.beginClose()
	if ws != nil {
		select {
		case <-c.done:
		case <-time.After(closeGrace):
			_ = ws.Close()
		}
	}
	<-c.done
	return nil
}

// CloseAsync starts the same shutdown as Close without waiting for the
// terminal event. It is the form to use from inside a Listener method.
func (c *Connection) CloseAsync() error {
	ws := c.beginClose()
	if ws != nil {
		time.AfterFunc(closeGrace, func() { _ = ws.Close() })
	}
	return nil
}

// beginClose moves the connection towards Closed. It returns the socket when
// a close frame was sent and the peer's answer is pending.
func (c *Connection) beginClose() *websocket.Conn {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.state = StateClosed
		c.mu.Unlock()
		c.stopSending()
		c.deliverClose(nil)
		return nil
	case StateConnecting:
		c.state = StateClosing
		cancel := c.cancelDial
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		return nil
	case StateOpen:
		c.state = StateClosing
		ws := c.ws
		c.mu.Unlock()
		c.stopSending()
		c.logger.Debug("closing connection")

		err := ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGrace))
		if err != nil {
			_ = ws.Close()
			return nil
		}
		return ws
	default:
		c.mu.Unlock()
		return nil
	}
}
