package texttospeech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/amoylab/watson/internal/auth/impl"
	"github.com/amoylab/watson/internal/core/accumulator"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/testutil"
	sdkerrors "github.com/amoylab/watson/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Options{Options: rest.Options{URL: url, Authenticator: impl.NewBearer("tok")}})
	require.NoError(t, err)
	return c
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://stream.watsonplatform.net/text-to-speech/api", c.URL())
}

func TestSynthesizeUsingWebSocket(t *testing.T) {
	firstFrame := make(chan string, 1)
	srv := testutil.NewWSServer(t, func(conn *websocket.Conn) {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		firstFrame <- string(data)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"binary_streams":[{"content_type":"audio/ogg;codecs=opus"}]}`))
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte("OggS-1"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"words":[["Hello",0.0,0.3]]}`))
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte("OggS-2"))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_, _, _ = conn.ReadMessage()
	})
	c := newTestClient(t, srv.URL)

	var mu sync.Mutex
	var events []accumulator.Event
	conn, err := c.SynthesizeUsingWebSocket(context.Background(), &SynthesizeOptions{
		Text:            "Hello world",
		Voice:           "en-US_AllisonV3Voice",
		CustomizationID: "cust-1",
		Timings:         []string{TimingWords},
	}, func(e accumulator.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})
	require.NoError(t, err)

	select {
	case <-conn.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("synthesis did not finish")
	}

	hs := srv.Handshakes()
	require.Len(t, hs, 1)
	assert.Equal(t, "/v1/synthesize", hs[0].URL.Path)
	assert.Equal(t, "en-US_AllisonV3Voice", hs[0].URL.Query().Get("voice"))
	assert.Equal(t, "cust-1", hs[0].URL.Query().Get("customization_id"))
	assert.Equal(t, "Bearer tok", hs[0].Header.Get("Authorization"))
	assert.JSONEq(t, `{"text":"Hello world","accept":"audio/ogg;codecs=opus","timings":["words"]}`, <-firstFrame)

	mu.Lock()
	defer mu.Unlock()
	kinds := make([]accumulator.EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []accumulator.EventKind{
		accumulator.EventConnected,
		accumulator.EventRecognition,
		accumulator.EventAudioData,
		accumulator.EventRecognition,
		accumulator.EventAudioData,
		accumulator.EventDisconnected,
	}, kinds)
	assert.Equal(t, "OggS-1", string(events[2].Data))
	assert.Equal(t, "OggS-2", string(events[4].Data))
	assert.Equal(t, uint64(4), events[4].Seq)
}

func TestSynthesizeUsingWebSocket_Preconditions(t *testing.T) {
	srv := testutil.NewWSServer(t, func(*websocket.Conn) {})
	c := newTestClient(t, srv.URL)
	ctx := context.Background()
	noop := func(accumulator.Event) {}

	var nullErr *sdkerrors.ArgumentNullError
	_, err := c.SynthesizeUsingWebSocket(ctx, &SynthesizeOptions{}, noop)
	require.True(t, errors.As(err, &nullErr))
	assert.Equal(t, "text", nullErr.Param)

	_, err = c.SynthesizeUsingWebSocket(ctx, nil, noop)
	require.True(t, errors.As(err, &nullErr))

	_, err = c.SynthesizeUsingWebSocket(ctx, &SynthesizeOptions{Text: "hi"}, nil)
	require.True(t, errors.As(err, &nullErr))
	assert.Equal(t, "callback", nullErr.Param)

	assert.Empty(t, srv.Handshakes())
}

func TestSynthesize(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.Handle(http.MethodPost, "/v1/synthesize", func(c *gin.Context) {
		c.Data(http.StatusOK, c.GetHeader("Accept"), []byte("RIFF....WAVE"))
	})
	c := newTestClient(t, srv.URL)

	audio, err := c.Synthesize(context.Background(), &SynthesizeOptions{Text: "Hello", Accept: "audio/wav", Voice: "en-US_MichaelV3Voice"})
	require.NoError(t, err)
	defer audio.Close()
	data, err := io.ReadAll(audio)
	require.NoError(t, err)
	assert.Equal(t, "RIFF....WAVE", string(data))

	req := srv.LastRequest()
	assert.Equal(t, "audio/wav", req.Header.Get("Accept"))
	assert.Equal(t, "en-US_MichaelV3Voice", req.Query.Get("voice"))
	assert.JSONEq(t, `{"text":"Hello"}`, string(req.Body))
}

func TestSynthesize_ServiceError(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/synthesize", http.StatusBadRequest, `{"code":400,"error":"Unsupported voice"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.Synthesize(context.Background(), &SynthesizeOptions{Text: "Hello", Voice: "xx"})
	var svcErr *sdkerrors.ServiceResponseError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Unsupported voice", svcErr.Message)
}
