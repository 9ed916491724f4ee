package speechtotext

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amoylab/watson/internal/core/accumulator"
	"github.com/amoylab/watson/internal/core/stream"
	"github.com/amoylab/watson/internal/testutil"
	sdkerrors "github.com/amoylab/watson/pkg/errors"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsMessage struct {
	kind int
	data string
}

// recognizeServer answers a start/audio/stop exchange the way the service
// does and records what it received
func recognizeServer(t *testing.T, received chan<- wsMessage) *testutil.WSServer {
	return testutil.NewWSServer(t, func(conn *websocket.Conn) {
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			received <- wsMessage{kind: mt, data: string(data)}
			if mt != websocket.TextMessage {
				continue
			}
			var msg struct {
				Action string `json:"action"`
			}
			_ = json.Unmarshal(data, &msg)
			switch msg.Action {
			case "start":
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"state":"listening"}`))
			case "stop":
				_ = conn.WriteMessage(websocket.TextMessage,
					[]byte(`{"results":[{"final":true,"alternatives":[{"transcript":"thunderstorms could produce large hail "}]}],"result_index":0}`))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			}
		}
	})
}

type eventLog struct {
	mu     sync.Mutex
	events []accumulator.Event
}

func (l *eventLog) add(e accumulator.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []accumulator.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]accumulator.Event(nil), l.events...)
}

func TestRecognizeUsingWebSocket(t *testing.T) {
	received := make(chan wsMessage, 16)
	srv := recognizeServer(t, received)
	c := newTestClient(t, srv.URL)

	log := &eventLog{}
	timestamps := true
	rs, err := c.RecognizeUsingWebSocket(context.Background(), &RecognizeWSOptions{
		ContentType:     "audio/l16; rate=16000",
		CustomizationID: "cust-1",
		InterimResults:  true,
		Timestamps:      &timestamps,
	}, log.add)
	require.NoError(t, err)

	require.NoError(t, rs.SendAudio([]byte{1, 2, 3}))
	require.NoError(t, rs.SendAudio([]byte{4, 5}))
	require.NoError(t, rs.Finish())

	select {
	case <-rs.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish")
	}
	require.NoError(t, rs.Close())

	hs := srv.Handshakes()
	require.Len(t, hs, 1)
	assert.Equal(t, "/v1/recognize", hs[0].URL.Path)
	assert.Equal(t, "en-US_BroadbandModel", hs[0].URL.Query().Get("model"))
	assert.Equal(t, "cust-1", hs[0].URL.Query().Get("customization_id"))
	assert.True(t, strings.HasPrefix(hs[0].Header.Get("Authorization"), "Basic "))

	first := <-received
	assert.Equal(t, websocket.TextMessage, first.kind)
	assert.JSONEq(t, `{"action":"start","content-type":"audio/l16; rate=16000","interim_results":true,"timestamps":true}`, first.data)
	assert.Equal(t, wsMessage{kind: websocket.BinaryMessage, data: "\x01\x02\x03"}, <-received)
	assert.Equal(t, wsMessage{kind: websocket.BinaryMessage, data: "\x04\x05"}, <-received)
	assert.JSONEq(t, `{"action":"stop"}`, (<-received).data)

	events := log.snapshot()
	require.Len(t, events, 4)
	assert.Equal(t, accumulator.EventConnected, events[0].Kind)
	assert.Equal(t, accumulator.EventRecognition, events[1].Kind)
	assert.Equal(t, accumulator.EventRecognition, events[2].Kind)
	assert.Equal(t, accumulator.EventDisconnected, events[3].Kind)

	var result SpeechRecognitionEvent
	require.NoError(t, events[2].Decode(&result))
	assert.Equal(t, "thunderstorms could produce large hail ", result.Results[0].Alternatives[0].Transcript)
	assert.Equal(t, stream.StateClosed, rs.State())
}

func TestRecognizeUsingWebSocket_Session(t *testing.T) {
	received := make(chan wsMessage, 16)
	srv := recognizeServer(t, received)
	c := newTestClient(t, srv.URL)

	rs, err := c.RecognizeUsingWebSocket(context.Background(), &RecognizeWSOptions{
		ContentType: "audio/flac",
		SessionID:   "abc123",
		Model:       "ignored",
	}, func(accumulator.Event) {})
	require.NoError(t, err)
	require.NoError(t, rs.Close())

	hs := srv.Handshakes()
	require.Len(t, hs, 1)
	assert.Equal(t, "/v1/sessions/abc123/recognize", hs[0].URL.Path)
	assert.Empty(t, hs[0].URL.Query().Get("model"))
	assert.Equal(t, "SESSIONID=abc123", hs[0].Header.Get("Cookie"))
	assert.NotEmpty(t, rs.ID())
}

func TestRecognizeUsingWebSocket_HandshakeRejected(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodGet, "/v1/recognize", http.StatusUnauthorized, `{"code":401,"error":"Not Authorized"}`)
	c := newTestClient(t, srv.URL)

	log := &eventLog{}
	_, err := c.RecognizeUsingWebSocket(context.Background(), &RecognizeWSOptions{ContentType: "audio/wav"}, log.add)
	var svcErr *sdkerrors.ServiceResponseError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)

	events := log.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, accumulator.EventError, events[0].Kind)
}

func TestRecognize(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/recognize", http.StatusOK,
		`{"results":[{"final":true,"alternatives":[{"transcript":"so "}],"keywords_result":{"so":[{"normalized_text":"so","start_time":0.1,"end_time":0.3,"confidence":0.9}]}}],"result_index":0}`)
	c := newTestClient(t, srv.URL)

	threshold := 0.5
	res, err := c.Recognize(context.Background(), strings.NewReader("audio"), &RecognizeOptions{
		ContentType:       "audio/mp3",
		Model:             "en-US_NarrowbandModel",
		Keywords:          []string{"so", "go"},
		KeywordsThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, "so", res.Results[0].KeywordsResult["so"][0].NormalizedText)

	req := srv.LastRequest()
	assert.Equal(t, "en-US_NarrowbandModel", req.Query.Get("model"))
	assert.Equal(t, "so,go", req.Query.Get("keywords"))
	assert.Equal(t, "0.5", req.Query.Get("keywords_threshold"))
	assert.Equal(t, "audio/mp3", req.Header.Get("Content-Type"))
}
