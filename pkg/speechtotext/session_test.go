package speechtotext

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/amoylab/watson/internal/auth/impl"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/testutil"
	sdkerrors "github.com/amoylab/watson/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Options{Options: rest.Options{
		URL:           url,
		Authenticator: &impl.BasicAuthenticator{Username: "apikey", Password: "k"},
	}})
	require.NoError(t, err)
	return c
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "https://stream.watsonplatform.net/speech-to-text/api", c.URL())
}

func TestCreateSession(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/sessions", http.StatusCreated, `{"session_id": "abc123", "state": "initialized"}`)
	c := newTestClient(t, srv.URL)

	s, err := c.CreateSession(context.Background(), "en-US_BroadbandModel")
	require.NoError(t, err)
	assert.Equal(t, "abc123", s.SessionID)
	assert.Equal(t, "en-US_BroadbandModel", s.Model())
	assert.Equal(t, SessionInitialized, s.State())

	req := srv.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "en-US_BroadbandModel", req.Query.Get("model"))
	assert.True(t, strings.HasPrefix(req.Header.Get("Authorization"), "Basic "))
}

func TestCreateSession_DefaultModel(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/sessions", http.StatusCreated,
		`{"session_id":"s1","new_session_uri":"https://h/v1/sessions/s1","recognizeWS":"wss://h/v1/sessions/s1/recognize"}`)
	c := newTestClient(t, srv.URL)

	s, err := c.CreateSession(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "en-US_BroadbandModel", srv.LastRequest().Query.Get("model"))
	assert.Equal(t, "wss://h/v1/sessions/s1/recognize", s.RecognizeWS)
	assert.Equal(t, SessionInitialized, s.State())
}

func TestCreateSession_MissingSessionID(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/sessions", http.StatusCreated, `{"state":"initialized"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.CreateSession(context.Background(), "")
	var decErr *sdkerrors.DecodeError
	assert.True(t, errors.As(err, &decErr))
}

func TestCreateSession_ServiceError(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.Handle(http.MethodPost, "/v1/sessions", func(c *gin.Context) {
		c.Header("X-Global-Transaction-Id", "tx-9")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session limit reached", "code": 503})
	})
	c := newTestClient(t, srv.URL)

	_, err := c.CreateSession(context.Background(), "")
	var svcErr *sdkerrors.ServiceResponseError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
	assert.Equal(t, "Session limit reached", svcErr.Message)
	assert.Equal(t, "tx-9", svcErr.TransactionID)
}

func TestSession_StatusAndDelete(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/sessions", http.StatusCreated, `{"session_id":"abc123"}`)
	srv.JSON(http.MethodGet, "/v1/sessions/:id/recognize", http.StatusOK,
		`{"session":{"state":"ready","model":"en-US_BroadbandModel","recognize":"r","observe_result":"o","recognizeWS":"w"}}`)
	srv.Handle(http.MethodDelete, "/v1/sessions/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	s, err := c.CreateSession(ctx, "")
	require.NoError(t, err)

	res, err := s.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, SessionReady, res.Session.State)
	assert.Equal(t, SessionReady, s.State())
	status := srv.LastRequest()
	assert.Equal(t, "/v1/sessions/abc123/recognize", status.Path)
	assert.Equal(t, "SESSIONID=abc123", status.Header.Get("Cookie"))

	require.NoError(t, s.Delete(ctx))
	del := srv.LastRequest()
	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Equal(t, "/v1/sessions/abc123", del.Path)
	assert.Equal(t, "SESSIONID=abc123", del.Header.Get("Cookie"))
}

func TestDeleteSession_NotFound(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodDelete, "/v1/sessions/:id", http.StatusNotFound, `{"error":"Session not found"}`)
	c := newTestClient(t, srv.URL)

	err := c.DeleteSession(context.Background(), "gone")
	var svcErr *sdkerrors.ServiceResponseError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestPreconditions_NoNetworkCall(t *testing.T) {
	srv := testutil.NewStubServer(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()
	audio := strings.NewReader("RIFF")

	calls := map[string]func() error{
		"DeleteSession": func() error { return c.DeleteSession(ctx, "") },
		"GetSessionStatus": func() error {
			_, err := c.GetSessionStatus(ctx, "")
			return err
		},
		"ObserveResult": func() error {
			_, err := c.ObserveResult(ctx, "", nil)
			return err
		},
		"RecognizeWithSession": func() error {
			_, err := c.RecognizeWithSession(ctx, "", audio, "audio/wav")
			return err
		},
		"RecognizeWithSessionMultipart": func() error {
			_, err := c.RecognizeWithSessionMultipart(ctx, "", nil, audio, "audio/wav")
			return err
		},
		"RecognizeWithSession no audio": func() error {
			_, err := c.RecognizeWithSession(ctx, "s", nil, "audio/wav")
			return err
		},
		"AddWord": func() error { return c.AddWord(ctx, "c1", "", nil) },
		"GetWord": func() error {
			_, err := c.GetWord(ctx, "", "w")
			return err
		},
		"DeleteWord":          func() error { return c.DeleteWord(ctx, "c1", "") },
		"DeleteCustomization": func() error { return c.DeleteCustomization(ctx, "") },
		"GetModel": func() error {
			_, err := c.GetModel(ctx, "")
			return err
		},
		"Recognize": func() error {
			_, err := c.Recognize(ctx, audio, &RecognizeOptions{})
			return err
		},
		"RecognizeUsingWebSocket": func() error {
			_, err := c.RecognizeUsingWebSocket(ctx, &RecognizeWSOptions{ContentType: "audio/l16"}, nil)
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var nullErr *sdkerrors.ArgumentNullError
			assert.True(t, errors.As(call(), &nullErr))
		})
	}
	assert.Zero(t, srv.RequestCount())
}

func TestRecognizeWithSession(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/sessions/:id/recognize", http.StatusOK,
		`{"results":[{"final":true,"alternatives":[{"transcript":"hello world ","confidence":0.92}]}],"result_index":0}`)
	c := newTestClient(t, srv.URL)

	res, err := c.RecognizeWithSession(context.Background(), "abc123", strings.NewReader("audio-bytes"), "audio/flac")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.True(t, res.Results[0].Final)
	assert.Equal(t, "hello world ", res.Results[0].Alternatives[0].Transcript)

	req := srv.LastRequest()
	assert.Equal(t, "audio/flac", req.Header.Get("Content-Type"))
	assert.Equal(t, "SESSIONID=abc123", req.Header.Get("Cookie"))
	assert.Equal(t, "audio-bytes", string(req.Body))
}

func TestRecognizeWithSessionMultipart(t *testing.T) {
	srv := testutil.NewStubServer(t)
	var metadata, upload, uploadType string
	srv.Handle(http.MethodPost, "/v1/sessions/:id/recognize", func(c *gin.Context) {
		_, params, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		require.NoError(t, err)
		mr := multipart.NewReader(c.Request.Body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(p)
			switch p.FormName() {
			case "metadata":
				metadata = string(data)
			case "upload":
				upload = string(data)
				uploadType = p.Header.Get("Content-Type")
			}
		}
		c.JSON(http.StatusOK, gin.H{"results": []gin.H{}, "result_index": 0})
	})
	c := newTestClient(t, srv.URL)

	seq := int64(7)
	_, err := c.RecognizeWithSessionMultipart(context.Background(), "abc123",
		&MultipartMetadata{SequenceID: &seq}, strings.NewReader("pcm"), "audio/l16; rate=16000")
	require.NoError(t, err)
	assert.JSONEq(t, `{"part_content_type":"audio/l16; rate=16000","data_parts_count":1,"sequence_id":7}`, metadata)
	assert.Equal(t, "pcm", upload)
	assert.Equal(t, "audio/l16; rate=16000", uploadType)
}

func TestObserveResult_InterimDocuments(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.Handle(http.MethodGet, "/v1/sessions/:id/observe_result", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(
			`{"results":[{"final":false,"alternatives":[{"transcript":"hel"}]}],"result_index":0}`+
				`{"results":[{"final":true,"alternatives":[{"transcript":"hello"}]}],"result_index":0}`))
	})
	c := newTestClient(t, srv.URL)

	interim := true
	seq := int64(2)
	events, err := c.ObserveResult(context.Background(), "abc123", &ObserveResultOptions{SequenceID: &seq, InterimResults: &interim})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Results[0].Final)
	assert.Equal(t, "hello", events[1].Results[0].Alternatives[0].Transcript)

	req := srv.LastRequest()
	assert.Equal(t, "true", req.Query.Get("interim_results"))
	assert.Equal(t, "2", req.Query.Get("sequence_id"))
	assert.Equal(t, "SESSIONID=abc123", req.Header.Get("Cookie"))
}

func TestObserveResult_MalformedDocument(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.Handle(http.MethodGet, "/v1/sessions/:id/observe_result", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`{"result_index":0}{"result_index":1}{"results":[`))
	})
	c := newTestClient(t, srv.URL)

	events, err := c.ObserveResult(context.Background(), "abc123", nil)
	assert.Len(t, events, 2)
	var decErr *sdkerrors.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, 3, decErr.Position)

	req := srv.LastRequest()
	assert.Empty(t, req.Query.Get("interim_results"))
	assert.Empty(t, req.Query.Get("sequence_id"))
}

func TestObserveResult_ServiceError(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodGet, "/v1/sessions/:id/observe_result", http.StatusRequestTimeout, `{"error":"No speech detected for 30s."}`)
	c := newTestClient(t, srv.URL)

	events, err := c.ObserveResult(context.Background(), "abc123", nil)
	assert.Nil(t, events)
	var svcErr *sdkerrors.ServiceResponseError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "No speech detected for 30s.", svcErr.Message)
}
