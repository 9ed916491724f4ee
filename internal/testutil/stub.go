// Package testutil provides in-process stand-ins for Watson endpoints.
package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RecordedRequest is a request observed by a stub server
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// StubServer is a gin backed REST stub that records every request
type StubServer struct {
	*httptest.Server
	Engine *gin.Engine

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewStubServer starts a stub server closed at test cleanup. Routes must be
// registered before the first request is sent.
func NewStubServer(t testing.TB) *StubServer {
	gin.SetMode(gin.TestMode)
	s := &StubServer{Engine: gin.New()}
	s.Engine.Use(s.record)
	s.Server = httptest.NewServer(s.Engine)
	t.Cleanup(s.Close)
	return s
}

func (s *StubServer) record(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()
	c.Next()
}

// Handle registers a route using gin path syntax, e.g. /v1/sessions/:id
func (s *StubServer) Handle(method, path string, h gin.HandlerFunc) {
	s.Engine.Handle(method, path, h)
}

// JSON registers a route answering with a fixed status and raw JSON body
func (s *StubServer) JSON(method, path string, status int, body string) {
	s.Handle(method, path, func(c *gin.Context) {
		c.Data(status, "application/json", []byte(body))
	})
}

// Requests returns a snapshot of the recorded requests
func (s *StubServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns how many requests reached the server
func (s *StubServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// LastRequest returns the most recent request or nil
func (s *StubServer) LastRequest() *RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	r := s.requests[len(s.requests)-1]
	return &r
}

// WSServer is a websocket stub. Each accepted connection is passed to the
// handler on its own goroutine.
type WSServer struct {
	*httptest.Server

	mu        sync.Mutex
	handshake []*http.Request
}

// NewWSServer starts a websocket stub closed at test cleanup
func NewWSServer(t testing.TB, handler func(conn *websocket.Conn)) *WSServer {
	s := &WSServer{}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.handshake = append(s.handshake, r.Clone(r.Context()))
		s.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(s.Close)
	return s
}

// Handshakes returns the upgrade requests seen so far
func (s *WSServer) Handshakes() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.handshake))
	copy(out, s.handshake)
	return out
}
