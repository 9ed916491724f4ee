package types

import (
	"context"
	"net/http"
)

// Authenticator supplies credentials for outbound requests and websocket
// handshakes. It is called once per request or connection attempt.
type Authenticator interface {
	// Authenticate sets credential headers on h
	Authenticate(ctx context.Context, h http.Header) error
}

// Mode represents the authentication mode
type Mode string

const (
	// ModeNone represents no authentication
	ModeNone Mode = "none"
	// ModeBasic represents username/password authentication
	ModeBasic Mode = "basic"
	// ModeAPIKey represents an IBM Cloud API key sent as basic credentials
	ModeAPIKey Mode = "apikey"
	// ModeBearer represents bearer token authentication
	ModeBearer Mode = "bearer"
)
