package impl

import (
	"context"
	"net/http"

	"github.com/amoylab/watson/internal/auth/types"
)

// NoopAuthenticator implements no-op authentication
type NoopAuthenticator struct{}

var _ types.Authenticator = (*NoopAuthenticator)(nil)

// Authenticate implements types.Authenticator.Authenticate
func (a *NoopAuthenticator) Authenticate(context.Context, http.Header) error {
	return nil
}
