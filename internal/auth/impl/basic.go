package impl

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/amoylab/watson/internal/auth/types"
)

// BasicAuthenticator implements Basic authentication
type BasicAuthenticator struct {
	Username string
	Password string
}

var _ types.Authenticator = (*BasicAuthenticator)(nil)

// Authenticate implements types.Authenticator.Authenticate
func (a *BasicAuthenticator) Authenticate(_ context.Context, h http.Header) error {
	credentials := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	h.Set("Authorization", "Basic "+credentials)
	return nil
}
