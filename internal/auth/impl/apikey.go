package impl

import (
	"context"
	"net/http"

	"github.com/amoylab/watson/internal/auth/types"
)

// apiKeyUser is the fixed user name paired with an IBM Cloud API key
const apiKeyUser = "apikey"

// APIKeyAuthenticator sends an API key as basic credentials
type APIKeyAuthenticator struct {
	Key string
}

var _ types.Authenticator = (*APIKeyAuthenticator)(nil)

// Authenticate implements types.Authenticator.Authenticate
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, h http.Header) error {
	basic := BasicAuthenticator{Username: apiKeyUser, Password: a.Key}
	return basic.Authenticate(ctx, h)
}
