package impl

import (
	"context"
	"fmt"
	"net/http"

	"github.com/amoylab/watson/internal/auth/types"
	"golang.org/x/oauth2"
)

// BearerAuthenticator implements bearer token authentication. Token refresh
// belongs to the TokenSource.
type BearerAuthenticator struct {
	Source oauth2.TokenSource
}

var _ types.Authenticator = (*BearerAuthenticator)(nil)

// NewBearer creates a bearer authenticator for a fixed access token
func NewBearer(token string) *BearerAuthenticator {
	return &BearerAuthenticator{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	}
}

// Authenticate implements types.Authenticator.Authenticate
func (a *BearerAuthenticator) Authenticate(_ context.Context, h http.Header) error {
	tok, err := a.Source.Token()
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("empty access token")
	}
	h.Set("Authorization", tok.Type()+" "+tok.AccessToken)
	return nil
}
