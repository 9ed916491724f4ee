package impl

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
)

type mockTokenSource struct {
	mock.Mock
}

func (m *mockTokenSource) Token() (*oauth2.Token, error) {
	args := m.Called()
	tok, _ := args.Get(0).(*oauth2.Token)
	return tok, args.Error(1)
}

func TestBasicAuthenticator(t *testing.T) {
	h := http.Header{}
	a := &BasicAuthenticator{Username: "user", Password: "pass"}
	assert.NoError(t, a.Authenticate(context.Background(), h))
	assert.Equal(t, "Basic dXNlcjpwYXNz", h.Get("Authorization"))
}

func TestAPIKeyAuthenticator(t *testing.T) {
	h := http.Header{}
	a := &APIKeyAuthenticator{Key: "k"}
	assert.NoError(t, a.Authenticate(context.Background(), h))
	// base64("apikey:k")
	assert.Equal(t, "Basic YXBpa2V5Oms=", h.Get("Authorization"))
}

func TestBearerAuthenticator(t *testing.T) {
	tests := []struct {
		name      string
		token     *oauth2.Token
		err       error
		want      string
		wantError bool
	}{
		{name: "valid token", token: &oauth2.Token{AccessToken: "abc"}, want: "Bearer abc"},
		{name: "source error", err: errors.New("expired"), wantError: true},
		{name: "empty token", token: &oauth2.Token{}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(mockTokenSource)
			src.On("Token").Return(tt.token, tt.err).Once()

			h := http.Header{}
			err := (&BearerAuthenticator{Source: src}).Authenticate(context.Background(), h)
			if tt.wantError {
				assert.Error(t, err)
				assert.Empty(t, h.Get("Authorization"))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, h.Get("Authorization"))
			}
			src.AssertExpectations(t)
		})
	}
}

func TestNewBearer(t *testing.T) {
	h := http.Header{}
	assert.NoError(t, NewBearer("tok").Authenticate(context.Background(), h))
	assert.Equal(t, "Bearer tok", h.Get("Authorization"))
}

func TestNoopAuthenticator(t *testing.T) {
	h := http.Header{}
	assert.NoError(t, (&NoopAuthenticator{}).Authenticate(context.Background(), h))
	assert.Empty(t, h)
}
