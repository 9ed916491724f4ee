package auth

import (
	"fmt"

	"github.com/amoylab/watson/internal/auth/impl"
	"github.com/amoylab/watson/internal/auth/types"
	"github.com/amoylab/watson/internal/common/config"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

// New creates an authenticator from configuration
func New(cfg config.AuthConfig) (types.Authenticator, error) {
	switch types.Mode(cfg.Type) {
	case "", types.ModeNone:
		return &impl.NoopAuthenticator{}, nil
	case types.ModeBasic:
		if err := sdkerrors.RequireNonEmpty("username", cfg.Username, "password", cfg.Password); err != nil {
			return nil, err
		}
		return &impl.BasicAuthenticator{Username: cfg.Username, Password: cfg.Password}, nil
	case types.ModeAPIKey:
		if err := sdkerrors.RequireNonEmpty("password", cfg.Password); err != nil {
			return nil, err
		}
		return &impl.APIKeyAuthenticator{Key: cfg.Password}, nil
	case types.ModeBearer:
		if err := sdkerrors.RequireNonEmpty("token", cfg.Token); err != nil {
			return nil, err
		}
		return impl.NewBearer(cfg.Token), nil
	default:
		return nil, fmt.Errorf("invalid auth mode: %s", cfg.Type)
	}
}
