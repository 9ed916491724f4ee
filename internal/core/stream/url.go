package stream

import (
	"net/url"
	"strings"

	"github.com/amoylab/watson/internal/common/cnst"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

// StreamingURL rewrites an http(s) service URL to the matching websocket
// scheme: https becomes wss and http becomes ws. ws and wss are kept.
func StreamingURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", sdkerrors.ErrInvalidArgument("url", err.Error())
	}
	switch cnst.SchemeType(strings.ToLower(u.Scheme)) {
	case cnst.SchemeHTTPS, cnst.SchemeWSS:
		u.Scheme = cnst.SchemeWSS.String()
	case cnst.SchemeHTTP, cnst.SchemeWS:
		u.Scheme = cnst.SchemeWS.String()
	default:
		return "", sdkerrors.ErrInvalidArgument("url", "unsupported scheme "+u.Scheme)
	}
	if u.Host == "" {
		return "", sdkerrors.ErrInvalidArgument("url", "missing host")
	}
	return u.String(), nil
}

// joinPath appends path to base with exactly one separating slash
func joinPath(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
