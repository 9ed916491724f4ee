package stream

import (
	"crypto/tls"
	"net/http"

	"github.com/amoylab/watson/internal/common/config"
	"github.com/gorilla/websocket"
)

// NewDialer builds a websocket dialer from configuration
func NewDialer(cfg config.StreamConfig, httpCfg config.HTTPConfig) *websocket.Dialer {
	d := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.HandshakeTimeout,
		ReadBufferSize:   cfg.ReadBufferSize,
		WriteBufferSize:  cfg.WriteBufferSize,
	}
	if httpCfg.DisableCertValidation {
		d.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return d
}
