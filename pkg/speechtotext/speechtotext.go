// Package speechtotext is the Watson Speech to Text client: session
// management, session-bound recognition with poll retrieval, streaming
// recognition over websocket, models and custom language models.
package speechtotext

import (
	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/core/stream"
	"github.com/amoylab/watson/pkg/utils"

	"github.com/gorilla/websocket"
)

// Options configures a Client. Service defaults to speech_to_text and URL
// to the public endpoint.
type Options struct {
	rest.Options
	Dialer *websocket.Dialer
}

// Client calls the Speech to Text service. It is safe for concurrent use;
// the Sessions and streams it returns are not.
type Client struct {
	rest   *rest.Client
	dialer *websocket.Dialer
}

func New(opts Options) (*Client, error) {
	opts.Service = utils.FirstNonEmpty(opts.Service, cnst.ServiceSpeechToText)
	opts.URL = utils.FirstNonEmpty(opts.URL, cnst.DefaultSpeechToTextURL)
	rc, err := rest.NewClient(opts.Options)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rc, dialer: opts.Dialer}, nil
}

// URL returns the service base URL
func (c *Client) URL() string { return c.rest.URL() }

func (c *Client) streamOptions(l stream.Listener) []stream.Option {
	return append(stream.FromClient(c.rest, c.dialer), stream.WithListener(l))
}

func sessionCookie(sessionID string) string {
	return cnst.SessionCookie + "=" + sessionID
}
