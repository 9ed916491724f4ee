// Package texttospeech is the Watson Text to Speech client: synthesis over
// HTTP and websocket, voices, pronunciation and custom voice models.
package texttospeech

import (
	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/core/stream"
	"github.com/amoylab/watson/pkg/utils"

	"github.com/gorilla/websocket"
)

// Options configures a Client. Service defaults to text_to_speech and URL
// to the public endpoint.
type Options struct {
	rest.Options
	Dialer *websocket.Dialer
}

// Client calls the Text to Speech service and is safe for concurrent use
type Client struct {
	rest   *rest.Client
	dialer *websocket.Dialer
}

func New(opts Options) (*Client, error) {
	opts.Service = utils.FirstNonEmpty(opts.Service, cnst.ServiceTextToSpeech)
	opts.URL = utils.FirstNonEmpty(opts.URL, cnst.DefaultTextToSpeechURL)
	rc, err := rest.NewClient(opts.Options)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rc, dialer: opts.Dialer}, nil
}

func (c *Client) URL() string { return c.rest.URL() }

func (c *Client) streamOptions(l stream.Listener) []stream.Option {
	return append(stream.FromClient(c.rest, c.dialer), stream.WithListener(l))
}
