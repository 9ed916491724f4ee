package texttospeech

import (
	"context"
	"io"
	"net/http"

	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/accumulator"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/core/stream"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/utils"

	"go.uber.org/zap"
)

// DefaultAccept is the audio format requested when none is given
const DefaultAccept = "audio/ogg;codecs=opus"

// Timing values for SynthesizeOptions.Timings
const (
	TimingWords = "words"
)

// SynthesizeOptions are the parameters of a synthesis. Timings only applies
// to SynthesizeUsingWebSocket.
type SynthesizeOptions struct {
	Text            string
	Accept          string
	Voice           string
	CustomizationID string
	Timings         []string
}

func (o *SynthesizeOptions) accept() string {
	return utils.FirstNonEmpty(o.Accept, DefaultAccept)
}

// Synthesize returns the synthesized audio. The caller must close it.
func (c *Client) Synthesize(ctx context.Context, opts *SynthesizeOptions) (io.ReadCloser, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("text")
	}
	if err := sdkerrors.RequireNonEmpty("text", opts.Text); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodPost, "/v1/synthesize").
		WithOptionalQuery("voice", opts.Voice).
		WithOptionalQuery("customization_id", opts.CustomizationID).
		WithHeader(cnst.HeaderAccept, opts.accept()).
		WithJSON(map[string]string{"text": opts.Text})

	resp, err := c.rest.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

type synthesizeMessage struct {
	Text    string   `json:"text"`
	Accept  string   `json:"accept"`
	Timings []string `json:"timings,omitempty"`
}

// SynthesizeUsingWebSocket synthesizes over a websocket. The text message is
// the first frame written once the connection opens. Audio chunks reach cb
// as AudioData events and service messages (binary_streams, marks, word
// timings) as RecognitionEvents, followed by exactly one terminal event.
// The returned connection can be closed early or waited on with Done.
func (c *Client) SynthesizeUsingWebSocket(ctx context.Context, opts *SynthesizeOptions, cb accumulator.Callback) (*stream.Connection, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("text")
	}
	if err := sdkerrors.RequireNonEmpty("text", opts.Text); err != nil {
		return nil, err
	}
	d, err := accumulator.NewDispatcher(cb, c.rest.Logger())
	if err != nil {
		return nil, err
	}

	conn, err := stream.New(c.rest.URL(), "/v1/synthesize", c.streamOptions(d)...)
	if err != nil {
		return nil, err
	}
	if opts.Voice != "" {
		if err := conn.AddArgument("voice", opts.Voice); err != nil {
			return nil, err
		}
	}
	if opts.CustomizationID != "" {
		if err := conn.AddArgument("customization_id", opts.CustomizationID); err != nil {
			return nil, err
		}
	}
	msg := synthesizeMessage{Text: opts.Text, Accept: opts.accept(), Timings: opts.Timings}
	if err := conn.SendJSON(msg); err != nil {
		return nil, err
	}
	if err := conn.Connect(ctx); err != nil {
		return nil, err
	}
	c.rest.Logger().Debug("synthesize stream open", zap.String("connection_id", conn.ID()))
	return conn, nil
}
