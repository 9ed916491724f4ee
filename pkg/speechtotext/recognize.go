package speechtotext

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/accumulator"
	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/core/stream"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/utils"

	"go.uber.org/zap"
)

// RecognizeOptions are the parameters of a sessionless recognize request
type RecognizeOptions struct {
	ContentType       string
	Model             string
	CustomizationID   string
	InactivityTimeout *int64
	Keywords          []string
	KeywordsThreshold *float64
	MaxAlternatives   *int64
	WordConfidence    *bool
	Timestamps        *bool
	ProfanityFilter   *bool
	SmartFormatting   *bool
	SpeakerLabels     *bool
}

// Recognize sends audio in a single request and returns the final result
func (c *Client) Recognize(ctx context.Context, audio io.Reader, opts *RecognizeOptions) (*SpeechRecognitionEvent, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("content_type")
	}
	if err := sdkerrors.RequireNonEmpty("content_type", opts.ContentType); err != nil {
		return nil, err
	}
	if audio == nil {
		return nil, sdkerrors.ErrArgumentNull("audio")
	}
	req := rest.NewRequest(http.MethodPost, "/v1/recognize").
		WithOptionalQuery("model", opts.Model).
		WithOptionalQuery("customization_id", opts.CustomizationID).
		WithIntQuery("inactivity_timeout", opts.InactivityTimeout).
		WithListQuery("keywords", opts.Keywords).
		WithFloatQuery("keywords_threshold", opts.KeywordsThreshold).
		WithIntQuery("max_alternatives", opts.MaxAlternatives).
		WithBoolQuery("word_confidence", opts.WordConfidence).
		WithBoolQuery("timestamps", opts.Timestamps).
		WithBoolQuery("profanity_filter", opts.ProfanityFilter).
		WithBoolQuery("smart_formatting", opts.SmartFormatting).
		WithBoolQuery("speaker_labels", opts.SpeakerLabels).
		WithBody(audio, opts.ContentType)

	var res SpeechRecognitionEvent
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RecognizeWSOptions are the parameters of a streaming recognition. Model
// and CustomizationID go into the dial URL; the rest form the start message.
type RecognizeWSOptions struct {
	ContentType     string
	Model           string
	CustomizationID string
	// SessionID streams into an existing session instead of /v1/recognize.
	// The session's model applies and Model is ignored.
	SessionID         string
	InterimResults    bool
	InactivityTimeout *int64
	Keywords          []string
	KeywordsThreshold *float64
	MaxAlternatives   *int64
	WordConfidence    *bool
	Timestamps        *bool
	ProfanityFilter   *bool
	SmartFormatting   *bool
	SpeakerLabels     *bool
}

type startMessage struct {
	Action            string   `json:"action"`
	ContentType       string   `json:"content-type"`
	InterimResults    bool     `json:"interim_results"`
	InactivityTimeout *int64   `json:"inactivity_timeout,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	KeywordsThreshold *float64 `json:"keywords_threshold,omitempty"`
	MaxAlternatives   *int64   `json:"max_alternatives,omitempty"`
	WordConfidence    *bool    `json:"word_confidence,omitempty"`
	Timestamps        *bool    `json:"timestamps,omitempty"`
	ProfanityFilter   *bool    `json:"profanity_filter,omitempty"`
	SmartFormatting   *bool    `json:"smart_formatting,omitempty"`
	SpeakerLabels     *bool    `json:"speaker_labels,omitempty"`
}

type stopMessage struct {
	Action string `json:"action"`
}

// RecognizeStream is an open streaming recognition. Audio is sent with
// SendAudio; Finish tells the service no more audio follows. Results arrive
// on the callback given to RecognizeUsingWebSocket.
type RecognizeStream struct {
	conn *stream.Connection
}

func (s *RecognizeStream) ID() string { return s.conn.ID() }

func (s *RecognizeStream) State() stream.State { return s.conn.State() }

// Done is closed after the terminal event has been delivered
func (s *RecognizeStream) Done() <-chan struct{} { return s.conn.Done() }

// SendAudio queues one chunk of audio as a binary frame
func (s *RecognizeStream) SendAudio(chunk []byte) error {
	return s.conn.SendBinary(chunk)
}

// Finish sends the stop action. The service answers with the remaining
// results and keeps the connection open for another start.
func (s *RecognizeStream) Finish() error {
	return s.conn.SendJSON(stopMessage{Action: "stop"})
}

// Close ends the stream and waits for the terminal event. Inside the
// callback use CloseAsync instead.
func (s *RecognizeStream) Close() error {
	return s.conn.Close()
}

func (s *RecognizeStream) CloseAsync() error {
	return s.conn.CloseAsync()
}

// RecognizeUsingWebSocket opens a streaming recognition. The start message
// is the first frame written once the connection opens. Results are passed
// to cb as RecognitionEvents; a handshake failure is returned and also
// reaches cb as the Error event.
func (c *Client) RecognizeUsingWebSocket(ctx context.Context, opts *RecognizeWSOptions, cb accumulator.Callback) (*RecognizeStream, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("content_type")
	}
	if err := sdkerrors.RequireNonEmpty("content_type", opts.ContentType); err != nil {
		return nil, err
	}
	d, err := accumulator.NewDispatcher(cb, c.rest.Logger())
	if err != nil {
		return nil, err
	}

	path := "/v1/recognize"
	if opts.SessionID != "" {
		path = "/v1/sessions/" + url.PathEscape(opts.SessionID) + "/recognize"
	}
	conn, err := stream.New(c.rest.URL(), path, c.streamOptions(d)...)
	if err != nil {
		return nil, err
	}

	if opts.SessionID != "" {
		if err := conn.AddHeader(cnst.HeaderCookie, sessionCookie(opts.SessionID)); err != nil {
			return nil, err
		}
	} else {
		if err := conn.AddArgument("model", utils.FirstNonEmpty(opts.Model, cnst.DefaultModel)); err != nil {
			return nil, err
		}
	}
	if opts.CustomizationID != "" {
		if err := conn.AddArgument("customization_id", opts.CustomizationID); err != nil {
			return nil, err
		}
	}

	start := startMessage{
		Action:            "start",
		ContentType:       opts.ContentType,
		InterimResults:    opts.InterimResults,
		InactivityTimeout: opts.InactivityTimeout,
		Keywords:          opts.Keywords,
		KeywordsThreshold: opts.KeywordsThreshold,
		MaxAlternatives:   opts.MaxAlternatives,
		WordConfidence:    opts.WordConfidence,
		Timestamps:        opts.Timestamps,
		ProfanityFilter:   opts.ProfanityFilter,
		SmartFormatting:   opts.SmartFormatting,
		SpeakerLabels:     opts.SpeakerLabels,
	}
	if err := conn.SendJSON(start); err != nil {
		return nil, err
	}
	if err := conn.Connect(ctx); err != nil {
		return nil, err
	}
	c.rest.Logger().Debug("recognize stream open", zap.String("connection_id", conn.ID()))
	return &RecognizeStream{conn: conn}, nil
}
