package speechtotext

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/accumulator"
	"github.com/amoylab/watson/internal/core/rest"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/utils"

	"go.uber.org/zap"
)

// Session is a server side recognition context. The service forgets it
// after a period of inactivity; nothing here tracks that. A Session belongs
// to the goroutine that created it.
type Session struct {
	SessionID     string `json:"session_id"`
	NewSessionURI string `json:"new_session_uri"`
	Recognize     string `json:"recognize"`
	ObserveResult string `json:"observe_result"`
	RecognizeWS   string `json:"recognizeWS"`

	model  string
	state  SessionStatus
	client *Client
}

// Model returns the model the session was created with
func (s *Session) Model() string { return s.model }

// State returns the last status reported by the service
func (s *Session) State() SessionStatus { return s.state }

// Status asks the service for the session state and records it
func (s *Session) Status(ctx context.Context) (*SessionStatusResult, error) {
	res, err := s.client.GetSessionStatus(ctx, s.SessionID)
	if err != nil {
		return nil, err
	}
	s.state = res.Session.State
	return res, nil
}

// Delete ends the session on the service
func (s *Session) Delete(ctx context.Context) error {
	return s.client.DeleteSession(ctx, s.SessionID)
}

// CreateSession opens a recognition session for model. An empty model
// selects en-US_BroadbandModel.
func (c *Client) CreateSession(ctx context.Context, model string) (*Session, error) {
	model = utils.FirstNonEmpty(model, cnst.DefaultModel)
	req := rest.NewRequest(http.MethodPost, "/v1/sessions").WithQuery("model", model)

	var body struct {
		Session
		State SessionStatus `json:"state"`
	}
	if _, err := c.rest.Do(ctx, req, &body); err != nil {
		return nil, err
	}
	if body.SessionID == "" {
		return nil, &sdkerrors.DecodeError{Err: errors.New("response carries no session_id")}
	}

	s := body.Session
	s.model = model
	s.state = body.State
	if s.state == "" {
		s.state = SessionInitialized
	}
	s.client = c
	c.rest.Logger().Debug("session created", zap.String("session_id", s.SessionID), zap.String("model", model))
	return &s, nil
}

// GetSessionStatus reports the state of a session
func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatusResult, error) {
	if err := sdkerrors.RequireNonEmpty("session_id", sessionID); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodGet, "/v1/sessions/{session_id}/recognize").
		WithPathParam("session_id", sessionID).
		WithHeader(cnst.HeaderCookie, sessionCookie(sessionID))

	var res SessionStatusResult
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteSession ends a session
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	if err := sdkerrors.RequireNonEmpty("session_id", sessionID); err != nil {
		return err
	}
	req := rest.NewRequest(http.MethodDelete, "/v1/sessions/{session_id}").
		WithPathParam("session_id", sessionID).
		WithHeader(cnst.HeaderCookie, sessionCookie(sessionID))
	if _, err := c.rest.Do(ctx, req, nil); err != nil {
		return err
	}
	c.rest.Logger().Debug("session deleted", zap.String("session_id", sessionID))
	return nil
}

// RecognizeWithSession sends audio for recognition within a session and
// waits for the final result
func (c *Client) RecognizeWithSession(ctx context.Context, sessionID string, audio io.Reader, contentType string) (*SpeechRecognitionEvent, error) {
	if err := sdkerrors.RequireNonEmpty("session_id", sessionID, "content_type", contentType); err != nil {
		return nil, err
	}
	if audio == nil {
		return nil, sdkerrors.ErrArgumentNull("audio")
	}
	req := rest.NewRequest(http.MethodPost, "/v1/sessions/{session_id}/recognize").
		WithPathParam("session_id", sessionID).
		WithHeader(cnst.HeaderCookie, sessionCookie(sessionID)).
		WithBody(audio, contentType)

	var res SpeechRecognitionEvent
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// MultipartMetadata is the metadata part of a multipart session recognize
// request
type MultipartMetadata struct {
	PartContentType   string   `json:"part_content_type"`
	DataPartsCount    int64    `json:"data_parts_count,omitempty"`
	SequenceID        *int64   `json:"sequence_id,omitempty"`
	Continuous        *bool    `json:"continuous,omitempty"`
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

// RecognizeWithSessionMultipart sends a metadata part and one audio part to
// a session. metadata.PartContentType defaults to contentType.
func (c *Client) RecognizeWithSessionMultipart(ctx context.Context, sessionID string, metadata *MultipartMetadata, audio io.Reader, contentType string) (*SpeechRecognitionEvent, error) {
	if err := sdkerrors.RequireNonEmpty("session_id", sessionID, "content_type", contentType); err != nil {
		return nil, err
	}
	if audio == nil {
		return nil, sdkerrors.ErrArgumentNull("audio")
	}
	meta := MultipartMetadata{}
	if metadata != nil {
		meta = *metadata
	}
	if meta.PartContentType == "" {
		meta.PartContentType = contentType
	}
	if meta.DataPartsCount == 0 {
		meta.DataPartsCount = 1
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	req := rest.NewRequest(http.MethodPost, "/v1/sessions/{session_id}/recognize").
		WithPathParam("session_id", sessionID).
		WithHeader(cnst.HeaderCookie, sessionCookie(sessionID)).
		WithMultipart(
			rest.Part{Name: "metadata", ContentType: cnst.ContentTypeJSON, Content: bytes.NewReader(metaJSON)},
			rest.Part{Name: "upload", FileName: "upload", ContentType: contentType, Content: audio},
		)

	var res SpeechRecognitionEvent
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ObserveResultOptions selects which results ObserveResult waits for
type ObserveResultOptions struct {
	// SequenceID correlates with an earlier recognize request. Unset means
	// the request in flight or the next one.
	SequenceID *int64
	// InterimResults asks for partial hypotheses as well as final results
	InterimResults *bool
}

// ObserveResult waits for the results of a session recognize request. The
// response body is a run of JSON documents, one per event, decoded in
// order. On a malformed document the events before it are returned together
// with a DecodeError naming its position.
func (c *Client) ObserveResult(ctx context.Context, sessionID string, opts *ObserveResultOptions) ([]SpeechRecognitionEvent, error) {
	if err := sdkerrors.RequireNonEmpty("session_id", sessionID); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &ObserveResultOptions{}
	}
	req := rest.NewRequest(http.MethodGet, "/v1/sessions/{session_id}/observe_result").
		WithPathParam("session_id", sessionID).
		WithHeader(cnst.HeaderCookie, sessionCookie(sessionID)).
		WithIntQuery("sequence_id", opts.SequenceID).
		WithBoolQuery("interim_results", opts.InterimResults)

	resp, err := c.rest.Stream(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	events, err := accumulator.DecodeDocuments[SpeechRecognitionEvent](resp.Body)
	if err != nil {
		c.rest.Logger().Debug("observe result decode failed",
			zap.String("session_id", sessionID),
			zap.Int("decoded", len(events)),
			zap.Error(err))
	}
	return events, err
}
