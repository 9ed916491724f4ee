package texttospeech

import (
	"context"
	"net/http"

	"github.com/amoylab/watson/internal/core/rest"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

func (c *Client) ListVoices(ctx context.Context) (*Voices, error) {
	var res Voices
	if _, err := c.rest.Do(ctx, rest.NewRequest(http.MethodGet, "/v1/voices"), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetVoice describes a voice. With customizationID the custom model's
// details are included.
func (c *Client) GetVoice(ctx context.Context, voice, customizationID string) (*Voice, error) {
	if err := sdkerrors.RequireNonEmpty("voice", voice); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodGet, "/v1/voices/{voice}").
		WithPathParam("voice", voice).
		WithOptionalQuery("customization_id", customizationID)

	var res Voice
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PronunciationOptions selects the word and phonetic format. Format is ipa
// or spr.
type PronunciationOptions struct {
	Text            string
	Voice           string
	Format          string
	CustomizationID string
}

func (c *Client) GetPronunciation(ctx context.Context, opts *PronunciationOptions) (*Pronunciation, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("text")
	}
	if err := sdkerrors.RequireNonEmpty("text", opts.Text); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodGet, "/v1/pronunciation").
		WithQuery("text", opts.Text).
		WithOptionalQuery("voice", opts.Voice).
		WithOptionalQuery("format", opts.Format).
		WithOptionalQuery("customization_id", opts.CustomizationID)

	var res Pronunciation
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
