package texttospeech

import (
	"context"
	"net/http"

	"github.com/amoylab/watson/internal/core/rest"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

// ListVoiceModels lists custom voice models, optionally filtered by language
func (c *Client) ListVoiceModels(ctx context.Context, language string) (*VoiceModels, error) {
	req := rest.NewRequest(http.MethodGet, "/v1/customizations").WithOptionalQuery("language", language)

	var res VoiceModels
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateVoiceModel(ctx context.Context, opts *CreateVoiceModelOptions) (*VoiceModel, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("name")
	}
	if err := sdkerrors.RequireNonEmpty("name", opts.Name); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodPost, "/v1/customizations").WithJSON(opts)

	var res VoiceModel
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteVoiceModel(ctx context.Context, customizationID string) error {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID); err != nil {
		return err
	}
	req := rest.NewRequest(http.MethodDelete, "/v1/customizations/{customization_id}").
		WithPathParam("customization_id", customizationID)
	_, err := c.rest.Do(ctx, req, nil)
	return err
}

// AddWord adds or replaces the translation of word in a custom voice model
func (c *Client) AddWord(ctx context.Context, customizationID, word string, translation *Translation) error {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID, "word", word); err != nil {
		return err
	}
	if translation == nil || translation.Translation == "" {
		return sdkerrors.ErrArgumentNull("translation")
	}
	req := rest.NewRequest(http.MethodPut, "/v1/customizations/{customization_id}/words/{word}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word", word).
		WithJSON(translation)
	_, err := c.rest.Do(ctx, req, nil)
	return err
}

func (c *Client) ListWords(ctx context.Context, customizationID string) (*Words, error) {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodGet, "/v1/customizations/{customization_id}/words").
		WithPathParam("customization_id", customizationID)

	var res Words
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteWord(ctx context.Context, customizationID, word string) error {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID, "word", word); err != nil {
		return err
	}
	req := rest.NewRequest(http.MethodDelete, "/v1/customizations/{customization_id}/words/{word}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word", word)
	_, err := c.rest.Do(ctx, req, nil)
	return err
}
