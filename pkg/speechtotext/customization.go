package speechtotext

import (
	"context"
	"net/http"

	"github.com/amoylab/watson/internal/core/rest"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

func (c *Client) ListModels(ctx context.Context) (*SpeechModels, error) {
	var res SpeechModels
	if _, err := c.rest.Do(ctx, rest.NewRequest(http.MethodGet, "/v1/models"), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetModel(ctx context.Context, modelID string) (*SpeechModel, error) {
	if err := sdkerrors.RequireNonEmpty("model_id", modelID); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodGet, "/v1/models/{model_id}").WithPathParam("model_id", modelID)

	var res SpeechModel
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListCustomizations lists custom language models, optionally filtered by
// language
func (c *Client) ListCustomizations(ctx context.Context, language string) (*LanguageModels, error) {
	req := rest.NewRequest(http.MethodGet, "/v1/customizations").WithOptionalQuery("language", language)

	var res LanguageModels
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateCustomization(ctx context.Context, opts *CreateLanguageModelOptions) (*LanguageModel, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("name")
	}
	if err := sdkerrors.RequireNonEmpty("name", opts.Name, "base_model_name", opts.BaseModelName); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodPost, "/v1/customizations").WithJSON(opts)

	var res LanguageModel
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteCustomization(ctx context.Context, customizationID string) error {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID); err != nil {
		return err
	}
	req := rest.NewRequest(http.MethodDelete, "/v1/customizations/{customization_id}").
		WithPathParam("customization_id", customizationID)
	_, err := c.rest.Do(ctx, req, nil)
	return err
}

// AddWord adds or replaces one word in a custom language model
func (c *Client) AddWord(ctx context.Context, customizationID, wordName string, word *CustomWord) error {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID, "word_name", wordName); err != nil {
		return err
	}
	if word == nil {
		word = &CustomWord{}
	}
	req := rest.NewRequest(http.MethodPut, "/v1/customizations/{customization_id}/words/{word_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word_name", wordName).
		WithJSON(word)
	_, err := c.rest.Do(ctx, req, nil)
	return err
}

func (c *Client) GetWord(ctx context.Context, customizationID, wordName string) (*Word, error) {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID, "word_name", wordName); err != nil {
		return nil, err
	}
	req := rest.NewRequest(http.MethodGet, "/v1/customizations/{customization_id}/words/{word_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word_name", wordName)

	var res Word
	if _, err := c.rest.Do(ctx, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteWord(ctx context.Context, customizationID, wordName string) error {
	if err := sdkerrors.RequireNonEmpty("customization_id", customizationID, "word_name", wordName); err != nil {
		return err
	}
	req := rest.NewRequest(http.MethodDelete, "/v1/customizations/{customization_id}/words/{word_name}").
		WithPathParam("customization_id", customizationID).
		WithPathParam("word_name", wordName)
	_, err := c.rest.Do(ctx, req, nil)
	return err
}
