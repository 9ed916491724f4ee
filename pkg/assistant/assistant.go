// Package assistant is the Watson Assistant v1 client
package assistant

import (
	"context"
	"net/http"

	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/core/rest"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/utils"
)

// Options configures a Client. Version is the dated API version sent with
// every request.
type Options struct {
	rest.Options
	Version string
}

type Client struct {
	rest    *rest.Client
	version string
}

func New(opts Options) (*Client, error) {
	opts.Service = utils.FirstNonEmpty(opts.Service, cnst.ServiceAssistant)
	opts.URL = utils.FirstNonEmpty(opts.URL, cnst.DefaultAssistantURL)
	opts.Version = utils.FirstNonEmpty(opts.Version, cnst.DefaultAssistantVersion)
	rc, err := rest.NewClient(opts.Options)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rc, version: opts.Version}, nil
}

func (c *Client) Version() string { return c.version }

func (c *Client) request(method, path string) *rest.Request {
	return rest.NewRequest(method, path).WithQuery("version", c.version)
}

// Message sends user input to a workspace and returns the dialog response
func (c *Client) Message(ctx context.Context, workspaceID string, req *MessageRequest) (*MessageResponse, error) {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID); err != nil {
		return nil, err
	}
	if req == nil {
		req = &MessageRequest{}
	}
	r := c.request(http.MethodPost, "/v1/workspaces/{workspace_id}/message").
		WithPathParam("workspace_id", workspaceID).
		WithJSON(req)

	var res MessageResponse
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListWorkspaces(ctx context.Context) (*WorkspaceCollection, error) {
	var res WorkspaceCollection
	if _, err := c.rest.Do(ctx, c.request(http.MethodGet, "/v1/workspaces"), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetWorkspace returns a workspace. export includes intents, entities and
// dialog nodes.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string, export bool) (*Workspace, error) {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID); err != nil {
		return nil, err
	}
	r := c.request(http.MethodGet, "/v1/workspaces/{workspace_id}").
		WithPathParam("workspace_id", workspaceID).
		WithBoolQuery("export", &export)

	var res Workspace
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateWorkspace(ctx context.Context, ws *Workspace) (*Workspace, error) {
	if ws == nil {
		ws = &Workspace{}
	}
	var res Workspace
	if _, err := c.rest.Do(ctx, c.request(http.MethodPost, "/v1/workspaces").WithJSON(ws), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID); err != nil {
		return err
	}
	r := c.request(http.MethodDelete, "/v1/workspaces/{workspace_id}").WithPathParam("workspace_id", workspaceID)
	_, err := c.rest.Do(ctx, r, nil)
	return err
}

func (c *Client) ListIntents(ctx context.Context, workspaceID string) (*IntentCollection, error) {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID); err != nil {
		return nil, err
	}
	r := c.request(http.MethodGet, "/v1/workspaces/{workspace_id}/intents").WithPathParam("workspace_id", workspaceID)

	var res IntentCollection
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateIntent(ctx context.Context, workspaceID string, intent *Intent) (*Intent, error) {
	if intent == nil {
		return nil, sdkerrors.ErrArgumentNull("intent")
	}
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID, "intent", intent.Intent); err != nil {
		return nil, err
	}
	r := c.request(http.MethodPost, "/v1/workspaces/{workspace_id}/intents").
		WithPathParam("workspace_id", workspaceID).
		WithJSON(intent)

	var res Intent
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteIntent(ctx context.Context, workspaceID, intent string) error {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID, "intent", intent); err != nil {
		return err
	}
	r := c.request(http.MethodDelete, "/v1/workspaces/{workspace_id}/intents/{intent}").
		WithPathParam("workspace_id", workspaceID).
		WithPathParam("intent", intent)
	_, err := c.rest.Do(ctx, r, nil)
	return err
}

func (c *Client) ListEntities(ctx context.Context, workspaceID string) (*EntityCollection, error) {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID); err != nil {
		return nil, err
	}
	r := c.request(http.MethodGet, "/v1/workspaces/{workspace_id}/entities").WithPathParam("workspace_id", workspaceID)

	var res EntityCollection
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateEntity(ctx context.Context, workspaceID string, entity *Entity) (*Entity, error) {
	if entity == nil {
		return nil, sdkerrors.ErrArgumentNull("entity")
	}
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID, "entity", entity.Entity); err != nil {
		return nil, err
	}
	r := c.request(http.MethodPost, "/v1/workspaces/{workspace_id}/entities").
		WithPathParam("workspace_id", workspaceID).
		WithJSON(entity)

	var res Entity
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteEntity(ctx context.Context, workspaceID, entity string) error {
	if err := sdkerrors.RequireNonEmpty("workspace_id", workspaceID, "entity", entity); err != nil {
		return err
	}
	r := c.request(http.MethodDelete, "/v1/workspaces/{workspace_id}/entities/{entity}").
		WithPathParam("workspace_id", workspaceID).
		WithPathParam("entity", entity)
	_, err := c.rest.Do(ctx, r, nil)
	return err
}
