// Package discovery is the Watson Discovery v1 client
package discovery

import (
	"context"
	"io"
	"net/http"
	"strings"

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
	opts.Service = utils.FirstNonEmpty(opts.Service, cnst.ServiceDiscovery)
	opts.URL = utils.FirstNonEmpty(opts.URL, cnst.DefaultDiscoveryURL)
	opts.Version = utils.FirstNonEmpty(opts.Version, cnst.DefaultDiscoveryVersion)
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

func (c *Client) ListEnvironments(ctx context.Context) (*ListEnvironmentsResponse, error) {
	var res ListEnvironmentsResponse
	if _, err := c.rest.Do(ctx, c.request(http.MethodGet, "/v1/environments"), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetEnvironment(ctx context.Context, environmentID string) (*Environment, error) {
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID); err != nil {
		return nil, err
	}
	r := c.request(http.MethodGet, "/v1/environments/{environment_id}").WithPathParam("environment_id", environmentID)

	var res Environment
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListCollections(ctx context.Context, environmentID string) (*ListCollectionsResponse, error) {
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID); err != nil {
		return nil, err
	}
	r := c.request(http.MethodGet, "/v1/environments/{environment_id}/collections").WithPathParam("environment_id", environmentID)

	var res ListCollectionsResponse
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateCollection(ctx context.Context, environmentID string, opts *CreateCollectionOptions) (*Collection, error) {
	if opts == nil {
		return nil, sdkerrors.ErrArgumentNull("name")
	}
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID, "name", opts.Name); err != nil {
		return nil, err
	}
	r := c.request(http.MethodPost, "/v1/environments/{environment_id}/collections").
		WithPathParam("environment_id", environmentID).
		WithJSON(opts)

	var res Collection
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteCollection(ctx context.Context, environmentID, collectionID string) error {
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID, "collection_id", collectionID); err != nil {
		return err
	}
	r := c.request(http.MethodDelete, "/v1/environments/{environment_id}/collections/{collection_id}").
		WithPathParam("environment_id", environmentID).
		WithPathParam("collection_id", collectionID)
	_, err := c.rest.Do(ctx, r, nil)
	return err
}

// AddDocumentOptions describes one document upload. Metadata is sent as a
// JSON string part.
type AddDocumentOptions struct {
	File            io.Reader
	Filename        string
	FileContentType string
	Metadata        string
}

// AddDocument uploads a document for ingestion into a collection
func (c *Client) AddDocument(ctx context.Context, environmentID, collectionID string, opts *AddDocumentOptions) (*DocumentAccepted, error) {
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID, "collection_id", collectionID); err != nil {
		return nil, err
	}
	if opts == nil || (opts.File == nil && opts.Metadata == "") {
		return nil, sdkerrors.ErrArgumentNull("file")
	}
	name := opts.Filename
	if name == "" {
		name = "file"
	}
	parts := []rest.Part{{Name: "file", FileName: name, ContentType: opts.FileContentType, Content: opts.File}}
	if opts.Metadata != "" {
		parts = append(parts, rest.Part{Name: "metadata", ContentType: cnst.ContentTypeJSON, Content: strings.NewReader(opts.Metadata)})
	}
	r := c.request(http.MethodPost, "/v1/environments/{environment_id}/collections/{collection_id}/documents").
		WithPathParam("environment_id", environmentID).
		WithPathParam("collection_id", collectionID).
		WithMultipart(parts...)

	var res DocumentAccepted
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteDocument(ctx context.Context, environmentID, collectionID, documentID string) error {
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID, "collection_id", collectionID, "document_id", documentID); err != nil {
		return err
	}
	r := c.request(http.MethodDelete, "/v1/environments/{environment_id}/collections/{collection_id}/documents/{document_id}").
		WithPathParam("environment_id", environmentID).
		WithPathParam("collection_id", collectionID).
		WithPathParam("document_id", documentID)
	_, err := c.rest.Do(ctx, r, nil)
	return err
}

// QueryOptions are the parameters of a collection query
type QueryOptions struct {
	Query            string
	NaturalLanguage  string
	Filter           string
	Aggregation      string
	Count            *int64
	Offset           *int64
	Return           []string
	Sort             []string
	Highlight        *bool
	DeduplicateField string
}

func (c *Client) Query(ctx context.Context, environmentID, collectionID string, opts *QueryOptions) (*QueryResponse, error) {
	if err := sdkerrors.RequireNonEmpty("environment_id", environmentID, "collection_id", collectionID); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &QueryOptions{}
	}
	r := c.request(http.MethodGet, "/v1/environments/{environment_id}/collections/{collection_id}/query").
		WithPathParam("environment_id", environmentID).
		WithPathParam("collection_id", collectionID).
		WithOptionalQuery("query", opts.Query).
		WithOptionalQuery("natural_language_query", opts.NaturalLanguage).
		WithOptionalQuery("filter", opts.Filter).
		WithOptionalQuery("aggregation", opts.Aggregation).
		WithIntQuery("count", opts.Count).
		WithIntQuery("offset", opts.Offset).
		WithListQuery("return", opts.Return).
		WithListQuery("sort", opts.Sort).
		WithBoolQuery("highlight", opts.Highlight).
		WithOptionalQuery("deduplicate.field", opts.DeduplicateField)

	var res QueryResponse
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
