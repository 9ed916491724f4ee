// Package visualrecognition is the Watson Visual Recognition v3 client
package visualrecognition

import (
	"context"
	"io"
	"net/http"
	"strconv"
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
	opts.Service = utils.FirstNonEmpty(opts.Service, cnst.ServiceVisualRecognition)
	opts.URL = utils.FirstNonEmpty(opts.URL, cnst.DefaultVisualRecognitionURL)
	opts.Version = utils.FirstNonEmpty(opts.Version, cnst.DefaultVisualRecognitionVersion)
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

// ClassifyOptions selects the image and classifiers. Either ImagesFile or
// URL must be set; ImagesFile may be a single image or a zip archive.
type ClassifyOptions struct {
	ImagesFile            io.Reader
	ImagesFilename        string
	ImagesFileContentType string
	URL                   string
	Threshold             *float64
	Owners                []string
	ClassifierIDs         []string
	AcceptLanguage        string
}

func (o *ClassifyOptions) parts() []rest.Part {
	parts := []rest.Part{
		{Name: "images_file", FileName: fileName(o.ImagesFilename), ContentType: o.ImagesFileContentType, Content: o.ImagesFile},
		textPart("url", o.URL),
		textPart("owners", strings.Join(o.Owners, ",")),
		textPart("classifier_ids", strings.Join(o.ClassifierIDs, ",")),
	}
	if o.Threshold != nil {
		parts = append(parts, textPart("threshold", strconv.FormatFloat(*o.Threshold, 'f', -1, 64)))
	}
	return parts
}

func fileName(name string) string {
	if name == "" {
		return "images_file"
	}
	return name
}

// textPart returns a form field part, skipped when value is empty
func textPart(name, value string) rest.Part {
	p := rest.Part{Name: name}
	if value != "" {
		p.Content = strings.NewReader(value)
	}
	return p
}

func (c *Client) Classify(ctx context.Context, opts *ClassifyOptions) (*ClassifiedImages, error) {
	if opts == nil || (opts.ImagesFile == nil && opts.URL == "") {
		return nil, sdkerrors.ErrArgumentNull("images_file")
	}
	r := c.request(http.MethodPost, "/v3/classify").WithMultipart(opts.parts()...)
	if opts.AcceptLanguage != "" {
		r.WithHeader("Accept-Language", opts.AcceptLanguage)
	}

	var res ClassifiedImages
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DetectFacesOptions selects the image. Either ImagesFile or URL must be set.
type DetectFacesOptions struct {
	ImagesFile            io.Reader
	ImagesFilename        string
	ImagesFileContentType string
	URL                   string
}

func (c *Client) DetectFaces(ctx context.Context, opts *DetectFacesOptions) (*DetectedFaces, error) {
	if opts == nil || (opts.ImagesFile == nil && opts.URL == "") {
		return nil, sdkerrors.ErrArgumentNull("images_file")
	}
	r := c.request(http.MethodPost, "/v3/detect_faces").WithMultipart(
		rest.Part{Name: "images_file", FileName: fileName(opts.ImagesFilename), ContentType: opts.ImagesFileContentType, Content: opts.ImagesFile},
		textPart("url", opts.URL),
	)

	var res DetectedFaces
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListClassifiers lists custom classifiers; verbose includes class details
func (c *Client) ListClassifiers(ctx context.Context, verbose bool) (*Classifiers, error) {
	var res Classifiers
	r := c.request(http.MethodGet, "/v3/classifiers").WithBoolQuery("verbose", &verbose)
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetClassifier(ctx context.Context, classifierID string) (*Classifier, error) {
	if err := sdkerrors.RequireNonEmpty("classifier_id", classifierID); err != nil {
		return nil, err
	}
	r := c.request(http.MethodGet, "/v3/classifiers/{classifier_id}").WithPathParam("classifier_id", classifierID)

	var res Classifier
	if _, err := c.rest.Do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DeleteClassifier(ctx context.Context, classifierID string) error {
	if err := sdkerrors.RequireNonEmpty("classifier_id", classifierID); err != nil {
		return err
	}
	r := c.request(http.MethodDelete, "/v3/classifiers/{classifier_id}").WithPathParam("classifier_id", classifierID)
	_, err := c.rest.Do(ctx, r, nil)
	return err
}
