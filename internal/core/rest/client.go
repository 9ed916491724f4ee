package rest

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/amoylab/watson/internal/auth/impl"
	"github.com/amoylab/watson/internal/auth/types"
	"github.com/amoylab/watson/internal/common/cnst"
	"github.com/amoylab/watson/internal/common/config"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
	"github.com/amoylab/watson/pkg/logger"
	"github.com/amoylab/watson/pkg/metrics"
	"github.com/amoylab/watson/pkg/trace"
	"github.com/amoylab/watson/pkg/utils"
	"github.com/amoylab/watson/pkg/version"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Options configures a Client
type Options struct {
	Service       string
	URL           string
	Authenticator types.Authenticator
	HTTPClient    *http.Client
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
	Headers       map[string]string
}

// Client sends requests to one Watson service. It holds no per-call state
// and may be shared between goroutines.
type Client struct {
	service    string
	url        string
	auth       types.Authenticator
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
	headers    map[string]string
}

// Response carries response metadata for calls that decode a body
type Response struct {
	StatusCode    int
	Header        http.Header
	TransactionID string
}

// NewHTTPClient builds the instrumented http.Client used by every service
func NewHTTPClient(cfg config.HTTPConfig) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.DisableCertValidation {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(base),
	}
}

func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, sdkerrors.ErrArgumentNull("url")
	}
	c := &Client{
		service:    opts.Service,
		url:        opts.URL,
		auth:       opts.Authenticator,
		httpClient: opts.HTTPClient,
		logger:     logger.OrNop(opts.Logger).Named("rest." + opts.Service),
		metrics:    opts.Metrics,
		headers: utils.MergeStringMaps(
			map[string]string{cnst.HeaderUserAgent: version.UserAgent(cnst.AppName)},
			opts.Headers),
	}
	if c.auth == nil {
		c.auth = &impl.NoopAuthenticator{}
	}
	if c.httpClient == nil {
		c.httpClient = NewHTTPClient(config.HTTPConfig{})
	}
	return c, nil
}

func (c *Client) URL() string                        { return c.url }
func (c *Client) Service() string                    { return c.service }
func (c *Client) Authenticator() types.Authenticator { return c.auth }
func (c *Client) Logger() *zap.Logger                { return c.logger }
func (c *Client) Metrics() *metrics.Metrics          { return c.metrics }

// Headers returns a copy of the default headers sent with every request
func (c *Client) Headers() map[string]string {
	return utils.MergeStringMaps(c.headers)
}

// Do sends req and decodes a JSON response into out. out may be nil when the
// response body is not needed.
func (c *Client) Do(ctx context.Context, req *Request, out any) (*Response, error) {
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	meta := &Response{
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		TransactionID: resp.Header.Get(cnst.HeaderTransactionID),
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return meta, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return meta, &sdkerrors.DecodeError{Err: err}
	}
	return meta, nil
}

// Stream sends req and returns the open response for the caller to consume.
// The caller must close the body.
func (c *Client) Stream(ctx context.Context, req *Request) (*http.Response, error) {
	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, req *Request) (*http.Response, error) {
	if req.err != nil {
		return nil, req.err
	}
	target, err := req.buildURL(c.url)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set(cnst.HeaderAccept, cnst.ContentTypeJSON)
	utils.SetHeaders(httpReq.Header, c.headers)
	utils.SetHeaders(httpReq.Header, req.Header)
	if err := c.auth.Authenticate(ctx, httpReq.Header); err != nil {
		return nil, fmt.Errorf("authenticate request: %w", err)
	}

	scope := trace.Tracer(cnst.TraceREST).Start(ctx, cnst.SpanRESTPrefix+c.service).
		WithAttrs(attribute.String(cnst.AttrService, c.service))
	defer scope.End()
	httpReq = httpReq.WithContext(scope.Ctx)

	c.logger.Debug("sending request",
		zap.String("method", req.Method),
		zap.String("path", req.Path))

	start := time.Now()
	c.metrics.RESTStart(c.service)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RESTDone(c.service, req.Method, 0, start)
		scope.Fail(err)
		return nil, &sdkerrors.TransportError{Op: req.Method + " " + req.Path, Err: err}
	}
	c.metrics.RESTDone(c.service, req.Method, resp.StatusCode, start)
	scope.WithAttrs(attribute.Int(cnst.AttrHTTPStatusCode, resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		svcErr := NewServiceError(resp)
		scope.Fail(svcErr)
		c.logger.Debug("service returned error",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", resp.StatusCode),
			zap.Error(svcErr))
		return nil, svcErr
	}
	return resp, nil
}
