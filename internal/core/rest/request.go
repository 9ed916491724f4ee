package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/amoylab/watson/internal/common/cnst"
	sdkerrors "github.com/amoylab/watson/pkg/errors"
)

// Request describes one call against a service path template such as
// /v1/sessions/{session_id}/recognize
type Request struct {
	Method     string
	Path       string
	PathParams map[string]string
	Query      url.Values
	Header     map[string]string
	Body       io.Reader

	err error
}

// Part is one section of a multipart/form-data body
type Part struct {
	Name        string
	FileName    string
	ContentType string
	Content     io.Reader
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method:     method,
		Path:       path,
		PathParams: make(map[string]string),
		Query:      make(url.Values),
		Header:     make(map[string]string),
	}
}

func (r *Request) WithPathParam(name, value string) *Request {
	r.PathParams[name] = value
	return r
}

func (r *Request) WithQuery(key, value string) *Request {
	r.Query.Set(key, value)
	return r
}

// WithOptionalQuery adds key only when value is non-empty
func (r *Request) WithOptionalQuery(key, value string) *Request {
	if value != "" {
		r.Query.Set(key, value)
	}
	return r
}

// WithBoolQuery adds key only when value is set
func (r *Request) WithBoolQuery(key string, value *bool) *Request {
	if value != nil {
		r.Query.Set(key, strconv.FormatBool(*value))
	}
	return r
}

// WithIntQuery adds key only when value is set
func (r *Request) WithIntQuery(key string, value *int64) *Request {
	if value != nil {
		r.Query.Set(key, strconv.FormatInt(*value, 10))
	}
	return r
}

// WithFloatQuery adds key only when value is set
func (r *Request) WithFloatQuery(key string, value *float64) *Request {
	if value != nil {
		r.Query.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
	return r
}

// WithListQuery adds key as a comma separated list when values is not empty
func (r *Request) WithListQuery(key string, values []string) *Request {
	if len(values) > 0 {
		r.Query.Set(key, strings.Join(values, ","))
	}
	return r
}

func (r *Request) WithHeader(key, value string) *Request {
	r.Header[key] = value
	return r
}

// WithBody sets a raw body; contentType may be empty
func (r *Request) WithBody(body io.Reader, contentType string) *Request {
	r.Body = body
	if contentType != "" {
		r.Header[cnst.HeaderContentType] = contentType
	}
	return r
}

// WithJSON marshals v as the request body
func (r *Request) WithJSON(v any) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("marshal request body: %w", err)
		return r
	}
	return r.WithBody(bytes.NewReader(data), cnst.ContentTypeJSON)
}

// quoteEscaper escapes quoted Content-Disposition parameters the way
// multipart.Writer.CreateFormFile does
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WithMultipart builds a multipart/form-data body from parts. Parts with a nil
// Content are skipped.
func (r *Request) WithMultipart(parts ...Part) *Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.Content == nil {
			continue
		}
		if strings.ContainsAny(p.Name, "\r\n") {
			r.err = sdkerrors.ErrInvalidArgument("part name", "contains a line break")
			return r
		}
		if strings.ContainsAny(p.FileName, "\r\n") {
			r.err = sdkerrors.ErrInvalidArgument("filename", "contains a line break")
			return r
		}
		h := make(textproto.MIMEHeader)
		disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(p.Name))
		if p.FileName != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(p.FileName))
		}
		h.Set("Content-Disposition", disposition)
		if p.ContentType != "" {
			h.Set(cnst.HeaderContentType, p.ContentType)
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			r.err = fmt.Errorf("create part %s: %w", p.Name, err)
			return r
		}
		if _, err := io.Copy(pw, p.Content); err != nil {
			r.err = fmt.Errorf("write part %s: %w", p.Name, err)
			return r
		}
	}
	if err := w.Close(); err != nil {
		r.err = fmt.Errorf("close multipart body: %w", err)
		return r
	}
	return r.WithBody(&buf, w.FormDataContentType())
}

// renderPath substitutes {name} segments with escaped path parameters
func (r *Request) renderPath() (string, error) {
	path := r.Path
	for name, value := range r.PathParams {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	if i := strings.Index(path, "{"); i >= 0 {
		return "", fmt.Errorf("unresolved path parameter in %s", r.Path)
	}
	return path, nil
}

// buildURL joins the service base URL with the rendered path and query
func (r *Request) buildURL(base string) (string, error) {
	path, err := r.renderPath()
	if err != nil {
		return "", err
	}
	u := strings.TrimRight(base, "/") + path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u, nil
}
