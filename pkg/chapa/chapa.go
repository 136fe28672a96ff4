// Package chapa is a client for the Chapa payment gateway HTTP API.
//
// The client validates caller-supplied fields before dispatching, sends a
// single form-encoded request per operation, and normalizes the JSON
// response either into the decoded value as-is (FormatRaw) or into an
// attribute-addressable Object tree (FormatObject).
package chapa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL    = "https://api.chapa.co"
	DefaultAPIVersion = "v1"
)

// ResponseFormat selects how decoded JSON responses are returned.
type ResponseFormat string

const (
	// FormatRaw returns decoded responses unchanged (map[string]any, slice,
	// scalar, or the body string when the response is not JSON).
	FormatRaw ResponseFormat = "raw"
	// FormatObject rewrites every JSON mapping into an *Object.
	FormatObject ResponseFormat = "object"
)

// Client talks to the Chapa API. It is immutable after construction and
// safe for concurrent use; per-call headers are overlaid onto a fresh
// header set and never persisted.
type Client struct {
	secret     string
	baseURL    string
	apiVersion string
	format     ResponseFormat
	httpClient *http.Client

	// Derived once from the secret at construction time.
	authHeader string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the default API host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithAPIVersion overrides the default API version segment.
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

// WithResponseFormat selects FormatRaw or FormatObject.
func WithResponseFormat(format ResponseFormat) Option {
	return func(c *Client) { c.format = format }
}

// WithHTTPClient injects the underlying HTTP client. Timeouts, TLS and
// pooling are the injected client's concern.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a Client for the given secret key. It fails only when
// an unrecognized response format is configured.
func NewClient(secret string, opts ...Option) (*Client, error) {
	c := &Client{
		secret:     secret,
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
		format:     FormatRaw,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.format != FormatRaw && c.format != FormatObject {
		return nil, fmt.Errorf("%w, got %q", ErrInvalidResponseFormat, c.format)
	}
	c.authHeader = "Bearer " + c.secret
	return c, nil
}

// ResponseFormat reports the configured response format.
func (c *Client) ResponseFormat() ResponseFormat { return c.format }

// endpoint joins the configured base URL and version with a resource path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + c.apiVersion + "/" + strings.TrimLeft(path, "/")
}

// allowedMethods is the allow-list for SendRequest. Verify goes through
// the unexported do, which accepts any method.
var allowedMethods = map[string]bool{
	http.MethodPost: true,
	http.MethodPut:  true,
}

// SendRequest issues a single request against rawURL.
//
// data becomes the form-encoded body, params are attached to the URL query
// string, and headers are overlaid onto the client's base Authorization
// header for this call only. Each of the three must be a flat string-keyed
// mapping: scalar values only.
func (c *Client) SendRequest(ctx context.Context, rawURL, method string, data, params, headers map[string]any) (any, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if !allowedMethods[method] {
		return nil, fmt.Errorf("%w %q, allowed methods are POST and PUT", ErrInvalidMethod, method)
	}
	if err := validateFlat("params", params); err != nil {
		return nil, err
	}
	if err := validateFlat("data", data); err != nil {
		return nil, err
	}
	if err := validateFlat("headers", headers); err != nil {
		return nil, err
	}
	return c.do(ctx, rawURL, method, data, params, headers)
}

// do performs the HTTP round trip without the method allow-list. All
// validation must happen before reaching here.
func (c *Client) do(ctx context.Context, rawURL, method string, data, params, headers map[string]any) (any, error) {
	target := rawURL
	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("%w: url: %v", ErrInvalidArgument, err)
		}
		q := u.Query()
		for k, v := range params {
			q.Set(k, scalarString(v))
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	var body io.Reader
	if len(data) > 0 {
		form := url.Values{}
		for k, v := range data {
			form.Set(k, scalarString(v))
		}
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	// Fresh header set per call: base Authorization plus caller overlay.
	req.Header.Set("Authorization", c.authHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, scalarString(v))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	// Non-2xx statuses are not classified here: the decoded payload is
	// returned uniformly and callers inspect gateway-level indicators.
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw), nil
	}
	return decoded, nil
}

// adapt applies the configured response format.
func (c *Client) adapt(v any) any {
	if c.format == FormatObject {
		return Adapt(v)
	}
	return v
}

// validateFlat checks that m is a flat mapping: every value must be a
// scalar. Nested mappings and sequences are the error case.
func validateFlat(name string, m map[string]any) error {
	for k, v := range m {
		switch v.(type) {
		case nil, string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
		default:
			return fmt.Errorf("%w: %s[%q] must be a scalar, got %T", ErrInvalidArgument, name, k, v)
		}
	}
	return nil
}

// scalarString renders a scalar for a form field, query parameter or
// header value. Floats keep their shortest decimal form.
func scalarString(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", n)
	}
}
