package jira

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIVersion is the REST API version used when none is configured.
const DefaultAPIVersion = "latest"

// Client issues authenticated GET requests against the JIRA REST API and wraps
// the replies as typed views. It holds no state besides its configuration.
type Client struct {
	APIURL *url.URL     // Base API URL, e.g. https://jira.example.com/rest/api/latest/
	Client *http.Client // Underlying HTTP client

	auth      AuthFunc
	logger    *slog.Logger
	userAgent string
}

// options collects the settings applied by Option values.
type options struct {
	apiVersion    string
	httpClient    *http.Client
	timeout       time.Duration
	skipTLSVerify bool
	logger        *slog.Logger
	userAgent     string
}

// Option customises a Client built by NewClient.
type Option func(*options)

// WithAPIVersion selects the REST API version, e.g. "2". Empty keeps "latest".
func WithAPIVersion(version string) Option {
	return func(o *options) {
		if v := strings.Trim(strings.TrimSpace(version), "/"); v != "" {
			o.apiVersion = v
		}
	}
}

// WithHTTPClient replaces the default HTTP client. Timeout and TLS options are ignored then.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithSkipTLSVerify disables certificate verification on the default HTTP client.
func WithSkipTLSVerify(skip bool) Option {
	return func(o *options) { o.skipTLSVerify = skip }
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(o *options) { o.userAgent = strings.TrimSpace(agent) }
}

// NewClient returns a client for the JIRA server at serverURL.
// The API base becomes "<serverURL>/rest/api/<version>/". A nil auth sends anonymous requests.
func NewClient(serverURL string, auth AuthFunc, opts ...Option) (*Client, error) {
	o := options{
		apiVersion: DefaultAPIVersion,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	server := strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if server == "" {
		return nil, errors.New("missing server URL")
	}
	apiURL, err := url.Parse(fmt.Sprintf("%s/rest/api/%s/", server, o.apiVersion))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if !apiURL.IsAbs() || apiURL.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: must be absolute", serverURL)
	}

	if auth == nil {
		auth = noAuth
	}
	hc := o.httpClient
	if hc == nil {
		hc = newHTTPClient(o.timeout, o.skipTLSVerify)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		APIURL:    apiURL,
		Client:    hc,
		auth:      auth,
		logger:    logger,
		userAgent: o.userAgent,
	}, nil
}

// BaseURL returns the API base URL including the trailing slash.
func (c *Client) BaseURL() string { return c.APIURL.String() }

// RelativeResource strips the API base URL from resource when resource starts with it.
// Relative resources and absolute URLs pointing elsewhere are returned unchanged.
func (c *Client) RelativeResource(resource string) string {
	if rel, ok := strings.CutPrefix(resource, c.BaseURL()); ok {
		return rel
	}
	return resource
}

// Get performs an authenticated GET for resource and returns the envelope.
// resource is relative to the API base ("issue/JRA-9") or an absolute locator as
// found in "self" fields. HTTP error statuses are not errors; they are passed
// through in the envelope. Errors cover transport, read and JSON parse failures.
func (c *Client) Get(ctx context.Context, resource string) (*Response, error) {
	rel := c.RelativeResource(resource)
	ref, err := url.Parse(rel)
	if err != nil {
		return nil, fmt.Errorf("parse resource %q: %w", resource, err)
	}
	target := c.APIURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	c.auth(req) // apply authentication

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("jira request", "method", http.MethodGet, "url", target)

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	contentType := res.Header.Get("Content-Type")
	c.logger.Debug("jira response",
		"url", target,
		"status", res.StatusCode,
		"contentType", contentType,
		"bytes", len(body),
	)

	return NewResponse(c, res.StatusCode, contentType, body)
}

// GetIssue fetches the issue with the given key, e.g. "JRA-9".
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	resp, err := c.Get(ctx, "issue/"+key)
	if err != nil {
		return nil, fmt.Errorf("get issue %q: %w", key, err)
	}
	return NewIssue(resp), nil
}

// GetIssueType fetches the issue type with the given numeric id.
func (c *Client) GetIssueType(ctx context.Context, id string) (*IssueType, error) {
	resp, err := c.Get(ctx, "issueType/"+id)
	if err != nil {
		return nil, fmt.Errorf("get issue type %q: %w", id, err)
	}
	return NewIssueType(resp), nil
}

// GetIssueTypeByResource fetches an issue type from a full locator supplied by
// the server, such as the "self" link of an issue's type.
func (c *Client) GetIssueTypeByResource(ctx context.Context, locator string) (*IssueType, error) {
	resp, err := c.Get(ctx, locator)
	if err != nil {
		return nil, fmt.Errorf("get issue type %q: %w", locator, err)
	}
	return NewIssueType(resp), nil
}
