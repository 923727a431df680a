// Package client is the HTTP transport for the generative language API. It
// issues unary generateContent calls and SSE streamGenerateContent calls,
// decodes responses into the core response model, and surfaces non-2xx
// statuses as APIError values.
//
// The client is stateless with respect to conversations; the chat package
// layers history and ordering on top of it.
package client

import (
	"net/http"
	"strings"

	"github.com/strandworks/genchat/core/generate"
	"github.com/strandworks/genchat/observability"
)

// Option configures a Client after config-driven initialization.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client, e.g. to install a
// proxying or recording transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithObserver overrides the default slog observer.
func WithObserver(o observability.Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

// Client talks to the generative language API.
type Client struct {
	apiKey     string
	base       generate.RequestOptions
	httpClient *http.Client
	observer   observability.Observer
}

// New creates a Client from configuration. The API key is required;
// everything else falls back to defaults. Functional options applied after
// initialization can override the HTTP client and observer.
func New(cfg *Config, opts ...Option) (*Client, error) {
	merged := DefaultConfig()
	if cfg != nil {
		merged.Merge(cfg)
	}
	if merged.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey: merged.APIKey,
		base: generate.RequestOptions{
			Timeout:    merged.timeout(),
			APIVersion: merged.APIVersion,
			BaseURL:    merged.BaseURL,
		},
		httpClient: &http.Client{},
		observer:   observability.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// callOptions resolves the effective options for one call: client defaults
// overlaid with the caller's per-call options.
func (c *Client) callOptions(opts *generate.RequestOptions) generate.RequestOptions {
	merged := c.base
	merged.Headers = nil
	for k, v := range c.base.Headers {
		if merged.Headers == nil {
			merged.Headers = make(map[string]string, len(c.base.Headers))
		}
		merged.Headers[k] = v
	}
	merged.Merge(opts)
	return merged
}

// endpoint builds the request URL for a model and verb. Bare model names are
// namespaced under models/; names that already contain a slash (tuned models,
// full resource names) pass through untouched.
func (c *Client) endpoint(opts generate.RequestOptions, model, verb string) string {
	name := model
	if !strings.Contains(name, "/") {
		name = "models/" + name
	}
	base := strings.TrimSuffix(opts.BaseURL, "/")
	return base + "/" + opts.APIVersion + "/" + name + ":" + verb
}
