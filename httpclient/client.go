// Package httpclient provides the HTTP client handed to service agents and
// the header initializer that prepares it from service settings.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/settings"
)

// Client is an HTTP client bound to one remote service.
//
// BaseURL and Header are set by a HeaderInitializer. Header holds the
// default headers; the transport installed on HTTP applies them to every
// request that does not set them itself, so SDKs handed HTTP carry them too.
type Client struct {
	// Name is the logical service name.
	Name string

	BaseURL *url.URL
	Header  http.Header
	HTTP    *http.Client

	settings *settings.ServiceSettings
	base     http.RoundTripper
}

// New creates an uninitialized client for the named service on top of the
// given transport. A nil transport means http.DefaultTransport.
func New(name string, base http.RoundTripper) *Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		Name:   name,
		Header: make(http.Header),
		HTTP:   &http.Client{Transport: base},
		base:   base,
	}
}

// Settings returns the settings the client was initialized with.
// Callers must not modify them.
func (c *Client) Settings() *settings.ServiceSettings {
	return c.settings
}

// NewRequest builds a request for ref resolved against BaseURL. A relative
// ref is appended to the base path; an absolute ref is used as is.
func (c *Client) NewRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	if c.BaseURL == nil {
		return nil, errors.Configuration("client is not initialized", errors.WithService(c.Name))
	}
	r, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	target := r
	if !r.IsAbs() {
		target = c.BaseURL.JoinPath(r.Path)
		target.RawQuery = r.RawQuery
		target.Fragment = r.Fragment
	}
	return http.NewRequestWithContext(ctx, method, target.String(), body)
}

// Do sends a request with the client's HTTP client.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.HTTP.Do(req)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
}

// GetJSON issues a GET for ref and decodes a JSON response body into out.
func (c *Client) GetJSON(ctx context.Context, ref string, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Service: c.Name, StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
