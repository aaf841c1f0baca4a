package httpclient

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/vinayprograms/serviceagents/errors"
	"github.com/vinayprograms/serviceagents/settings"
)

// HeaderInitializer prepares a freshly constructed client for a service.
// It runs once per client construction, before first use.
type HeaderInitializer interface {
	InitializeHeaders(c *Client, s *settings.ServiceSettings) error
}

// TokenSourceFunc supplies OAuth tokens for a service. Token acquisition
// and caching belong to the returned source; base is the client's
// underlying transport, for use by the token requests.
type TokenSourceFunc func(s *settings.ServiceSettings, base http.RoundTripper) oauth2.TokenSource

// ClientCredentialsTokenSource is the default TokenSourceFunc. It uses the
// OAuth2 client credentials grant; tokens are fetched on first request and
// reused until expiry.
func ClientCredentialsTokenSource(s *settings.ServiceSettings, base http.RoundTripper) oauth2.TokenSource {
	cfg := clientcredentials.Config{
		ClientID:     s.OAuthClientID,
		ClientSecret: s.OAuthClientSecret,
		TokenURL:     s.OAuthTokenURL,
		Scopes:       s.OAuthScopes(),
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: base})
	return cfg.TokenSource(ctx)
}

// DefaultInitializer sets the base address, default headers and
// authentication of a client from its service settings.
type DefaultInitializer struct {
	correlationHeader string
	userAgent         string
	tokenSource       TokenSourceFunc
}

var _ HeaderInitializer = (*DefaultInitializer)(nil)

// InitializerOption configures a DefaultInitializer.
type InitializerOption func(*DefaultInitializer)

// WithCorrelationHeader stamps every request with a correlation id in the
// named header. The id comes from WithCorrelationID or is a new UUID.
func WithCorrelationHeader(name string) InitializerOption {
	return func(h *DefaultInitializer) {
		h.correlationHeader = http.CanonicalHeaderKey(name)
	}
}

// WithUserAgent sets a default User-Agent header.
func WithUserAgent(ua string) InitializerOption {
	return func(h *DefaultInitializer) {
		h.userAgent = ua
	}
}

// WithTokenSource replaces the OAuth token helper.
func WithTokenSource(fn TokenSourceFunc) InitializerOption {
	return func(h *DefaultInitializer) {
		h.tokenSource = fn
	}
}

// NewHeaderInitializer creates a DefaultInitializer.
func NewHeaderInitializer(opts ...InitializerOption) *DefaultInitializer {
	h := &DefaultInitializer{tokenSource: ClientCredentialsTokenSource}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitializeHeaders implements HeaderInitializer. Calling it again with the
// same settings leaves the client unchanged: headers are set, not added,
// and the transport chain is rebuilt from the client's base transport.
func (h *DefaultInitializer) InitializeHeaders(c *Client, s *settings.ServiceSettings) error {
	if c == nil {
		return errors.InvalidArgument("client")
	}
	if s == nil {
		return errors.InvalidArgument("settings", errors.WithService(c.Name))
	}

	base, err := url.Parse(s.URL)
	if err != nil || !base.IsAbs() || base.Host == "" {
		return errors.Configuration("invalid url", errors.WithService(c.Name), errors.WithCause(err))
	}
	c.BaseURL = base
	c.settings = s

	if c.Header == nil {
		c.Header = make(http.Header)
	}
	c.Header.Set("Accept", "application/json")
	if h.userAgent != "" {
		c.Header.Set("User-Agent", h.userAgent)
	}
	for name, value := range s.Headers {
		c.Header.Set(name, value)
	}

	if c.base == nil {
		c.base = http.DefaultTransport
	}
	rt := c.base
	scheme, _ := settings.ParseAuthScheme(string(s.AuthScheme))
	switch scheme {
	case settings.AuthAPIKey:
		c.Header.Set(s.APIKeyHeader(), s.APIKey)
	case settings.AuthBasic:
		creds := base64.StdEncoding.EncodeToString([]byte(s.BasicAuthUserName + ":" + s.BasicAuthPassword))
		c.Header.Set("Authorization", "Basic "+creds)
	case settings.AuthBearer:
		c.Header.Set("Authorization", "Bearer "+s.BearerToken)
	case settings.AuthOAuthClientCredentials:
		tokenSource := h.tokenSource
		if tokenSource == nil {
			tokenSource = ClientCredentialsTokenSource
		}
		rt = &oauth2.Transport{Source: tokenSource(s, c.base), Base: c.base}
	}

	if c.HTTP == nil {
		c.HTTP = &http.Client{}
	}
	c.HTTP.Transport = &headerTransport{
		header:            c.Header,
		correlationHeader: h.correlationHeader,
		base:              rt,
	}
	return nil
}
