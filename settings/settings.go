package settings

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/vinayprograms/serviceagents/credentials"
	"github.com/vinayprograms/serviceagents/errors"
)

// GlobalSection is the reserved settings key holding GlobalSettings.
const GlobalSection = "global"

// DefaultAPIKeyHeader is the header carrying the API key when
// ServiceSettings.APIKeyHeaderName is empty.
const DefaultAPIKeyHeader = "ApiKey"

// AuthScheme selects how a service client authenticates.
type AuthScheme string

const (
	AuthNone                   AuthScheme = "None"
	AuthAPIKey                 AuthScheme = "ApiKey"
	AuthBasic                  AuthScheme = "Basic"
	AuthBearer                 AuthScheme = "Bearer"
	AuthOAuthClientCredentials AuthScheme = "OAuthClientCredentials"
)

var authSchemes = []AuthScheme{AuthNone, AuthAPIKey, AuthBasic, AuthBearer, AuthOAuthClientCredentials}

// ParseAuthScheme matches s case-insensitively against the known schemes.
// The empty string is AuthNone.
func ParseAuthScheme(s string) (AuthScheme, bool) {
	if strings.TrimSpace(s) == "" {
		return AuthNone, true
	}
	for _, scheme := range authSchemes {
		if strings.EqualFold(s, string(scheme)) {
			return scheme, true
		}
	}
	return "", false
}

// ServiceSettings describes how to reach one remote service.
type ServiceSettings struct {
	// URL is the base address of the service. When empty it is derived
	// from Scheme, Host, Port and Path.
	URL string `json:"url" toml:"url"`

	Scheme string `json:"scheme" toml:"scheme"`
	Host   string `json:"host" toml:"host"`
	Port   string `json:"port" toml:"port"`
	Path   string `json:"path" toml:"path"`

	AuthScheme AuthScheme `json:"authScheme" toml:"authScheme"`

	APIKey           string `json:"apiKey" toml:"apiKey"`
	APIKeyHeaderName string `json:"apiKeyHeaderName" toml:"apiKeyHeaderName"`
	UseGlobalAPIKey  bool   `json:"useGlobalApiKey" toml:"useGlobalApiKey"`

	BasicAuthUserName string `json:"basicAuthUserName" toml:"basicAuthUserName"`
	BasicAuthPassword string `json:"basicAuthPassword" toml:"basicAuthPassword"`

	BearerToken string `json:"bearerToken" toml:"bearerToken"`

	OAuthClientID     string `json:"oauthClientId" toml:"oauthClientId"`
	OAuthClientSecret string `json:"oauthClientSecret" toml:"oauthClientSecret"`
	OAuthScope        string `json:"oauthScope" toml:"oauthScope"`
	OAuthTokenURL     string `json:"oauthTokenUrl" toml:"oauthTokenUrl"`

	// Headers are attached to every request made by the service client.
	Headers map[string]string `json:"headers" toml:"headers"`
}

// Clone returns a deep copy.
func (s *ServiceSettings) Clone() *ServiceSettings {
	if s == nil {
		return nil
	}
	c := *s
	if s.Headers != nil {
		c.Headers = maps.Clone(s.Headers)
	}
	return &c
}

// APIKeyHeader returns the header name carrying the API key.
func (s *ServiceSettings) APIKeyHeader() string {
	if s.APIKeyHeaderName == "" {
		return DefaultAPIKeyHeader
	}
	return s.APIKeyHeaderName
}

// OAuthScopes splits OAuthScope on spaces and commas.
func (s *ServiceSettings) OAuthScopes() []string {
	return strings.FieldsFunc(s.OAuthScope, func(r rune) bool { return r == ' ' || r == ',' })
}

// Normalize fills derived fields: URL from its parts, the canonical
// AuthScheme spelling and the global API key. It is idempotent.
func (s *ServiceSettings) Normalize(global GlobalSettings) {
	if s.URL == "" && s.Host != "" {
		scheme := s.Scheme
		if scheme == "" {
			scheme = "https"
		}
		u := scheme + "://" + s.Host
		if strings.TrimSpace(s.Port) != "" {
			u += ":" + strings.TrimSpace(s.Port)
		}
		if p := strings.TrimLeft(s.Path, "/"); p != "" {
			u += "/" + p
		}
		s.URL = u
	}
	if scheme, ok := ParseAuthScheme(string(s.AuthScheme)); ok {
		s.AuthScheme = scheme
	}
	if s.UseGlobalAPIKey && s.AuthScheme == AuthNone {
		s.AuthScheme = AuthAPIKey
	}
	if s.UseGlobalAPIKey && s.APIKey == "" {
		s.APIKey = global.APIKey
	}
}

// Validate checks a normalized entry.
func (s *ServiceSettings) Validate(name string) error {
	if s == nil {
		return errors.Configuration("settings are nil", errors.WithService(name))
	}
	if strings.TrimSpace(s.URL) == "" {
		return errors.Configuration("url is required", errors.WithService(name))
	}
	if err := validateAbsoluteURL(s.URL); err != nil {
		return errors.WrapWithCode(err, errors.ErrCodeConfiguration, "invalid url", errors.WithService(name))
	}

	scheme, ok := ParseAuthScheme(string(s.AuthScheme))
	if !ok {
		return errors.Configuration(fmt.Sprintf("unknown auth scheme %q", s.AuthScheme), errors.WithService(name))
	}
	switch scheme {
	case AuthAPIKey:
		if s.APIKey == "" {
			return errors.Configuration("apiKey is required for ApiKey auth", errors.WithService(name))
		}
	case AuthBasic:
		if s.BasicAuthUserName == "" {
			return errors.Configuration("basicAuthUserName is required for Basic auth", errors.WithService(name))
		}
	case AuthBearer:
		if s.BearerToken == "" {
			return errors.Configuration("bearerToken is required for Bearer auth", errors.WithService(name))
		}
	case AuthOAuthClientCredentials:
		if s.OAuthClientID == "" || s.OAuthClientSecret == "" {
			return errors.Configuration("oauthClientId and oauthClientSecret are required for OAuth auth", errors.WithService(name))
		}
		if err := validateAbsoluteURL(s.OAuthTokenURL); err != nil {
			return errors.WrapWithCode(err, errors.ErrCodeConfiguration, "invalid oauthTokenUrl", errors.WithService(name))
		}
	}

	for header := range s.Headers {
		if strings.TrimSpace(header) == "" {
			return errors.Configuration("header name cannot be empty", errors.WithService(name))
		}
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%q is not an absolute url", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	return nil
}

// GlobalSettings holds values shared by all services.
type GlobalSettings struct {
	APIKey string `json:"apiKey" toml:"apiKey"`
}

// ServiceAgentSettings maps logical service names to their settings.
type ServiceAgentSettings struct {
	Global   GlobalSettings
	Services map[string]*ServiceSettings
}

// New returns empty settings ready for Add.
func New() *ServiceAgentSettings {
	return &ServiceAgentSettings{Services: make(map[string]*ServiceSettings)}
}

// Add stores s under name. An existing entry for name is replaced.
func (a *ServiceAgentSettings) Add(name string, s *ServiceSettings) {
	if a.Services == nil {
		a.Services = make(map[string]*ServiceSettings)
	}
	a.Services[name] = s
}

// Has reports whether name is configured.
func (a *ServiceAgentSettings) Has(name string) bool {
	_, ok := a.Services[name]
	return ok
}

// Get returns the settings for name.
func (a *ServiceAgentSettings) Get(name string) (*ServiceSettings, error) {
	s, ok := a.Services[name]
	if !ok || s == nil {
		return nil, errors.Configuration("no settings configured", errors.WithService(name))
	}
	return s, nil
}

// Names returns the configured service names in sorted order.
func (a *ServiceAgentSettings) Names() []string {
	return slices.Sorted(maps.Keys(a.Services))
}

// Len returns the number of configured services.
func (a *ServiceAgentSettings) Len() int {
	return len(a.Services)
}

// Merge copies every entry of other into a; entries of other win on
// collision. A non-empty global API key of other replaces a's.
func (a *ServiceAgentSettings) Merge(other *ServiceAgentSettings) {
	if other == nil {
		return
	}
	if other.Global.APIKey != "" {
		a.Global.APIKey = other.Global.APIKey
	}
	for name, s := range other.Services {
		a.Add(name, s.Clone())
	}
}

// Clone returns a deep copy.
func (a *ServiceAgentSettings) Clone() *ServiceAgentSettings {
	c := New()
	c.Global = a.Global
	for name, s := range a.Services {
		c.Services[name] = s.Clone()
	}
	return c
}

// ApplyCredentials fills secrets that the settings leave empty from store.
func (a *ServiceAgentSettings) ApplyCredentials(store credentials.Store) {
	if store == nil {
		return
	}
	for name, s := range a.Services {
		if s == nil {
			continue
		}
		scheme, _ := ParseAuthScheme(string(s.AuthScheme))
		switch scheme {
		case AuthAPIKey:
			if s.APIKey == "" && !s.UseGlobalAPIKey {
				s.APIKey = store.GetAPIKey(name)
			}
		case AuthOAuthClientCredentials:
			if s.OAuthClientSecret == "" {
				s.OAuthClientSecret = store.GetClientSecret(name)
			}
		}
	}
}

// Normalize normalizes every entry.
func (a *ServiceAgentSettings) Normalize() {
	for _, s := range a.Services {
		if s != nil {
			s.Normalize(a.Global)
		}
	}
}

// Validate checks every entry and returns all failures joined.
func (a *ServiceAgentSettings) Validate() error {
	var errs []error
	for _, name := range a.Names() {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.Configuration("service name cannot be empty"))
			continue
		}
		if strings.EqualFold(name, GlobalSection) {
			errs = append(errs, errors.Configuration("service name is reserved", errors.WithService(name)))
			continue
		}
		if err := a.Services[name].Validate(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
