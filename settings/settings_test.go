package settings

import (
	"testing"

	"github.com/vinayprograms/serviceagents/errors"
)

type fakeStore map[string]string

func (f fakeStore) GetAPIKey(service string) string       { return f[service+".key"] }
func (f fakeStore) GetClientSecret(service string) string { return f[service+".secret"] }

func TestParseAuthScheme(t *testing.T) {
	tests := []struct {
		in   string
		want AuthScheme
		ok   bool
	}{
		{"", AuthNone, true},
		{"apikey", AuthAPIKey, true},
		{"BASIC", AuthBasic, true},
		{"oauthclientcredentials", AuthOAuthClientCredentials, true},
		{"kerberos", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAuthScheme(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAuthScheme(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalize_DerivesURL(t *testing.T) {
	tests := []struct {
		name string
		in   ServiceSettings
		want string
	}{
		{"host only", ServiceSettings{Host: "orders.example"}, "https://orders.example"},
		{"full", ServiceSettings{Scheme: "http", Host: "localhost", Port: "8080", Path: "/api/v1"}, "http://localhost:8080/api/v1"},
		{"explicit url wins", ServiceSettings{URL: "https://a.example/x", Host: "b.example"}, "https://a.example/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.in
			s.Normalize(GlobalSettings{})
			if s.URL != tt.want {
				t.Errorf("URL = %q, want %q", s.URL, tt.want)
			}
		})
	}
}

func TestNormalize_GlobalAPIKey(t *testing.T) {
	s := &ServiceSettings{URL: "https://stock.example", UseGlobalAPIKey: true}
	s.Normalize(GlobalSettings{APIKey: "shared"})
	if s.APIKey != "shared" {
		t.Errorf("APIKey = %q, want shared", s.APIKey)
	}
	if s.AuthScheme != AuthAPIKey {
		t.Errorf("AuthScheme = %q, want ApiKey", s.AuthScheme)
	}

	// Idempotent.
	s.Normalize(GlobalSettings{APIKey: "other"})
	if s.APIKey != "shared" {
		t.Errorf("second Normalize changed APIKey to %q", s.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       *ServiceSettings
		wantErr bool
	}{
		{"valid", &ServiceSettings{URL: "https://orders.example/api"}, false},
		{"nil", nil, true},
		{"missing url", &ServiceSettings{}, true},
		{"relative url", &ServiceSettings{URL: "/api"}, true},
		{"ftp url", &ServiceSettings{URL: "ftp://files.example"}, true},
		{"unknown scheme", &ServiceSettings{URL: "https://a.example", AuthScheme: "Kerberos"}, true},
		{"apikey without key", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthAPIKey}, true},
		{"apikey", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthAPIKey, APIKey: "k"}, false},
		{"basic without user", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthBasic}, true},
		{"bearer without token", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthBearer}, true},
		{"oauth without secret", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthOAuthClientCredentials, OAuthClientID: "id", OAuthTokenURL: "https://idp.example/token"}, true},
		{"oauth bad token url", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthOAuthClientCredentials, OAuthClientID: "id", OAuthClientSecret: "s", OAuthTokenURL: "token"}, true},
		{"oauth", &ServiceSettings{URL: "https://a.example", AuthScheme: AuthOAuthClientCredentials, OAuthClientID: "id", OAuthClientSecret: "s", OAuthTokenURL: "https://idp.example/token"}, false},
		{"empty header name", &ServiceSettings{URL: "https://a.example", Headers: map[string]string{" ": "x"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate("OrderAgent")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION error, got %v", err)
			}
		})
	}
}

func TestServiceAgentSettings_AddLastWriterWins(t *testing.T) {
	cfg := New()
	cfg.Add("OrderAgent", &ServiceSettings{URL: "https://first.example"})
	cfg.Add("OrderAgent", &ServiceSettings{URL: "https://second.example"})

	if cfg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cfg.Len())
	}
	got, err := cfg.Get("OrderAgent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL != "https://second.example" {
		t.Errorf("URL = %q, want second", got.URL)
	}
}

func TestServiceAgentSettings_GetMissing(t *testing.T) {
	_, err := New().Get("Nope")
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected CONFIGURATION error, got %v", err)
	}
}

func TestServiceAgentSettings_Names(t *testing.T) {
	cfg := New()
	cfg.Add("b", &ServiceSettings{})
	cfg.Add("a", &ServiceSettings{})
	cfg.Add("c", &ServiceSettings{})
	names := cfg.Names()
	if len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Errorf("Names() = %v", names)
	}
}

func TestServiceAgentSettings_Merge(t *testing.T) {
	base := New()
	base.Global.APIKey = "base-key"
	base.Add("OrderAgent", &ServiceSettings{URL: "https://file.example"})
	base.Add("StockAgent", &ServiceSettings{URL: "https://stock.example"})

	other := New()
	other.Add("OrderAgent", &ServiceSettings{URL: "https://override.example"})

	base.Merge(other)
	if base.Global.APIKey != "base-key" {
		t.Error("empty global key should not replace existing one")
	}
	if s, _ := base.Get("OrderAgent"); s.URL != "https://override.example" {
		t.Errorf("OrderAgent URL = %q, want override", s.URL)
	}
	if !base.Has("StockAgent") {
		t.Error("StockAgent should survive merge")
	}

	// Merged entries are copies.
	other.Services["OrderAgent"].URL = "https://mutated.example"
	if s, _ := base.Get("OrderAgent"); s.URL != "https://override.example" {
		t.Error("Merge should copy entries")
	}

	base.Merge(nil)
}

func TestServiceAgentSettings_Clone(t *testing.T) {
	cfg := New()
	cfg.Add("OrderAgent", &ServiceSettings{URL: "https://orders.example", Headers: map[string]string{"X-Tenant": "a"}})

	c := cfg.Clone()
	cfg.Services["OrderAgent"].Headers["X-Tenant"] = "b"
	cfg.Services["OrderAgent"].URL = "https://changed.example"

	got, _ := c.Get("OrderAgent")
	if got.URL != "https://orders.example" || got.Headers["X-Tenant"] != "a" {
		t.Errorf("clone shares state: %+v", got)
	}
}

func TestServiceAgentSettings_ApplyCredentials(t *testing.T) {
	cfg := New()
	cfg.Add("OrderAgent", &ServiceSettings{URL: "https://orders.example", AuthScheme: "apikey"})
	cfg.Add("StockAgent", &ServiceSettings{URL: "https://stock.example", AuthScheme: AuthAPIKey, APIKey: "inline"})
	cfg.Add("BillingAgent", &ServiceSettings{
		URL:           "https://billing.example",
		AuthScheme:    AuthOAuthClientCredentials,
		OAuthClientID: "billing",
		OAuthTokenURL: "https://idp.example/token",
	})

	cfg.ApplyCredentials(fakeStore{
		"OrderAgent.key":      "stored-order",
		"StockAgent.key":      "stored-stock",
		"BillingAgent.secret": "stored-secret",
	})

	if s, _ := cfg.Get("OrderAgent"); s.APIKey != "stored-order" {
		t.Errorf("OrderAgent APIKey = %q", s.APIKey)
	}
	if s, _ := cfg.Get("StockAgent"); s.APIKey != "inline" {
		t.Errorf("inline key should win, got %q", s.APIKey)
	}
	if s, _ := cfg.Get("BillingAgent"); s.OAuthClientSecret != "stored-secret" {
		t.Errorf("BillingAgent secret = %q", s.OAuthClientSecret)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate after credentials: %v", err)
	}
}

func TestServiceAgentSettings_ValidateReservedAndEmpty(t *testing.T) {
	cfg := New()
	cfg.Add("Global", &ServiceSettings{URL: "https://a.example"})
	cfg.Add("", &ServiceSettings{URL: "https://b.example"})
	cfg.Add("OrderAgent", &ServiceSettings{})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected CONFIGURATION error, got %v", err)
	}
}

func TestOAuthScopes(t *testing.T) {
	s := &ServiceSettings{OAuthScope: "orders.read, orders.write stock"}
	got := s.OAuthScopes()
	if len(got) != 3 || got[0] != "orders.read" || got[2] != "stock" {
		t.Errorf("OAuthScopes() = %v", got)
	}
	if (&ServiceSettings{}).APIKeyHeader() != DefaultAPIKeyHeader {
		t.Error("default API key header expected")
	}
}
