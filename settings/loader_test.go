package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vinayprograms/serviceagents/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "agents.json", `{
		"global": { "apiKey": "shared" },
		"OrderAgent": { "url": "https://orders.example/api" },
		"StockAgent": {
			"Host": "stock.example",
			"Path": "v2",
			"useGlobalApiKey": true,
			"headers": { "X-Tenant": "acme" }
		}
	}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cfg.Len())
	}

	order, _ := cfg.Get("OrderAgent")
	if order.URL != "https://orders.example/api" {
		t.Errorf("OrderAgent URL = %q", order.URL)
	}
	if order.AuthScheme != AuthNone {
		t.Errorf("OrderAgent AuthScheme = %q, want None", order.AuthScheme)
	}

	stock, _ := cfg.Get("StockAgent")
	if stock.URL != "https://stock.example/v2" {
		t.Errorf("StockAgent URL = %q", stock.URL)
	}
	if stock.APIKey != "shared" || stock.AuthScheme != AuthAPIKey {
		t.Errorf("StockAgent auth = %q/%q", stock.AuthScheme, stock.APIKey)
	}
	if stock.Headers["X-Tenant"] != "acme" {
		t.Errorf("StockAgent headers = %v", stock.Headers)
	}
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, "agents.toml", `
[global]
apiKey = "shared"

[OrderAgent]
url = "https://orders.example/api"

[StockAgent]
host = "stock.example"
port = "8443"
authScheme = "apikey"
useGlobalApiKey = true

[StockAgent.headers]
X-Tenant = "acme"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	stock, _ := cfg.Get("StockAgent")
	if stock.URL != "https://stock.example:8443" {
		t.Errorf("StockAgent URL = %q", stock.URL)
	}
	if stock.APIKey != "shared" {
		t.Errorf("StockAgent APIKey = %q", stock.APIKey)
	}
	if stock.Headers["X-Tenant"] != "acme" {
		t.Errorf("StockAgent headers = %v", stock.Headers)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed json", "a.json", `{"OrderAgent": {`},
		{"malformed toml", "a.toml", "[OrderAgent\nurl="},
		{"unknown json field", "a.json", `{"OrderAgent": {"url": "https://a.example", "retries": 3}}`},
		{"unknown toml field", "a.toml", "[OrderAgent]\nurl = \"https://a.example\"\nretries = 3\n"},
		{"missing url", "a.json", `{"OrderAgent": {}}`},
		{"bad extension", "a.yaml", `OrderAgent: {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION error, got %v", err)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected CONFIGURATION error, got %v", err)
	}

	_, err = Load(&File{}, nil)
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("empty file name: expected CONFIGURATION error, got %v", err)
	}
}

func TestLoad_OverrideWins(t *testing.T) {
	path := writeFile(t, "agents.json", `{
		"OrderAgent": { "url": "https://file.example" },
		"StockAgent": { "url": "https://stock.example" }
	}`)

	cfg, err := Load(&File{Name: path}, func(s *ServiceAgentSettings) {
		s.Add("OrderAgent", &ServiceSettings{URL: "https://override.example"})
		s.Add("BillingAgent", &ServiceSettings{URL: "https://billing.example"})
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cfg.Len())
	}
	if s, _ := cfg.Get("OrderAgent"); s.URL != "https://override.example" {
		t.Errorf("OrderAgent URL = %q, want override", s.URL)
	}
}

func TestLoad_OverrideOnly(t *testing.T) {
	cfg, err := Load(nil, func(s *ServiceAgentSettings) {
		s.Add("OrderAgent", &ServiceSettings{URL: "https://orders.example/api"})
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Has("OrderAgent") {
		t.Error("OrderAgent missing")
	}
}

func TestLoad_OverrideFixesInvalidFile(t *testing.T) {
	path := writeFile(t, "agents.json", `{"OrderAgent": {}}`)
	_, err := Load(&File{Name: path}, func(s *ServiceAgentSettings) {
		s.Services["OrderAgent"].URL = "https://orders.example"
	})
	if err != nil {
		t.Errorf("validation should run after override: %v", err)
	}
}

func TestParse_NullDocument(t *testing.T) {
	for _, doc := range []string{"null", " null\n"} {
		_, err := Parse([]byte(doc), FormatJSON)
		if !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("Parse(%q): expected CONFIGURATION error, got %v", doc, err)
		}
	}

	path := filepath.Join(t.TempDir(), "serviceagents.json")
	if err := os.WriteFile(path, []byte("null"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("LoadFile(null): expected CONFIGURATION error, got %v", err)
	}
}

func TestLoad_NoSource(t *testing.T) {
	_, err := Load(nil, nil)
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT error, got %v", err)
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), Format("yaml"))
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected CONFIGURATION error, got %v", err)
	}
}

func TestLocationFromEnv(t *testing.T) {
	t.Setenv(EnvConfigLocation, "")
	if got := LocationFromEnv(); got != DefaultConfigLocation {
		t.Errorf("LocationFromEnv() = %q, want default", got)
	}
	t.Setenv(EnvConfigLocation, "/etc/agents.toml")
	if got := LocationFromEnv(); got != "/etc/agents.toml" {
		t.Errorf("LocationFromEnv() = %q", got)
	}
}
