// Package settings describes remote services and loads their connection
// settings from files or code.
//
// # Settings Files
//
// A settings document maps logical service names to connection settings.
// The reserved "global" section holds values shared by all services:
//
//	{
//	    "global": { "apiKey": "shared-key" },
//	    "OrderAgent": { "url": "https://orders.example/api" },
//	    "StockAgent": {
//	        "host": "stock.example",
//	        "path": "v2",
//	        "authScheme": "ApiKey",
//	        "useGlobalApiKey": true
//	    }
//	}
//
// The same layout works in TOML, one table per service. When "url" is
// empty it is built from "scheme" (default https), "host", "port" and
// "path".
//
// # Loading
//
// Load a file and apply programmatic overrides:
//
//	cfg, err := settings.Load(&settings.File{Name: "serviceagents.json"},
//	    func(s *settings.ServiceAgentSettings) {
//	        s.Add("OrderAgent", &settings.ServiceSettings{URL: "http://localhost:8080"})
//	    })
//
// Overrides run after the file is parsed, so an override for a name present
// in the file replaces that entry. A missing, malformed or invalid source
// fails with a CONFIGURATION error from the errors package.
//
// Secrets can stay out of the settings file. ApplyCredentials fills empty
// API keys and OAuth client secrets from a credentials store; call it from
// the override so validation sees the filled values:
//
//	creds, _, _ := credentials.Load()
//	cfg, err := settings.Load(file, func(s *settings.ServiceAgentSettings) {
//	    s.ApplyCredentials(creds)
//	})
package settings
