// Package credentials loads service secrets from standard locations.
//
// Secrets are kept out of the settings file: a credentials.toml holds one
// section per logical service name, with environment variables as fallback.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// ErrInsecurePermissions is returned when credentials file has overly permissive permissions.
var ErrInsecurePermissions = fmt.Errorf("credentials file has insecure permissions")

// DefaultSection names the section used when a service has no section of its own.
const DefaultSection = "default"

// Store looks up secrets for a logical service name.
type Store interface {
	GetAPIKey(service string) string
	GetClientSecret(service string) string
}

// Credentials holds secrets loaded from credentials.toml.
// Sections are keyed by logical service name.
type Credentials struct {
	// Default is used when a service-specific key is not found.
	Default *ServiceCreds

	services map[string]*ServiceCreds
}

var _ Store = (*Credentials)(nil)

// ServiceCreds holds secrets for a single service.
type ServiceCreds struct {
	APIKey       string `toml:"api_key"`
	ClientSecret string `toml:"client_secret"`
}

// StandardPaths returns the standard credential file locations in order of priority
func StandardPaths() []string {
	paths := []string{"credentials.toml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "serviceagents", "credentials.toml"),
			filepath.Join(home, ".serviceagents", "credentials.toml"),
		)
	}

	return paths
}

// Load loads credentials from the first available standard location
func Load() (*Credentials, string, error) {
	for _, path := range StandardPaths() {
		if _, err := os.Stat(path); err == nil {
			creds, err := LoadFile(path)
			if err != nil {
				return nil, path, err
			}
			return creds, path, nil
		}
	}
	return nil, "", nil // No credentials file found (not an error)
}

// LoadFile loads credentials from a specific file.
// Returns ErrInsecurePermissions if file is readable by group or others.
func LoadFile(path string) (*Credentials, error) {
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		mode := info.Mode().Perm()
		// Credentials must be 0400 (owner read-only)
		if mode != 0400 {
			return nil, fmt.Errorf("%w: %s has mode %04o (must be 0400)",
				ErrInsecurePermissions, path, mode)
		}
	}

	var sections map[string]ServiceCreds
	if _, err := toml.DecodeFile(path, &sections); err != nil {
		return nil, err
	}

	creds := &Credentials{services: make(map[string]*ServiceCreds)}
	for name, section := range sections {
		if section.APIKey == "" && section.ClientSecret == "" {
			continue
		}
		sc := section
		if name == DefaultSection {
			creds.Default = &sc
		} else {
			creds.services[name] = &sc
		}
	}

	return creds, nil
}

// GetAPIKey returns the API key for a service.
// Priority: [service] section > [default] section > environment variable
func (c *Credentials) GetAPIKey(service string) string {
	if sc := c.lookup(service, func(sc *ServiceCreds) string { return sc.APIKey }); sc != "" {
		return sc
	}
	return os.Getenv(EnvVar(service, "API_KEY"))
}

// GetClientSecret returns the OAuth client secret for a service.
// Priority: [service] section > [default] section > environment variable
func (c *Credentials) GetClientSecret(service string) string {
	if sc := c.lookup(service, func(sc *ServiceCreds) string { return sc.ClientSecret }); sc != "" {
		return sc
	}
	return os.Getenv(EnvVar(service, "CLIENT_SECRET"))
}

func (c *Credentials) lookup(service string, field func(*ServiceCreds) string) string {
	if c == nil {
		return ""
	}
	if sc, ok := c.services[service]; ok && field(sc) != "" {
		return field(sc)
	}
	if sc, ok := c.services[strings.ToLower(service)]; ok && field(sc) != "" {
		return field(sc)
	}
	if c.Default != nil {
		return field(c.Default)
	}
	return ""
}

// EnvVar returns the environment variable name for a service secret.
// "OrderAgent" with suffix "API_KEY" becomes ORDER_AGENT_API_KEY.
func EnvVar(service, suffix string) string {
	var b strings.Builder
	runes := []rune(service)
	for i, r := range runes {
		switch {
		case r == '-' || r == '.' || r == ' ':
			b.WriteRune('_')
			continue
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String() + "_" + suffix
}
