package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vinayprograms/serviceagents/errors"
)

// EnvConfigLocation overrides the default settings file location.
const EnvConfigLocation = "SERVICEAGENTS_CONFIG"

// DefaultConfigLocation is used when EnvConfigLocation is unset.
const DefaultConfigLocation = "./serviceagents.json"

// Format identifies a settings document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// File points at an external settings document.
type File struct {
	// Name is the path of the settings file. The extension selects the
	// format: .json or .toml.
	Name string
}

// LocationFromEnv returns the settings file location from the environment,
// or DefaultConfigLocation.
func LocationFromEnv() string {
	if location, ok := os.LookupEnv(EnvConfigLocation); ok && strings.TrimSpace(location) != "" {
		return location
	}
	return DefaultConfigLocation
}

// FormatFromPath selects a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Configuration(fmt.Sprintf("unsupported settings file extension %q", filepath.Ext(path)),
			errors.WithMetadata("file", path))
	}
}

// LoadFile reads, normalizes and validates a settings file.
func LoadFile(path string) (*ServiceAgentSettings, error) {
	return Load(&File{Name: path}, nil)
}

// Load builds settings from an optional file and an optional override.
//
// The override runs after the file is parsed and mutates the same settings,
// so an entry it adds for an existing name replaces the file's entry
// (last writer wins). Validation runs once both sources are applied. At
// least one of file and override must be given.
func Load(file *File, override func(*ServiceAgentSettings)) (*ServiceAgentSettings, error) {
	if file == nil && override == nil {
		return nil, errors.InvalidArgument("settings source")
	}

	cfg := New()
	if file != nil {
		parsed, err := readFile(file.Name)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	}
	if override != nil {
		override(cfg)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*ServiceAgentSettings, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.Configuration("settings file name is empty")
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "unable to read settings file",
			errors.WithMetadata("file", path))
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse settings file", errors.WithMetadata("file", path))
	}
	return cfg, nil
}

// Parse decodes a settings document without normalizing or validating it.
// Unknown fields are rejected.
func Parse(data []byte, format Format) (*ServiceAgentSettings, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatTOML:
		return parseTOML(data)
	default:
		return nil, errors.Newf(errors.ErrCodeConfiguration, "unsupported settings format %q", format)
	}
}

func parseJSON(data []byte) (*ServiceAgentSettings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "malformed settings document")
	}
	if raw == nil {
		return nil, errors.Configuration("settings document must be an object")
	}

	cfg := New()
	for key, section := range raw {
		if strings.EqualFold(key, GlobalSection) {
			if err := decodeStrict(section, &cfg.Global); err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "malformed global section")
			}
			continue
		}
		var s ServiceSettings
		if err := decodeStrict(section, &s); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "malformed service section", errors.WithService(key))
		}
		cfg.Add(key, &s)
	}
	return cfg, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseTOML(data []byte) (*ServiceAgentSettings, error) {
	var raw map[string]toml.Primitive
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "malformed settings document")
	}
	if raw == nil {
		return nil, errors.Configuration("settings document must be an object")
	}

	cfg := New()
	for key, section := range raw {
		if strings.EqualFold(key, GlobalSection) {
			if err := md.PrimitiveDecode(section, &cfg.Global); err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "malformed global section")
			}
			continue
		}
		var s ServiceSettings
		if err := md.PrimitiveDecode(section, &s); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCodeConfiguration, "malformed service section", errors.WithService(key))
		}
		cfg.Add(key, &s)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf(errors.ErrCodeConfiguration, "unknown settings fields: %v", undecoded)
	}
	return cfg, nil
}
