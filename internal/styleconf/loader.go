package styleconf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound reports that no configuration file exists at the
	// given path, or that Discover found none of the conventional names.
	ErrConfigNotFound = errors.New("styleconf: config file not found")

	// ErrUnsupportedFormat reports a file extension Load cannot decode.
	ErrUnsupportedFormat = errors.New("styleconf: unsupported config format")
)

// Load reads and decodes the configuration at path. The format is chosen by
// file extension: .yaml/.yml, .json, or .toml. Unknown top-level keys and
// unknown keys inside theme are rejected. The returned record has been
// normalized but not validated; call Validate separately.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes raw configuration bytes in the format indicated by ext
// (".yaml", ".yml", ".json", ".toml"). Exposed so tooling can decode
// in-memory documents, e.g. when checking a proposed edit before saving.
func Parse(data []byte, ext string) (Config, error) {
	raw, err := decodeRaw(data, ext)
	if err != nil {
		return Config{}, err
	}
	cfg, err := fromMap(raw)
	if err != nil {
		return Config{}, err
	}
	normalize(&cfg)
	return cfg, nil
}

// Discover walks the conventional file names in dir and loads the first one
// that exists. It returns the resolved path alongside the record so callers
// can watch or rewrite the same file.
func Discover(dir string) (Config, string, error) {
	for _, name := range conventionalNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}
	return Config{}, "", fmt.Errorf("%w: no %s in %s", ErrConfigNotFound, strings.Join(conventionalNames, ", "), dir)
}

// decodeRaw unmarshals data into a generic map using the codec for ext.
func decodeRaw(data []byte, ext string) (map[string]any, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return stringifyKeys(raw), nil
	case ".json":
		// yaml.v3 accepts JSON, and gives the same generic shape back.
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return stringifyKeys(raw), nil
	case ".toml":
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		return stringifyKeys(raw), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// fromMap decodes the generic map into a Config, rejecting keys the record
// does not define.
func fromMap(raw map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		TagName:     "yaml",
		ErrorUnused: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// stringifyKeys rewrites every nested map to map[string]any. YAML documents
// with bare numeric keys (shade scales use 50, 100, ...) decode to
// map[any]any with int keys, which mapstructure cannot address.
func stringifyKeys(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = stringifyValue(v)
	}
	return out
}

func stringifyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return stringifyKeys(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[stringifyKey(k)] = stringifyValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = stringifyValue(item)
		}
		return out
	default:
		return v
	}
}

func stringifyKey(k any) string {
	switch key := k.(type) {
	case string:
		return key
	case int:
		return strconv.Itoa(key)
	case int64:
		return strconv.FormatInt(key, 10)
	case uint64:
		return strconv.FormatUint(key, 10)
	case float64:
		return strconv.FormatFloat(key, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(key)
	default:
		return fmt.Sprintf("%v", key)
	}
}
