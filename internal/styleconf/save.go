package styleconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Marshal serializes the record in the format indicated by ext (".yaml",
// ".yml", ".json", ".toml"). The output parses back to an identical record.
func Marshal(cfg Config, ext string) ([]byte, error) {
	normalize(&cfg)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	case ".json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Save validates the record and writes it to path atomically, in the format
// chosen by the path's extension. The file is replaced via rename so watchers
// and concurrent readers never observe a partial write.
func Save(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	data, err := Marshal(cfg, filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("stage config write: %w", err)
	}
	defer pf.Cleanup()

	if _, err := pf.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
