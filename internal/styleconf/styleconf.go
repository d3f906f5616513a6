package styleconf

import (
	"chatblack/internal/palette"
)

// DefaultName is the conventional file name of the style build configuration.
const DefaultName = "style.config.yaml"

// conventionalNames lists the file names Discover probes, in preference order.
var conventionalNames = []string{
	"style.config.yaml",
	"style.config.json",
	"style.config.toml",
}

// Config is the style build configuration record. It has exactly three
// top-level options; loading rejects anything else.
type Config struct {
	// Content lists the glob patterns scanned for class usage. Order is
	// preserved because tooling reports files in scan order; duplicates are
	// permitted but redundant.
	Content []string `yaml:"content" json:"content" toml:"content"`

	// Theme carries the palette extensions merged into the built-in palette.
	Theme Theme `yaml:"theme" json:"theme" toml:"theme"`

	// Plugins names the stylesheet plugins to apply, in order. May be empty.
	Plugins []string `yaml:"plugins" json:"plugins" toml:"plugins"`
}

// Theme groups the extension block. Only extensions are supported: the
// built-in palette cannot be replaced, only added to.
type Theme struct {
	Extend Extension `yaml:"extend" json:"extend" toml:"extend"`
}

// Extension maps color names to the shade scales they add or override.
type Extension struct {
	Colors map[string]palette.Scale `yaml:"colors" json:"colors" toml:"colors"`
}

// Default returns the shipped configuration: scan ./templates/*.html, add
// the chatblack color, no plugins.
func Default() Config {
	cfg := Config{
		Content: []string{"./templates/*.html"},
		Theme: Theme{
			Extend: Extension{
				Colors: map[string]palette.Scale{
					"chatblack": {"50": "#333333"},
				},
			},
		},
		Plugins: []string{},
	}
	return cfg
}

// normalize replaces nil collections with empty ones so that records decoded
// from files with and without the optional blocks compare equal.
func normalize(cfg *Config) {
	if cfg.Content == nil {
		cfg.Content = []string{}
	}
	if cfg.Theme.Extend.Colors == nil {
		cfg.Theme.Extend.Colors = map[string]palette.Scale{}
	}
	if cfg.Plugins == nil {
		cfg.Plugins = []string{}
	}
}
