package styleconf

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"chatblack/internal/palette"
)

// colorNameRe constrains color names to CSS-custom-property-safe identifiers.
var colorNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// shadeRe matches numeric shade keys. The only non-numeric shade allowed is
// palette.DefaultShade.
var shadeRe = regexp.MustCompile(`^[0-9]+$`)

// Validate checks every option of the record and reports all problems at
// once, joined into a single error. A nil return means the record can be
// built into a snapshot.
func Validate(cfg Config) error {
	var errs []error

	if len(cfg.Content) == 0 {
		errs = append(errs, errors.New("content: at least one glob pattern is required"))
	}
	for i, pattern := range cfg.Content {
		if pattern == "" {
			errs = append(errs, fmt.Errorf("content[%d]: pattern is empty", i))
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("content[%d]: invalid glob pattern %q", i, pattern))
		}
	}

	for name, scale := range cfg.Theme.Extend.Colors {
		if !colorNameRe.MatchString(name) {
			errs = append(errs, fmt.Errorf("theme.extend.colors: invalid color name %q", name))
		}
		if len(scale) == 0 {
			errs = append(errs, fmt.Errorf("theme.extend.colors.%s: scale has no shades", name))
		}
		for shade, value := range scale {
			if shade != palette.DefaultShade && !shadeRe.MatchString(shade) {
				errs = append(errs, fmt.Errorf("theme.extend.colors.%s: invalid shade key %q", name, shade))
			}
			if _, err := palette.ParseColor(value); err != nil {
				errs = append(errs, fmt.Errorf("theme.extend.colors.%s.%s: %w", name, shade, err))
			}
		}
	}

	seen := make(map[string]struct{}, len(cfg.Plugins))
	for i, name := range cfg.Plugins {
		if name == "" {
			errs = append(errs, fmt.Errorf("plugins[%d]: name is empty", i))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("plugins[%d]: duplicate plugin %q", i, name))
			continue
		}
		seen[name] = struct{}{}
	}

	return errors.Join(errs...)
}
