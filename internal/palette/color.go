package palette

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a value is not a recognized color literal.
// Recognized forms are 3- and 6-digit hex, rgb()/rgba() with byte components,
// and the CSS named colors.
var ErrInvalidColor = errors.New("invalid color literal")

var rgbRe = regexp.MustCompile(`^(rgba?)\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(0|1|0?\.\d+|1\.0+)\s*)?\)$`)

var hexRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// namedColors covers the CSS Level 1/2 keywords plus orange and transparent.
var namedColors = map[string]struct{}{
	"aqua": {}, "black": {}, "blue": {}, "fuchsia": {}, "gray": {},
	"green": {}, "grey": {}, "lime": {}, "maroon": {}, "navy": {},
	"olive": {}, "orange": {}, "purple": {}, "red": {}, "silver": {},
	"teal": {}, "transparent": {}, "white": {}, "yellow": {},
}

// ParseColor validates a color literal and returns its normalized form:
// lowercase #rrggbb for hex input, a canonically spaced functional form for
// rgb()/rgba(), and the lowercase keyword for named colors.
func ParseColor(value string) (string, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidColor)
	}

	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}

	lower := strings.ToLower(s)
	if m := rgbRe.FindStringSubmatch(lower); m != nil {
		return normalizeRGB(m)
	}
	if _, ok := namedColors[lower]; ok {
		return lower, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidColor, value)
}

// IsColor reports whether value is a recognized color literal.
func IsColor(value string) bool {
	_, err := ParseColor(value)
	return err == nil
}

func parseHex(s string) (string, error) {
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("%w: %q (hex literals must have 3 or 6 digits)", ErrInvalidColor, s)
	}
	// colorful.Hex scans with Sscanf, which ignores trailing garbage in the
	// last component, so the digits are checked here first.
	if !hexRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

func normalizeRGB(m []string) (string, error) {
	fn, alpha := m[1], m[5]
	channels := make([]string, 0, 4)
	for _, raw := range m[2:5] {
		n, err := strconv.Atoi(raw)
		if err != nil || n > 255 {
			return "", fmt.Errorf("%w: rgb component %q out of range", ErrInvalidColor, raw)
		}
		channels = append(channels, strconv.Itoa(n))
	}

	switch {
	case fn == "rgba" && alpha == "":
		return "", fmt.Errorf("%w: rgba() requires an alpha component", ErrInvalidColor)
	case fn == "rgb" && alpha != "":
		return "", fmt.Errorf("%w: rgb() does not accept an alpha component", ErrInvalidColor)
	case alpha != "":
		channels = append(channels, alpha)
	}

	return fmt.Sprintf("%s(%s)", fn, strings.Join(channels, ", ")), nil
}
