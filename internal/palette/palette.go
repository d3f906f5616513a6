// Package palette holds the built-in color palette of the style pipeline and
// the merge rules that fold theme extensions into it. A palette maps semantic
// color names to shade scales; shade keys follow the conventional 50-900 scale,
// with the special key DEFAULT for single-value colors.
package palette

import (
	"maps"
	"sort"
	"strconv"
)

// DefaultShade is the shade key used by colors that carry a single value
// instead of a full scale (for example plain black and white).
const DefaultShade = "DEFAULT"

// Scale maps shade keys ("50".."900", or DEFAULT) to color values.
type Scale map[string]string

// Palette maps semantic color names to their shade scales.
type Palette map[string]Scale

// Default returns the built-in palette. Callers own the returned value and
// may merge extensions into it without affecting later calls.
func Default() Palette {
	return clone(defaultColors)
}

// Merge folds extensions into base and returns the result, adding unknown
// color names wholesale and merging known ones shade by shade so that an
// extension can override a single shade without discarding the rest of the
// scale. Neither input is mutated.
func Merge(base Palette, extensions map[string]Scale) Palette {
	merged := clone(base)
	for name, scale := range extensions {
		existing, ok := merged[name]
		if !ok {
			existing = make(Scale, len(scale))
		}
		maps.Copy(existing, scale)
		merged[name] = existing
	}
	return merged
}

// Names returns the palette's color names in lexical order.
func (p Palette) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the palette contains the given color name and shade.
func (p Palette) Has(name, shade string) bool {
	scale, ok := p[name]
	if !ok {
		return false
	}
	_, ok = scale[shade]
	return ok
}

// Shades returns the scale's shade keys with DEFAULT first and numeric keys
// in ascending order, the order used when rendering CSS.
func (s Scale) Shades() []string {
	shades := make([]string, 0, len(s))
	for shade := range s {
		shades = append(shades, shade)
	}
	sort.Slice(shades, func(i, j int) bool {
		if shades[i] == DefaultShade {
			return true
		}
		if shades[j] == DefaultShade {
			return false
		}
		a, aErr := strconv.Atoi(shades[i])
		b, bErr := strconv.Atoi(shades[j])
		if aErr != nil || bErr != nil {
			return shades[i] < shades[j]
		}
		return a < b
	})
	return shades
}

func clone(p Palette) Palette {
	out := make(Palette, len(p))
	for name, scale := range p {
		out[name] = maps.Clone(scale)
	}
	return out
}

// defaultColors is the shipped palette: a compact set of scale-complete
// families plus plain black and white.
var defaultColors = Palette{
	"black": {DefaultShade: "#000000"},
	"white": {DefaultShade: "#ffffff"},
	"gray": {
		"50":  "#f9fafb",
		"100": "#f3f4f6",
		"200": "#e5e7eb",
		"300": "#d1d5db",
		"400": "#9ca3af",
		"500": "#6b7280",
		"600": "#4b5563",
		"700": "#374151",
		"800": "#1f2937",
		"900": "#111827",
	},
	"red": {
		"50":  "#fef2f2",
		"100": "#fee2e2",
		"200": "#fecaca",
		"300": "#fca5a5",
		"400": "#f87171",
		"500": "#ef4444",
		"600": "#dc2626",
		"700": "#b91c1c",
		"800": "#991b1b",
		"900": "#7f1d1d",
	},
	"amber": {
		"50":  "#fffbeb",
		"100": "#fef3c7",
		"200": "#fde68a",
		"300": "#fcd34d",
		"400": "#fbbf24",
		"500": "#f59e0b",
		"600": "#d97706",
		"700": "#b45309",
		"800": "#92400e",
		"900": "#78350f",
	},
	"green": {
		"50":  "#f0fdf4",
		"100": "#dcfce7",
		"200": "#bbf7d0",
		"300": "#86efac",
		"400": "#4ade80",
		"500": "#22c55e",
		"600": "#16a34a",
		"700": "#15803d",
		"800": "#166534",
		"900": "#14532d",
	},
	"blue": {
		"50":  "#eff6ff",
		"100": "#dbeafe",
		"200": "#bfdbfe",
		"300": "#93c5fd",
		"400": "#60a5fa",
		"500": "#3b82f6",
		"600": "#2563eb",
		"700": "#1d4ed8",
		"800": "#1e40af",
		"900": "#1e3a8a",
	},
}
