package palette

import (
	"fmt"
	"strings"
)

// CSSOptions controls how a palette is rendered to CSS custom properties.
type CSSOptions struct {
	// Selector wraps the declarations; defaults to ":root".
	Selector string
	// Prefix is the first segment of every property name; defaults to "color",
	// yielding names like --color-gray-500.
	Prefix string
}

// CSS renders the palette as a block of CSS custom properties, one property
// per shade, named --<prefix>-<name>-<shade>. Colors whose only shade is
// DEFAULT render without the shade segment. Output order is deterministic:
// color names lexically, shades DEFAULT-first then ascending.
func CSS(p Palette, opts CSSOptions) string {
	selector := opts.Selector
	if selector == "" {
		selector = ":root"
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "color"
	}

	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range p.Names() {
		scale := p[name]
		for _, shade := range scale.Shades() {
			property := fmt.Sprintf("--%s-%s-%s", prefix, name, shade)
			if shade == DefaultShade {
				property = fmt.Sprintf("--%s-%s", prefix, name)
			}
			fmt.Fprintf(&b, "  %s: %s;\n", property, scale[shade])
		}
	}
	b.WriteString("}\n")
	return b.String()
}
