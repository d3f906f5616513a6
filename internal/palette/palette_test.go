package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsScaleComplete(t *testing.T) {
	p := Default()

	require.NotEmpty(t, p)
	for _, name := range []string{"gray", "red", "amber", "green", "blue"} {
		scale, ok := p[name]
		require.True(t, ok, "missing color %s", name)
		for _, shade := range []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"} {
			value, ok := scale[shade]
			require.True(t, ok, "%s is missing shade %s", name, shade)
			assert.True(t, IsColor(value), "%s-%s holds %q", name, shade, value)
		}
	}
	assert.Equal(t, "#000000", p["black"][DefaultShade])
	assert.Equal(t, "#ffffff", p["white"][DefaultShade])
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := Default()
	first["gray"]["50"] = "#bad"
	first["extra"] = Scale{"50": "#111111"}

	second := Default()
	assert.Equal(t, "#f9fafb", second["gray"]["50"])
	assert.NotContains(t, second, "extra")
}

func TestMergeAddsNewColor(t *testing.T) {
	base := Default()
	merged := Merge(base, map[string]Scale{
		"chatblack": {"50": "#333333"},
	})

	require.Contains(t, merged, "chatblack")
	assert.Equal(t, "#333333", merged["chatblack"]["50"])

	// base colors survive untouched
	assert.Equal(t, base["gray"], merged["gray"])
}

func TestMergeOverridesSingleShade(t *testing.T) {
	merged := Merge(Default(), map[string]Scale{
		"gray": {"500": "#808080", "950": "#0a0a0a"},
	})

	assert.Equal(t, "#808080", merged["gray"]["500"])
	assert.Equal(t, "#0a0a0a", merged["gray"]["950"])
	// the rest of the scale is preserved, not replaced
	assert.Equal(t, "#f9fafb", merged["gray"]["50"])
	assert.Equal(t, "#111827", merged["gray"]["900"])
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Default()
	extensions := map[string]Scale{"gray": {"500": "#808080"}}

	_ = Merge(base, extensions)

	assert.Equal(t, "#6b7280", base["gray"]["500"])
	assert.Equal(t, Scale{"500": "#808080"}, extensions["gray"])
}

func TestNamesSorted(t *testing.T) {
	p := Palette{"zinc": {}, "amber": {}, "gray": {}}
	assert.Equal(t, []string{"amber", "gray", "zinc"}, p.Names())
}

func TestHas(t *testing.T) {
	p := Palette{"chatblack": {"50": "#333333"}}

	assert.True(t, p.Has("chatblack", "50"))
	assert.False(t, p.Has("chatblack", "100"))
	assert.False(t, p.Has("chatwhite", "50"))
}

func TestShadesOrder(t *testing.T) {
	s := Scale{"900": "#1", "50": "#2", DefaultShade: "#3", "100": "#4"}
	assert.Equal(t, []string{DefaultShade, "50", "100", "900"}, s.Shades())
}
