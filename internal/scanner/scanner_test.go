package scanner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatblack/internal/palette"
)

const base = "testdata/site"

func TestResolveSingleStar(t *testing.T) {
	files, err := Resolve(base, []string{"./templates/*.html"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("templates", "about.html"),
		filepath.Join("templates", "index.html"),
	}, files)
}

func TestResolveDoubleStar(t *testing.T) {
	files, err := Resolve(base, []string{"templates/**/*.html"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join("templates", "about.html"),
		filepath.Join("templates", "index.html"),
		filepath.Join("templates", "partials", "nav.html"),
	}, files)
}

func TestResolveFollowsPatternOrderAndDedups(t *testing.T) {
	files, err := Resolve(base, []string{
		"templates/index.html",
		"./templates/*.html",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("templates", "index.html"),
		filepath.Join("templates", "about.html"),
	}, files)
}

func TestResolveSecondPatternAddsFiles(t *testing.T) {
	files, err := Resolve(base, []string{
		"./templates/*.html",
		"./static/**/*.js",
	})
	require.NoError(t, err)
	assert.Contains(t, files, filepath.Join("static", "app.js"))
}

func TestResolveInvalidPattern(t *testing.T) {
	_, err := Resolve(base, []string{"templates/["})
	assert.Error(t, err)
}

func TestScanCountsTokensPerFile(t *testing.T) {
	files, err := Resolve(base, []string{"./templates/*.html"})
	require.NoError(t, err)

	report, err := Scan(context.Background(), base, files)
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, filepath.Join("templates", "about.html"), report.Files[0].Path)
	assert.Equal(t, 3, report.Files[0].Tokens)
	assert.Equal(t, filepath.Join("templates", "index.html"), report.Files[1].Path)
	assert.Equal(t, 7, report.Files[1].Tokens)

	assert.Equal(t, 1, report.Tokens["bg-chatblack-50"])
	assert.Equal(t, 1, report.Tokens["text-white"])
	assert.Equal(t, 1, report.Tokens["text-lg"])
	assert.Zero(t, report.Tokens["nav"], "element text is not a class token")
}

func TestScanReadsSingleQuotedAttributes(t *testing.T) {
	report, err := Scan(context.Background(), base, []string{filepath.Join("templates", "index.html")})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Tokens["text-red-500"])
}

func TestScanEmptyFileList(t *testing.T) {
	report, err := Scan(context.Background(), base, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.Empty(t, report.Tokens)
}

func TestScanMissingFile(t *testing.T) {
	_, err := Scan(context.Background(), base, []string{"templates/missing.html"})
	assert.Error(t, err)
}

func TestScanCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, base, []string{filepath.Join("templates", "index.html")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnknownColorRefs(t *testing.T) {
	pal := palette.Merge(palette.Default(), map[string]palette.Scale{
		"chatblack": {"50": "#333333"},
	})

	files, err := Resolve(base, []string{"./templates/*.html"})
	require.NoError(t, err)
	report, err := Scan(context.Background(), base, files)
	require.NoError(t, err)

	unknown := UnknownColorRefs(report.Tokens, pal)
	assert.Equal(t, []string{"bg-chatblack", "bg-foo-500", "text-chatblack-900"}, unknown)
}

func TestUnknownColorRefsHeuristics(t *testing.T) {
	pal := palette.Merge(palette.Default(), map[string]palette.Scale{
		"chatblack": {"50": "#333333"},
	})

	tests := []struct {
		token   string
		flagged bool
	}{
		{"bg-chatblack-50", false},
		{"bg-chatblack-900", true},
		{"bg-chatblack", true},
		{"text-white", false},
		{"text-lg", false},
		{"border-dashed", false},
		{"fill-amber-400", false},
		{"stroke-foo-200", true},
		{"mx-auto", false},
		{"bg-gradient-to-r", false},
	}
	for _, tc := range tests {
		t.Run(tc.token, func(t *testing.T) {
			got := UnknownColorRefs(map[string]int{tc.token: 1}, pal)
			if tc.flagged {
				assert.Equal(t, []string{tc.token}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}
