// Package scanner resolves the content globs of a style config and extracts
// class usage from the matched files. It backs the stylecheck scan command:
// which files the config actually covers, which class tokens they use, and
// which of those tokens reference colors the merged palette does not have.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"chatblack/internal/palette"
)

// maxConcurrentScans bounds how many files Scan reads at once.
const maxConcurrentScans = 8

// classAttrRe captures the value of class attributes in the scanned markup.
var classAttrRe = regexp.MustCompile(`class\s*=\s*["']([^"']*)["']`)

// colorUtilityPrefixes are the utility namespaces that take a color argument.
var colorUtilityPrefixes = []string{"bg", "text", "border", "fill", "stroke"}

// FileStat is one scanned file in scan order.
type FileStat struct {
	Path   string `json:"path"`
	Tokens int    `json:"tokens"`
}

// Report aggregates a scan: the files visited in pattern order and the class
// tokens found across all of them with occurrence counts.
type Report struct {
	Files  []FileStat     `json:"files"`
	Tokens map[string]int `json:"tokens"`
}

// Resolve expands the ordered glob patterns against baseDir into a
// de-duplicated list of file paths relative to baseDir. Output order follows
// pattern order, then walk order within a pattern; a file matched by two
// patterns is reported once, at its first position.
func Resolve(baseDir string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	fsys := os.DirFS(baseDir)

	for _, pattern := range patterns {
		normalized := strings.TrimPrefix(pattern, "./")
		matches, err := doublestar.Glob(fsys, normalized, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, nil
}

// Scan reads the given files (paths relative to baseDir) concurrently and
// extracts class tokens from their class attributes.
func Scan(ctx context.Context, baseDir string, files []string) (Report, error) {
	perFile := make([][]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScans)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(baseDir, path))
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			perFile[i] = extractTokens(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{
		Files:  make([]FileStat, len(files)),
		Tokens: make(map[string]int),
	}
	for i, path := range files {
		report.Files[i] = FileStat{Path: path, Tokens: len(perFile[i])}
		for _, tok := range perFile[i] {
			report.Tokens[tok]++
		}
	}
	return report, nil
}

// UnknownColorRefs returns the class tokens that look like color utilities
// but reference a color or shade absent from pal, sorted. Tokens whose
// argument is not color-shaped (text-lg, border-dashed) are left alone.
func UnknownColorRefs(tokens map[string]int, pal palette.Palette) []string {
	var unknown []string
	for tok := range tokens {
		if refersToMissingColor(tok, pal) {
			unknown = append(unknown, tok)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// extractTokens pulls every whitespace-separated token out of the class
// attributes of data, in document order.
func extractTokens(data []byte) []string {
	var tokens []string
	for _, match := range classAttrRe.FindAllSubmatch(data, -1) {
		tokens = append(tokens, strings.Fields(string(match[1]))...)
	}
	return tokens
}

// refersToMissingColor applies the color-utility heuristic: a token
// <prefix>-<name>-<digits> must name an existing color and shade, and
// <prefix>-<name> with a palette color name must have a DEFAULT shade.
// A non-numeric argument that names no palette color is assumed to be a
// non-color utility and is not flagged.
func refersToMissingColor(tok string, pal palette.Palette) bool {
	rest, ok := stripColorPrefix(tok)
	if !ok {
		return false
	}

	if idx := strings.LastIndex(rest, "-"); idx > 0 {
		name, shade := rest[:idx], rest[idx+1:]
		if isDigits(shade) {
			return !pal.Has(name, shade)
		}
	}

	if _, known := pal[rest]; known {
		return !pal.Has(rest, palette.DefaultShade)
	}
	return false
}

func stripColorPrefix(tok string) (string, bool) {
	for _, prefix := range colorUtilityPrefixes {
		rest, found := strings.CutPrefix(tok, prefix+"-")
		if found && rest != "" {
			return rest, true
		}
	}
	return "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
