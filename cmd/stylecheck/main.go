package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"chatblack/internal/palette"
	"chatblack/internal/scanner"
	"chatblack/internal/styleconf"
)

func main() {
	app := kingpin.New("stylecheck", "Inspect and maintain the chatblack style build config")

	validateCmd := app.Command("validate", "Check that the style config loads and passes validation")
	validateFile := validateCmd.Flag("file", "Path to the style config (conventional names in the current directory are tried when omitted)").String()

	showCmd := app.Command("show", "Print the effective record and merged palette")
	showFile := showCmd.Flag("file", "Path to the style config").String()
	showFormat := showCmd.Flag("format", "Output format: json or css").Default("json").Enum("json", "css")

	scanCmd := app.Command("scan", "Resolve the content globs and report class usage")
	scanFile := scanCmd.Flag("file", "Path to the style config").String()
	scanBase := scanCmd.Flag("base", "Directory the content globs resolve against (defaults to the config file's directory)").String()

	fmtCmd := app.Command("fmt", "Normalize the config by round-tripping it through its codec")
	fmtFile := fmtCmd.Flag("file", "Path to the style config").String()
	fmtWrite := fmtCmd.Flag("write", "Rewrite the file in place instead of printing").Bool()

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s, try --help\n", err)
		os.Exit(2)
	}

	switch cmd {
	case validateCmd.FullCommand():
		os.Exit(runValidate(*validateFile, os.Stdout, os.Stderr))
	case showCmd.FullCommand():
		os.Exit(runShow(*showFile, *showFormat, os.Stdout, os.Stderr))
	case scanCmd.FullCommand():
		os.Exit(runScan(*scanFile, *scanBase, os.Stdout, os.Stderr))
	case fmtCmd.FullCommand():
		os.Exit(runFmt(*fmtFile, *fmtWrite, os.Stdout, os.Stderr))
	}
}

// loadRecord loads the record at file, or discovers one in the current
// directory when file is empty. The returned path is the file actually read.
func loadRecord(file string) (styleconf.Config, string, error) {
	if file != "" {
		cfg, err := styleconf.Load(file)
		return cfg, file, err
	}
	return styleconf.Discover(".")
}

func runValidate(file string, stdout, stderr io.Writer) int {
	cfg, path, err := loadRecord(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := styleconf.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", path, err)
		return 1
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", path)
	return 0
}

func runShow(file, format string, stdout, stderr io.Writer) int {
	cfg, path, err := loadRecord(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := styleconf.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", path, err)
		return 1
	}

	merged := palette.Merge(palette.Default(), cfg.Theme.Extend.Colors)

	switch format {
	case "css":
		fmt.Fprint(stdout, palette.CSS(merged, palette.CSSOptions{}))
		return 0
	case "json":
		out := effectiveRecord{Path: path, Config: cfg, Palette: merged}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use json or css)\n", format)
		return 2
	}
}

func runScan(file, base string, stdout, stderr io.Writer) int {
	cfg, path, err := loadRecord(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := styleconf.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n  %v\n", path, err)
		return 1
	}

	if base == "" {
		base = filepath.Dir(path)
	}

	files, err := scanner.Resolve(base, cfg.Content)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	report, err := scanner.Scan(context.Background(), base, files)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	total := 0
	for _, f := range report.Files {
		total += f.Tokens
	}
	fmt.Fprintf(stdout, "scanned %d files, %d class tokens\n", len(report.Files), total)
	for _, f := range report.Files {
		fmt.Fprintf(stdout, "  %s: %d tokens\n", f.Path, f.Tokens)
	}

	merged := palette.Merge(palette.Default(), cfg.Theme.Extend.Colors)
	unknown := scanner.UnknownColorRefs(report.Tokens, merged)
	if len(unknown) > 0 {
		fmt.Fprintln(stdout, "unknown color references:")
		for _, tok := range unknown {
			fmt.Fprintf(stdout, "  %s\n", tok)
		}
		return 1
	}

	fmt.Fprintln(stdout, "no unknown color references")
	return 0
}

func runFmt(file string, write bool, stdout, stderr io.Writer) int {
	cfg, path, err := loadRecord(file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if write {
		if err := styleconf.Save(path, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "rewrote %s\n", path)
		return 0
	}

	data, err := styleconf.Marshal(cfg, filepath.Ext(path))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, string(data))
	return 0
}

// effectiveRecord is the JSON document printed by show --format json.
type effectiveRecord struct {
	Path    string           `json:"path"`
	Config  styleconf.Config `json:"config"`
	Palette palette.Palette  `json:"palette"`
}
