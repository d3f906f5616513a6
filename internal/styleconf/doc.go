// Package styleconf models the declarative build configuration of the
// chatblack style pipeline: the content globs scanned for class usage, the
// theme color extensions merged into the built-in palette, and the plugin
// references. The record is loaded from YAML, JSON, or TOML, validated as a
// whole, and held as an immutable snapshot that can be swapped on reload;
// a loaded record is never mutated.
package styleconf
