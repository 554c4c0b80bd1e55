// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how the inventory is rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"
)

// Valid reports whether f names a supported format.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatYAML, FormatJSON:
		return true
	}
	return false
}

// DefaultExcludeDirs are the directory names skipped at any depth.
var DefaultExcludeDirs = []string{"archive", "research"}

// Config holds the settings for a docs-list run.
type Config struct {
	// DocsDir is the documentation root, relative to the working directory
	// (default "docs").
	DocsDir string `json:"docs_dir" yaml:"docs_dir" mapstructure:"docs_dir"`

	// ExcludeDirs lists directory names that are never descended into.
	ExcludeDirs []string `json:"exclude_dirs" yaml:"exclude_dirs" mapstructure:"exclude_dirs"`

	// Format selects the report rendering: text, yaml, or json.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// IndexPath is the SQLite inventory database (default ".docs-list/docs.db").
	IndexPath string `json:"index_path" yaml:"index_path" mapstructure:"index_path"`
}
