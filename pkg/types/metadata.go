// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docs-list inventory.
// Metadata is produced by the front-matter extractor; Entry pairs it with the
// relative path the walker found it under, and is what the report and index
// consume.
package types

// Metadata holds the front matter extracted from one Markdown file.
//
// Summary is empty exactly when Err is set. ReadWhen may be non-empty even
// when Err is set: hints gathered before the failure are retained.
type Metadata struct {
	// Summary is the normalized summary line.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// ReadWhen lists the read-when hints in the order they were found.
	ReadWhen []string `json:"read_when,omitempty" yaml:"read_when,omitempty"`

	// Err is the per-file reason the summary could not be extracted.
	Err error `json:"-" yaml:"-"`
}

// HasSummary reports whether a valid summary was extracted.
func (m Metadata) HasSummary() bool {
	return m.Summary != ""
}

// Reason returns the error reason text, or "" when extraction succeeded.
func (m Metadata) Reason() string {
	if m.Err == nil {
		return ""
	}
	return m.Err.Error()
}

// Entry is one Markdown file in the inventory.
type Entry struct {
	// Path is the slash-separated path relative to the docs root.
	Path string `json:"path" yaml:"path"`

	Metadata `yaml:",inline"`
}
