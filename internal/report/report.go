// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the docs inventory.
//
// The text format is streamed: each entry is written as soon as it is
// passed in. The YAML and JSON formats buffer entries and encode a single
// document on Close.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docs-list/pkg/types"
)

const (
	// Header is the first line of the text report.
	Header = "Listing all markdown files in docs folder:"

	// Reminder closes every report.
	Reminder = `Reminder: keep docs up to date as behavior changes. When your task matches any "Read when" hint above (cache directives, database work, tests, etc.), read that doc before coding, and suggest new coverage when it is missing.`

	hintSeparator = "; "
)

// Writer receives inventory entries in path order.
type Writer interface {
	// Begin writes anything that precedes the first entry.
	Begin() error
	// Write renders one entry.
	Write(e types.Entry) error
	// Close finishes the report. It does not close the underlying writer.
	Close() error
}

// New returns a Writer for the given format.
func New(format types.OutputFormat, w io.Writer) (Writer, error) {
	switch format {
	case types.FormatText, "":
		return NewText(w), nil
	case types.FormatYAML:
		return NewYAML(w), nil
	case types.FormatJSON:
		return NewJSON(w), nil
	}
	return nil, fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
}

// TextWriter streams the line-oriented report.
type TextWriter struct {
	w io.Writer
}

// NewText returns a TextWriter writing to w.
func NewText(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

func (t *TextWriter) Begin() error {
	_, err := fmt.Fprintln(t.w, Header)
	return err
}

// Write prints "path - summary" followed by the hints line, or "path" with
// the bracketed reason when no summary was extracted. Hints are never shown
// for entries without a summary.
func (t *TextWriter) Write(e types.Entry) error {
	if e.HasSummary() {
		if _, err := fmt.Fprintf(t.w, "%s - %s\n", e.Path, e.Summary); err != nil {
			return err
		}
		if len(e.ReadWhen) > 0 {
			if _, err := fmt.Fprintf(t.w, "  Read when: %s\n", strings.Join(e.ReadWhen, hintSeparator)); err != nil {
				return err
			}
		}
		return nil
	}

	if reason := e.Reason(); reason != "" {
		_, err := fmt.Fprintf(t.w, "%s - [%s]\n", e.Path, reason)
		return err
	}
	_, err := fmt.Fprintln(t.w, e.Path)
	return err
}

func (t *TextWriter) Close() error {
	_, err := fmt.Fprintf(t.w, "\n%s\n", Reminder)
	return err
}

// Document is the structured form of the report.
type Document struct {
	Docs     []Record `json:"docs" yaml:"docs"`
	Reminder string   `json:"reminder" yaml:"reminder"`
}

// Record is one entry of a structured report.
type Record struct {
	Path     string   `json:"path" yaml:"path"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	ReadWhen []string `json:"read_when,omitempty" yaml:"read_when,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRecord converts an entry, dropping hints when there is no summary.
func NewRecord(e types.Entry) Record {
	r := Record{Path: e.Path, Summary: e.Summary, Error: e.Reason()}
	if e.HasSummary() {
		r.ReadWhen = e.ReadWhen
	}
	return r
}

// structuredWriter collects records and encodes them on Close.
type structuredWriter struct {
	w      io.Writer
	doc    Document
	encode func(io.Writer, Document) error
}

// NewYAML returns a Writer that emits a YAML document.
func NewYAML(w io.Writer) Writer {
	return &structuredWriter{w: w, encode: encodeYAML}
}

// NewJSON returns a Writer that emits an indented JSON document.
func NewJSON(w io.Writer) Writer {
	return &structuredWriter{w: w, encode: encodeJSON}
}

func (s *structuredWriter) Begin() error {
	s.doc = Document{Docs: []Record{}, Reminder: Reminder}
	return nil
}

func (s *structuredWriter) Write(e types.Entry) error {
	s.doc.Docs = append(s.doc.Docs, NewRecord(e))
	return nil
}

func (s *structuredWriter) Close() error {
	if s.doc.Docs == nil {
		s.doc = Document{Docs: []Record{}, Reminder: Reminder}
	}
	return s.encode(s.w, s.doc)
}

func encodeYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func encodeJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
