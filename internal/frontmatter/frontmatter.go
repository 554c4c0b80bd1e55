// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter extracts the summary and read-when hints from the
// front matter of a Markdown document.
//
// The block is delimited by "---" lines and holds a constrained YAML-like
// subset: a "summary:" line and a "read_when:" list written either inline
// ([a, b]) or as "- item" lines. Parsing never fails at the document level;
// problems are reported through Metadata.Err as one of the sentinel errors
// below.
package frontmatter

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/docs-list/pkg/types"
)

const (
	marker        = "---"
	closingMarker = "\n" + marker
	summaryKey    = "summary:"
	readWhenKey   = "read_when:"
	hintPrefix    = "- "
)

// Per-file reasons. These are the only values Metadata.Err takes.
var (
	ErrMissingFrontMatter      = errors.New("missing front matter")
	ErrUnterminatedFrontMatter = errors.New("unterminated front matter")
	ErrSummaryKeyMissing       = errors.New("summary key missing")
	ErrSummaryEmpty            = errors.New("summary is empty")
)

// ReasonError maps a stored reason text back to its sentinel error. Unknown
// text yields nil.
func ReasonError(reason string) error {
	for _, err := range []error{
		ErrMissingFrontMatter,
		ErrUnterminatedFrontMatter,
		ErrSummaryKeyMissing,
		ErrSummaryEmpty,
	} {
		if err.Error() == reason {
			return err
		}
	}
	return nil
}

// Extract reads the file at path and parses its front matter. Only I/O
// failures (and content that is not valid UTF-8) are returned as errors.
func Extract(path string) (types.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Metadata{}, err
	}
	if !utf8.Valid(data) {
		return types.Metadata{}, fmt.Errorf("%s: stream did not contain valid UTF-8", path)
	}
	return Parse(string(data)), nil
}

// Parse extracts metadata from document content.
func Parse(content string) types.Metadata {
	if !strings.HasPrefix(content, marker) {
		return types.Metadata{Err: ErrMissingFrontMatter}
	}

	end := strings.Index(content[len(marker):], closingMarker)
	if end < 0 {
		return types.Metadata{Err: ErrUnterminatedFrontMatter}
	}
	block := strings.TrimSpace(content[len(marker) : len(marker)+end])

	var sc scanner
	for _, line := range strings.Split(block, "\n") {
		sc.scan(strings.TrimSpace(line))
	}

	if !sc.hasSummary {
		return types.Metadata{ReadWhen: sc.hints, Err: ErrSummaryKeyMissing}
	}

	summary := NormalizeSummary(strings.TrimPrefix(sc.summaryLine, summaryKey))
	if summary == "" {
		return types.Metadata{ReadWhen: sc.hints, Err: ErrSummaryEmpty}
	}
	return types.Metadata{Summary: summary, ReadWhen: sc.hints}
}

// NormalizeSummary trims value, removes one leading and one trailing quote
// character (single or double, independently of each other) and collapses
// internal whitespace runs to single spaces. It is idempotent.
func NormalizeSummary(value string) string {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, `"`) || strings.HasPrefix(v, "'") {
		v = v[1:]
	}
	if strings.HasSuffix(v, `"`) || strings.HasSuffix(v, "'") {
		v = v[:len(v)-1]
	}
	return strings.Join(strings.Fields(v), " ")
}

// scanState is the line scanner mode.
type scanState int

const (
	// scanning looks for summary: and read_when: keys only.
	scanning scanState = iota
	// collecting additionally accepts "- hint" lines and blank lines.
	collecting
)

// scanner walks the trimmed lines of a front-matter block.
type scanner struct {
	state       scanState
	summaryLine string
	hasSummary  bool
	hints       []string
}

func (s *scanner) scan(line string) {
	switch {
	case strings.HasPrefix(line, summaryKey):
		s.summaryLine = line
		s.hasSummary = true
		s.state = scanning
	case strings.HasPrefix(line, readWhenKey):
		// An inline list and "- " lines may both follow the same key.
		s.state = collecting
		if values, ok := parseInlineArray(strings.TrimSpace(line[len(readWhenKey):])); ok {
			s.hints = append(s.hints, compact(values)...)
		}
	case s.state == collecting:
		s.collect(line)
	}
}

func (s *scanner) collect(line string) {
	switch {
	case strings.HasPrefix(line, hintPrefix):
		if hint := strings.TrimSpace(line[len(hintPrefix):]); hint != "" {
			s.hints = append(s.hints, hint)
		}
	case line == "":
	default:
		s.state = scanning
	}
}
