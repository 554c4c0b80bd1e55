// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inventory walks a docs tree and extracts the front matter of each
// Markdown file, handing entries to a callback in path order.
package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/pdiddy/docs-list/internal/frontmatter"
	"github.com/pdiddy/docs-list/internal/walk"
	"github.com/pdiddy/docs-list/pkg/types"
)

// Root errors returned by CheckRoot.
var (
	ErrRootMissing      = errors.New("docs directory does not exist")
	ErrRootNotDirectory = errors.New("docs path is not a directory")
)

// CheckRoot verifies that root exists and is a directory. A root that
// cannot be stat'ed (including a dangling symlink) counts as missing.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return ErrRootMissing
	}
	if !info.IsDir() {
		return ErrRootNotDirectory
	}
	return nil
}

// Each extracts every Markdown file under root and calls fn with the entry.
// Files are read one at a time, after the whole tree has been walked and
// sorted. The first I/O error, or the first error returned by fn, stops the
// iteration.
func Each(ctx context.Context, root string, exclude []string, fn func(types.Entry) error) error {
	paths, err := walk.Markdown(root, exclude)
	if err != nil {
		return err
	}

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		md, err := frontmatter.Extract(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return err
		}
		if err := fn(types.Entry{Path: rel, Metadata: md}); err != nil {
			return err
		}
	}
	return nil
}

// Stats counts entries by outcome.
type Stats struct {
	WithSummary int
	WithHints   int
	Failed      int
}

// Total returns the number of files counted.
func (s Stats) Total() int {
	return s.WithSummary + s.Failed
}

// Add counts one entry.
func (s *Stats) Add(e types.Entry) {
	if !e.HasSummary() {
		s.Failed++
		return
	}
	s.WithSummary++
	if len(e.ReadWhen) > 0 {
		s.WithHints++
	}
}
