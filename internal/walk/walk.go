// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk enumerates the Markdown files of a documentation tree.
//
// Hidden entries (names starting with ".") and excluded directory names are
// skipped at any depth. Results are slash-separated paths relative to the
// root, sorted lexicographically.
package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const markdownExt = ".md"

// Markdown returns the relative paths of all Markdown files under root.
// exclude lists bare directory names that are never descended into.
// The first directory that cannot be read aborts the walk with its error.
func Markdown(root string, exclude []string) ([]string, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	return walkDir(root, "", skip)
}

func walkDir(dir, rel string, skip map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		entryRel := name
		if rel != "" {
			entryRel = rel + "/" + name
		}

		switch typ := entry.Type(); {
		case typ.IsDir():
			if skip[name] {
				continue
			}
			nested, err := walkDir(filepath.Join(dir, name), entryRel, skip)
			if err != nil {
				return nil, err
			}
			files = append(files, nested...)
		case typ.IsRegular() && strings.HasSuffix(name, markdownExt):
			files = append(files, entryRel)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Count returns the number of Markdown files under root, or 0 when root
// does not exist.
func Count(root string, exclude []string) (int, error) {
	files, err := Markdown(root, exclude)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
