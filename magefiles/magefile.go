//go:build mage

// Package main contains Mage build targets for docs-list developer tooling.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/docs-list/internal/inventory"
	"github.com/pdiddy/docs-list/internal/walk"
	"github.com/pdiddy/docs-list/pkg/types"
)

const (
	binDir  = "bin"
	binName = "docs-list"
	cmdPkg  = "./cmd/docs-list"
	docsDir = "docs"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Property runs the gopter property tests.
func Property() error {
	return sh.RunV("go", "test", "-tags", "property", "./internal/...")
}

// Check runs the unit and property tests.
func Check() {
	mg.SerialDeps(Test, Property)
}

// Docs builds the binary and prints the docs inventory.
func Docs() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName))
}

// Stats prints project metrics: Go production/test LOC and the docs
// front-matter health.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	files, err := walk.Count(docsDir, types.DefaultExcludeDirs)
	if err != nil {
		return err
	}
	fmt.Printf("Docs (markdown files):          %d\n", files)
	if files == 0 {
		return nil
	}

	var stats inventory.Stats
	err = inventory.Each(context.Background(), docsDir, types.DefaultExcludeDirs, func(e types.Entry) error {
		stats.Add(e)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Docs (with summary):            %d\n", stats.WithSummary)
	fmt.Printf("Docs (with read-when hints):    %d\n", stats.WithHints)
	fmt.Printf("Docs (front matter problems):   %d\n", stats.Failed)
	if stats.Total() != files {
		return fmt.Errorf("docs stats counted %d files, walk found %d", stats.Total(), files)
	}
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || d.Name() == ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
