// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs-list/internal/inventory"
	"github.com/pdiddy/docs-list/internal/report"
)

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := checkDocsRoot(cfg.DocsDir); err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	rw, err := report.New(cfg.Format, out)
	if err != nil {
		return err
	}

	err = writeReport(cmd, rw, cfg.DocsDir, cfg.ExcludeDirs)
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	return err
}

func writeReport(cmd *cobra.Command, rw report.Writer, root string, exclude []string) error {
	if err := rw.Begin(); err != nil {
		return err
	}
	if err := inventory.Each(cmd.Context(), root, exclude, rw.Write); err != nil {
		return err
	}
	return rw.Close()
}

// checkDocsRoot maps a missing or non-directory docs root to its CLI error.
func checkDocsRoot(root string) error {
	err := inventory.CheckRoot(root)
	switch {
	case errors.Is(err, inventory.ErrRootMissing):
		return errMissingDocs
	case errors.Is(err, inventory.ErrRootNotDirectory):
		return errDocsNotDir
	}
	return err
}
