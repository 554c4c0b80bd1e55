// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/docs-list/internal/report"
	"github.com/pdiddy/docs-list/pkg/types"
)

// Export writes the indexed inventory to w as YAML or JSON.
func (s *Store) Export(ctx context.Context, format types.OutputFormat, w io.Writer) error {
	if format != types.FormatYAML && format != types.FormatJSON {
		return fmt.Errorf("unsupported export format %q: use yaml or json", format)
	}

	entries, err := s.All(ctx)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	rw, err := report.New(format, w)
	if err != nil {
		return err
	}
	if err := rw.Begin(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := rw.Write(e); err != nil {
			return err
		}
	}
	return rw.Close()
}
