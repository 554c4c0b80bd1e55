// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docs-list/internal/index"
	"github.com/pdiddy/docs-list/pkg/types"
)

// --- index subcommand ---

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Refresh the SQLite inventory of the docs tree",
	Long: `Index walks docs/ and records each Markdown file's summary, read-when
hints, and front-matter problems in a SQLite database. Files whose
modification time has not changed since the last run are skipped, and
files that no longer exist are removed.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := checkDocsRoot(cfg.DocsDir); err != nil {
		return err
	}

	store, err := openIndex(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Refresh(cmd.Context(), cfg.DocsDir, cfg.ExcludeDirs, cmd.OutOrStdout())
	return err
}

// --- match subcommand ---

var matchCmd = &cobra.Command{
	Use:   "match <term...>",
	Short: "Find indexed docs whose hints or summary mention a term",
	Long: `Match searches the index for documents whose read-when hints or summary
contain the given term, ignoring case. Run "docs-list index" first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openIndex(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Match(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching docs.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s - %s\n", e.Path, e.Summary)
		if len(e.ReadWhen) > 0 {
			fmt.Fprintf(out, "  Read when: %s\n", strings.Join(e.ReadWhen, "; "))
		}
	}
	fmt.Fprintf(out, "\n%d matching docs\n", len(entries))
	return nil
}

// --- export subcommand ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the indexed inventory to YAML or JSON",
	Long: `Export writes every indexed document to standard output, or to the file
given with --out, as YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")

	store, err := openIndex(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if outPath == "" {
		return store.Export(cmd.Context(), types.OutputFormat(format), cmd.OutOrStdout())
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := store.Export(cmd.Context(), types.OutputFormat(format), f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Exported to", outPath)
	return nil
}

// --- version subcommand ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of docs-list",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "docs-list %s\n", version)
	},
}

func init() {
	// Shared flag on the index family.
	for _, c := range []*cobra.Command{indexCmd, matchCmd, exportCmd} {
		c.Flags().String("db", "", "inventory database (default .docs-list/docs.db)")
	}

	matchCmd.Flags().Bool("json", false, "output matches as JSON")

	exportCmd.Flags().String("format", string(types.FormatYAML), "export format: yaml or json")
	exportCmd.Flags().String("out", "", "write to this file instead of stdout")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// openIndex opens the inventory database, preferring --db over the
// configured index_path.
func openIndex(cmd *cobra.Command, cfg types.Config) (*index.Store, error) {
	path := cfg.IndexPath
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		path = db
	}
	return index.Open(path)
}
