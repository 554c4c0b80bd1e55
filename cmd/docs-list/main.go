// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docs-list CLI.
//
// Run from a repository root, docs-list prints every Markdown file under
// docs/ with its front-matter summary and read-when hints, then a reminder
// to keep the docs current. Subcommands maintain an optional SQLite index
// of the same inventory.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docs-list/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docs-list CLI. Run without a
// subcommand it prints the inventory.
var rootCmd = &cobra.Command{
	Use:   "docs-list",
	Short: "List docs with their summaries and read-when hints",
	Long: `docs-list walks the docs/ directory of the current repository and prints
each Markdown file with the summary and "read when" hints from its front
matter. Hidden entries and the archive/ and research/ directories are
skipped. Files with missing or malformed front matter are listed with the
reason in brackets.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runList,
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("docs_dir", "docs")
	viper.SetDefault("exclude_dirs", types.DefaultExcludeDirs)
	viper.SetDefault("format", string(types.FormatText))
	viper.SetDefault("index_path", filepath.Join(".docs-list", "docs.db"))

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docs-list.yaml or ~/.config/docs-list/config.yaml)")
	rootCmd.PersistentFlags().String("docs-dir", "docs", "documentation root, relative to the working directory")
	rootCmd.Flags().String("format", string(types.FormatText), "output format: text, yaml, or json")

	viper.BindPFlag("docs_dir", rootCmd.PersistentFlags().Lookup("docs-dir"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docs-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docs-list"))
		}
	}

	viper.SetEnvPrefix("DOCS_LIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads the effective configuration from viper.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.DocsDir == "" {
		cfg.DocsDir = "docs"
	}
	if cfg.Format == "" {
		cfg.Format = types.FormatText
	}
	if !cfg.Format.Valid() {
		return cfg, fmt.Errorf("unsupported format %q: use text, yaml, or json", cfg.Format)
	}
	return cfg, nil
}

// cliError is a failure reported with a fixed message and exit code.
type cliError struct {
	message string
	code    int
}

func (e *cliError) Error() string { return e.message }

var (
	errMissingDocs = &cliError{message: "docs:list: missing docs directory. Run from repo root.", code: 1}
	errDocsNotDir  = &cliError{message: "docs:list: docs path is not a directory.", code: 1}
)

// exitCode reports err on stderr and returns the process exit code. A
// closed output pipe is a normal way for a pager to stop reading and exits
// cleanly.
func exitCode(err error, stderr io.Writer) int {
	if err == nil || errors.Is(err, syscall.EPIPE) {
		return 0
	}
	var ce *cliError
	if errors.As(err, &ce) {
		fmt.Fprintln(stderr, ce.message)
		return ce.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

func main() {
	// Writes to a closed stdout then fail with EPIPE instead of killing
	// the process.
	signal.Ignore(syscall.SIGPIPE)
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}
