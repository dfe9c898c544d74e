// Package cli implements the specgest command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/specgest/internal/config"
	"github.com/dgallion1/specgest/internal/history"
	"github.com/dgallion1/specgest/internal/specdoc"
)

var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "specgest",
	Short: "Extract schema records from OpenAPI specification Markdown",
	Long: `specgest reads one Markdown document per specification version, rebuilds
its heading tree and writes the schemas and field tables it declares as JSON.

Environment:
  SPECGEST_SOURCE_ROOT   directory holding <version>.md
  SPECGEST_TARGET_ROOT   directory receiving <version>.json
  SPECGEST_VERSIONS      comma separated versions to extract
  SPECGEST_API_KEY       bearer key required by serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the specgest version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "specgest", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func newAssembler(cfg config.Config, log *slog.Logger) *specdoc.Assembler {
	return specdoc.NewAssembler(
		specdoc.WithURLTemplates(cfg.MarkdownURL, cfg.SchemaURL),
		specdoc.WithHistory(history.RevisionTable{}),
		specdoc.WithLogger(log),
	)
}
