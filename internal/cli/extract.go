package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dgallion1/specgest/internal/config"
	"github.com/dgallion1/specgest/internal/pipeline"
)

var (
	extractSource  string
	extractTarget  string
	extractWorkers int
	extractTree    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [versions...]",
	Short: "Extract records for the given or configured versions",
	Long: `Extract reads <source>/<version>.md for every version and writes
<target>/<version>.json. Versions default to the configured list.

Examples:
  specgest extract
  specgest extract 3.1.0 --source ../specifications --target ./out
  specgest extract --tree`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractSource, "source", "", "directory holding <version>.md")
	extractCmd.Flags().StringVar(&extractTarget, "target", "", "directory receiving <version>.json")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "versions processed in parallel")
	extractCmd.Flags().BoolVar(&extractTree, "tree", false, "also write <version>.tree.json")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.SourceRoot = extractSource
	}
	if flags.Changed("target") {
		cfg.TargetRoot = extractTarget
	}
	if flags.Changed("workers") && extractWorkers > 0 {
		cfg.Workers = extractWorkers
	}
	if flags.Changed("tree") {
		cfg.WriteTree = extractTree
	}
	if len(args) > 0 {
		cfg.Versions = args
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := newLogger(cmd.ErrOrStderr())
	orch := pipeline.NewOrchestrator(cfg, newAssembler(cfg, log), log)

	jobs, runErr := orch.Run(cmd.Context(), cfg.Versions)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATUS\tSCHEMAS\tFIELDS\tRESULT")
	for _, j := range jobs {
		result := j.Output
		if j.Error != "" {
			result = j.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", j.Version, j.Status, j.Schemas, j.Fields, result)
	}
	tw.Flush()

	return runErr
}
