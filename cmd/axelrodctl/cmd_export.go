package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariefrahman95/Axelrod/pkg/axelrod"
)

var exportFlags struct {
	runID  string
	latest bool
	outDir string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy a run's artifacts to the export directory",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.runID, "run-id", "", "Run identifier")
	f.BoolVar(&exportFlags.latest, "latest", false, "Export the most recent run")
	f.StringVarP(&exportFlags.outDir, "out", "o", "", "Output directory")
}

func runExport(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	summary, err := client.Export(axelrod.ExportRequest{
		RunID:  exportFlags.runID,
		Latest: exportFlags.latest,
		OutDir: exportFlags.outDir,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", summary.RunID, summary.Directory)
	return nil
}
