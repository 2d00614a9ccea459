package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariefrahman95/Axelrod/pkg/axelrod"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	store        string
	dbPath       string
	artifactsDir string
	exportsDir   string
}

var rootCmd = &cobra.Command{
	Use:   "axelrodctl",
	Short: "Moran-style evolutionary tournaments over iterated prisoner's dilemma strategies",
	Long:  "Axelrodctl runs Case processes: repeated pairwise matches between\nstrategies with birth/death replacement until one strategy fixates.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.store, "store", "", "Store backend (memory or sqlite)")
	pf.StringVar(&rootFlags.dbPath, "db", "", "SQLite database path")
	pf.StringVar(&rootFlags.artifactsDir, "artifacts-dir", "", "Run artifacts directory")
	pf.StringVar(&rootFlags.exportsDir, "exports-dir", "", "Export output directory")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.Version = version
}

func newClient() (*axelrod.Client, error) {
	return axelrod.New(axelrod.Options{
		StoreKind:    rootFlags.store,
		DBPath:       rootFlags.dbPath,
		ArtifactsDir: rootFlags.artifactsDir,
		ExportsDir:   rootFlags.exportsDir,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
