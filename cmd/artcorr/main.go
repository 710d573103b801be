package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/artcorr/artcorr/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagData   string
	flagOut    string
	flagDB     string
	flagFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "artcorr",
	Short:         "Determiner-article correction dataset toolkit",
	Long:          "Artcorr builds fixed-width feature datasets from constituency parse corpora for a determiner-article classifier, and turns the classifier's predictions back into per-sentence correction reports.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "data", "directory holding the raw corpus files")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "out", "output directory for datasets and reports")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: <out>/artcorr.db)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveDBPath returns the database path from the --db flag or the default
// location under the output directory.
func resolveDBPath() string {
	if flagDB != "" {
		return flagDB
	}
	return filepath.Join(flagOut, "artcorr.db")
}

// openStore opens the dataset store, creating the output directory and
// schema as needed.
func openStore() (*store.Store, error) {
	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", flagOut, err)
	}
	s, err := store.NewStore(resolveDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}
	return s, nil
}

// openBuiltDataset opens the store and looks up the dataset record for a
// partition, failing with a hint when the partition was never built.
func openBuiltDataset(partition string) (*store.Store, *store.Dataset, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	ds, err := s.DatasetByPartition(partition)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	if ds == nil {
		s.Close()
		return nil, nil, fmt.Errorf("partition %q not built (run 'artcorr build %s' first)", partition, partition)
	}
	return s, ds, nil
}
