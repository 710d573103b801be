package main

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <partition>",
	Short: "Export a built dataset's feature matrix and labels",
	Long:  "Reconstructs the stored feature matrix (and, for training partitions, the label vector) in matrix order and writes it to stdout in the selected format.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	partition := args[0]

	s, ds, err := openBuiltDataset(partition)
	if err != nil {
		return err
	}
	defer s.Close()

	features, err := s.FeatureMatrix(ds.ID)
	if err != nil {
		return err
	}
	labels, err := s.Labels(ds.ID)
	if err != nil {
		return err
	}

	return outputExport(CLIExport{
		Partition:          ds.Partition,
		Mode:               ds.Mode,
		SentenceCount:      ds.SentenceCount,
		CorrectedSentences: ds.CorrectedSentences,
		Features:           features,
		Labels:             labels,
	})
}
