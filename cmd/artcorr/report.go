package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artcorr/artcorr"
	"github.com/artcorr/artcorr/internal/store"
	"github.com/spf13/cobra"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report <partition> <predictions-file>",
	Short: "Decode a flat prediction stream into a correction report",
	Long:  "Reads the classifier's flat [class, confidence] stream, re-partitions it per sentence against the partition's parse-tree corpus, records the slots in the store, and writes the nested report JSON.",
	Args:  cobra.ExactArgs(2),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportOut, "output", "", "report file path (default: <out>/submission_<partition>.json)")
}

func runReport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg := artcorr.Config{
		DataDir:   flagData,
		OutDir:    flagOut,
		Partition: args[0],
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	corpora, err := artcorr.LoadCorpora(cfg)
	if err != nil {
		return err
	}
	flat, err := artcorr.LoadPredictions(args[1])
	if err != nil {
		return err
	}

	report, err := artcorr.PredictionsFromLabels(flat, corpora.Trees)
	if err != nil {
		return err
	}

	// Record decoded slots against the built dataset before writing the
	// report file, so a store failure leaves no half-published output.
	s, ds, err := openBuiltDataset(cfg.Partition)
	if err != nil {
		return err
	}
	defer s.Close()

	var rows []*store.PredictionRow
	for si, sentence := range report {
		for ti, slot := range sentence {
			row := &store.PredictionRow{SentenceIndex: si, SiteIndex: ti}
			if slot != nil {
				row.Class = slot.Class
				row.Confidence = slot.Confidence
			}
			rows = append(rows, row)
		}
	}
	if err := s.SavePredictions(ds.ID, rows); err != nil {
		return fmt.Errorf("saving predictions: %w", err)
	}

	outPath := flagReportOut
	if outPath == "" {
		outPath = filepath.Join(flagOut, "submission_"+cfg.Partition+".json")
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()
	if err := artcorr.SaveReport(f, report); err != nil {
		return err
	}

	if err := outputReport(report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Decoded %d predictions into %d sentences in %s\n",
		len(flat), len(report), time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Report: %s\n", outPath)

	return nil
}
