package main

import (
	"fmt"
	"os"
	"time"

	"github.com/artcorr/artcorr"
	"github.com/artcorr/artcorr/internal/store"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var flagParallel bool

var buildCmd = &cobra.Command{
	Use:   "build <partition>",
	Short: "Build the feature dataset for a corpus partition",
	Long:  "Loads the partition's text, parse-tree, embedding-index, and (for train/validate) corrections corpora, extracts one feature row per candidate determiner-article site, and stores the dataset in SQLite. Partition is one of train, validate, or test.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&flagParallel, "parallel", false, "extract sentences on a worker pool")
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg := artcorr.Config{
		DataDir:   flagData,
		OutDir:    flagOut,
		Partition: args[0],
	}
	// The partition selector is checked before any corpus I/O.
	if err := cfg.Validate(); err != nil {
		return err
	}

	corpora, err := artcorr.LoadCorpora(cfg)
	if err != nil {
		return err
	}

	opts := []artcorr.BuilderOption{artcorr.WithParallel(flagParallel)}

	// Sentence-level progress bar.
	uiprogress.Start()
	bar := uiprogress.AddBar(max(corpora.Sentences(), 1))
	bar.AppendCompleted()
	bar.PrependElapsed()
	opts = append(opts, artcorr.WithProgress(func(done, total int) {
		bar.Set(done)
	}))

	ds, err := artcorr.NewBuilder(opts...).Build(corpora)
	uiprogress.Stop()
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	mode := store.ModeInference
	if cfg.Training() {
		mode = store.ModeTraining
	}
	rec := &store.Dataset{
		Partition:          cfg.Partition,
		Mode:               mode,
		SentenceCount:      ds.SentenceCount,
		CorrectedSentences: ds.CorrectedSentences,
	}
	if _, err := s.SaveDataset(rec, ds.Features, ds.Labels); err != nil {
		return fmt.Errorf("saving %s dataset: %w", cfg.Partition, err)
	}

	fmt.Fprintf(os.Stderr, "Built %s dataset in %s: %d rows, %d sentences (%d with corrections)\n",
		cfg.Partition,
		time.Since(start).Round(time.Millisecond),
		ds.Rows(),
		ds.SentenceCount,
		ds.CorrectedSentences,
	)
	fmt.Fprintf(os.Stderr, "Database: %s\n", resolveDBPath())

	return nil
}
