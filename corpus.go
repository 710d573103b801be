package artcorr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Corpus partitions. The test partition carries no corrections corpus and
// builds in inference mode.
const (
	PartitionTrain    = "train"
	PartitionValidate = "validate"
	PartitionTest     = "test"
)

var partitions = map[string]bool{
	PartitionTrain:    true,
	PartitionValidate: true,
	PartitionTest:     true,
}

// Config names the corpus partition to process and where its files live.
// It replaces the original pipeline's process-wide path constants with an
// explicit record passed into the build.
type Config struct {
	// DataDir holds the raw corpus files for every partition.
	DataDir string
	// OutDir receives persisted datasets and reports.
	OutDir string
	// Partition is one of train, validate, or test.
	Partition string
}

// Validate checks the partition selector. An unrecognized partition is a
// fatal input error, surfaced before any corpus I/O.
func (c Config) Validate() error {
	if !partitions[c.Partition] {
		return fmt.Errorf("unknown partition %q (must be train, validate, or test)", c.Partition)
	}
	return nil
}

// Training reports whether the partition carries a corrections corpus.
func (c Config) Training() bool {
	return c.Partition != PartitionTest
}

// corpusPath returns the path of one of the partition's corpus files, e.g.
// sentence_train.txt. Each file is a JSON document despite the .txt
// extension, matching the upstream corpus distribution.
func (c Config) corpusPath(kind string) string {
	return filepath.Join(c.DataDir, kind+"_"+c.Partition+".txt")
}

// SentencePath returns the text-token corpus path for the partition.
func (c Config) SentencePath() string { return c.corpusPath("sentence") }

// ParsePath returns the parse-tree corpus path for the partition.
func (c Config) ParsePath() string { return c.corpusPath("parse") }

// GlovePath returns the embedding-index corpus path for the partition.
func (c Config) GlovePath() string { return c.corpusPath("glove") }

// CorrectionsPath returns the corrections corpus path for the partition.
func (c Config) CorrectionsPath() string { return c.corpusPath("corrections") }

// Corpora holds the four parallel per-sentence corpora for one partition.
// Corrections is nil in inference mode.
type Corpora struct {
	Text        [][]string
	Trees       []NodeSpec
	Embeddings  [][]int
	Corrections [][]*string
}

// Sentences returns the sentence count of the parse-tree corpus, the
// reference the other corpora are validated against.
func (c *Corpora) Sentences() int {
	return len(c.Trees)
}

// LoadCorpora reads the partition's corpus files named by cfg. The
// corrections corpus is read only for training partitions. Alignment is not
// checked here; the Builder validates it before producing any output.
func LoadCorpora(cfg Config) (*Corpora, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	corpora := &Corpora{}
	if err := readJSONFile(cfg.SentencePath(), &corpora.Text); err != nil {
		return nil, fmt.Errorf("read text corpus: %w", err)
	}
	if err := readJSONFile(cfg.ParsePath(), &corpora.Trees); err != nil {
		return nil, fmt.Errorf("read parse tree corpus: %w", err)
	}
	if err := readJSONFile(cfg.GlovePath(), &corpora.Embeddings); err != nil {
		return nil, fmt.Errorf("read embedding index corpus: %w", err)
	}
	if cfg.Training() {
		if err := readJSONFile(cfg.CorrectionsPath(), &corpora.Corrections); err != nil {
			return nil, fmt.Errorf("read corrections corpus: %w", err)
		}
	}
	return corpora, nil
}

// readJSONFile decodes one JSON corpus file into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
