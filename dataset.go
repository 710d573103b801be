package artcorr

// Dataset is the result of one build: a features matrix with one row per
// candidate site across all sentences, and in training mode a parallel
// label vector of equal length. Labels is nil in inference mode.
type Dataset struct {
	Features [][]float64
	Labels   []int

	// SentenceCount is the number of sentences processed.
	SentenceCount int
	// CorrectedSentences counts sentences carrying at least one non-null
	// correction. Diagnostic only; zero in inference mode.
	CorrectedSentences int
}

// Rows returns the number of feature rows in the dataset.
func (d *Dataset) Rows() int {
	return len(d.Features)
}

// Builder walks the four parallel corpora sentence by sentence, validates
// their alignment, and concatenates per-sentence feature and label chunks
// into dataset-level matrices.
type Builder struct {
	parallel bool
	progress func(done, total int)
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithParallel enables the worker-pool build. Sentences are extracted
// concurrently and reassembled in corpus order, so the output is identical
// to the serial path.
func WithParallel(parallel bool) BuilderOption {
	return func(b *Builder) {
		b.parallel = parallel
	}
}

// WithProgress registers a callback invoked after each sentence is
// extracted, with the number of sentences done so far and the total. It is
// always called from a single goroutine.
func WithProgress(fn func(done, total int)) BuilderOption {
	return func(b *Builder) {
		b.progress = fn
	}
}

// NewBuilder creates a Builder. The default build is serial.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the dataset for the given corpora. Training mode is
// implied by a non-nil corrections corpus. Validation is fail-fast: any
// corpus-level or sentence-level misalignment aborts the whole build with
// an AlignmentError and no output.
func (b *Builder) Build(corpora *Corpora) (*Dataset, error) {
	if err := validateSentenceCounts(corpora); err != nil {
		return nil, err
	}
	if b.parallel {
		return b.buildParallel(corpora)
	}
	return b.buildSerial(corpora)
}

func (b *Builder) buildSerial(corpora *Corpora) (*Dataset, error) {
	training := corpora.Corrections != nil

	ds := &Dataset{SentenceCount: corpora.Sentences()}
	if training {
		ds.Labels = []int{}
	}
	ds.Features = [][]float64{}

	for i := range corpora.Trees {
		chunk, err := extractSentence(corpora, i)
		if err != nil {
			return nil, err
		}
		ds.Features = append(ds.Features, chunk.features...)
		if training {
			ds.Labels = append(ds.Labels, chunk.labels...)
		}
		if chunk.corrected {
			ds.CorrectedSentences++
		}
		if b.progress != nil {
			b.progress(i+1, ds.SentenceCount)
		}
	}
	return ds, nil
}

// sentenceChunk holds one sentence's extraction output before concatenation.
type sentenceChunk struct {
	features  [][]float64
	labels    []int
	corrected bool
}

// extractSentence validates one sentence's per-leaf alignment, builds its
// tree, and extracts its feature and label rows.
func extractSentence(corpora *Corpora, i int) (sentenceChunk, error) {
	tree := NewTree(corpora.Trees[i])
	leafCount := tree.LeafCount()

	var corrections []*string
	if corpora.Corrections != nil {
		corrections = corpora.Corrections[i]
	}
	if err := validateLeafCounts(corpora, i, leafCount, corrections); err != nil {
		return sentenceChunk{}, err
	}

	chunk := sentenceChunk{}
	for _, corr := range corrections {
		if corr != nil {
			chunk.corrected = true
			break
		}
	}

	var err error
	chunk.features, chunk.labels, err = ExtractFeatures(tree, corpora.Embeddings[i], corrections)
	if err != nil {
		return sentenceChunk{}, err
	}
	return chunk, nil
}

// validateSentenceCounts checks that every supplied corpus has one entry
// per parse tree.
func validateSentenceCounts(corpora *Corpora) error {
	want := corpora.Sentences()
	if got := len(corpora.Text); got != want {
		return &AlignmentError{Corpus: "text", Got: got, Want: want, Sentence: -1}
	}
	if got := len(corpora.Embeddings); got != want {
		return &AlignmentError{Corpus: "embedding index", Got: got, Want: want, Sentence: -1}
	}
	if corpora.Corrections != nil {
		if got := len(corpora.Corrections); got != want {
			return &AlignmentError{Corpus: "corrections", Got: got, Want: want, Sentence: -1}
		}
	}
	return nil
}

// validateLeafCounts checks that sentence i's lists each have one entry per
// tree leaf.
func validateLeafCounts(corpora *Corpora, i, leafCount int, corrections []*string) error {
	if got := len(corpora.Text[i]); got != leafCount {
		return &AlignmentError{Corpus: "text", Got: got, Want: leafCount, Sentence: i}
	}
	if got := len(corpora.Embeddings[i]); got != leafCount {
		return &AlignmentError{Corpus: "embedding index", Got: got, Want: leafCount, Sentence: i}
	}
	if corrections != nil {
		if got := len(corrections); got != leafCount {
			return &AlignmentError{Corpus: "corrections", Got: got, Want: leafCount, Sentence: i}
		}
	}
	return nil
}
