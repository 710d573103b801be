package artcorr

import (
	"fmt"
	"runtime"
	"sync"
)

// buildParallel extracts sentences on a worker pool using a three-phase
// pipeline:
//
//	Phase A (serial):   validate every sentence's leaf alignment.
//	Phase B (parallel): extract per-sentence chunks on NumCPU workers.
//	Phase C (serial):   reassemble chunks in sentence order, concatenate.
//
// Each sentence's rows depend only on that sentence's corpora slice, so the
// reassembly step is all that is needed to keep the output byte-identical
// to the serial build.
func (b *Builder) buildParallel(corpora *Corpora) (*Dataset, error) {
	training := corpora.Corrections != nil
	n := corpora.Sentences()

	// ---- Phase A: Serial alignment validation ----
	for i := range corpora.Trees {
		var corrections []*string
		if training {
			corrections = corpora.Corrections[i]
		}
		leafCount := NewTree(corpora.Trees[i]).LeafCount()
		if err := validateLeafCounts(corpora, i, leafCount, corrections); err != nil {
			return nil, err
		}
	}

	ds := &Dataset{SentenceCount: n}
	ds.Features = [][]float64{}
	if training {
		ds.Labels = []int{}
	}
	if n == 0 {
		return ds, nil
	}

	// ---- Phase B: Parallel extraction ----
	numWorkers := min(runtime.NumCPU(), n)
	if numWorkers < 1 {
		numWorkers = 1
	}

	workCh := make(chan int, n)
	for i := 0; i < n; i++ {
		workCh <- i
	}
	close(workCh)

	type result struct {
		index int
		chunk sentenceChunk
		err   error
	}
	resultCh := make(chan result, n)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				chunk, err := extractSentence(corpora, i)
				resultCh <- result{index: i, chunk: chunk, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// ---- Phase C: Ordered reassembly ----
	// The first error by sentence index is reported, so failures are as
	// deterministic as the serial path's.
	chunks := make([]sentenceChunk, n)
	firstErrIndex := -1
	var firstErr error
	done := 0
	for res := range resultCh {
		done++
		if b.progress != nil {
			b.progress(done, n)
		}
		if res.err != nil {
			if firstErrIndex < 0 || res.index < firstErrIndex {
				firstErrIndex = res.index
				firstErr = res.err
			}
			continue
		}
		chunks[res.index] = res.chunk
	}
	if firstErr != nil {
		return nil, fmt.Errorf("sentence %d: %w", firstErrIndex, firstErr)
	}

	for _, chunk := range chunks {
		ds.Features = append(ds.Features, chunk.features...)
		if training {
			ds.Labels = append(ds.Labels, chunk.labels...)
		}
		if chunk.corrected {
			ds.CorrectedSentences++
		}
	}
	return ds, nil
}
